package fonts

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestFaceCachesPerSize(t *testing.T) {
	a, err := Face("", 18)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	b, err := Face(Default, 18)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	if a != b {
		t.Fatalf("expected cached face for the same size")
	}
	c, err := Face(Default, 24)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	if c == a {
		t.Fatalf("expected distinct face for a different size")
	}
}

func TestFaceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	face, err := Face(path, 20)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	if w, _ := Measure(face, "Hi"); w <= 0 {
		t.Fatalf("expected positive width, got %d", w)
	}
}

func TestFaceMissingOrInvalid(t *testing.T) {
	dir := t.TempDir()
	if _, err := Face(filepath.Join(dir, "missing.ttf"), 12); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for missing file, got %v", err)
	}
	bogus := filepath.Join(dir, "bogus.ttf")
	if err := os.WriteFile(bogus, []byte("not a font"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Face(bogus, 12); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for invalid file, got %v", err)
	}
}

func TestMeasureMultiLine(t *testing.T) {
	face, err := Face("", 16)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	_, one := Measure(face, "Hi")
	_, two := Measure(face, "Hi\nthere")
	if two != 2*one+LineSpacing {
		t.Fatalf("two lines = %d, want %d", two, 2*one+LineSpacing)
	}
}

func TestDrawTopLeftAnchor(t *testing.T) {
	face, err := Face("", 20)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 60, 40))
	Draw(img, face, image.Pt(5, 5), "Hi", color.White)
	w, h := Measure(face, "Hi")
	inside := false
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			if x < 4 || y < 4 || x > 6+w || y > 6+h {
				t.Fatalf("ink at (%d,%d) outside box from (5,5) size %dx%d", x, y, w, h)
			}
			inside = true
		}
	}
	if !inside {
		t.Fatalf("expected text pixels")
	}
}
