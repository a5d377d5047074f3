package filter

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 20), uint8(y * 20), uint8((x + y) * 10), 255})
		}
	}
	return img
}

func TestLookupNormalizesNames(t *testing.T) {
	for _, name := range []string{"EDGE_ENHANCE", "edge-enhance", "EdgeEnhance", " edge enhance "} {
		k, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) failed", name)
		}
		if k.Name != "EdgeEnhance" {
			t.Fatalf("Lookup(%q) = %s", name, k.Name)
		}
	}
	if _, ok := Lookup("posterize"); ok {
		t.Fatalf("unexpected kernel for posterize")
	}
	if _, ok := Lookup(""); ok {
		t.Fatalf("unexpected kernel for empty name")
	}
}

func TestNamesListsNineKernels(t *testing.T) {
	names := Names()
	if len(names) != 9 {
		t.Fatalf("expected 9 kernels, got %d: %v", len(names), names)
	}
	for _, n := range names {
		k, ok := Lookup(n)
		if !ok {
			t.Fatalf("registered name %q does not resolve", n)
		}
		r, c := k.Weights.Dims()
		if r != c || r%2 == 0 {
			t.Fatalf("%s: kernel must be odd and square, got %dx%d", n, r, c)
		}
	}
}

func TestApplyUniformImageIsStable(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 100, 50, 200, 255
	}
	for _, name := range []string{"Blur", "Smooth", "SmoothMore", "Sharpen", "Detail", "EdgeEnhance"} {
		out, err := Apply(name, src)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got := out.RGBAAt(3, 3); got != (color.RGBA{100, 50, 200, 255}) {
			t.Fatalf("%s: uniform image changed to %v", name, got)
		}
	}
	out, err := Apply("FIND_EDGES", src)
	if err != nil {
		t.Fatalf("find edges: %v", err)
	}
	if got := out.RGBAAt(2, 2); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("find edges on flat image = %v", got)
	}
	out, err = Apply("contour", src)
	if err != nil {
		t.Fatalf("contour: %v", err)
	}
	if got := out.RGBAAt(2, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("contour on flat image = %v", got)
	}
}

func TestApplyKeepsSizeAndAlpha(t *testing.T) {
	src := gradient(7, 5)
	src.Pix[3] = 0
	src.Pix[0], src.Pix[1], src.Pix[2] = 0, 0, 0
	out, err := Apply("emboss", src)
	if err != nil {
		t.Fatalf("emboss: %v", err)
	}
	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	if out.Pix[3] != 0 {
		t.Fatalf("alpha changed to %d", out.Pix[3])
	}
	if out.Pix[0] != 0 {
		t.Fatalf("transparent pixel gained colour %d", out.Pix[0])
	}
	if src.RGBAAt(4, 4) != gradient(7, 5).RGBAAt(4, 4) {
		t.Fatalf("source mutated")
	}
}

func TestApplyUnknown(t *testing.T) {
	if _, err := Apply("nope", gradient(2, 2)); !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
}
