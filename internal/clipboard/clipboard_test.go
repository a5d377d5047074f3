package clipboard

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestPNGPayload(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(2, 1, color.RGBA{9, 8, 7, 255})
	data, err := encodePNG(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := decodePNG(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, g, b, _ := img.At(2, 1).RGBA(); r>>8 != 9 || g>>8 != 8 || b>>8 != 7 {
		t.Fatalf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
	if _, err := decodePNG(nil); !errors.Is(err, errNoImage) {
		t.Fatalf("expected errNoImage, got %v", err)
	}
}
