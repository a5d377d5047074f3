package editor

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/photoedit/internal/preview"
	"github.com/example/photoedit/internal/theme"
)

// frame is an immutable snapshot handed to the paint goroutine.
type frame struct {
	size    image.Point
	bitmap  *image.RGBA
	origin  image.Point
	preview *preview.Layer
	status  string
	theme   theme.Theme
}

func (s *session) frame() frame {
	f := frame{
		size:    image.Pt(s.width, s.height),
		origin:  image.Pt(-int(s.vp.Scroll.X), -int(s.vp.Scroll.Y)),
		preview: s.ctl.Preview().Clone(),
		status:  s.status(),
		theme:   *s.theme,
	}
	if d := s.ctl.Document(); d != nil {
		f.bitmap = d.Bitmap()
	}
	return f
}

func render(dst *image.RGBA, f frame) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(f.theme.Background), image.Point{}, draw.Src)

	canvas := image.Rect(0, 0, b.Dx(), b.Dy()-statusHeight).Intersect(b)
	if f.bitmap != nil && !canvas.Empty() {
		view := dst.SubImage(canvas).(*image.RGBA)
		draw.Draw(view, canvas, image.NewUniform(f.theme.CanvasBackground), image.Point{}, draw.Src)
		r := f.bitmap.Bounds().Add(f.origin).Intersect(canvas)
		drawCheckerboard(view, r, 8, f.theme.CheckerLight, f.theme.CheckerDark)
		draw.Draw(view, r, f.bitmap, r.Min.Sub(f.origin), draw.Over)
		f.preview.SetBandColors(f.theme.BandLight, f.theme.BandDark)
		f.preview.Render(view, f.origin)
	}

	bar := image.Rect(0, b.Dy()-statusHeight, b.Dx(), b.Dy()).Intersect(b)
	draw.Draw(dst, bar, image.NewUniform(f.theme.StatusBackground), image.Point{}, draw.Over)
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(f.theme.StatusText), Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	d.Dot = fixed.P(bar.Min.X+6, bar.Min.Y+(statusHeight+ascent)/2)
	d.DrawString(f.status)
}

// drawCheckerboard fills rect with squares of the given size so transparent
// pixels stay visible.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}
