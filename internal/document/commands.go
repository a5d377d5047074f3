package document

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/text/unicode/norm"

	"github.com/example/photoedit/internal/filter"
	"github.com/example/photoedit/internal/fonts"
)

// Command is a single edit. Apply must not mutate src; it returns a new
// bitmap or an error.
type Command interface {
	Name() string
	Apply(src *image.RGBA) (*image.RGBA, error)
}

// Crop keeps the pixels inside Rect. Corners may be given in any order; the
// box is clamped to the image before cropping.
type Crop struct {
	Rect image.Rectangle
}

func (Crop) Name() string { return "crop" }

func (c Crop) Apply(src *image.RGBA) (*image.RGBA, error) {
	r := c.Rect.Canon().Intersect(src.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("%w: crop %v within %v", ErrInvalidGeometry, c.Rect, src.Bounds())
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), src, r.Min, draw.Src)
	return out, nil
}

// Stroke draws connected segments through Points with round caps and joins.
type Stroke struct {
	Points []image.Point
	Color  color.RGBA
	Width  float64
}

func (Stroke) Name() string { return "stroke" }

func (s Stroke) Apply(src *image.RGBA) (*image.RGBA, error) {
	out := cloneRGBA(src)
	if len(s.Points) == 0 {
		return out, nil
	}
	w := s.Width
	if w <= 0 {
		w = 1
	}
	dc := gg.NewContextForRGBA(out)
	dc.SetColor(s.Color)
	if len(s.Points) == 1 {
		p := s.Points[0]
		dc.DrawCircle(float64(p.X)+0.5, float64(p.Y)+0.5, w/2)
		dc.Fill()
		return out, nil
	}
	dc.SetLineWidth(w)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	// pixel centres
	dc.MoveTo(float64(s.Points[0].X)+0.5, float64(s.Points[0].Y)+0.5)
	for _, p := range s.Points[1:] {
		dc.LineTo(float64(p.X)+0.5, float64(p.Y)+0.5)
	}
	dc.Stroke()
	return out, nil
}

// TextStamp rasterizes Text with its top-left corner at Position.
type TextStamp struct {
	Text     string
	Position image.Point
	Font     string
	Size     float64
	Color    color.RGBA
}

func (TextStamp) Name() string { return "text" }

func (t TextStamp) Apply(src *image.RGBA) (*image.RGBA, error) {
	text := norm.NFC.String(t.Text)
	if text == "" {
		return cloneRGBA(src), nil
	}
	face, err := fonts.Face(t.Font, t.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingResource, err)
	}
	out := cloneRGBA(src)
	fonts.Draw(out, face, t.Position, text, t.Color)
	return out, nil
}

// Composite blends Overlay over the image with its top-left at Position.
// Opacity scales the overlay's own alpha; zero means fully opaque.
type Composite struct {
	Overlay  image.Image
	Position image.Point
	Opacity  float64
}

func (Composite) Name() string { return "composite" }

func (c Composite) Apply(src *image.RGBA) (*image.RGBA, error) {
	if c.Overlay == nil {
		return nil, fmt.Errorf("%w: overlay image", ErrMissingResource)
	}
	out := cloneRGBA(src)
	ob := c.Overlay.Bounds()
	dr := image.Rectangle{Min: c.Position, Max: c.Position.Add(ob.Size())}
	if !dr.Overlaps(out.Bounds()) {
		return out, nil
	}
	if c.Opacity <= 0 || c.Opacity >= 1 {
		xdraw.Copy(out, c.Position, c.Overlay, ob, xdraw.Over, nil)
		return out, nil
	}
	mask := image.NewUniform(color.Alpha{A: uint8(c.Opacity*255 + 0.5)})
	draw.DrawMask(out, dr, c.Overlay, ob.Min, mask, image.Point{}, draw.Over)
	return out, nil
}

// Filter convolves the image with a registered kernel.
type Filter struct {
	Kernel string
}

func (Filter) Name() string { return "filter" }

func (f Filter) Apply(src *image.RGBA) (*image.RGBA, error) {
	out, err := filter.Apply(f.Kernel, src)
	if errors.Is(err, filter.ErrUnknown) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilterKernel, f.Kernel)
	}
	return out, err
}
