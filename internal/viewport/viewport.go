// Package viewport maps pointer positions on the visible canvas to image
// coordinates. Display pixels and image pixels are the same size.
package viewport

import (
	"image"
	"math"
)

// Scroll is the image-space position of the top-left visible pixel.
type Scroll struct {
	X, Y float64
}

// ToImageCoords translates a viewport position by the scroll offset.
func ToImageCoords(vx, vy, sx, sy float64) (float64, float64) {
	return vx + sx, vy + sy
}

// Point maps a viewport position onto the pixel grid. The result may lie
// outside the image.
func Point(vx, vy float64, s Scroll) image.Point {
	x, y := ToImageCoords(vx, vy, s.X, s.Y)
	return image.Pt(int(math.Floor(x)), int(math.Floor(y)))
}

// Viewport is a window of Size pixels onto content of size Content.
type Viewport struct {
	Size    image.Point
	Content image.Point
	Scroll  Scroll
}

// ScrollBy moves the view and keeps it within the content.
func (v *Viewport) ScrollBy(dx, dy float64) {
	v.Scroll.X += dx
	v.Scroll.Y += dy
	v.clamp()
}

// ScrollTo positions the view, clamped to the content.
func (v *Viewport) ScrollTo(x, y float64) {
	v.Scroll = Scroll{X: x, Y: y}
	v.clamp()
}

// Resize updates the visible size and content size.
func (v *Viewport) Resize(size, content image.Point) {
	v.Size = size
	v.Content = content
	v.clamp()
}

// Visible returns the image-space rectangle currently shown.
func (v Viewport) Visible() image.Rectangle {
	tl := Point(0, 0, v.Scroll)
	return image.Rectangle{Min: tl, Max: tl.Add(v.Size)}.Intersect(image.Rectangle{Max: v.Content})
}

func (v *Viewport) clamp() {
	v.Scroll.X = clamp(v.Scroll.X, float64(v.Content.X-v.Size.X))
	v.Scroll.Y = clamp(v.Scroll.Y, float64(v.Content.Y-v.Size.Y))
}

func clamp(s, max float64) float64 {
	if s > max {
		s = max
	}
	if s < 0 {
		s = 0
	}
	return s
}
