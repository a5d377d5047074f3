// Package preview holds the transient overlay shown while a gesture is in
// progress. It is drawn on the display buffer and never touches the document.
package preview

import (
	"image"
	"image/color"
)

// Segment is one piece of an in-progress stroke in image coordinates.
type Segment struct {
	From, To image.Point
}

// Layer is either empty, a crop rubber band, or a list of stroke segments.
type Layer struct {
	band    image.Rectangle
	hasBand bool

	segments []Segment
	color    color.RGBA
	width    int

	bandLight color.Color
	bandDark  color.Color
}

// New returns an empty layer with a black and white rubber band.
func New() *Layer {
	return &Layer{bandLight: color.White, bandDark: color.Black, color: color.RGBA{A: 255}, width: 1}
}

// SetBandColors sets the two alternating dash colours of the rubber band.
func (l *Layer) SetBandColors(light, dark color.Color) {
	l.bandLight, l.bandDark = light, dark
}

// SetBand shows the rubber band spanning the two corners.
func (l *Layer) SetBand(a, b image.Point) {
	l.segments = nil
	l.band = image.Rectangle{Min: a, Max: b}.Canon()
	l.hasBand = true
}

// Band returns the rubber band, if one is shown.
func (l *Layer) Band() (image.Rectangle, bool) { return l.band, l.hasBand }

// SetStrokeStyle sets the colour and width used for stroke segments.
func (l *Layer) SetStrokeStyle(c color.RGBA, width int) {
	if width < 1 {
		width = 1
	}
	l.color, l.width = c, width
}

// AddSegment appends a stroke segment.
func (l *Layer) AddSegment(from, to image.Point) {
	l.hasBand = false
	l.segments = append(l.segments, Segment{From: from, To: to})
}

// Segments returns the stroke segments shown so far.
func (l *Layer) Segments() []Segment { return l.segments }

// Clear removes everything from the layer.
func (l *Layer) Clear() {
	l.band = image.Rectangle{}
	l.hasBand = false
	l.segments = nil
}

func (l *Layer) Empty() bool { return !l.hasBand && len(l.segments) == 0 }

// Render draws the layer onto dst. origin is where image pixel (0,0) lands
// on dst.
func (l *Layer) Render(dst *image.RGBA, origin image.Point) {
	if l.hasBand {
		drawDashedRect(dst, l.band.Add(origin), 4, 1, l.bandLight, l.bandDark)
		return
	}
	for _, s := range l.segments {
		a, b := s.From.Add(origin), s.To.Add(origin)
		drawLine(dst, a.X, a.Y, b.X, b.Y, l.color, l.width)
	}
}

// Clone returns a copy that can be rendered while l keeps changing.
func (l *Layer) Clone() *Layer {
	c := *l
	c.segments = append([]Segment(nil), l.segments...)
	return &c
}
