// Package fonts resolves font references to faces and draws text with a
// top-left anchor.
package fonts

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Default names the embedded Go Regular font.
const Default = "goregular"

// DefaultSize is the point size used when none is given.
const DefaultSize = 30

// LineSpacing is the extra gap in pixels between lines of multi-line text.
const LineSpacing = 4

// ErrUnavailable reports a font that could not be read or parsed.
var ErrUnavailable = errors.New("font unavailable")

type faceKey struct {
	ref  string
	size float64
}

var (
	faces sync.Map // map[faceKey]font.Face

	goregularOnce sync.Once
	goregularFont *opentype.Font
	goregularErr  error
)

// Face returns a face for ref at size points. An empty ref or Default uses
// the embedded font; any other ref is a path to a TrueType or OpenType file.
func Face(ref string, size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = Default
	}
	key := faceKey{ref: ref, size: size}
	if f, ok := faces.Load(key); ok {
		return f.(font.Face), nil
	}
	var (
		face font.Face
		err  error
	)
	if ref == Default {
		face, err = embeddedFace(size)
	} else {
		face, err = fileFace(ref, size)
	}
	if err != nil {
		return nil, err
	}
	actual, _ := faces.LoadOrStore(key, face)
	return actual.(font.Face), nil
}

func embeddedFace(size float64) (font.Face, error) {
	goregularOnce.Do(func() {
		goregularFont, goregularErr = opentype.Parse(goregular.TTF)
	})
	if goregularErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, Default, goregularErr)
	}
	return opentype.NewFace(goregularFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

func fileFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if f, err := truetype.Parse(data); err == nil {
		return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
	}
	// CFF outlines are not handled by freetype.
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	return face, nil
}

func lineHeight(face font.Face) int {
	m := face.Metrics()
	return m.Ascent.Ceil() + m.Descent.Ceil()
}

// Measure returns the bounding box of text, which may span several lines.
func Measure(face font.Face, text string) (width, height int) {
	d := &font.Drawer{Face: face}
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if w := d.MeasureString(line).Ceil(); w > width {
			width = w
		}
	}
	height = len(lines)*lineHeight(face) + (len(lines)-1)*LineSpacing
	return width, height
}

// Draw renders text with its top-left corner at pt. Pixels outside dst are
// clipped.
func Draw(dst draw.Image, face font.Face, pt image.Point, text string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	step := lineHeight(face) + LineSpacing
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(pt.X, pt.Y+ascent+i*step)
		d.DrawString(line)
	}
}
