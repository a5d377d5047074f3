package theme

import (
	"image/color"
)

// Theme defines the colours of the editor window.
type Theme struct {
	Name string

	// Window
	Background       color.RGBA // behind the canvas
	CanvasBackground color.RGBA // image area outside the document

	// Status banner
	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Crop rubber band dashes
	BandLight color.RGBA
	BandDark  color.RGBA

	// Transparent pixels
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{220, 220, 220, 255},
		CanvasBackground: color.RGBA{200, 200, 200, 255},
		StatusBackground: color.RGBA{230, 230, 230, 230},
		StatusText:       color.RGBA{0, 0, 0, 255},
		BandLight:        color.RGBA{255, 255, 255, 255},
		BandDark:         color.RGBA{0, 0, 0, 255},
		CheckerLight:     color.RGBA{220, 220, 220, 255},
		CheckerDark:      color.RGBA{192, 192, 192, 255},
	}
}
