// Package capture grabs the desktop so a screenshot can be opened as a
// document.
package capture

import (
	"fmt"
	"image"
	"image/draw"
)

// Options tune the portal request.
type Options struct {
	// Interactive lets the user pick a region in the portal dialog.
	Interactive bool
	// IncludeCursor embeds the pointer in the screenshot.
	IncludeCursor bool
}

// replaced in tests
var (
	grabX11    = x11Screenshot
	grabPortal = portalScreenshot
)

// Screenshot captures the whole desktop. A direct X11 grab of display is
// tried first; the desktop portal is used when X11 is unavailable or an
// interactive selection is requested.
func Screenshot(display string, opts Options) (*image.RGBA, error) {
	if !opts.Interactive {
		img, xerr := grabX11(display)
		if xerr == nil {
			return img, nil
		}
		img, err := grabPortal(opts)
		if err != nil {
			return nil, fmt.Errorf("screenshot: x11: %v; portal: %w", xerr, err)
		}
		return img, nil
	}
	img, err := grabPortal(opts)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return img, nil
}

// Region captures the desktop and crops it to rect in screen coordinates.
func Region(display string, rect image.Rectangle, opts Options) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("region is empty")
	}
	shot, err := Screenshot(display, Options{IncludeCursor: opts.IncludeCursor})
	if err != nil {
		return nil, err
	}
	return cropToRect(shot, rect)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Canon().Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
