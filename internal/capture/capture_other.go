//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("screen capture is not supported on this platform")

func x11Screenshot(string) (*image.RGBA, error) { return nil, errUnsupported }

func portalScreenshot(Options) (*image.RGBA, error) { return nil, errUnsupported }
