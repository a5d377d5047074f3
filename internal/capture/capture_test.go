package capture

import (
	"errors"
	"image"
	"strings"
	"testing"
)

func stubGrabbers(t *testing.T, x11 func(string) (*image.RGBA, error), portal func(Options) (*image.RGBA, error)) {
	t.Helper()
	prevX, prevP := grabX11, grabPortal
	grabX11, grabPortal = x11, portal
	t.Cleanup(func() { grabX11, grabPortal = prevX, prevP })
}

func shot(w, h int) *image.RGBA { return image.NewRGBA(image.Rect(0, 0, w, h)) }

func TestScreenshotPrefersX11(t *testing.T) {
	portalCalled := false
	stubGrabbers(t,
		func(string) (*image.RGBA, error) { return shot(4, 3), nil },
		func(Options) (*image.RGBA, error) { portalCalled = true; return shot(1, 1), nil },
	)
	img, err := Screenshot("", Options{})
	if err != nil {
		t.Fatalf("screenshot: %v", err)
	}
	if img.Bounds().Dx() != 4 || portalCalled {
		t.Fatalf("expected X11 image without portal fallback")
	}
}

func TestScreenshotFallsBackToPortal(t *testing.T) {
	stubGrabbers(t,
		func(string) (*image.RGBA, error) { return nil, errors.New("no X") },
		func(Options) (*image.RGBA, error) { return shot(2, 2), nil },
	)
	img, err := Screenshot("", Options{})
	if err != nil || img.Bounds().Dx() != 2 {
		t.Fatalf("expected portal image, got %v %v", img, err)
	}

	portalErr := errors.New("portal denied")
	stubGrabbers(t,
		func(string) (*image.RGBA, error) { return nil, errors.New("no X") },
		func(Options) (*image.RGBA, error) { return nil, portalErr },
	)
	_, err = Screenshot("", Options{})
	if !errors.Is(err, portalErr) || !strings.Contains(err.Error(), "no X") {
		t.Fatalf("expected both failures reported, got %v", err)
	}
}

func TestInteractiveUsesPortal(t *testing.T) {
	var got Options
	stubGrabbers(t,
		func(string) (*image.RGBA, error) { t.Fatalf("x11 grab not expected"); return nil, nil },
		func(o Options) (*image.RGBA, error) { got = o; return shot(1, 1), nil },
	)
	if _, err := Screenshot(":0", Options{Interactive: true, IncludeCursor: true}); err != nil {
		t.Fatalf("screenshot: %v", err)
	}
	if !got.Interactive || !got.IncludeCursor {
		t.Fatalf("options not passed through: %+v", got)
	}
}

func TestRegion(t *testing.T) {
	stubGrabbers(t,
		func(string) (*image.RGBA, error) { return shot(100, 50), nil },
		func(Options) (*image.RGBA, error) { return nil, errors.New("unused") },
	)
	img, err := Region("", image.Rect(90, 40, 120, 80), Options{})
	if err != nil {
		t.Fatalf("region: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, err := Region("", image.Rect(200, 200, 300, 300), Options{}); err == nil {
		t.Fatalf("expected error for region outside the screen")
	}
	if _, err := Region("", image.Rectangle{}, Options{}); err == nil {
		t.Fatalf("expected error for empty region")
	}
}
