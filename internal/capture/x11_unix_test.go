//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image/color"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/jezek/xgb/xproto"
)

func TestXImageToRGBA(t *testing.T) {
	setup := &xproto.SetupInfo{PixmapFormats: []xproto.Format{{Depth: 24, BitsPerPixel: 32}, {Depth: 32, BitsPerPixel: 32}}}
	reply := &xproto.GetImageReply{Depth: 24, Data: []byte{
		1, 2, 3, 0, 4, 5, 6, 0,
		7, 8, 9, 0, 10, 11, 12, 0,
	}}
	img, err := xImageToRGBA(setup, reply, 2, 2)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{12, 11, 10, 255}) {
		t.Fatalf("pixel = %v", got)
	}

	reply.Depth = 32
	reply.Data[3] = 128
	img, err = xImageToRGBA(setup, reply, 2, 2)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := img.RGBAAt(0, 0).A; got != 128 {
		t.Fatalf("alpha = %d, want 128", got)
	}

	reply.Depth = 16
	if _, err := xImageToRGBA(setup, reply, 2, 2); err == nil {
		t.Fatalf("expected error for unknown depth")
	}
}

func TestPortalOptions(t *testing.T) {
	prev := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prev })

	values := portalOptions(Options{Interactive: true, IncludeCursor: true})
	if v, _ := values["interactive"].Value().(bool); !v {
		t.Fatalf("interactive not set")
	}
	if v, _ := values["cursor_mode"].Value().(string); v != "embedded" {
		t.Fatalf("cursor_mode = %q", v)
	}
	if v, _ := values["handle_token"].Value().(string); v != "test-token" {
		t.Fatalf("handle_token = %q", v)
	}
}

func TestResponseURI(t *testing.T) {
	ok := []interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/shot.png")}}
	if uri, err := responseURI(ok); err != nil || uri != "file:///tmp/shot.png" {
		t.Fatalf("responseURI = %q, %v", uri, err)
	}
	cancelled := []interface{}{uint32(1), map[string]dbus.Variant{}}
	if _, err := responseURI(cancelled); err == nil {
		t.Fatalf("expected cancellation error")
	}
	if _, err := responseURI(nil); err == nil {
		t.Fatalf("expected malformed error")
	}
}
