package main

import (
	"errors"
	"image"
	"image/color"
	"reflect"
	"strings"
	"testing"

	"github.com/example/photoedit/internal/document"
	"github.com/example/photoedit/internal/tool"
)

func newController(t *testing.T, w, h int) *tool.Controller {
	t.Helper()
	doc, err := document.New(solid(w, h, color.RGBA{255, 255, 255, 255}))
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	return tool.New(tool.WithDocument(doc))
}

func mustScript(t *testing.T, src string) []step {
	t.Helper()
	steps, err := parseScript(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse script: %v", err)
	}
	return steps
}

func TestReplayCropWithScroll(t *testing.T) {
	ctl := newController(t, 100, 80)
	steps := mustScript(t, `
# scrolled crop
arm crop
scroll 5 5
down 5 5
move 30 20
up 55 45
`)
	if err := replay(ctl, steps, true); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if d := ctl.Document(); d.Width() != 50 || d.Height() != 40 {
		t.Fatalf("size = %dx%d, want 50x40", d.Width(), d.Height())
	}
	if ctl.Mode() != tool.ModeIdle {
		t.Fatalf("mode = %v, want idle", ctl.Mode())
	}
}

func TestReplayStroke(t *testing.T) {
	ctl := newController(t, 40, 40)
	steps := mustScript(t, "arm draw\ndown 0 0\nmove 10 0\nmove 10 10\nup 10 10\n")
	if err := replay(ctl, steps, true); err != nil {
		t.Fatalf("replay: %v", err)
	}
	st, ok := ctl.LastCommand().(document.Stroke)
	if !ok {
		t.Fatalf("last command = %T", ctl.LastCommand())
	}
	want := []image.Point{{0, 0}, {10, 0}, {10, 10}}
	if !reflect.DeepEqual(st.Points, want) {
		t.Fatalf("points = %v, want %v", st.Points, want)
	}
	if ctl.Mode() != tool.ModeDrawing {
		t.Fatalf("mode = %v, want drawing", ctl.Mode())
	}
}

func TestReplayTextKeepsSpacing(t *testing.T) {
	steps := mustScript(t, "arm text Hello   world\n")
	if steps[0].verb != "arm text" || steps[0].arg != "Hello   world" {
		t.Fatalf("step = %+v", steps[0])
	}
	ctl := newController(t, 200, 60)
	steps = append(steps, mustScript(t, "down 4 4")...)
	if err := replay(ctl, steps, true); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if ts, ok := ctl.LastCommand().(document.TextStamp); !ok || ts.Position != image.Pt(4, 4) {
		t.Fatalf("last command = %#v", ctl.LastCommand())
	}
}

func TestParseScriptErrors(t *testing.T) {
	cases := map[string]string{
		"bogus 1 2":      "unknown command",
		"down 1":         "requires x y",
		"move x 1":       "invalid number",
		"arm paint":      "unknown tool",
		"arm":            "requires a tool",
		"arm text":       "requires an argument",
		"arm crop now":   "takes no arguments",
		"filter":         "requires a name",
		"disarm please":  "takes no arguments",
		"arm draw\nup 1": "line 2",
	}
	for src, want := range cases {
		_, err := parseScript(strings.NewReader(src))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%q: expected error containing %q, got %v", src, want, err)
		}
	}
}

func TestReplayStrictStopsOnFailure(t *testing.T) {
	stubImages(t, solid(4, 4, color.RGBA{}))
	steps := mustScript(t, "arm overlay missing.png\nfilter blur\n")

	ctl := newController(t, 10, 10)
	err := replay(ctl, steps, true)
	if !errors.Is(err, document.ErrMissingResource) || !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("expected missing resource on line 1, got %v", err)
	}
	if ctl.LastCommand() != nil {
		t.Fatalf("strict replay should stop before the filter")
	}

	ctl = newController(t, 10, 10)
	if err := replay(ctl, steps, false); err != nil {
		t.Fatalf("lenient replay: %v", err)
	}
	if _, ok := ctl.LastCommand().(document.Filter); !ok {
		t.Fatalf("lenient replay should continue to the filter")
	}
}

func TestReplayCommandRun(t *testing.T) {
	saved := stubImages(t, solid(100, 80, color.RGBA{255, 255, 255, 255}))
	cmd, err := parseReplayCmd([]string{"-file", "in.png", "-output", "out.png", "-color", "red", "-"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdin = strings.NewReader("arm draw\ndown 10 10\nup 40 10\narm crop\ndown 0 0\nup 60 30\n")
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	out, ok := saved["out.png"].(*image.RGBA)
	if !ok {
		t.Fatalf("output not saved: %T", saved["out.png"])
	}
	if out.Bounds().Dx() != 60 || out.Bounds().Dy() != 30 {
		t.Fatalf("size = %v", out.Bounds())
	}
	if got := out.RGBAAt(25, 10); got.R != 255 || got.G > 10 {
		t.Fatalf("stroke pixel = %v, want red", got)
	}
}

func TestReplayOverlayOpacity(t *testing.T) {
	saved := stubImages(t, solid(20, 20, color.RGBA{255, 255, 255, 255}))
	load := loadImageFn
	loadImageFn = func(path string) (image.Image, error) {
		if path == "logo.png" {
			return solid(4, 4, color.RGBA{0, 0, 0, 255}), nil
		}
		return load(path)
	}
	if _, err := parseReplayCmd([]string{"-file", "in.png", "-opacity", "0", "-"}, nil); err == nil || !strings.Contains(err.Error(), "greater than 0") {
		t.Fatalf("expected opacity range error, got %v", err)
	}
	cmd, err := parseReplayCmd([]string{"-file", "in.png", "-output", "out.png", "-opacity", "0.5", "-"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdin = strings.NewReader("arm overlay logo.png\ndown 2 2\n")
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	out, ok := saved["out.png"].(*image.RGBA)
	if !ok {
		t.Fatalf("output not saved: %T", saved["out.png"])
	}
	if got := out.RGBAAt(3, 3); got.R < 120 || got.R > 135 {
		t.Fatalf("overlay pixel = %v, want half grey", got)
	}
	if got := out.RGBAAt(10, 10); got.R != 255 {
		t.Fatalf("pixel outside overlay = %v", got)
	}
}
