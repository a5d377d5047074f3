package main

import (
	"flag"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/example/photoedit/internal/capture"
	"github.com/example/photoedit/internal/document"
	"github.com/example/photoedit/internal/editor"
)

// editCmd opens the interactive editor window.
type editCmd struct {
	file          string
	output        string
	overlayPath   string
	display       string
	regionSpec    string
	region        image.Rectangle
	opacity       float64
	fromCapture   bool
	pick          bool
	fromClipboard bool
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

// Bindings lists the window shortcuts for the help template.
func (e *editCmd) Bindings() []editor.Binding {
	return editor.New().Bindings()
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r.subcommand("edit"), fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "image file to open")
	fs.StringVar(&e.output, "output", "", "path Ctrl+S saves to (default <name>-edited.jpg)")
	fs.StringVar(&e.overlayPath, "overlay", "", "image inserted by the insert key")
	fs.Float64Var(&e.opacity, "opacity", 1, "opacity of inserted and pasted images, greater than 0 and at most 1")
	fs.StringVar(&e.display, "display", "", "X11 display used for screen captures")
	fs.BoolVar(&e.fromCapture, "capture", false, "start from a screenshot")
	fs.BoolVar(&e.fromClipboard, "clipboard", false, "start from the clipboard image")
	fs.BoolVar(&e.pick, "pick", false, "with -capture, choose the area in the desktop portal dialog")
	fs.StringVar(&e.regionSpec, "region", "", "with -capture, keep only x1,y1,x2,y2 of the screen")

	flagArgs, positionals, err := splitArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	switch len(positionals) {
	case 0:
	case 1:
		if e.file != "" {
			return nil, fmt.Errorf("image given twice: %q and %q", e.file, positionals[0])
		}
		e.file = positionals[0]
	default:
		return nil, &UsageError{of: e}
	}
	if err := checkOpacity(e.opacity); err != nil {
		return nil, err
	}
	sources := 0
	for _, set := range []bool{e.file != "", e.fromCapture, e.fromClipboard} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("choose only one of an image file, -capture or -clipboard")
	}
	if e.regionSpec != "" {
		if !e.fromCapture {
			return nil, fmt.Errorf("-region requires -capture")
		}
		c, err := expectInts(strings.Split(e.regionSpec, ","), 4, "region")
		if err != nil {
			return nil, err
		}
		e.region = image.Rect(c[0], c[1], c[2], c[3])
	}
	return e, nil
}

func (e *editCmd) source() (*document.Document, error) {
	var (
		img image.Image
		err error
	)
	switch {
	case e.fromCapture && !e.region.Empty():
		img, err = captureRegionFn(e.display, e.region, capture.Options{})
		if err != nil {
			return nil, fmt.Errorf("failed to capture region: %w", err)
		}
	case e.fromCapture:
		img, err = captureScreenshotFn(e.display, capture.Options{Interactive: e.pick})
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
	case e.fromClipboard:
		img, err = readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
	case e.file != "":
		return document.Open(e.file, loadImageFn)
	default:
		return nil, nil
	}
	return document.New(img)
}

func (e *editCmd) options() ([]editor.Option, error) {
	doc, err := e.source()
	if err != nil {
		return nil, err
	}
	opts := []editor.Option{
		editor.WithConfig(e.settings()),
		editor.WithTheme(e.activeTheme),
		editor.WithNotifier(e.notifier),
		editor.WithOutput(e.output),
		editor.WithDisplay(e.display),
		editor.WithOverlayOpacity(e.opacity),
	}
	if doc != nil {
		opts = append(opts, editor.WithDocument(doc), editor.WithTitle("PhotoEdit - "+displayName(e.file)))
	}
	if e.overlayPath != "" {
		overlay, err := loadImageFn(e.overlayPath)
		if err != nil {
			return nil, fmt.Errorf("overlay: %w", err)
		}
		opts = append(opts, editor.WithOverlay(overlay))
	}
	return opts, nil
}

func (e *editCmd) Run() error {
	opts, err := e.options()
	if err != nil {
		return err
	}
	editor.New(opts...).Run()
	return nil
}

func displayName(path string) string {
	if path == "" {
		return "untitled"
	}
	return filepath.Base(path)
}
