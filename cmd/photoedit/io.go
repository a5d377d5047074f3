package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/photoedit/internal/capture"
	"github.com/example/photoedit/internal/clipboard"
	"github.com/example/photoedit/internal/codec"
	"github.com/example/photoedit/internal/document"
)

var (
	readClipboardFn     = clipboard.ReadImage
	writeClipboardFn    = clipboard.WriteImage
	captureScreenshotFn = capture.Screenshot
	captureRegionFn     = capture.Region
	loadImageFn         = codec.Load
	saveImageFn         = codec.Save
)

// imageIO holds the flags shared by commands that read and write one image.
type imageIO struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	quality       int
}

func (o *imageIO) register(fs *flag.FlagSet, r *root) {
	fs.StringVar(&o.file, "file", "", "input image file")
	fs.StringVar(&o.output, "output", "", "output file path (defaults to the input file)")
	fs.BoolVar(&o.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&o.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.BoolVar(&o.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&o.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.IntVar(&o.quality, "quality", r.settings().Export.JPEGQuality, "JPEG quality between 1 and 100")
}

func (o *imageIO) validate() error {
	if o.fromClipboard {
		if o.output == "" {
			if o.file == "" {
				return fmt.Errorf("output file is required when reading from the clipboard")
			}
			o.output = o.file
		}
	} else {
		if o.file == "" {
			return fmt.Errorf("input file is required")
		}
		if o.output == "" {
			o.output = o.file
		}
	}
	if o.quality < 1 || o.quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100")
	}
	return nil
}

func (o *imageIO) load() (*document.Document, error) {
	if !o.fromClipboard {
		return document.Open(o.file, loadImageFn)
	}
	img, err := readClipboardFn()
	if err != nil {
		return nil, fmt.Errorf("read clipboard image: %w", err)
	}
	return document.New(img)
}

func (o *imageIO) store(r *root, doc *document.Document) error {
	if err := saveImageFn(o.output, doc.Bitmap(), codec.Options{JPEGQuality: o.quality}); err != nil {
		return err
	}
	saved := o.output
	if abs, err := filepath.Abs(o.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s (%dx%d)\n", saved, doc.Width(), doc.Height())
	r.notifySave(saved)
	if o.toClipboard {
		if err := writeClipboardFn(doc.Bitmap()); err != nil {
			return fmt.Errorf("copy image to clipboard: %w", err)
		}
		detail := filepath.Base(o.output)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		r.notifyCopy(detail, doc.Bitmap())
	}
	return nil
}

// splitArgs separates flags registered on fs from positional arguments so
// flags may follow the positionals. Unknown dashed words such as negative
// numbers stay positional.
func splitArgs(fs *flag.FlagSet, args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		parts := strings.SplitN(name, "=", 2)
		f := fs.Lookup(parts[0])
		if name == "" || f == nil {
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + parts[0]
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}

func expectInts(args []string, n int, what string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", what, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}
