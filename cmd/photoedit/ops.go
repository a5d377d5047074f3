package main

import (
	"flag"
	"fmt"
	"image"
	"strings"

	"github.com/example/photoedit/internal/document"
	"github.com/example/photoedit/internal/filter"
	"github.com/example/photoedit/internal/theme"
)

// opCmd applies one edit command to an image without opening a window.
type opCmd struct {
	name string
	imageIO
	colorSpec string
	width     float64
	font      string
	size      float64
	opacity   float64
	commands  []document.Command
	*root
	fs *flag.FlagSet
}

func (o *opCmd) FlagSet() *flag.FlagSet {
	return o.fs
}

func parseOpCmd(name string, args []string, r *root) (*opCmd, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	o := &opCmd{name: name, root: r.subcommand(name), fs: fs}
	fs.Usage = usageFunc(o)
	o.imageIO.register(fs, r)
	cfg := o.root.settings()
	switch name {
	case "draw":
		fs.StringVar(&o.colorSpec, "color", theme.Hex(cfg.Draw.Color), "stroke color name or hex value")
		fs.Float64Var(&o.width, "width", float64(cfg.Draw.Width), "stroke width in pixels")
	case "text":
		fs.StringVar(&o.colorSpec, "color", theme.Hex(cfg.Text.Color), "text color name or hex value")
		fs.StringVar(&o.font, "font", cfg.Text.Font, "TrueType font file (empty for the built-in font)")
		fs.Float64Var(&o.size, "size", cfg.Text.Size, "text size in points")
	case "composite":
		fs.Float64Var(&o.opacity, "opacity", 1, "overlay opacity, greater than 0 and at most 1")
	}

	flagArgs, positionals, err := splitArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: o}
	}
	if err := o.parsePositionals(positionals); err != nil {
		return nil, err
	}
	if err := o.imageIO.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *opCmd) parsePositionals(args []string) error {
	switch o.name {
	case "crop":
		c, err := expectInts(args, 4, "crop")
		if err != nil {
			return err
		}
		o.commands = []document.Command{document.Crop{Rect: image.Rect(c[0], c[1], c[2], c[3])}}
	case "draw":
		if len(args)%2 != 0 {
			return fmt.Errorf("draw requires x y pairs")
		}
		c, err := expectInts(args, len(args), "draw")
		if err != nil {
			return err
		}
		col, err := theme.ParseColor(o.colorSpec)
		if err != nil {
			return err
		}
		pts := make([]image.Point, 0, len(c)/2)
		for i := 0; i < len(c); i += 2 {
			pts = append(pts, image.Pt(c[i], c[i+1]))
		}
		o.commands = []document.Command{document.Stroke{Points: pts, Color: col, Width: o.width}}
	case "text":
		if len(args) < 3 {
			return fmt.Errorf("text requires x y and content")
		}
		c, err := expectInts(args[:2], 2, "text")
		if err != nil {
			return err
		}
		text := strings.Join(args[2:], " ")
		if text == "" {
			return fmt.Errorf("text content cannot be empty")
		}
		col, err := theme.ParseColor(o.colorSpec)
		if err != nil {
			return err
		}
		o.commands = []document.Command{document.TextStamp{
			Text: text, Position: image.Pt(c[0], c[1]), Font: o.font, Size: o.size, Color: col,
		}}
	case "composite":
		if len(args) != 3 {
			return fmt.Errorf("composite requires overlay x y")
		}
		c, err := expectInts(args[1:], 2, "composite")
		if err != nil {
			return err
		}
		if err := checkOpacity(o.opacity); err != nil {
			return err
		}
		overlay, err := loadImageFn(args[0])
		if err != nil {
			return fmt.Errorf("overlay: %w", err)
		}
		o.commands = []document.Command{document.Composite{Overlay: overlay, Position: image.Pt(c[0], c[1]), Opacity: o.opacity}}
	case "filter":
		for _, name := range args {
			k, ok := filter.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown filter %q (available: %s)", name, strings.Join(filter.Names(), ", "))
			}
			o.commands = append(o.commands, document.Filter{Kernel: k.Name})
		}
	default:
		return fmt.Errorf("unsupported command %q", o.name)
	}
	return nil
}

func (o *opCmd) Run() error {
	doc, err := o.load()
	if err != nil {
		return err
	}
	for _, cmd := range o.commands {
		if err := doc.Apply(cmd); err != nil {
			return err
		}
	}
	return o.store(o.root, doc)
}

// checkOpacity rejects values outside (0,1]. A zero Composite.Opacity
// means opaque, so 0 cannot be passed through.
func checkOpacity(v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("opacity must be greater than 0 and at most 1, got %g", v)
	}
	return nil
}

type filtersCmd struct{ r *root }

func (f *filtersCmd) Run() error {
	for i, name := range filter.Names() {
		fmt.Printf("%d\t%s\n", i+1, name)
	}
	return nil
}
