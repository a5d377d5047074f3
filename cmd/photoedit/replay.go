package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/example/photoedit/internal/document"
	"github.com/example/photoedit/internal/theme"
	"github.com/example/photoedit/internal/tool"
	"github.com/example/photoedit/internal/viewport"
)

// replayCmd drives the tool controller from a gesture script.
type replayCmd struct {
	imageIO
	script    string
	colorSpec string
	width     float64
	opacity   float64
	strict    bool
	stdin     io.Reader
	*root
	fs *flag.FlagSet
}

func (r *replayCmd) FlagSet() *flag.FlagSet {
	return r.fs
}

// step is one parsed script line.
type step struct {
	line int
	verb string
	arg  string
	x, y float64
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r.subcommand("replay"), fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(c)
	c.imageIO.register(fs, r)
	cfg := c.root.settings()
	fs.StringVar(&c.colorSpec, "color", theme.Hex(cfg.Draw.Color), "stroke color for arm draw")
	fs.Float64Var(&c.width, "width", float64(cfg.Draw.Width), "stroke width for arm draw")
	fs.Float64Var(&c.opacity, "opacity", 1, "opacity for arm overlay, greater than 0 and at most 1")
	fs.BoolVar(&c.strict, "strict", false, "stop at the first failed command")

	flagArgs, positionals, err := splitArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) != 1 {
		return nil, &UsageError{of: c}
	}
	c.script = positionals[0]
	if err := checkOpacity(c.opacity); err != nil {
		return nil, err
	}
	if err := c.imageIO.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *replayCmd) Run() error {
	var in io.Reader = r.stdin
	if r.script != "-" {
		f, err := os.Open(r.script)
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("error closing %q: %v", f.Name(), err)
			}
		}()
		in = f
	}
	steps, err := parseScript(in)
	if err != nil {
		return fmt.Errorf("%s: %w", r.script, err)
	}
	col, err := theme.ParseColor(r.colorSpec)
	if err != nil {
		return err
	}
	doc, err := r.load()
	if err != nil {
		return err
	}
	cfg := r.settings()
	ctl := tool.New(
		tool.WithDocument(doc),
		tool.WithStrokeStyle(tool.StrokeStyle{Color: col, Width: r.width}),
		tool.WithTextStyle(tool.TextStyle{Font: cfg.Text.Font, Size: cfg.Text.Size, Color: cfg.Text.Color}),
		tool.WithOverlayOpacity(r.opacity),
	)
	if err := replay(ctl, steps, r.strict); err != nil {
		return err
	}
	return r.store(r.root, ctl.Document())
}

func parseScript(in io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(in)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s, err := parseStep(n, line)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

func parseStep(n int, line string) (step, error) {
	fields := strings.Fields(line)
	s := step{line: n, verb: strings.ToLower(fields[0])}
	rest := fields[1:]
	switch s.verb {
	case "arm":
		if len(rest) < 1 {
			return s, fmt.Errorf("line %d: arm requires a tool", n)
		}
		name := strings.ToLower(rest[0])
		switch name {
		case "draw", "crop":
			if len(rest) != 1 {
				return s, fmt.Errorf("line %d: arm %s takes no arguments", n, name)
			}
		case "text", "overlay":
			if len(rest) < 2 {
				return s, fmt.Errorf("line %d: arm %s requires an argument", n, name)
			}
			// keep the text exactly as written after the tool name
			idx := strings.Index(line, rest[0]) + len(rest[0])
			s.arg = strings.TrimSpace(line[idx:])
		default:
			return s, fmt.Errorf("line %d: unknown tool %q", n, rest[0])
		}
		s.verb = "arm " + name
	case "disarm":
		if len(rest) != 0 {
			return s, fmt.Errorf("line %d: disarm takes no arguments", n)
		}
	case "down", "move", "up", "scroll":
		if len(rest) != 2 {
			return s, fmt.Errorf("line %d: %s requires x y", n, s.verb)
		}
		var err error
		if s.x, err = strconv.ParseFloat(rest[0], 64); err != nil {
			return s, fmt.Errorf("line %d: invalid number %q", n, rest[0])
		}
		if s.y, err = strconv.ParseFloat(rest[1], 64); err != nil {
			return s, fmt.Errorf("line %d: invalid number %q", n, rest[1])
		}
	case "filter":
		if len(rest) != 1 {
			return s, fmt.Errorf("line %d: filter requires a name", n)
		}
		s.arg = rest[0]
	default:
		return s, fmt.Errorf("line %d: unknown command %q", n, fields[0])
	}
	return s, nil
}

// replay feeds steps to ctl. Failed edits are reported and skipped unless
// strict is set.
func replay(ctl *tool.Controller, steps []step, strict bool) error {
	var scroll viewport.Scroll
	for _, s := range steps {
		var err error
		switch s.verb {
		case "arm draw":
			ctl.ArmDrawing(ctl.StrokeStyle())
		case "arm crop":
			ctl.ArmCropping()
		case "arm text":
			err = ctl.ArmTextPlacement(s.arg)
		case "arm overlay":
			img, lerr := loadImageFn(s.arg)
			if lerr != nil {
				err = fmt.Errorf("%w: overlay %s: %v", document.ErrMissingResource, s.arg, lerr)
				break
			}
			err = ctl.ArmOverlayPlacement(img)
		case "disarm":
			ctl.Disarm()
		case "scroll":
			scroll = viewport.Scroll{X: s.x, Y: s.y}
		case "down":
			err = ctl.HandlePointerEvent(tool.PointerEvent{Phase: tool.PhaseDown, X: s.x, Y: s.y}, scroll)
		case "move":
			err = ctl.HandlePointerEvent(tool.PointerEvent{Phase: tool.PhaseMove, X: s.x, Y: s.y}, scroll)
		case "up":
			err = ctl.HandlePointerEvent(tool.PointerEvent{Phase: tool.PhaseUp, X: s.x, Y: s.y}, scroll)
		case "filter":
			err = ctl.ApplyFilter(s.arg)
		}
		if err != nil {
			if strict {
				return fmt.Errorf("line %d: %w", s.line, err)
			}
			fmt.Fprintf(os.Stderr, "line %d: %v\n", s.line, err)
		}
	}
	return nil
}
