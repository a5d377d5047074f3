// Package tool turns pointer gestures into document edits according to the
// armed tool.
package tool

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/example/photoedit/internal/document"
	"github.com/example/photoedit/internal/preview"
	"github.com/example/photoedit/internal/viewport"
)

// ErrEmptyText is returned when text placement is armed without text.
var ErrEmptyText = errors.New("text placement requires non-empty text")

type gesture struct {
	active bool
	anchor image.Point
	last   image.Point
	points []image.Point
}

// Controller owns the tool mode and the gesture in progress. It is not safe
// for concurrent use; the event loop that feeds it owns it.
type Controller struct {
	doc  *document.Document
	mode Mode
	g    gesture

	stroke  StrokeStyle
	text    TextStyle
	pending string
	overlay image.Image
	opacity float64

	preview  *preview.Layer
	last     document.Command
	onCommit func(document.Command)
	logger   *log.Logger
}

// Option modifies a Controller during creation.
type Option func(*Controller)

// WithDocument sets the document edits are applied to.
func WithDocument(d *document.Document) Option { return func(c *Controller) { c.doc = d } }

// WithStrokeStyle sets the initial drawing style.
func WithStrokeStyle(s StrokeStyle) Option { return func(c *Controller) { c.stroke = s } }

// WithTextStyle sets the font, size and colour used for text placement.
func WithTextStyle(s TextStyle) Option { return func(c *Controller) { c.text = s } }

// WithOverlayOpacity sets the opacity used when placing overlays.
func WithOverlayOpacity(o float64) Option { return func(c *Controller) { c.opacity = o } }

// WithCommitListener registers a callback run after each successful edit.
func WithCommitListener(fn func(document.Command)) Option {
	return func(c *Controller) { c.onCommit = fn }
}

// WithLogger sets the logger used for commit and failure messages.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithPreview supplies the layer gestures are previewed on.
func WithPreview(p *preview.Layer) Option { return func(c *Controller) { c.preview = p } }

// New creates an idle Controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		stroke: DefaultStrokeStyle,
		text:   DefaultTextStyle,
		logger: log.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.preview == nil {
		c.preview = preview.New()
	}
	return c
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Document() *document.Document { return c.doc }

func (c *Controller) Preview() *preview.Layer { return c.preview }

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool { return c.g.active }

// LastCommand returns the most recent successful edit.
func (c *Controller) LastCommand() document.Command { return c.last }

func (c *Controller) StrokeStyle() StrokeStyle { return c.stroke }

func (c *Controller) TextStyle() TextStyle { return c.text }

// SetTextStyle changes the style used for later text placements.
func (c *Controller) SetTextStyle(s TextStyle) { c.text = s }

// PendingText returns the text waiting to be placed.
func (c *Controller) PendingText() string { return c.pending }

// SetDocument replaces the document and discards any gesture in progress.
func (c *Controller) SetDocument(d *document.Document) {
	c.cancel()
	c.doc = d
}

// ArmDrawing selects freehand drawing with the given style.
func (c *Controller) ArmDrawing(s StrokeStyle) {
	c.arm(ModeDrawing)
	c.stroke = s
}

// ArmCropping selects the crop tool for a single crop.
func (c *Controller) ArmCropping() {
	c.arm(ModeCropping)
}

// ArmTextPlacement waits for a click to place text. Any non-empty string is
// accepted, including whitespace.
func (c *Controller) ArmTextPlacement(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	c.arm(ModeAwaitingText)
	c.pending = text
	return nil
}

// ArmOverlayPlacement waits for a click to place img.
func (c *Controller) ArmOverlayPlacement(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: overlay image", document.ErrMissingResource)
	}
	c.arm(ModeAwaitingOverlay)
	c.overlay = img
	return nil
}

// Disarm returns to idle and discards any gesture.
func (c *Controller) Disarm() {
	c.arm(ModeIdle)
}

// arm switches to m, dropping the gesture and any text or overlay still
// waiting to be placed.
func (c *Controller) arm(m Mode) {
	c.cancel()
	c.pending = ""
	c.overlay = nil
	c.mode = m
}

// Cancel discards the gesture in progress but keeps the tool armed.
func (c *Controller) Cancel() { c.cancel() }

func (c *Controller) cancel() {
	c.g = gesture{}
	c.preview.Clear()
}

// ApplyFilter filters the whole document immediately. The mode is unchanged.
func (c *Controller) ApplyFilter(name string) error {
	return c.commit(document.Filter{Kernel: name})
}

// HandlePointerEvent maps ev through scroll and feeds it to the armed tool.
func (c *Controller) HandlePointerEvent(ev PointerEvent, scroll viewport.Scroll) error {
	p := viewport.Point(ev.X, ev.Y, scroll)
	switch c.mode {
	case ModeDrawing:
		return c.handleDraw(ev.Phase, p)
	case ModeCropping:
		return c.handleCrop(ev.Phase, p)
	case ModeAwaitingText:
		return c.handleText(ev.Phase, p)
	case ModeAwaitingOverlay:
		return c.handleOverlay(ev.Phase, p)
	}
	return nil
}

func (c *Controller) handleDraw(ph Phase, p image.Point) error {
	switch ph {
	case PhaseDown:
		c.cancel()
		c.g = gesture{active: true, anchor: p, last: p, points: []image.Point{p}}
		c.preview.SetStrokeStyle(c.stroke.Color, int(c.stroke.Width+0.5))
	case PhaseMove:
		if c.g.active {
			c.extend(p)
		}
	case PhaseUp:
		if !c.g.active {
			return nil
		}
		c.extend(p)
		pts := c.g.points
		c.cancel()
		if len(pts) < 2 {
			return nil
		}
		return c.commit(document.Stroke{Points: pts, Color: c.stroke.Color, Width: c.stroke.Width})
	}
	return nil
}

func (c *Controller) extend(p image.Point) {
	if p == c.g.last {
		return
	}
	c.preview.AddSegment(c.g.last, p)
	c.g.points = append(c.g.points, p)
	c.g.last = p
}

func (c *Controller) handleCrop(ph Phase, p image.Point) error {
	switch ph {
	case PhaseDown:
		c.g = gesture{active: true, anchor: p, last: p}
		c.preview.SetBand(p, p)
	case PhaseMove:
		if c.g.active {
			c.g.last = p
			c.preview.SetBand(c.g.anchor, p)
		}
	case PhaseUp:
		if !c.g.active {
			return nil
		}
		r := image.Rectangle{Min: c.g.anchor, Max: p}.Canon()
		c.cancel()
		// a failed crop stays armed so the box can be dragged again
		if err := c.commit(document.Crop{Rect: r}); err != nil {
			return err
		}
		c.mode = ModeIdle
	}
	return nil
}

func (c *Controller) handleText(ph Phase, p image.Point) error {
	if ph != PhaseDown {
		return nil
	}
	err := c.commit(document.TextStamp{
		Text:     c.pending,
		Position: p,
		Font:     c.text.Font,
		Size:     c.text.Size,
		Color:    c.text.Color,
	})
	if err != nil {
		return err
	}
	c.pending = ""
	c.mode = ModeIdle
	return nil
}

func (c *Controller) handleOverlay(ph Phase, p image.Point) error {
	if ph != PhaseDown {
		return nil
	}
	if err := c.commit(document.Composite{Overlay: c.overlay, Position: p, Opacity: c.opacity}); err != nil {
		return err
	}
	c.overlay = nil
	c.mode = ModeIdle
	return nil
}

func (c *Controller) commit(cmd document.Command) error {
	if err := c.doc.Apply(cmd); err != nil {
		c.logger.Printf("%s: %v", cmd.Name(), err)
		return err
	}
	c.last = cmd
	c.logger.Printf("document %s: %s -> %dx%d", c.doc.ID(), cmd.Name(), c.doc.Width(), c.doc.Height())
	if c.onCommit != nil {
		c.onCommit(cmd)
	}
	return nil
}
