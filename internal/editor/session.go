package editor

import (
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/photoedit/internal/codec"
	"github.com/example/photoedit/internal/config"
	"github.com/example/photoedit/internal/document"
	"github.com/example/photoedit/internal/filter"
	"github.com/example/photoedit/internal/fonts"
	"github.com/example/photoedit/internal/notify"
	"github.com/example/photoedit/internal/theme"
	"github.com/example/photoedit/internal/tool"
	"github.com/example/photoedit/internal/viewport"
)

const (
	statusHeight = 24
	scrollStep   = 40
	messageTTL   = 2 * time.Second
	textSizeStep = 2
	minTextSize  = 6
)

var errNoOverlay = errors.New("no overlay image; start with -overlay or paste one")

// session is the editor state driven by window events. It is owned by the
// event loop.
type session struct {
	ctl      *tool.Controller
	vp       viewport.Viewport
	cfg      *config.Config
	theme    *theme.Theme
	notifier *notify.Notifier
	output   string
	overlay  image.Image

	width, height int
	pressed       bool
	typing        bool
	input         string

	message      string
	messageUntil time.Time
	now          func() time.Time
	repaintAfter func(time.Duration)

	bindings []Binding
	keymap   map[Shortcut]string
	actions  map[string]func()

	// system integrations, replaced in tests
	writeClipboard func(image.Image) error
	readClipboard  func() (image.Image, error)
	readText       func() (string, error)
	screenshot     func() (*image.RGBA, error)
	save           func(path string, img image.Image, opts codec.Options) error
}

func (s *session) register(action, help string, fn func(), keys ...Shortcut) {
	s.actions[action] = fn
	s.bindings = append(s.bindings, Binding{Action: action, Keys: keys, Help: help})
	for _, k := range keys {
		s.keymap[k] = action
	}
}

func (s *session) registerActions() {
	s.actions = map[string]func(){}
	s.keymap = map[Shortcut]string{}
	s.bindings = nil

	s.register("draw", "freehand drawing", func() {
		s.ctl.ArmDrawing(tool.StrokeStyle{Color: s.cfg.Draw.Color, Width: float64(s.cfg.Draw.Width)})
	}, plain('d'))
	s.register("crop", "drag a crop box", s.ctl.ArmCropping, plain('c'))
	s.register("text", "type text, Enter then click to place", func() {
		s.typing = true
		s.input = ""
	}, plain('t'))
	s.register("text-smaller", "smaller text", func() { s.resizeText(-textSizeStep) }, plain('['))
	s.register("text-larger", "larger text", func() { s.resizeText(textSizeStep) }, plain(']'))
	s.register("paste-text", "place clipboard text", func() {
		text, err := s.readText()
		if err != nil {
			s.report(err)
			return
		}
		s.report(s.ctl.ArmTextPlacement(text))
	}, ctrl('t'))
	s.register("insert", "click to insert the -overlay image", func() {
		if s.overlay == nil {
			s.report(errNoOverlay)
			return
		}
		s.report(s.ctl.ArmOverlayPlacement(s.overlay))
	}, plain('i'))
	s.register("paste", "click to insert the clipboard image", func() {
		img, err := s.readClipboard()
		if err != nil {
			s.report(err)
			return
		}
		s.overlay = img
		s.report(s.ctl.ArmOverlayPlacement(img))
	}, ctrl('v'))
	s.register("paste-new", "open the clipboard image", func() {
		img, err := s.readClipboard()
		if err != nil {
			s.report(err)
			return
		}
		s.open(img, "")
	}, ctrlShift('v'))
	s.register("capture", "open a screenshot", func() {
		img, err := s.screenshot()
		if err != nil {
			s.report(err)
			return
		}
		s.open(img, "")
	}, ctrl('n'))
	s.register("save", "save the image", s.saveDocument, ctrl('s'))
	s.register("copy", "copy the image", s.copyDocument, ctrl('c'))
	s.register("cancel", "cancel the gesture and disarm", s.ctl.Disarm, code(key.CodeEscape))
	for i, name := range filter.Names() {
		name := name // per-iteration copy for the go 1.21 directive
		s.register("filter-"+strings.ToLower(name), "filter "+name, func() {
			if err := s.ctl.ApplyFilter(name); err != nil {
				s.report(err)
				return
			}
			s.flash("applied " + name)
		}, plain(rune('1'+i)))
	}
	s.register("scroll-left", "scroll", func() { s.vp.ScrollBy(-scrollStep, 0) }, code(key.CodeLeftArrow))
	s.register("scroll-right", "scroll", func() { s.vp.ScrollBy(scrollStep, 0) }, code(key.CodeRightArrow))
	s.register("scroll-up", "scroll", func() { s.vp.ScrollBy(0, -scrollStep) }, code(key.CodeUpArrow))
	s.register("scroll-down", "scroll", func() { s.vp.ScrollBy(0, scrollStep) }, code(key.CodeDownArrow))
}

func (s *session) resizeText(delta float64) {
	st := s.ctl.TextStyle()
	if st.Size <= 0 {
		st.Size = fonts.DefaultSize
	}
	st.Size = max(st.Size+delta, minTextSize)
	s.ctl.SetTextStyle(st)
	s.flash(fmt.Sprintf("text size %g", st.Size))
}

// pendingTextSize reports the pixel extent the pending text will cover.
func (s *session) pendingTextSize() (int, int, bool) {
	st := s.ctl.TextStyle()
	face, err := fonts.Face(st.Font, st.Size)
	if err != nil {
		return 0, 0, false
	}
	w, h := fonts.Measure(face, s.ctl.PendingText())
	return w, h, true
}

func (s *session) resize(w, h int) {
	s.width, s.height = w, h
	s.syncViewport()
}

func (s *session) syncViewport() {
	var content image.Point
	if d := s.ctl.Document(); d != nil {
		content = d.Bounds().Size()
	}
	s.vp.Resize(image.Pt(s.width, max(s.height-statusHeight, 0)), content)
}

func (s *session) open(img image.Image, path string) {
	doc, err := document.New(img)
	if err != nil {
		s.report(err)
		return
	}
	doc.SetPath(path)
	s.ctl.SetDocument(doc)
	s.vp.ScrollTo(0, 0)
	s.syncViewport()
	s.flash(fmt.Sprintf("opened %dx%d image", doc.Width(), doc.Height()))
}

func (s *session) outputPath() string {
	if s.output != "" {
		return codec.WithDefaultExt(s.output)
	}
	name := "edited" + codec.DefaultExt
	if d := s.ctl.Document(); d != nil && d.Path() != "" {
		base := filepath.Base(d.Path())
		name = strings.TrimSuffix(base, filepath.Ext(base)) + "-edited" + codec.DefaultExt
	}
	return filepath.Join(s.cfg.SaveDir, name)
}

func (s *session) saveDocument() {
	d := s.ctl.Document()
	if d == nil {
		s.report(document.ErrNoDocumentLoaded)
		return
	}
	path := s.outputPath()
	if err := s.save(path, d.Bitmap(), codec.Options{JPEGQuality: s.cfg.Export.JPEGQuality}); err != nil {
		s.report(err)
		return
	}
	s.flash("saved " + path)
	s.notifier.Save(path)
}

func (s *session) copyDocument() {
	d := s.ctl.Document()
	if d == nil {
		s.report(document.ErrNoDocumentLoaded)
		return
	}
	if err := s.writeClipboard(d.Bitmap()); err != nil {
		s.report(err)
		return
	}
	s.flash("image copied to clipboard")
	s.notifier.Copy("image", d.Bitmap())
}

func (s *session) flash(msg string) {
	log.Print(msg)
	s.message = msg
	s.messageUntil = s.now().Add(messageTTL)
	if s.repaintAfter != nil {
		s.repaintAfter(messageTTL)
	}
}

func (s *session) report(err error) {
	if err == nil {
		return
	}
	s.flash(err.Error())
}

// handleMouse feeds primary-button gestures to the controller and the wheel
// to the viewport. It reports whether a repaint is needed.
func (s *session) handleMouse(e mouse.Event) bool {
	switch e.Button {
	case mouse.ButtonWheelUp:
		s.vp.ScrollBy(0, -scrollStep)
		return true
	case mouse.ButtonWheelDown:
		s.vp.ScrollBy(0, scrollStep)
		return true
	case mouse.ButtonWheelLeft:
		s.vp.ScrollBy(-scrollStep, 0)
		return true
	case mouse.ButtonWheelRight:
		s.vp.ScrollBy(scrollStep, 0)
		return true
	}

	var ev tool.PointerEvent
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if int(e.Y) >= s.height-statusHeight {
			return false
		}
		s.pressed = true
		ev.Phase = tool.PhaseDown
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if !s.pressed {
			return false
		}
		s.pressed = false
		ev.Phase = tool.PhaseUp
	case e.Direction == mouse.DirNone && s.pressed:
		ev.Phase = tool.PhaseMove
	default:
		return false
	}
	ev.X, ev.Y = float64(e.X), float64(e.Y)
	if err := s.ctl.HandlePointerEvent(ev, s.vp.Scroll); err != nil {
		s.report(err)
	}
	s.syncViewport()
	return true
}

// handleKey runs the bound action or edits the pending text.
func (s *session) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	if s.typing {
		switch e.Code {
		case key.CodeReturnEnter:
			s.typing = false
			if err := s.ctl.ArmTextPlacement(s.input); err != nil {
				s.report(err)
			}
		case key.CodeEscape:
			s.typing = false
			s.input = ""
		case key.CodeDeleteBackspace:
			if r := []rune(s.input); len(r) > 0 {
				s.input = string(r[:len(r)-1])
			}
		default:
			if e.Rune > 0 && e.Modifiers&key.ModControl == 0 {
				s.input += string(e.Rune)
			}
		}
		return true
	}
	action, ok := s.keymap[fromEvent(e)]
	if !ok {
		return false
	}
	s.actions[action]()
	s.syncViewport()
	return true
}

func (s *session) status() string {
	parts := []string{s.ctl.Mode().String()}
	if d := s.ctl.Document(); d != nil {
		parts = append(parts, fmt.Sprintf("%dx%d", d.Width(), d.Height()))
	} else {
		parts = append(parts, "no image")
	}
	switch {
	case s.typing:
		parts = append(parts, "text: "+s.input+"|")
	case s.ctl.Mode() == tool.ModeAwaitingText:
		msg := fmt.Sprintf("click to place %q", s.ctl.PendingText())
		if w, h, ok := s.pendingTextSize(); ok {
			msg += fmt.Sprintf(" (%dx%d)", w, h)
		}
		parts = append(parts, msg)
	case s.ctl.Mode() == tool.ModeAwaitingOverlay:
		parts = append(parts, "click to place image")
	}
	if s.message != "" && s.now().Before(s.messageUntil) {
		parts = append(parts, s.message)
	}
	return strings.Join(parts, " | ")
}
