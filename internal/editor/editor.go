// Package editor is the interactive window: it shows the document, feeds
// pointer gestures to the tool controller and maps keys to actions.
package editor

import (
	"image"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/photoedit/internal/capture"
	"github.com/example/photoedit/internal/clipboard"
	"github.com/example/photoedit/internal/codec"
	"github.com/example/photoedit/internal/config"
	"github.com/example/photoedit/internal/document"
	"github.com/example/photoedit/internal/notify"
	"github.com/example/photoedit/internal/theme"
	"github.com/example/photoedit/internal/tool"
)

const (
	maxWindowWidth  = 1280
	maxWindowHeight = 900
	minWindowWidth  = 480
	minWindowHeight = 320
)

// Editor holds the configuration of the interactive window.
type Editor struct {
	doc      *document.Document
	cfg      *config.Config
	theme    *theme.Theme
	notifier *notify.Notifier
	output   string
	overlay  image.Image
	opacity  float64
	display  string
	title    string
	onClose  func()
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithDocument sets the document shown when the window opens.
func WithDocument(d *document.Document) Option { return func(e *Editor) { e.doc = d } }

// WithConfig sets the pen, text and export settings.
func WithConfig(c *config.Config) Option { return func(e *Editor) { e.cfg = c } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(e *Editor) { e.theme = t } }

// WithNotifier sets the notifier used after saves and copies.
func WithNotifier(n *notify.Notifier) Option { return func(e *Editor) { e.notifier = n } }

// WithOutput sets the path Ctrl+S writes to.
func WithOutput(path string) Option { return func(e *Editor) { e.output = path } }

// WithOverlay sets the image inserted by the insert action.
func WithOverlay(img image.Image) Option { return func(e *Editor) { e.overlay = img } }

// WithOverlayOpacity sets the opacity of inserted and pasted images.
func WithOverlayOpacity(o float64) Option { return func(e *Editor) { e.opacity = o } }

// WithDisplay selects the X11 display used for screen captures.
func WithDisplay(display string) Option { return func(e *Editor) { e.display = display } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(e *Editor) { e.title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(e *Editor) { e.onClose = fn } }

// New creates an Editor with the provided options.
func New(opts ...Option) *Editor {
	e := &Editor{title: "PhotoEdit"}
	for _, o := range opts {
		o(e)
	}
	if e.cfg == nil {
		e.cfg = config.New()
	}
	if e.theme == nil {
		e.theme = theme.Default()
	}
	return e
}

func (e *Editor) newSession() *session {
	ctl := tool.New(
		tool.WithDocument(e.doc),
		tool.WithStrokeStyle(tool.StrokeStyle{Color: e.cfg.Draw.Color, Width: float64(e.cfg.Draw.Width)}),
		tool.WithTextStyle(tool.TextStyle{Font: e.cfg.Text.Font, Size: e.cfg.Text.Size, Color: e.cfg.Text.Color}),
		tool.WithOverlayOpacity(e.opacity),
	)
	s := &session{
		ctl:            ctl,
		cfg:            e.cfg,
		theme:          e.theme,
		notifier:       e.notifier,
		output:         e.output,
		overlay:        e.overlay,
		now:            time.Now,
		writeClipboard: clipboard.WriteImage,
		readClipboard:  clipboard.ReadImage,
		readText:       clipboard.ReadText,
		screenshot:     func() (*image.RGBA, error) { return capture.Screenshot(e.display, capture.Options{}) },
		save:           codec.Save,
	}
	s.registerActions()
	return s
}

// Bindings lists the keyboard shortcuts of the window.
func (e *Editor) Bindings() []Binding {
	return e.newSession().bindings
}

// Run executes the UI loop using shiny's driver.
func (e *Editor) Run() { driver.Main(e.Main) }

func windowSize(d *document.Document) (int, int) {
	if d == nil {
		return 800, 600
	}
	w := min(max(d.Width(), minWindowWidth), maxWindowWidth)
	h := min(max(d.Height()+statusHeight, minWindowHeight), maxWindowHeight)
	return w, h
}

// Main runs the window on s until it is closed.
func (e *Editor) Main(s screen.Screen) {
	sess := e.newSession()
	width, height := windowSize(e.doc)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: e.title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer func() {
		if e.onClose != nil {
			e.onClose()
		}
	}()

	sess.repaintAfter = func(d time.Duration) {
		time.AfterFunc(d, func() { w.Send(paint.Event{}) })
	}
	sess.resize(width, height)

	paintCh := make(chan frame, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for f := range paintCh {
			drawFrame(s, w, f)
		}
	}()
	defer func() {
		close(paintCh)
		<-done
	}()

	for {
		switch ev := w.NextEvent().(type) {
		case lifecycle.Event:
			if ev.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			sess.resize(ev.WidthPx, ev.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			f := sess.frame()
			select {
			case <-paintCh:
			default:
			}
			paintCh <- f
		case mouse.Event:
			if sess.handleMouse(ev) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if sess.handleKey(ev) {
				w.Send(paint.Event{})
			}
		case error:
			log.Print(ev)
		}
	}
}

func drawFrame(s screen.Screen, w screen.Window, f frame) {
	if f.size.X <= 0 || f.size.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(f.size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	render(b.RGBA(), f)
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
