package tool

import "image/color"

// Mode is the armed tool.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeCropping
	ModeAwaitingText
	ModeAwaitingOverlay
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrawing:
		return "drawing"
	case ModeCropping:
		return "cropping"
	case ModeAwaitingText:
		return "awaiting-text"
	case ModeAwaitingOverlay:
		return "awaiting-overlay"
	}
	return "unknown"
}

// Phase identifies the part of a pointer gesture an event belongs to.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent is a primary-button pointer event in viewport coordinates.
type PointerEvent struct {
	Phase Phase
	X, Y  float64
}

// StrokeStyle configures freehand drawing.
type StrokeStyle struct {
	Color color.RGBA
	Width float64
}

// TextStyle configures text placement.
type TextStyle struct {
	Font  string
	Size  float64
	Color color.RGBA
}

// DefaultStrokeStyle is a black pen two pixels wide.
var DefaultStrokeStyle = StrokeStyle{Color: color.RGBA{A: 255}, Width: 2}

// DefaultTextStyle is white text at 30 points in the embedded font.
var DefaultTextStyle = TextStyle{Size: 30, Color: color.RGBA{255, 255, 255, 255}}
