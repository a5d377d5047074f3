package editor

import (
	"fmt"
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Shortcut is a key chord bound to an action.
type Shortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func (s Shortcut) String() string {
	prefix := ""
	if s.Modifiers&key.ModControl != 0 {
		prefix += "Ctrl+"
	}
	if s.Modifiers&key.ModShift != 0 {
		prefix += "Shift+"
	}
	switch s.Code {
	case key.CodeEscape:
		return prefix + "Esc"
	case key.CodeLeftArrow:
		return prefix + "Left"
	case key.CodeRightArrow:
		return prefix + "Right"
	case key.CodeUpArrow:
		return prefix + "Up"
	case key.CodeDownArrow:
		return prefix + "Down"
	}
	return prefix + string(unicode.ToUpper(s.Rune))
}

// Binding describes one keyboard action for help output.
type Binding struct {
	Action string
	Keys   []Shortcut
	Help   string
}

func (b Binding) String() string {
	keys := ""
	for i, k := range b.Keys {
		if i > 0 {
			keys += ", "
		}
		keys += k.String()
	}
	return fmt.Sprintf("%-16s %s", keys, b.Help)
}

func fromEvent(e key.Event) Shortcut {
	mods := e.Modifiers & (key.ModControl | key.ModShift)
	r := unicode.ToLower(e.Rune)
	if r > 0 {
		return Shortcut{Rune: r, Modifiers: mods}
	}
	return Shortcut{Code: e.Code, Modifiers: mods}
}

func plain(c rune) Shortcut     { return Shortcut{Rune: c} }
func ctrl(c rune) Shortcut      { return Shortcut{Rune: c, Modifiers: key.ModControl} }
func ctrlShift(c rune) Shortcut { return Shortcut{Rune: c, Modifiers: key.ModControl | key.ModShift} }
func code(c key.Code) Shortcut  { return Shortcut{Code: c} }
