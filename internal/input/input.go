// Package input turns raw front-end input into named key and pointer events.
package input

import (
	"fmt"
	"unicode"
)

// Kind is the type of an input event.
type Kind int

const (
	KindKeyDown Kind = iota
	KindKeyUp
	KindPointerDown
	KindPointerUp
)

func (k Kind) String() string {
	switch k {
	case KindKeyDown:
		return "key-down"
	case KindKeyUp:
		return "key-up"
	case KindPointerDown:
		return "pointer-down"
	case KindPointerUp:
		return "pointer-up"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Key names a keyboard key. Printable keys are their lowercase rune.
type Key string

const (
	KeyLeft  Key = "left"
	KeyRight Key = "right"
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyEsc   Key = "esc"
	KeyEnter Key = "enter"
	KeySpace Key = "space"
	KeyCtrlC Key = "ctrl+c"
)

// Rune returns the key for a printable character.
func Rune(r rune) Key {
	if r == ' ' {
		return KeySpace
	}
	return Key(string(unicode.ToLower(r)))
}

// Event is one key or pointer transition. X and Y are viewport coordinates
// and only meaningful for pointer events.
type Event struct {
	Kind Kind
	Key  Key
	X, Y float64
}

// KeyPress returns a key-down event.
func KeyPress(k Key) Event {
	return Event{Kind: KindKeyDown, Key: k}
}

// KeyRelease returns a key-up event.
func KeyRelease(k Key) Event {
	return Event{Kind: KindKeyUp, Key: k}
}

// PointerPress returns a pointer-down event at (x, y).
func PointerPress(x, y float64) Event {
	return Event{Kind: KindPointerDown, X: x, Y: y}
}

// PointerRelease returns a pointer-up event at (x, y).
func PointerRelease(x, y float64) Event {
	return Event{Kind: KindPointerUp, X: x, Y: y}
}

// IsQuit reports whether the event asks to leave the screensaver.
func (e Event) IsQuit() bool {
	return e.Kind == KindKeyDown && (e.Key == KeyEsc || e.Key == KeyCtrlC)
}

// Pressed reports whether the event is a key-down of one of keys.
func (e Event) Pressed(keys ...Key) bool {
	if e.Kind != KindKeyDown {
		return false
	}
	for _, k := range keys {
		if e.Key == k {
			return true
		}
	}
	return false
}

// Released reports whether the event is a key-up of one of keys.
func (e Event) Released(keys ...Key) bool {
	if e.Kind != KindKeyUp {
		return false
	}
	for _, k := range keys {
		if e.Key == k {
			return true
		}
	}
	return false
}

func (e Event) String() string {
	switch e.Kind {
	case KindKeyDown, KindKeyUp:
		return fmt.Sprintf("%s %s", e.Kind, e.Key)
	}
	return fmt.Sprintf("%s (%.1f, %.1f)", e.Kind, e.X, e.Y)
}
