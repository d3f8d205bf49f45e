package input

import "slices"

// LevelTracker turns per-frame key and button state, as polled from a window
// toolkit, into press and release events.
type LevelTracker struct {
	down    map[Key]bool
	pointer bool
}

// NewLevelTracker creates a tracker with nothing held.
func NewLevelTracker() *LevelTracker {
	return &LevelTracker{down: make(map[Key]bool)}
}

// Keys compares the keys held this frame with the previous frame. Releases
// come first, then presses, each in key order.
func (l *LevelTracker) Keys(held []Key, out []Event) []Event {
	var released []Key
	for k := range l.down {
		if !slices.Contains(held, k) {
			released = append(released, k)
		}
	}
	slices.Sort(released)
	for _, k := range released {
		delete(l.down, k)
		out = append(out, KeyRelease(k))
	}

	pressed := slices.Clone(held)
	slices.Sort(pressed)
	pressed = slices.Compact(pressed)
	for _, k := range pressed {
		if !l.down[k] {
			l.down[k] = true
			out = append(out, KeyPress(k))
		}
	}
	return out
}

// Pointer reports a press or release when the primary button state changes.
func (l *LevelTracker) Pointer(down bool, x, y float64, out []Event) []Event {
	switch {
	case down && !l.pointer:
		out = append(out, PointerPress(x, y))
	case !down && l.pointer:
		out = append(out, PointerRelease(x, y))
	}
	l.pointer = down
	return out
}
