package input

import (
	"slices"
	"time"
)

// DefaultHold is how long a key is considered held after its last press.
const DefaultHold = 120 * time.Millisecond

// HoldTracker synthesizes key releases for sources that only report presses,
// such as a terminal byte stream. A key stays down while presses (including
// autorepeat) keep arriving within the hold duration.
type HoldTracker struct {
	hold time.Duration
	last map[Key]time.Time
}

// NewHoldTracker creates a tracker. A non-positive hold uses DefaultHold.
func NewHoldTracker(hold time.Duration) *HoldTracker {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &HoldTracker{
		hold: hold,
		last: make(map[Key]time.Time),
	}
}

// Press records a press and reports whether the key was up before it.
func (h *HoldTracker) Press(k Key, now time.Time) bool {
	_, held := h.last[k]
	h.last[k] = now
	return !held
}

// Held reports whether k is currently down.
func (h *HoldTracker) Held(k Key) bool {
	_, ok := h.last[k]
	return ok
}

// Expire appends a key-up event for every key whose hold ran out, in key order.
func (h *HoldTracker) Expire(now time.Time, out []Event) []Event {
	var released []Key
	for k, at := range h.last {
		if now.Sub(at) >= h.hold {
			released = append(released, k)
		}
	}
	slices.Sort(released)
	for _, k := range released {
		delete(h.last, k)
		out = append(out, KeyRelease(k))
	}
	return out
}

// Reset releases every key without emitting events.
func (h *HoldTracker) Reset() {
	clear(h.last)
}
