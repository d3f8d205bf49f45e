// Package clock turns wall-clock ticks into bounded simulation deltas.
package clock

import "time"

// MaxDelta is the largest step a single tick may report.
// A process that was suspended (backgrounded tab, stopped terminal) resumes
// with at most one second of motion instead of a jump.
const MaxDelta = time.Second

// Frame tracks the timestamp of the last update.
type Frame struct {
	last time.Time
}

// New creates a frame clock whose first tick is measured from now.
func New(now time.Time) *Frame {
	return &Frame{last: now}
}

// Tick returns the time elapsed since the previous tick, clamped to
// [0, MaxDelta], and records now as the new reference point.
func (f *Frame) Tick(now time.Time) time.Duration {
	delta := now.Sub(f.last)
	f.last = now
	return Clamp(delta)
}

// Last returns the timestamp recorded by the most recent tick.
func (f *Frame) Last() time.Time {
	return f.last
}

// Clamp bounds a delta to [0, MaxDelta].
func Clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > MaxDelta {
		return MaxDelta
	}
	return d
}

// Millis converts a duration into fractional milliseconds, the unit all
// drift speeds are expressed in.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
