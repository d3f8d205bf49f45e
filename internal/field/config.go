package field

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config cannot describe a usable field.
var ErrInvalidConfig = errors.New("field: invalid config")

// marginFactor is how far past the left edge, in base sizes, a particle may
// drift before it counts as exited.
const marginFactor = 1.2

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float64
}

// Range is a half-open interval [Min, Max) used for uniform draws.
type Range struct {
	Min, Max float64
}

// Sample draws a uniform value from the range.
func (r Range) Sample(rng Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// IsZero reports whether the range was left unset.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Contains reports whether v lies in the closed interval [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Config holds the bounds a field is simulated in.
type Config struct {
	Width    float64 // Viewport width
	Height   float64 // Viewport height
	BaseSize float64 // Nominal particle size; margins derive from it

	DriftSpeed float64 // Horizontal speed in units per millisecond (negative drifts left)
	Scale      Range   // Size scale drawn on respawn
	Speed      Range   // Speed scale drawn on respawn; unset means "same as size scale"
	Y          Range   // Vertical spawn range

	Sprites     int   // Number of sprite variants to pick from
	Placeholder Point // Where particles sit before the first respawn
}

// LeftMargin is the distance past x=0 a particle travels before it exits.
func (c Config) LeftMargin() float64 {
	return marginFactor * c.BaseSize
}

// RightMargin is the distance past the right edge a particle travels before it exits.
func (c Config) RightMargin() float64 {
	return c.BaseSize
}

// XRange is the horizontal span a particle may occupy.
func (c Config) XRange() Range {
	return Range{Min: -c.LeftMargin(), Max: c.Width + c.RightMargin()}
}

// Validate checks the config describes a non-empty field.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: viewport %vx%v is smaller than 1x1", ErrInvalidConfig, c.Width, c.Height)
	case c.BaseSize <= 0:
		return fmt.Errorf("%w: base size %v must be positive", ErrInvalidConfig, c.BaseSize)
	case c.Scale.Min <= 0 || c.Scale.Min > c.Scale.Max:
		return fmt.Errorf("%w: scale range [%v, %v)", ErrInvalidConfig, c.Scale.Min, c.Scale.Max)
	case !c.Speed.IsZero() && c.Speed.Min > c.Speed.Max:
		return fmt.Errorf("%w: speed range [%v, %v)", ErrInvalidConfig, c.Speed.Min, c.Speed.Max)
	case c.Y.Min > c.Y.Max:
		return fmt.Errorf("%w: vertical range [%v, %v)", ErrInvalidConfig, c.Y.Min, c.Y.Max)
	case c.Sprites < 1:
		return fmt.Errorf("%w: need at least one sprite, got %d", ErrInvalidConfig, c.Sprites)
	}
	return nil
}
