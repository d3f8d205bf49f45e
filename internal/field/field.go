// Package field simulates a fixed-size set of drifting sprites that respawn
// on the opposite edge when they leave the viewport.
package field

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/nightsky/internal/clock"
)

// MinCount is the smallest number of particles a field holds.
const MinCount = 1

// Rand is the source of uniform draws. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// DefaultRand returns a Rand backed by the process-wide generator.
func DefaultRand() Rand {
	return globalRand{}
}

// Particle is one drifting sprite (a star or a cloud puff).
type Particle struct {
	X, Y       float64 // Position; may sit one margin outside the viewport
	SizeScale  float64 // Size multiplier
	SpeedScale float64 // Drift multiplier
	Sprite     int     // Index into the sprite set
}

// Field owns the particles. It is not safe for concurrent use.
type Field struct {
	cfg       Config
	rng       Rand
	wind      float64
	particles []Particle
}

// New creates a field of count particles parked at cfg.Placeholder.
// A count below MinCount is raised to MinCount.
// A nil rng uses DefaultRand.
func New(count int, cfg Config, rng Rand) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultRand()
	}
	f := &Field{
		cfg:  cfg,
		rng:  rng,
		wind: 1,
	}
	f.Resize(count)
	return f, nil
}

// Resize discards every particle and regenerates newCount placeholders.
func (f *Field) Resize(newCount int) {
	if newCount < MinCount {
		newCount = MinCount
	}
	particles := make([]Particle, newCount)
	for i := range particles {
		particles[i] = Particle{
			X:          f.cfg.Placeholder.X,
			Y:          f.cfg.Placeholder.Y,
			SizeScale:  1,
			SpeedScale: 1,
		}
	}
	f.particles = particles
}

// Len returns the particle count.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns the live particle slice. It is valid until the next Resize.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Config returns the current bounds.
func (f *Field) Config() Config {
	return f.cfg
}

// Wind returns the field-wide drift multiplier.
func (f *Field) Wind() float64 {
	return f.wind
}

// SetWind sets the drift multiplier applied identically to every particle.
func (f *Field) SetWind(w float64) {
	f.wind = w
}

// Reconfigure swaps in new bounds (after a viewport resize) and respawns
// every particle so they spread over the new area.
func (f *Field) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	f.cfg = cfg
	f.RespawnAll()
	return nil
}

// Advance moves every particle by its drift over delta. Deltas are clamped
// to clock.MaxDelta. Particles that leave through one side come back
// through the other with a fresh random state.
func (f *Field) Advance(delta time.Duration) {
	ms := clock.Millis(clock.Clamp(delta))
	if ms == 0 {
		return
	}

	step := f.cfg.DriftSpeed * f.wind * ms
	left := -f.cfg.LeftMargin()
	right := f.cfg.Width + f.cfg.RightMargin()

	for i := range f.particles {
		p := &f.particles[i]
		p.X += step * p.SpeedScale

		if p.X > right {
			f.respawn(p)
			p.X = left
		} else if p.X < left {
			f.respawn(p)
			p.X = right
		}
	}
}

// RespawnAll re-randomizes the full state of every particle.
func (f *Field) RespawnAll() {
	for i := range f.particles {
		f.respawn(&f.particles[i])
	}
}

// respawn rolls position, scale and sprite. Callers pin X afterwards when
// the particle is wrapping.
func (f *Field) respawn(p *Particle) {
	p.Y = f.cfg.Y.Sample(f.rng)
	p.X = f.cfg.XRange().Sample(f.rng)
	p.Sprite = f.rng.IntN(f.cfg.Sprites)
	p.SizeScale = f.cfg.Scale.Sample(f.rng)
	if f.cfg.Speed.IsZero() {
		p.SpeedScale = p.SizeScale
	} else {
		p.SpeedScale = f.cfg.Speed.Sample(f.rng)
	}
}
