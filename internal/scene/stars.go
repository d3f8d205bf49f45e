package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/nightsky/internal/audio"
	"github.com/tomz197/nightsky/internal/clock"
	"github.com/tomz197/nightsky/internal/field"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/render"
)

// StarsConfig tunes the star field.
type StarsConfig struct {
	Count       int         // Initial number of stars
	CountStep   int         // Stars added or removed per key press
	DriftSpeed  float64     // Units per millisecond, scaled by each star's size
	SizeDivisor float64     // Star size is min(width, height) / SizeDivisor
	Scale       field.Range // Star size scale

	ShootingSpeed float64     // Units per millisecond, scaled by size
	ShootingScale field.Range // Shooting star size scale
	ShootingLife  int         // Updates before a shooting star fades

	Background colorful.Color
}

// DefaultStarsConfig returns the star field tuning.
func DefaultStarsConfig() StarsConfig {
	return StarsConfig{
		Count:         350,
		CountStep:     50,
		DriftSpeed:    -0.002,
		SizeDivisor:   50,
		Scale:         field.Range{Min: 0.2, Max: 1},
		ShootingSpeed: 0.05,
		ShootingScale: field.Range{Min: 0.3, Max: 1},
		ShootingLife:  100,
		Background:    render.Hex("#000000"),
	}
}

// ShootingStar is a short-lived star flying in a straight line.
type ShootingStar struct {
	X, Y      float64
	SizeScale float64
	Direction float64 // Radians
	Progress  int     // Updates since spawn
}

// Stars is a slowly drifting star field with shooting stars on demand.
type Stars struct {
	base
	cfg      StarsConfig
	field    *field.Field
	width    float64
	height   float64
	size     float64
	shooting []ShootingStar
}

var _ Scene = (*Stars)(nil)

// NewStars creates the star field. It starts on a 100x100 viewport until
// the first Resize.
func NewStars(cfg StarsConfig, opts Options) (*Stars, error) {
	s := &Stars{
		base:   newBase("stars", opts),
		cfg:    cfg,
		width:  100,
		height: 100,
		size:   2.2,
	}
	f, err := field.New(cfg.Count, s.fieldConfig(), s.rng)
	if err != nil {
		return nil, fmt.Errorf("stars: %w", err)
	}
	s.field = f
	return s, nil
}

func (s *Stars) fieldConfig() field.Config {
	return field.Config{
		Width:       s.width,
		Height:      s.height,
		BaseSize:    s.size,
		DriftSpeed:  s.cfg.DriftSpeed,
		Scale:       s.cfg.Scale,
		Y:           field.Range{Min: -1.2 * s.size, Max: s.height + s.size},
		Sprites:     1,
		Placeholder: field.Point{X: 1, Y: 80},
	}
}

// Field exposes the star field.
func (s *Stars) Field() *field.Field {
	return s.field
}

// Shooting returns the live shooting stars.
func (s *Stars) Shooting() []ShootingStar {
	return s.shooting
}

func (s *Stars) Resize(width, height float64) {
	if !viewportOK(width, height) {
		s.logger.Debug("ignoring empty viewport", "width", width, "height", height)
		return
	}
	s.width, s.height = width, height
	s.size = math.Min(width, height) / s.cfg.SizeDivisor
	if err := s.field.Reconfigure(s.fieldConfig()); err != nil {
		s.logger.Warn("star field rejected viewport", "err", err)
	}
}

func (s *Stars) Handle(ev input.Event) {
	switch {
	case ev.Kind == input.KindPointerDown:
		s.Spawn(ev.X, ev.Y)
	case ev.Pressed(input.KeyLeft):
		s.Spawn(s.width/4, s.height/2)
	case ev.Pressed(input.KeyRight):
		s.Spawn(s.width*3/4, s.height/2)
	case ev.Pressed(input.KeyUp, "q"):
		s.setCount(s.field.Len() + s.cfg.CountStep)
	case ev.Pressed(input.KeyDown, "a"):
		s.setCount(s.field.Len() - s.cfg.CountStep)
	case ev.Pressed("b"):
		s.Spawn(s.rng.Float64()*s.width, s.rng.Float64()*s.height)
	case ev.Pressed("h"):
		s.toggleHelp()
	case ev.Pressed("e"):
		s.toggleSound()
	}
}

func (s *Stars) setCount(n int) {
	s.field.Resize(n)
	s.field.RespawnAll()
	s.logger.Debug("star count changed", "count", s.field.Len())
}

// Spawn launches a shooting star from (x, y) in a random direction.
func (s *Stars) Spawn(x, y float64) {
	s.shooting = append(s.shooting, ShootingStar{
		X:         x,
		Y:         y,
		SizeScale: s.cfg.ShootingScale.Sample(s.rng),
		Direction: s.rng.Float64() * 2 * math.Pi,
	})
	s.cue(audio.CueChime)
}

func (s *Stars) Update(delta time.Duration) {
	s.field.Advance(delta)

	ms := clock.Millis(clock.Clamp(delta))
	left := -1.2 * s.size
	right := s.width + s.size

	kept := s.shooting[:0]
	for _, st := range s.shooting {
		step := s.cfg.ShootingSpeed * st.SizeScale * ms
		st.X += step * math.Cos(st.Direction)
		st.Y += step * math.Sin(st.Direction)
		st.Progress++

		// No wraparound: shooting stars leaving the sides are finished.
		if st.X > right || st.X < left {
			st.Progress = s.cfg.ShootingLife
		}
		if st.Progress < s.cfg.ShootingLife {
			kept = append(kept, st)
		}
	}
	s.shooting = kept
}

func (s *Stars) Draw(surface render.Surface) {
	surface.Clear(s.cfg.Background)

	for _, p := range s.field.Particles() {
		d := s.size * p.SizeScale
		surface.DrawSprite(render.Sprite{ID: render.SpriteStar, X: p.X, Y: p.Y, W: d, H: d})
	}
	for _, st := range s.shooting {
		d := s.size * st.SizeScale
		surface.DrawSprite(render.Sprite{ID: render.SpriteShootingStar, X: st.X, Y: st.Y, W: d, H: d})
	}
}

func (s *Stars) Help() []string {
	return []string{
		"Controls",
		"",
		"Keyboard",
		"h - help",
		"left/right - shooting star",
		"b - random shooting star",
		"up/q - more stars",
		"down/a - fewer stars",
		"e - toggle sound",
		"esc - quit",
		"",
		"Touch/Mouse",
		"click - shooting star",
	}
}
