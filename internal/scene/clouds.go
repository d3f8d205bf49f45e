package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/nightsky/internal/clock"
	"github.com/tomz197/nightsky/internal/field"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/render"
)

// CloudsConfig tunes a cloudy night. The two variants differ in where
// clouds live, how they are sized and where the moon sits.
type CloudsConfig struct {
	Name      string
	Count     int
	CountStep int
	Sprites   []render.SpriteID

	CloudDivisor float64 // Cloud size is min(width, height) / CloudDivisor
	MinY         float64 // Top of the cloud band
	MaxYFraction float64 // Bottom of the cloud band as a fraction of the height
	Perspective  bool    // Shrink clouds towards the horizon at the bottom of the band
	Ground       bool    // Draw the ground strip below the horizon

	Wind  float64     // Drift in units per millisecond, negative blows left
	Speed field.Range // Per-cloud speed scale
	Scale field.Range // Per-cloud size scale

	MoonDivisor  float64 // Moon size is min(width, height) / MoonDivisor
	MoonSpeed    float64 // Units per millisecond
	MoonStartX   float64
	MoonCentered bool    // Centre the moon vertically; otherwise it rides near the top
	MoonNudge    float64 // Left/right keys
	MoonJump     float64 // b key

	Background colorful.Color
}

// DefaultCloudsConfig is clouds drifting above a horizon with the ground in front.
func DefaultCloudsConfig() CloudsConfig {
	return CloudsConfig{
		Name:         "clouds",
		Count:        150,
		CountStep:    50,
		Sprites:      []render.SpriteID{render.SpriteCloudA, render.SpriteCloudC},
		CloudDivisor: 6,
		MinY:         10,
		MaxYFraction: 2.0 / 3.0,
		Perspective:  true,
		Ground:       true,
		Wind:         -0.005,
		Speed:        field.Range{Min: 0.3, Max: 1},
		Scale:        field.Range{Min: 0.6, Max: 1},
		MoonDivisor:  3,
		MoonSpeed:    0.0017,
		MoonStartX:   15,
		MoonNudge:    5,
		MoonJump:     20,
		Background:   render.Hex("#001122"),
	}
}

// OverheadCloudsConfig is a sky full of faint clouds seen from below.
func OverheadCloudsConfig() CloudsConfig {
	cfg := DefaultCloudsConfig()
	cfg.Name = "overhead"
	cfg.Count = 500
	cfg.Sprites = []render.SpriteID{render.SpriteCloudFaded}
	cfg.CloudDivisor = 10
	cfg.MaxYFraction = 1
	cfg.Perspective = false
	cfg.Ground = false
	cfg.MoonCentered = true
	cfg.Background = render.Hex("#000009")
	return cfg
}

// Clouds is a drifting cloud field in front of a slowly rising moon.
type Clouds struct {
	base
	cfg       CloudsConfig
	field     *field.Field
	width     float64
	height    float64
	cloudSize float64
	moonSize  float64
	moonX     float64
	moonY     float64
}

var _ Scene = (*Clouds)(nil)

// NewClouds creates a cloudy night on a 100x100 viewport until the first Resize.
func NewClouds(cfg CloudsConfig, opts Options) (*Clouds, error) {
	if len(cfg.Sprites) == 0 {
		return nil, fmt.Errorf("%s: %w: no cloud sprites", cfg.Name, field.ErrInvalidConfig)
	}
	c := &Clouds{
		base:      newBase(cfg.Name, opts),
		cfg:       cfg,
		width:     100,
		height:    100,
		cloudSize: 80,
		moonSize:  100,
		moonX:     cfg.MoonStartX,
		moonY:     20,
	}
	f, err := field.New(cfg.Count, c.fieldConfig(), c.rng)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}
	f.SetWind(cfg.Wind)
	c.field = f
	return c, nil
}

func (c *Clouds) fieldConfig() field.Config {
	minY := c.cfg.MinY
	maxY := max(c.height*c.cfg.MaxYFraction, minY)
	return field.Config{
		Width:       c.width,
		Height:      c.height,
		BaseSize:    c.cloudSize,
		DriftSpeed:  1,
		Scale:       c.cfg.Scale,
		Speed:       c.cfg.Speed,
		Y:           field.Range{Min: minY, Max: maxY},
		Sprites:     len(c.cfg.Sprites),
		Placeholder: field.Point{X: 1, Y: 80},
	}
}

// Field exposes the cloud field.
func (c *Clouds) Field() *field.Field {
	return c.field
}

// Moon returns the moon's top-left corner and size.
func (c *Clouds) Moon() (x, y, size float64) {
	return c.moonX, c.moonY, c.moonSize
}

func (c *Clouds) Resize(width, height float64) {
	if !viewportOK(width, height) {
		c.logger.Debug("ignoring empty viewport", "width", width, "height", height)
		return
	}
	c.width, c.height = width, height
	short := math.Min(width, height)
	c.moonSize = short / c.cfg.MoonDivisor
	c.cloudSize = short / c.cfg.CloudDivisor
	if c.cfg.MoonCentered {
		c.moonY = height/2 - c.moonSize/2
	} else {
		c.moonY = height / 20
	}
	if err := c.field.Reconfigure(c.fieldConfig()); err != nil {
		c.logger.Warn("cloud field rejected viewport", "err", err)
	}
}

func (c *Clouds) Handle(ev input.Event) {
	switch {
	case ev.Pressed(input.KeyLeft):
		c.moonX -= c.cfg.MoonNudge
	case ev.Pressed(input.KeyRight):
		c.moonX += c.cfg.MoonNudge
	case ev.Pressed("b"):
		c.moonX += c.cfg.MoonJump
	case ev.Pressed(input.KeyUp, "q"):
		c.setCount(c.field.Len() + c.cfg.CountStep)
	case ev.Pressed(input.KeyDown, "a"):
		c.setCount(c.field.Len() - c.cfg.CountStep)
	case ev.Pressed("h"):
		c.toggleHelp()
	}
}

func (c *Clouds) setCount(n int) {
	c.field.Resize(n)
	c.field.RespawnAll()
	c.logger.Debug("cloud count changed", "count", c.field.Len())
}

func (c *Clouds) Update(delta time.Duration) {
	c.moonX += c.cfg.MoonSpeed * clock.Millis(clock.Clamp(delta))
	if c.moonX > c.width {
		c.moonX = -c.moonSize
	}
	c.field.Advance(delta)
}

// cloudDrawSize is the on-screen size of a cloud at height y.
func (c *Clouds) cloudDrawSize(y float64) float64 {
	if !c.cfg.Perspective {
		return c.cloudSize
	}
	horizon := c.height * c.cfg.MaxYFraction
	return ((1 - y/horizon) + 0.5) * c.cloudSize
}

func (c *Clouds) Draw(s render.Surface) {
	s.Clear(c.cfg.Background)

	if c.cfg.Ground {
		s.DrawSprite(render.Sprite{
			ID: render.SpriteGround,
			X:  0,
			Y:  c.height*c.cfg.MaxYFraction + c.cloudSize/3,
			W:  c.width,
			H:  c.height / 3,
		})
	}

	s.DrawSprite(render.Sprite{ID: render.SpriteMoon, X: c.moonX, Y: c.moonY, W: c.moonSize, H: c.moonSize})

	for _, p := range c.field.Particles() {
		d := c.cloudDrawSize(p.Y)
		s.DrawSprite(render.Sprite{ID: c.cfg.Sprites[p.Sprite], X: p.X, Y: p.Y, W: d, H: d})
	}
}

func (c *Clouds) Help() []string {
	return []string{
		"Controls",
		"",
		"Keyboard",
		"h - help",
		"left/right - nudge the moon",
		"b - push the moon",
		"up/q - more clouds",
		"down/a - fewer clouds",
		"esc - quit",
	}
}
