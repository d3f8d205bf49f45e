package scene

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/nightsky/internal/audio"
	"github.com/tomz197/nightsky/internal/clock"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/render"
)

// CarConfig tunes the car.
type CarConfig struct {
	SizeDivisor float64 // Car size is min(width, height) / SizeDivisor
	Speed       float64 // Units per millisecond, scaled by the car size
	TurnScale   float64 // Radians turned per update while steering
	StartX      float64
	StartY      float64
	Background  colorful.Color
}

// DefaultCarConfig returns the car tuning.
func DefaultCarConfig() CarConfig {
	return CarConfig{
		SizeDivisor: 15,
		Speed:       0.002,
		TurnScale:   0.2,
		StartX:      0,
		StartY:      10,
		Background:  render.Hex("#000033"),
	}
}

// Car is a car driving around a wrapping plane, steered left and right.
type Car struct {
	base
	cfg          CarConfig
	width        float64
	height       float64
	size         float64
	x, y         float64 // Centre
	heading      float64 // Radians, 0 points right
	turningLeft  bool
	turningRight bool
}

var _ Scene = (*Car)(nil)

// NewCar creates the car on a 100x100 viewport until the first Resize.
func NewCar(cfg CarConfig, opts Options) *Car {
	return &Car{
		base:   newBase("car", opts),
		cfg:    cfg,
		width:  100,
		height: 100,
		size:   2.2,
		x:      cfg.StartX,
		y:      cfg.StartY,
	}
}

// Position returns the car's centre and heading.
func (c *Car) Position() (x, y, heading float64) {
	return c.x, c.y, c.heading
}

// Size returns the car's size.
func (c *Car) Size() float64 {
	return c.size
}

// Turning reports the steering flags.
func (c *Car) Turning() (left, right bool) {
	return c.turningLeft, c.turningRight
}

func (c *Car) Resize(width, height float64) {
	if !viewportOK(width, height) {
		c.logger.Debug("ignoring empty viewport", "width", width, "height", height)
		return
	}
	c.width, c.height = width, height
	c.size = math.Min(width, height) / c.cfg.SizeDivisor
}

func (c *Car) Handle(ev input.Event) {
	switch ev.Kind {
	case input.KindKeyDown:
		switch {
		case ev.Pressed(input.KeyLeft, "a"):
			c.turningLeft = true
		case ev.Pressed(input.KeyRight, "d"):
			c.turningRight = true
		case ev.Pressed("e"):
			c.toggleSound()
			c.player.Loop(audio.CueEngine, c.sound)
		case ev.Pressed("h"):
			c.toggleHelp()
		}
	case input.KindKeyUp:
		switch {
		case ev.Released(input.KeyLeft, "a"):
			c.turningLeft = false
		case ev.Released(input.KeyRight, "d"):
			c.turningRight = false
		}
	case input.KindPointerDown:
		c.clearTurns()
		c.touch(ev.X, ev.Y)
	case input.KindPointerUp:
		c.clearTurns()
	}
}

func (c *Car) clearTurns() {
	c.turningLeft = false
	c.turningRight = false
}

// touch maps a pointer press to a screen region.
func (c *Car) touch(x, y float64) {
	switch {
	case x < c.width/8 && y < c.height/8:
		c.toggleHelp()
	case x < c.width/3:
		c.turningLeft = true
	case x > c.width*2/3:
		c.turningRight = true
	case x > c.width/3 && x < c.width*2/3 && y < c.height/2:
		c.toggleSound()
		c.player.Loop(audio.CueEngine, c.sound)
	}
}

func (c *Car) Update(delta time.Duration) {
	// Steering both ways at once cancels out.
	if c.turningLeft {
		c.heading -= c.cfg.TurnScale
	}
	if c.turningRight {
		c.heading += c.cfg.TurnScale
	}

	step := c.cfg.Speed * c.size * clock.Millis(clock.Clamp(delta))
	c.x += step * math.Cos(c.heading)
	c.y += step * math.Sin(c.heading)

	if c.x > c.width+c.size {
		c.x = -c.size / 2
	}
	if c.x < -c.size {
		c.x = c.width + c.size/2
	}
	if c.y > c.height+c.size {
		c.y = -c.size / 2
	}
	if c.y < -c.size {
		c.y = c.height
	}
}

func (c *Car) Draw(s render.Surface) {
	s.Clear(c.cfg.Background)
	s.DrawSprite(render.Sprite{
		ID:    render.SpriteCar,
		X:     c.x - c.size/2,
		Y:     c.y - c.size/2,
		W:     c.size,
		H:     c.size,
		Angle: c.heading + math.Pi/2, // The sprite points up
	})
}

func (c *Car) Help() []string {
	return []string{
		"Controls",
		"",
		"Keyboard",
		"h - help",
		"a - turn left",
		"d - turn right",
		"e - toggle sound",
		"esc - quit",
		"",
		"Touch/Mouse",
		"top left - help",
		"touch left - turn left",
		"touch right - turn right",
		"touch top center - toggle sound",
	}
}
