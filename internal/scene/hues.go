package scene

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/render"
)

// HuesConfig tunes the colour cycle.
type HuesConfig struct {
	Start [3]int // Initial red, green and blue
	Max   int    // Channel ceiling
}

// DefaultHuesConfig returns the colour cycle tuning.
func DefaultHuesConfig() HuesConfig {
	return HuesConfig{
		Start: [3]int{0x00, 0x33, 0x11},
		Max:   0xff,
	}
}

// Hues fills the screen with a slowly cycling colour. Channel i moves by
// i+1 per update and bounces off 0 and Max.
type Hues struct {
	base
	cfg      HuesConfig
	channels [3]int
	dirs     [3]int
}

var _ Scene = (*Hues)(nil)

// NewHues creates the colour cycle.
func NewHues(cfg HuesConfig, opts Options) *Hues {
	return &Hues{
		base:     newBase("hues", opts),
		cfg:      cfg,
		channels: cfg.Start,
		dirs:     [3]int{1, 1, 1},
	}
}

// Channels returns the current red, green and blue values.
func (h *Hues) Channels() [3]int {
	return h.channels
}

// Color returns the current fill colour.
func (h *Hues) Color() colorful.Color {
	return colorful.Color{
		R: float64(h.channels[0]) / 255,
		G: float64(h.channels[1]) / 255,
		B: float64(h.channels[2]) / 255,
	}
}

// Hex returns the current fill colour as "#rrggbb".
func (h *Hues) Hex() string {
	return h.Color().Hex()
}

func (h *Hues) Resize(width, height float64) {}

func (h *Hues) Handle(ev input.Event) {
	switch {
	case ev.Pressed(input.KeyLeft):
		h.channels[0] = 0
	case ev.Pressed(input.KeyRight):
		h.channels[2] = 0
	case ev.Pressed("h"):
		h.toggleHelp()
	}
}

// Update steps the cycle once per frame; the step does not depend on delta.
func (h *Hues) Update(time.Duration) {
	for i := range h.channels {
		step := i + 1
		h.channels[i] += step * h.dirs[i]
		if h.channels[i] > h.cfg.Max {
			h.dirs[i] = -1
			h.channels[i] = h.cfg.Max - step
		}
		if h.channels[i] < 0 {
			h.dirs[i] = 1
			h.channels[i] = step
		}
	}
}

func (h *Hues) Draw(s render.Surface) {
	s.Clear(h.Color())
}

func (h *Hues) Help() []string {
	return []string{
		"Controls",
		"",
		"h - help",
		"left - reset red",
		"right - reset blue",
		"esc - quit",
	}
}
