// Package scene holds the screensaver animations and the controller that
// drives one of them frame by frame.
package scene

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/nightsky/internal/audio"
	"github.com/tomz197/nightsky/internal/field"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/render"
)

// ErrUnknownScene is returned by New for a name that is not registered.
var ErrUnknownScene = errors.New("scene: unknown scene")

// Scene is one animation.
type Scene interface {
	Name() string
	// Resize adapts the scene to a new viewport and re-spreads its sprites.
	Resize(width, height float64)
	// Handle applies one input event.
	Handle(ev input.Event)
	// Update advances the simulation by delta.
	Update(delta time.Duration)
	// Draw paints the current state.
	Draw(s render.Surface)
	// Help returns the lines of the controls overlay.
	Help() []string
	HelpVisible() bool
	SoundEnabled() bool
}

// Options are the collaborators shared by every scene.
type Options struct {
	Rand   field.Rand   // Defaults to field.DefaultRand
	Player audio.Player // Defaults to audio.Nop
	Logger *log.Logger  // Defaults to a discarding logger
	// Count overrides the initial particle count of the field scenes when positive.
	Count int
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = field.DefaultRand()
	}
	if o.Player == nil {
		o.Player = audio.Nop{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

var registry = map[string]func(Options) (Scene, error){
	"stars": func(o Options) (Scene, error) {
		cfg := DefaultStarsConfig()
		if o.Count > 0 {
			cfg.Count = o.Count
		}
		s, err := NewStars(cfg, o)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
	"clouds": func(o Options) (Scene, error) {
		s, err := NewClouds(withCount(DefaultCloudsConfig(), o.Count), o)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
	"overhead": func(o Options) (Scene, error) {
		s, err := NewClouds(withCount(OverheadCloudsConfig(), o.Count), o)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
	"car": func(o Options) (Scene, error) {
		return NewCar(DefaultCarConfig(), o), nil
	},
	"hues": func(o Options) (Scene, error) {
		return NewHues(DefaultHuesConfig(), o), nil
	},
}

func withCount(cfg CloudsConfig, n int) CloudsConfig {
	if n > 0 {
		cfg.Count = n
	}
	return cfg
}

// New creates the scene registered under name.
func New(name string, opts Options) (Scene, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownScene, name, Names())
	}
	return build(opts.withDefaults())
}

// Names lists the registered scenes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// base carries the state every scene shares: its collaborators and the
// help and sound toggles.
type base struct {
	name   string
	rng    field.Rand
	player audio.Player
	logger *log.Logger
	help   bool
	sound  bool
}

func newBase(name string, opts Options) base {
	opts = opts.withDefaults()
	return base{
		name:   name,
		rng:    opts.Rand,
		player: opts.Player,
		logger: opts.Logger.WithPrefix(name),
	}
}

func (b *base) Name() string       { return b.name }
func (b *base) HelpVisible() bool  { return b.help }
func (b *base) SoundEnabled() bool { return b.sound }

func (b *base) toggleHelp() {
	b.help = !b.help
}

func (b *base) toggleSound() {
	b.sound = !b.sound
	b.logger.Debug("sound toggled", "on", b.sound)
}

// cue plays a one-shot sound when sound is on.
func (b *base) cue(c audio.Cue) {
	if b.sound {
		b.player.Play(c)
	}
}

// viewportOK reports whether a viewport can hold a field.
func viewportOK(width, height float64) bool {
	return width >= 1 && height >= 1
}
