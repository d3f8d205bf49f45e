package scene

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/nightsky/internal/clock"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/render"
)

// Defaults for ControllerOptions.
const (
	DefaultInterval  = 66 * time.Millisecond
	DefaultQueueSize = 64
)

// DefaultHelpColor is the colour of the controls overlay.
var DefaultHelpColor = render.Hex("#cceeff")

// Source is polled once per frame for input, on the controller's goroutine.
type Source interface {
	Poll(now time.Time) []input.Event
}

// Frontend supplies the surface for each frame and shows it when drawn.
type Frontend interface {
	Begin() (render.Surface, error)
	Present() error
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Interval  time.Duration // Frame interval for Run
	QueueSize int           // Capacity of the Post queue
	HelpColor colorful.Color
	Logger    *log.Logger
}

// Controller owns one scene and its frame clock. Input reaches the scene
// only through Step, so scene state has a single writer.
type Controller struct {
	scene     Scene
	clock     *clock.Frame
	queue     chan input.Event
	sources   []Source
	interval  time.Duration
	helpColor colorful.Color
	logger    *log.Logger

	width, height float64
	done          bool
}

// NewController creates a controller for sc.
func NewController(sc Scene, opts ControllerOptions) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.HelpColor == (colorful.Color{}) {
		opts.HelpColor = DefaultHelpColor
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Controller{
		scene:     sc,
		queue:     make(chan input.Event, opts.QueueSize),
		interval:  opts.Interval,
		helpColor: opts.HelpColor,
		logger:    opts.Logger,
	}
}

// Scene returns the controlled scene.
func (c *Controller) Scene() Scene {
	return c.scene
}

// AddSource registers an input source polled at the start of every Step.
func (c *Controller) AddSource(s Source) {
	c.sources = append(c.sources, s)
}

// Post queues an event for the next Step. It never blocks and is safe to
// call from any goroutine; it reports false when the queue is full and the
// event was dropped.
func (c *Controller) Post(ev input.Event) bool {
	select {
	case c.queue <- ev:
		return true
	default:
		c.logger.Debug("input queue full, dropping event", "event", ev)
		return false
	}
}

// Done reports whether a quit event was seen.
func (c *Controller) Done() bool {
	return c.done
}

// Step runs one frame: resize check, input, update and draw.
func (c *Controller) Step(now time.Time, s render.Surface) {
	if c.clock == nil {
		c.clock = clock.New(now)
	}

	if w, h := s.Size(); w != c.width || h != c.height {
		c.logger.Debug("viewport resized", "width", w, "height", h)
		c.width, c.height = w, h
		c.scene.Resize(w, h)
	}

drain:
	for {
		select {
		case ev := <-c.queue:
			c.apply(ev)
		default:
			break drain
		}
	}
	for _, src := range c.sources {
		for _, ev := range src.Poll(now) {
			c.apply(ev)
		}
	}

	c.scene.Update(c.clock.Tick(now))
	c.scene.Draw(s)
	if c.scene.HelpVisible() {
		c.drawHelp(s)
	}
}

func (c *Controller) apply(ev input.Event) {
	if ev.IsQuit() {
		if !c.done {
			c.logger.Info("quit requested", "key", ev.Key)
		}
		c.done = true
		return
	}
	c.scene.Handle(ev)
}

// drawHelp writes the scene's controls in the top-left corner.
func (c *Controller) drawHelp(s render.Surface) {
	lh := s.LineHeight()
	for i, line := range c.scene.Help() {
		s.DrawText(lh, lh*float64(i+1), line, c.helpColor)
	}
}

// Run steps the scene on a ticker until ctx is cancelled, a quit event
// arrives or the front-end fails.
func (c *Controller) Run(ctx context.Context, fe Frontend) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info("scene started", "scene", c.scene.Name(), "interval", c.interval)
	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := c.frame(time.Now(), fe); err != nil {
			return err
		}
		if c.done {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (c *Controller) frame(now time.Time, fe Frontend) error {
	s, err := fe.Begin()
	if err != nil {
		return err
	}
	c.Step(now, s)
	return fe.Present()
}
