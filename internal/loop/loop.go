// Package loop runs a screensaver on an ANSI terminal stream: a local tty
// in raw mode or an SSH session.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/nightsky/internal/audio"
	"github.com/tomz197/nightsky/internal/field"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/render"
	"github.com/tomz197/nightsky/internal/scene"
)

// Options configures Run.
type Options struct {
	Scene    string          // Registered scene name
	Count    int             // Initial particle count; zero keeps the scene default
	Size     render.SizeFunc // Terminal size; defaults to render.DefaultSizeFunc
	Interval time.Duration   // Frame interval; defaults to scene.DefaultInterval
	Hold     time.Duration   // Synthesized key hold; defaults to input.DefaultHold
	MaxCols  int             // Render area limits; larger terminals get a border
	MaxRows  int
	// MaxDuration ends the run after this long. Zero runs until quit.
	MaxDuration time.Duration

	Player audio.Player // Defaults to audio.Nop
	Rand   field.Rand
	Logger *log.Logger
}

// Run shows the scene on w, reading keys and mouse reports from r, until
// the user quits, r ends or ctx is cancelled.
func Run(ctx context.Context, r io.ByteReader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == nil {
		player = audio.Nop{}
	}

	sc, err := scene.New(opts.Scene, scene.Options{
		Rand:   opts.Rand,
		Player: player,
		Logger: logger,
		Count:  opts.Count,
	})
	if err != nil {
		return err
	}

	term := render.NewTerminal(w, render.TerminalOptions{
		Size:    opts.Size,
		MaxCols: opts.MaxCols,
		MaxRows: opts.MaxRows,
	})
	stream := input.StartStream(r, input.StreamOptions{
		Hold:           opts.Hold,
		CellToViewport: term.CellToViewport,
	})

	ctrl := scene.NewController(sc, scene.ControllerOptions{
		Interval: opts.Interval,
		Logger:   logger,
	})
	ctrl.AddSource(stream)

	if opts.MaxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.MaxDuration)
		defer cancel()
	}

	if err := term.Setup(); err != nil {
		return err
	}
	defer func() {
		if err := term.Teardown(); err != nil {
			logger.Debug("terminal teardown failed", "err", err)
		}
	}()

	if err := ctrl.Run(ctx, term); err != nil {
		return err
	}
	if ctx.Err() == context.DeadlineExceeded {
		logger.Info("session time limit reached", "scene", sc.Name(), "limit", opts.MaxDuration)
	}
	return nil
}
