package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/nightsky/internal/audio"
	"github.com/tomz197/nightsky/internal/config"
	"github.com/tomz197/nightsky/internal/logging"
	"github.com/tomz197/nightsky/internal/scene"
	"github.com/tomz197/nightsky/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "screensaver error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings := config.Load()
	if len(os.Args) > 1 {
		settings.Scene = os.Args[1]
	}

	logger, closeLog, err := logging.Open(settings.LogFile, "tcell", settings.Debug)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	player := audio.Open(settings.Sound, logger)
	defer player.Close()

	sc, err := scene.New(settings.Scene, scene.Options{
		Player: player,
		Logger: logger,
		Count:  settings.Count,
	})
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}

	screen := tui.New(s, tui.Options{})
	defer screen.Close()
	screen.Start()

	ctrl := scene.NewController(sc, scene.ControllerOptions{
		Interval: settings.Interval,
		Logger:   logger,
	})
	ctrl.AddSource(screen)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return ctrl.Run(ctx, screen)
}
