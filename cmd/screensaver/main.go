package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/nightsky/internal/audio"
	"github.com/tomz197/nightsky/internal/config"
	"github.com/tomz197/nightsky/internal/logging"
	"github.com/tomz197/nightsky/internal/loop"
	"golang.org/x/term"
)

func main() {
	settings := config.Load()
	if len(os.Args) > 1 {
		settings.Scene = os.Args[1]
	}

	logger, closeLog, err := logging.Open(settings.LogFile, "screensaver", settings.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	player := audio.Open(settings.Sound, logger)
	defer player.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Scene:    settings.Scene,
		Count:    settings.Count,
		Interval: settings.Interval,
		Player:   player,
		Logger:   logger,
	})
	stop()
	_ = term.Restore(fd, oldState)

	if err != nil {
		logger.Error("screensaver failed", "err", err)
		fmt.Fprintf(os.Stderr, "screensaver error: %v\n", err)
		os.Exit(1)
	}
}
