package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"
	"github.com/tomz197/nightsky/internal/audio"
	"github.com/tomz197/nightsky/internal/config"
	"github.com/tomz197/nightsky/internal/logging"
	"github.com/tomz197/nightsky/internal/loop"
	"github.com/tomz197/nightsky/internal/render"
	"github.com/tomz197/nightsky/internal/scene"
)

func main() {
	settings := config.Load()
	logger := logging.New(os.Stderr, "ssh", settings.Debug)
	log.SetDefault(logger)

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config",
		"host", settings.SSHHost, "port", settings.SSHPort,
		"hostKeyPath", settings.HostKeyPath, "workingDir", workingDir,
		"scene", settings.Scene, "sessionLimit", settings.SessionLimit)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			screensaverMiddleware(settings, logger),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
		// Set TCP_NODELAY so key presses are not batched
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if settings.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(settings.SSHHost, settings.SSHPort))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Session contexts are cancelled on shutdown, which ends every loop.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// sceneName picks the scene from the SSH command, e.g. "ssh -t host clouds".
func sceneName(cmd []string, fallback string) string {
	if len(cmd) > 0 && cmd[0] != "" {
		return cmd[0]
	}
	return fallback
}

// screensaverMiddleware runs one screensaver per session.
func screensaverMiddleware(settings config.Settings, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			name := sceneName(sess.Command(), settings.Scene)
			sessLogger := logger.With("user", sess.User(), "scene", name)
			sessLogger.Info("new session", "terminal", pty.Term,
				"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

			// Track terminal size from window change events
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, loop.Options{
				Scene:       name,
				Count:       settings.Count,
				Size:        sizeTracker.getSize,
				Interval:    settings.Interval,
				MaxDuration: settings.SessionLimit,
				Player:      audio.Nop{},
				Logger:      sessLogger,
			})
			switch {
			case errors.Is(err, scene.ErrUnknownScene):
				fmt.Fprintf(sess, "Unknown scene %q. Try one of: %v\n", name, scene.Names())
				_ = sess.Exit(1)
			case err != nil:
				sessLogger.Error("session failed", "err", err)
			}

			sessLogger.Info("session ended")
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies render.SizeFunc
var _ render.SizeFunc = (*sizeTracker)(nil).getSize
