// Package logging builds the charm loggers used by the commands.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a timestamped logger writing to w.
func New(w io.Writer, prefix string, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Open is New for front-ends that own the terminal: logs go to the file at
// path, or are discarded when path is empty. The returned func closes the file.
func Open(path, prefix string, debug bool) (*log.Logger, func(), error) {
	if path == "" {
		return New(io.Discard, prefix, debug), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, prefix, debug), func() { _ = f.Close() }, nil
}
