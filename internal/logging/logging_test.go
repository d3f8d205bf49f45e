package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "ssh", false)
	logger.Debug("hidden")
	logger.Info("session started", "user", "ana")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "ssh")
	assert.Contains(t, out, "user=ana")

	buf.Reset()
	New(&buf, "ssh", true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nightsky.log")
	logger, closeFn, err := Open(path, "screensaver", false)
	require.NoError(t, err)
	logger.Info("scene started", "scene", "stars")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scene=stars")
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	logger, closeFn, err := Open("", "tcell", false)
	require.NoError(t, err)
	logger.Info("nowhere")
	closeFn()
}

func TestOpenBadPath(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing", "x.log"), "gui", false)
	assert.Error(t, err)
}
