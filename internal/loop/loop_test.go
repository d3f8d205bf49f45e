package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/nightsky/internal/scene"
)

func fixedSize(cols, rows int) func() (int, int, error) {
	return func() (int, int, error) { return cols, rows, nil }
}

func TestRunQuitsWhenInputEnds(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(""), &out, Options{
		Scene:    "stars",
		Size:     fixedSize(20, 10),
		Interval: time.Millisecond,
	})
	require.NoError(t, err)

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\033[?1049h"), "enters the alternate screen")
	assert.True(t, strings.HasSuffix(s, "\033[?1049l"), "restores the main screen")
	assert.Contains(t, s, "\033[?1000h")
	assert.Contains(t, s, "\033[48;2;", "draws a truecolor frame")
}

func TestRunQuitsOnEscape(t *testing.T) {
	r := bufio.NewReader(io.MultiReader(strings.NewReader("\x1b"), blockingReader{}))
	err := Run(context.Background(), r, io.Discard, Options{
		Scene:    "stars",
		Size:     fixedSize(40, 20),
		Interval: time.Millisecond,
	})
	assert.NoError(t, err)
}

func TestRunUnknownScene(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(""), &out, Options{Scene: "aurora"})
	assert.ErrorIs(t, err, scene.ErrUnknownScene)
	assert.Zero(t, out.Len(), "terminal untouched")
}

func TestRunStopsAtMaxDuration(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	start := time.Now()
	err := Run(context.Background(), bufio.NewReader(pr), io.Discard, Options{
		Scene:       "car",
		Size:        fixedSize(40, 20),
		Interval:    time.Millisecond,
		MaxDuration: 30 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRunReturnsSizeErrors(t *testing.T) {
	calls := 0
	boom := errors.New("no tty")
	size := func() (int, int, error) {
		calls++
		if calls == 1 {
			return 40, 20, nil
		}
		return 0, 0, boom
	}

	pr, pw := io.Pipe()
	defer pw.Close()
	err := Run(context.Background(), bufio.NewReader(pr), io.Discard, Options{
		Scene:    "clouds",
		Size:     size,
		Interval: time.Millisecond,
	})
	assert.ErrorIs(t, err, boom)
}

// blockingReader never returns.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
