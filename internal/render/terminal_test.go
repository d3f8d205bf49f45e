package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSize struct {
	cols, rows int
	err        error
}

func (f *fakeSize) get() (int, int, error) {
	return f.cols, f.rows, f.err
}

func TestTerminalClampsAndCentres(t *testing.T) {
	size := &fakeSize{cols: 300, rows: 100}
	var buf bytes.Buffer
	term := NewTerminal(&buf, TerminalOptions{Size: size.get})

	s, err := term.Begin()
	require.NoError(t, err)

	w, h := s.Size()
	assert.Equal(t, float64(DefaultMaxCols), w)
	assert.Equal(t, float64(DefaultMaxRows*2), h)
	assert.Equal(t, 30, term.Canvas().OffsetCol())
	assert.Equal(t, 10, term.Canvas().OffsetRow())

	x, y := term.CellToViewport(31, 11)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestTerminalPresentClearsOnlyAfterResize(t *testing.T) {
	size := &fakeSize{cols: 20, rows: 10}
	var buf bytes.Buffer
	term := NewTerminal(&buf, TerminalOptions{Size: size.get, MaxCols: 16, MaxRows: 8})

	s, err := term.Begin()
	require.NoError(t, err)
	s.Clear(black)
	require.NoError(t, term.Present())
	assert.Contains(t, buf.String(), clearScreen)
	assert.Contains(t, buf.String(), "┌")

	buf.Reset()
	_, err = term.Begin()
	require.NoError(t, err)
	require.NoError(t, term.Present())
	assert.NotContains(t, buf.String(), clearScreen)

	size.cols, size.rows = 12, 6
	buf.Reset()
	s, err = term.Begin()
	require.NoError(t, err)
	w, h := s.Size()
	assert.Equal(t, 12.0, w)
	assert.Equal(t, 12.0, h)
	require.NoError(t, term.Present())
	assert.Contains(t, buf.String(), clearScreen)
	assert.NotContains(t, buf.String(), "┌", "no border when the canvas fills the terminal")
}

func TestTerminalBeginReportsSizeErrors(t *testing.T) {
	size := &fakeSize{cols: 10, rows: 5}
	term := NewTerminal(&bytes.Buffer{}, TerminalOptions{Size: size.get})

	size.err = errors.New("closed")
	_, err := term.Begin()
	assert.Error(t, err)
}

func TestTerminalSetupAndTeardown(t *testing.T) {
	size := &fakeSize{cols: 10, rows: 5}
	var buf bytes.Buffer
	term := NewTerminal(&buf, TerminalOptions{Size: size.get})

	require.NoError(t, term.Setup())
	assert.Contains(t, buf.String(), hideCursor)
	assert.Contains(t, buf.String(), mouseOn)

	buf.Reset()
	require.NoError(t, term.Teardown())
	assert.Contains(t, buf.String(), showCursor)
	assert.Contains(t, buf.String(), mouseOff)
}

func TestFit(t *testing.T) {
	tests := []struct {
		name                   string
		cols, rows             int
		wantCols, wantRows     int
		wantOffCol, wantOffRow int
	}{
		{"fits", 80, 24, 80, 24, 0, 0},
		{"wide", 300, 24, 240, 24, 30, 0},
		{"tall", 100, 100, 100, 80, 0, 10},
		{"degenerate", 0, -3, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r, oc, or := Fit(tt.cols, tt.rows, DefaultMaxCols, DefaultMaxRows)
			assert.Equal(t, []int{tt.wantCols, tt.wantRows, tt.wantOffCol, tt.wantOffRow}, []int{c, r, oc, or})
		})
	}
}
