package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Default render area limits. Larger terminals get a centred canvas with a border.
const (
	DefaultMaxCols = 240
	DefaultMaxRows = 80
)

// TerminalOptions configures a Terminal.
type TerminalOptions struct {
	Size    SizeFunc // Defaults to DefaultSizeFunc
	MaxCols int      // Defaults to DefaultMaxCols
	MaxRows int      // Defaults to DefaultMaxRows
	Palette Palette  // Defaults to DefaultPalette
}

// Terminal presents a Canvas to an ANSI terminal stream (a local tty or an
// SSH channel). Begin tracks the terminal size; Present writes the frame.
type Terminal struct {
	w       *bufio.Writer
	size    SizeFunc
	canvas  *Canvas
	maxCols int
	maxRows int
	dirty   bool // Full clear needed before the next frame
}

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer, opts TerminalOptions) *Terminal {
	if opts.Size == nil {
		opts.Size = DefaultSizeFunc
	}
	if opts.MaxCols <= 0 {
		opts.MaxCols = DefaultMaxCols
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = DefaultMaxRows
	}

	t := &Terminal{
		w:       bufio.NewWriterSize(w, 8192),
		size:    opts.Size,
		maxCols: opts.MaxCols,
		maxRows: opts.MaxRows,
		dirty:   true,
	}

	cols, rows, err := opts.Size()
	if err != nil {
		cols, rows = 80, 24
	}
	renderCols, renderRows, offsetCol, offsetRow := t.clamp(cols, rows)
	t.canvas = NewCanvas(renderCols, renderRows)
	t.canvas.SetOffset(offsetCol, offsetRow)
	if opts.Palette != nil {
		t.canvas.SetPalette(opts.Palette)
	}
	return t
}

// Canvas returns the canvas frames are drawn on.
func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

// Setup hides the cursor, enables mouse reporting and clears the screen.
func (t *Terminal) Setup() error {
	EnterAltScreen(t.w)
	HideCursor(t.w)
	EnableMouse(t.w)
	ClearScreen(t.w)
	return t.w.Flush()
}

// Teardown undoes Setup.
func (t *Terminal) Teardown() error {
	DisableMouse(t.w)
	ClearScreen(t.w)
	ShowCursor(t.w)
	ExitAltScreen(t.w)
	return t.w.Flush()
}

// Begin refreshes the canvas size from the terminal and returns the surface
// to draw the next frame on.
func (t *Terminal) Begin() (Surface, error) {
	cols, rows, err := t.size()
	if err != nil {
		return nil, fmt.Errorf("terminal size: %w", err)
	}
	renderCols, renderRows, offsetCol, offsetRow := t.clamp(cols, rows)

	if renderCols != t.canvas.Columns() || renderRows != t.canvas.Rows() ||
		offsetCol != t.canvas.OffsetCol() || offsetRow != t.canvas.OffsetRow() {
		t.dirty = true
	}
	t.canvas.Resize(renderCols, renderRows)
	t.canvas.SetOffset(offsetCol, offsetRow)
	return t.canvas, nil
}

// Present writes the canvas to the terminal.
func (t *Terminal) Present() error {
	if t.dirty {
		// Remove residual pixels outside the new canvas area.
		ClearScreen(t.w)
		t.writeBorder()
		t.dirty = false
	}
	if err := t.canvas.Render(t.w); err != nil {
		return err
	}
	return t.w.Flush()
}

// CellToViewport converts a 1-based terminal cell, as reported by mouse
// events, to viewport coordinates.
func (t *Terminal) CellToViewport(col, row int) (float64, float64) {
	return t.canvas.TerminalToLogical(col, row)
}

func (t *Terminal) clamp(cols, rows int) (renderCols, renderRows, offsetCol, offsetRow int) {
	return Fit(cols, rows, t.maxCols, t.maxRows)
}

// Fit clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func Fit(cols, rows, maxCols, maxRows int) (renderCols, renderRows, offsetCol, offsetRow int) {
	renderCols = min(max(cols, 1), maxCols)
	renderRows = min(max(rows, 1), maxRows)
	offsetCol = max((cols-renderCols)/2, 0)
	offsetRow = max((rows-renderRows)/2, 0)
	return
}

// writeBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (t *Terminal) writeBorder() {
	c := t.canvas
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.rows + 1
	bar := strings.Repeat("─", c.cols)

	if hasV {
		if hasH {
			fmt.Fprintf(t.w, "\033[%d;%dH┌%s┐", top, left, bar)
			fmt.Fprintf(t.w, "\033[%d;%dH└%s┘", bottom, left, bar)
		} else {
			fmt.Fprintf(t.w, "\033[%d;%dH%s", top, c.offsetCol+1, bar)
			fmt.Fprintf(t.w, "\033[%d;%dH%s", bottom, c.offsetCol+1, bar)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.rows; row++ {
			fmt.Fprintf(t.w, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
}
