// Package tui presents scenes on a tcell screen. It is both the controller's
// front-end and an input source for tcell key, mouse and resize events.
package tui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/render"
)

// Options configures a Screen.
type Options struct {
	MaxCols int            // Defaults to render.DefaultMaxCols
	MaxRows int            // Defaults to render.DefaultMaxRows
	Hold    time.Duration  // Synthesized key hold; defaults to input.DefaultHold
	Palette render.Palette // Defaults to render.DefaultPalette
}

// Screen draws a half-block canvas on a tcell screen.
type Screen struct {
	screen  tcell.Screen
	canvas  *render.Canvas
	maxCols int
	maxRows int

	events   chan tcell.Event
	quit     chan struct{}
	stopOnce sync.Once

	hold       *input.HoldTracker
	buttonDown bool
	dirty      bool
}

// New wraps an initialised tcell screen and enables mouse reporting.
func New(screen tcell.Screen, opts Options) *Screen {
	if opts.MaxCols <= 0 {
		opts.MaxCols = render.DefaultMaxCols
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = render.DefaultMaxRows
	}

	screen.HideCursor()
	screen.EnableMouse()

	cols, rows := screen.Size()
	renderCols, renderRows, offsetCol, offsetRow := render.Fit(cols, rows, opts.MaxCols, opts.MaxRows)
	canvas := render.NewCanvas(renderCols, renderRows)
	canvas.SetOffset(offsetCol, offsetRow)
	if opts.Palette != nil {
		canvas.SetPalette(opts.Palette)
	}

	return &Screen{
		screen:  screen,
		canvas:  canvas,
		maxCols: opts.MaxCols,
		maxRows: opts.MaxRows,
		events:  make(chan tcell.Event, 64),
		quit:    make(chan struct{}),
		hold:    input.NewHoldTracker(opts.Hold),
		dirty:   true,
	}
}

// Start spawns the goroutine forwarding tcell events to Poll.
func (s *Screen) Start() {
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case s.events <- ev:
			case <-s.quit:
				return
			}
		}
	}()
}

// Close stops event forwarding and finalises the tcell screen.
func (s *Screen) Close() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.screen.Fini()
	})
}

// Canvas returns the canvas frames are drawn on.
func (s *Screen) Canvas() *render.Canvas {
	return s.canvas
}

// Begin refreshes the canvas size from the screen.
func (s *Screen) Begin() (render.Surface, error) {
	cols, rows := s.screen.Size()
	renderCols, renderRows, offsetCol, offsetRow := render.Fit(cols, rows, s.maxCols, s.maxRows)

	c := s.canvas
	if renderCols != c.Columns() || renderRows != c.Rows() ||
		offsetCol != c.OffsetCol() || offsetRow != c.OffsetRow() {
		s.dirty = true
	}
	c.Resize(renderCols, renderRows)
	c.SetOffset(offsetCol, offsetRow)
	return c, nil
}

// Present copies the canvas to the screen and shows it.
func (s *Screen) Present() error {
	c := s.canvas
	if s.dirty {
		s.screen.Clear()
		s.dirty = false
	}

	offCol, offRow := c.OffsetCol(), c.OffsetRow()
	for row := 0; row < c.Rows(); row++ {
		for col := 0; col < c.Columns(); col++ {
			cell := c.Cell(col, row)
			style := tcell.StyleDefault.
				Foreground(tcellColor(cell.Top)).
				Background(tcellColor(cell.Bottom))
			s.screen.SetContent(col+offCol, row+offRow, render.BlockUpperHalf, nil, style)
		}
	}

	for _, t := range c.Texts() {
		if t.Row < 0 || t.Row >= c.Rows() {
			continue
		}
		fg := tcellColor(t.Color)
		col := t.Col
		for _, r := range t.Value {
			if col >= c.Columns() {
				break
			}
			if col >= 0 {
				style := tcell.StyleDefault.
					Foreground(fg).
					Background(tcellColor(c.Cell(col, t.Row).Bottom))
				s.screen.SetContent(col+offCol, t.Row+offRow, r, nil, style)
			}
			col++
		}
	}

	s.screen.Show()
	return nil
}

// Poll translates the tcell events received since the last call.
func (s *Screen) Poll(now time.Time) []input.Event {
	var events []input.Event
drain:
	for {
		select {
		case ev := <-s.events:
			events = s.translate(ev, now, events)
		default:
			break drain
		}
	}
	return s.hold.Expire(now, events)
}

func (s *Screen) translate(ev tcell.Event, now time.Time, events []input.Event) []input.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := keyOf(e)
		if ok {
			s.hold.Press(k, now)
			events = append(events, input.KeyPress(k))
		}
	case *tcell.EventMouse:
		col, row := e.Position()
		x, y := s.canvas.TerminalToLogical(col+1, row+1)
		down := e.Buttons()&tcell.Button1 != 0
		switch {
		case down && !s.buttonDown:
			events = append(events, input.PointerPress(x, y))
		case !down && s.buttonDown:
			events = append(events, input.PointerRelease(x, y))
		}
		s.buttonDown = down
	case *tcell.EventResize:
		s.screen.Sync()
		s.dirty = true
	}
	return events
}

func keyOf(e *tcell.EventKey) (input.Key, bool) {
	switch e.Key() {
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyEscape:
		return input.KeyEsc, true
	case tcell.KeyCtrlC:
		return input.KeyCtrlC, true
	case tcell.KeyEnter:
		return input.KeyEnter, true
	case tcell.KeyRune:
		return input.Rune(e.Rune()), true
	}
	return "", false
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
