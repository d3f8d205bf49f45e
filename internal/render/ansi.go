package render

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	sgrReset     = "\033[0m"
	clearScreen  = "\033[H\033[2J"
	hideCursor   = "\033[?25l"
	showCursor   = "\033[?25h"
	mouseOn      = "\033[?1000h\033[?1006h" // Button tracking with SGR coordinates
	mouseOff     = "\033[?1006l\033[?1000l"
	altScreenOn  = "\033[?1049h"
	altScreenOff = "\033[?1049l"
)

// DefaultSizeFunc returns terminal size from os.Stdout.
var DefaultSizeFunc SizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, sgrReset+clearScreen)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, hideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, showCursor)
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

// EnableMouse asks the terminal to report button presses as SGR mouse sequences.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, mouseOn)
}

// DisableMouse stops mouse reporting.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, mouseOff)
}

// EnterAltScreen switches to the alternate screen buffer so the shell
// scrollback survives the session.
func EnterAltScreen(w io.Writer) {
	fmt.Fprint(w, altScreenOn)
}

// ExitAltScreen restores the main screen buffer.
func ExitAltScreen(w io.Writer) {
	fmt.Fprint(w, altScreenOff)
}
