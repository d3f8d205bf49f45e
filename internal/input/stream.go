package input

import (
	"io"
	"strconv"
	"time"
)

// StreamOptions configures a Stream.
type StreamOptions struct {
	// Hold is how long a key stays down after its last press. Defaults to DefaultHold.
	Hold time.Duration
	// CellToViewport maps a 1-based terminal cell from a mouse report to
	// viewport coordinates. Defaults to the 0-based cell position.
	CellToViewport func(col, row int) (float64, float64)
}

// Stream decodes an ANSI terminal byte stream (keys, arrow sequences and SGR
// mouse reports) into events. Bytes are read on a separate goroutine and
// delivered through a channel; Poll is called from the frame loop.
type Stream struct {
	ch         chan byte
	closed     bool
	buf        []byte // Bytes not yet parsed, kept across polls for split sequences
	hold       *HoldTracker
	toViewport func(col, row int) (float64, float64)
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.ByteReader, opts StreamOptions) *Stream {
	toViewport := opts.CellToViewport
	if toViewport == nil {
		toViewport = func(col, row int) (float64, float64) {
			return float64(col - 1), float64(row - 1)
		}
	}
	s := &Stream{
		ch:         make(chan byte, 128),
		hold:       NewHoldTracker(opts.Hold),
		toViewport: toViewport,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains all available bytes (non-blocking) and returns the events they
// decode to, followed by releases of keys whose hold expired. When the
// underlying reader ends, Poll reports a single ctrl+c press.
func (s *Stream) Poll(now time.Time) []Event {
	if s.closed {
		return nil
	}

	fresh := false
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
			fresh = true
		default:
			break drain
		}
	}

	// A trailing ESC waits one poll for the rest of an escape sequence.
	var events []Event
	events, s.buf = s.parse(s.buf, now, events, !fresh || s.closed)
	if s.closed {
		s.hold.Reset()
		return append(events, KeyPress(KeyCtrlC))
	}
	return s.hold.Expire(now, events)
}

// parse decodes buf and returns the unconsumed tail (an incomplete escape
// sequence). A lone ESC at the end of buf is the escape key only when
// flushEsc is set; otherwise it is kept for the next call.
func (s *Stream) parse(buf []byte, now time.Time, events []Event, flushEsc bool) ([]Event, []byte) {
	i := 0
	for i < len(buf) {
		b := buf[i]

		if b == '\x1b' {
			if i+1 == len(buf) {
				if !flushEsc {
					break
				}
				events = s.press(KeyEsc, now, events)
				i++
				continue
			}
			if buf[i+1] == '[' {
				n, complete := csiLength(buf[i:])
				if !complete {
					break
				}
				events = s.csi(buf[i:i+n], now, events)
				i += n
				continue
			}
			events = s.press(KeyEsc, now, events)
			i++
			continue
		}

		switch {
		case b == 0x03:
			events = s.press(KeyCtrlC, now, events)
		case b == '\r' || b == '\n':
			events = s.press(KeyEnter, now, events)
		case b >= 0x20 && b < 0x7f:
			events = s.press(Rune(rune(b)), now, events)
		}
		i++
	}

	rest := buf[:0]
	if i < len(buf) {
		rest = append(rest, buf[i:]...)
	}
	return events, rest
}

// press reports every decoded key, autorepeat included; the hold tracker
// only decides when the key-up follows.
func (s *Stream) press(k Key, now time.Time, events []Event) []Event {
	s.hold.Press(k, now)
	return append(events, KeyPress(k))
}

// csiLength returns the length of the CSI sequence at the start of seq
// (which begins with ESC [) and whether its final byte has arrived.
func csiLength(seq []byte) (int, bool) {
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7e {
			return j + 1, true
		}
	}
	return 0, false
}

// csi decodes arrow keys and SGR mouse reports; other sequences are ignored.
func (s *Stream) csi(seq []byte, now time.Time, events []Event) []Event {
	final := seq[len(seq)-1]
	params := seq[2 : len(seq)-1]

	if len(params) > 0 && params[0] == '<' && (final == 'M' || final == 'm') {
		return s.mouse(params[1:], final == 'M', events)
	}

	switch final {
	case 'A':
		return s.press(KeyUp, now, events)
	case 'B':
		return s.press(KeyDown, now, events)
	case 'C':
		return s.press(KeyRight, now, events)
	case 'D':
		return s.press(KeyLeft, now, events)
	}
	return events
}

// mouse decodes "button;col;row" from an SGR mouse report. Only the primary
// button is reported; wheel and motion events are dropped.
func (s *Stream) mouse(params []byte, pressed bool, events []Event) []Event {
	var fields [3]int
	n := 0
	start := 0
	for j := 0; j <= len(params); j++ {
		if j < len(params) && params[j] != ';' {
			continue
		}
		if n == len(fields) {
			return events
		}
		v, err := strconv.Atoi(string(params[start:j]))
		if err != nil {
			return events
		}
		fields[n] = v
		n++
		start = j + 1
	}
	if n != len(fields) {
		return events
	}

	button, col, row := fields[0], fields[1], fields[2]
	if button&(32|64) != 0 || button&3 != 0 {
		return events
	}

	x, y := s.toViewport(col, row)
	if pressed {
		return append(events, PointerPress(x, y))
	}
	return append(events, PointerRelease(x, y))
}
