package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	engineFreq   = 98.0   // Hz, low hum
	engineVolume = -2.5   // Base-2 exponent passed to effects.Volume
	chimeFreq    = 1320.0 // Hz
	chimeLength  = 600 * time.Millisecond
)

// Speaker plays cues on the local sound device through a beep mixer.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	engine *beep.Ctrl
	logger *log.Logger
	live   bool // Speaker initialized and playing the mixer
}

var _ Player = (*Speaker)(nil)

// NewSpeaker opens the sound device. On failure it returns the error and
// callers fall back to Nop.
func NewSpeaker(logger *log.Logger) (*Speaker, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Speaker{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	speaker.Play(s.mixer)
	s.live = true
	return s, nil
}

// Open returns a Speaker when enabled and a device is available, and Nop
// otherwise.
func Open(enabled bool, logger *log.Logger) Player {
	if !enabled {
		return Nop{}
	}
	sp, err := NewSpeaker(logger)
	if err != nil {
		if logger != nil {
			logger.Warn("sound disabled", "err", err)
		}
		return Nop{}
	}
	return sp
}

// Play starts a one-shot cue.
func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch c {
	case CueChime:
		s.add(beep.Take(sampleRate.N(chimeLength), newChime(sampleRate, chimeFreq)))
	default:
		s.logger.Debug("cue has no one-shot sound", "cue", c)
	}
}

// Loop starts or stops a looping cue.
func (s *Speaker) Loop(c Cue, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c != CueEngine {
		s.logger.Debug("cue has no loop", "cue", c)
		return
	}

	if s.engine == nil {
		if !on {
			return
		}
		tone, err := generators.SineTone(sampleRate, engineFreq)
		if err != nil {
			s.logger.Warn("engine tone unavailable", "err", err)
			return
		}
		s.engine = &beep.Ctrl{Streamer: &effects.Volume{
			Streamer: tone,
			Base:     2,
			Volume:   engineVolume,
		}}
		s.add(s.engine)
		return
	}

	s.lock()
	s.engine.Paused = !on
	s.unlock()
}

// Close silences the mixer.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lock()
	if s.engine != nil {
		s.engine.Paused = true
	}
	s.mixer.Clear()
	s.unlock()
	s.engine = nil
}

func (s *Speaker) add(st beep.Streamer) {
	s.lock()
	s.mixer.Add(st)
	s.unlock()
}

// lock guards streamer state against the speaker goroutine.
func (s *Speaker) lock() {
	if s.live {
		speaker.Lock()
	}
}

func (s *Speaker) unlock() {
	if s.live {
		speaker.Unlock()
	}
}

// chime is a sine wave with an exponential decay envelope.
type chime struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newChime(sr beep.SampleRate, freq float64) *chime {
	return &chime{sr: sr, freq: freq}
}

func (g *chime) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := 0.25 * math.Exp(-6*t)
		sample := envelope * (math.Sin(2*math.Pi*g.freq*t) + 0.3*math.Sin(2*math.Pi*g.freq*2*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *chime) Err() error {
	return nil
}
