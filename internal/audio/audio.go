// Package audio plays the screensavers' sound cues.
package audio

// Cue is a sound a scene can ask for.
type Cue int

const (
	// CueEngine is the car's looping engine hum.
	CueEngine Cue = iota
	// CueChime is a short bell played when a shooting star appears.
	CueChime
)

func (c Cue) String() string {
	switch c {
	case CueEngine:
		return "engine"
	case CueChime:
		return "chime"
	}
	return "unknown"
}

// Player plays cues. Implementations must not block the frame loop.
type Player interface {
	// Play starts a one-shot cue.
	Play(c Cue)
	// Loop starts or stops a looping cue.
	Loop(c Cue, on bool)
	// Close stops all sound.
	Close()
}

// Nop is a Player that stays silent. It is used when no audio device is
// available and for remote sessions.
type Nop struct{}

func (Nop) Play(Cue)       {}
func (Nop) Loop(Cue, bool) {}
func (Nop) Close()         {}

var _ Player = Nop{}
