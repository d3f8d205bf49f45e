package scene

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/nightsky/internal/audio"
	"github.com/tomz197/nightsky/internal/field"
	"github.com/tomz197/nightsky/internal/render"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// recordingPlayer remembers every cue it is asked to play.
type recordingPlayer struct {
	mu     sync.Mutex
	played []audio.Cue
	loops  map[audio.Cue]bool
	closed bool
}

func newRecordingPlayer() *recordingPlayer {
	return &recordingPlayer{loops: make(map[audio.Cue]bool)}
}

func (p *recordingPlayer) Play(c audio.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, c)
}

func (p *recordingPlayer) Loop(c audio.Cue, on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loops[c] = on
}

func (p *recordingPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func testOptions(seed uint64) (Options, *recordingPlayer) {
	p := newRecordingPlayer()
	return Options{Rand: seeded(seed), Player: p}, p
}

func TestNamesAreSorted(t *testing.T) {
	assert.Equal(t, []string{"car", "clouds", "hues", "overhead", "stars"}, Names())
}

func TestNewBuildsEveryScene(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			sc, err := New(name, Options{})
			require.NoError(t, err)
			assert.Equal(t, name, sc.Name())

			list := render.NewList(120, 80, 2)
			sc.Resize(120, 80)
			sc.Update(0)
			sc.Draw(list)
			require.NotEmpty(t, list.Ops())
			assert.Equal(t, render.OpClear, list.Ops()[0].Kind)
			assert.NotEmpty(t, sc.Help())
			assert.False(t, sc.HelpVisible())
			assert.False(t, sc.SoundEnabled())
		})
	}
}

func TestNewRejectsUnknownName(t *testing.T) {
	sc, err := New("sunrise", Options{})
	assert.ErrorIs(t, err, ErrUnknownScene)
	assert.Nil(t, sc)
	assert.Contains(t, err.Error(), "stars")
}

func TestNewAppliesCountOverride(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"stars", 0, 350},
		{"stars", 20, 20},
		{"clouds", 7, 7},
		{"overhead", 0, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := New(tt.name, Options{Count: tt.count})
			require.NoError(t, err)
			f := sc.(interface{ Field() *field.Field }).Field()
			assert.Equal(t, tt.want, f.Len())
		})
	}
}
