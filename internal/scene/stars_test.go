package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/nightsky/internal/audio"
	"github.com/tomz197/nightsky/internal/field"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/render"
)

func newTestStars(t *testing.T) (*Stars, *recordingPlayer) {
	t.Helper()
	opts, player := testOptions(1)
	s, err := NewStars(DefaultStarsConfig(), opts)
	require.NoError(t, err)
	s.Resize(120, 80)
	return s, player
}

func TestStarsResizeSpreadsField(t *testing.T) {
	s, _ := newTestStars(t)

	assert.Equal(t, 350, s.Field().Len())
	cfg := s.Field().Config()
	assert.InDelta(t, 1.6, cfg.BaseSize, 1e-9)
	assert.Equal(t, field.Range{Min: -1.2 * 1.6, Max: 80 + 1.6}, cfg.Y)
	for _, p := range s.Field().Particles() {
		assert.True(t, cfg.XRange().Contains(p.X))
		assert.True(t, cfg.Y.Contains(p.Y))
		assert.Equal(t, p.SizeScale, p.SpeedScale, "stars drift at their size scale")
	}
}

func TestStarsResizeIgnoresEmptyViewport(t *testing.T) {
	s, _ := newTestStars(t)
	s.Resize(0, 0)
	assert.Equal(t, 120.0, s.Field().Config().Width)
}

func TestStarsCountKeys(t *testing.T) {
	s, _ := newTestStars(t)

	s.Handle(input.KeyPress(input.KeyUp))
	assert.Equal(t, 400, s.Field().Len())
	s.Handle(input.KeyPress("q"))
	assert.Equal(t, 450, s.Field().Len())

	for i := 0; i < 20; i++ {
		s.Handle(input.KeyPress("a"))
	}
	assert.Equal(t, 1, s.Field().Len(), "never fewer than one star")

	cfg := s.Field().Config()
	for _, p := range s.Field().Particles() {
		assert.True(t, cfg.Y.Contains(p.Y), "count change respawns across the viewport")
	}
}

func TestStarsSpawnPositions(t *testing.T) {
	s, _ := newTestStars(t)

	s.Handle(input.KeyPress(input.KeyLeft))
	s.Handle(input.KeyPress(input.KeyRight))
	s.Handle(input.PointerPress(7, 9))
	s.Handle(input.KeyPress("b"))

	got := s.Shooting()
	require.Len(t, got, 4)
	assert.Equal(t, [2]float64{30, 40}, [2]float64{got[0].X, got[0].Y})
	assert.Equal(t, [2]float64{90, 40}, [2]float64{got[1].X, got[1].Y})
	assert.Equal(t, [2]float64{7, 9}, [2]float64{got[2].X, got[2].Y})
	assert.True(t, got[3].X >= 0 && got[3].X < 120)
	assert.True(t, got[3].Y >= 0 && got[3].Y < 80)
	for _, st := range got {
		assert.True(t, st.SizeScale >= 0.3 && st.SizeScale < 1)
	}
}

func TestShootingStarFadesAfterLife(t *testing.T) {
	s, _ := newTestStars(t)
	s.Spawn(60, 40)

	for i := 0; i < 99; i++ {
		s.Update(0)
	}
	require.Len(t, s.Shooting(), 1)
	assert.Equal(t, 99, s.Shooting()[0].Progress)

	s.Update(0)
	assert.Empty(t, s.Shooting())
}

func TestShootingStarsLeavingTheSidesAreRemoved(t *testing.T) {
	s, _ := newTestStars(t)
	for i := 0; i < 3; i++ {
		s.Spawn(60, 40)
	}
	s.Spawn(60, 40)
	s.shooting[0].X = 1e6
	s.shooting[1].X = -1e6
	s.shooting[2].X = 1e6

	s.Update(time.Millisecond)

	require.Len(t, s.Shooting(), 1, "adjacent finished stars are all removed")
	assert.InDelta(t, 60, s.Shooting()[0].X, 0.1)
}

func TestShootingStarMovesAlongDirection(t *testing.T) {
	s, _ := newTestStars(t)
	s.shooting = []ShootingStar{{X: 60, Y: 40, SizeScale: 0.5, Direction: 0}}

	s.Update(100 * time.Millisecond)

	assert.InDelta(t, 60+0.05*0.5*100, s.Shooting()[0].X, 1e-9)
	assert.InDelta(t, 40, s.Shooting()[0].Y, 1e-9)
}

func TestStarsChimeOnlyWithSound(t *testing.T) {
	s, player := newTestStars(t)

	s.Spawn(1, 1)
	assert.Empty(t, player.played)

	s.Handle(input.KeyPress("e"))
	assert.True(t, s.SoundEnabled())
	s.Spawn(1, 1)
	assert.Equal(t, []audio.Cue{audio.CueChime}, player.played)
}

func TestStarsDraw(t *testing.T) {
	s, _ := newTestStars(t)
	s.Spawn(10, 10)

	list := render.NewList(120, 80, 2)
	s.Draw(list)

	ops := list.Ops()
	require.Equal(t, render.OpClear, ops[0].Kind)
	assert.Equal(t, DefaultStarsConfig().Background, ops[0].Color)

	sprites := list.Sprites()
	require.Len(t, sprites, 351)
	p := s.Field().Particles()[0]
	assert.Equal(t, render.Sprite{ID: render.SpriteStar, X: p.X, Y: p.Y, W: 1.6 * p.SizeScale, H: 1.6 * p.SizeScale}, sprites[0])
	assert.Equal(t, render.SpriteShootingStar, sprites[350].ID)
}

func TestStarsHelpToggle(t *testing.T) {
	s, _ := newTestStars(t)
	s.Handle(input.KeyPress("h"))
	assert.True(t, s.HelpVisible())
	s.Handle(input.KeyPress("h"))
	assert.False(t, s.HelpVisible())
}

func TestNewStarsRejectsBadConfig(t *testing.T) {
	cfg := DefaultStarsConfig()
	cfg.Scale = field.Range{}
	_, err := NewStars(cfg, Options{})
	assert.ErrorIs(t, err, field.ErrInvalidConfig)
}
