package field

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Width:       100,
		Height:      100,
		BaseSize:    10,
		DriftSpeed:  -0.002,
		Scale:       Range{Min: 0.2, Max: 1},
		Y:           Range{Min: -12, Max: 110},
		Sprites:     1,
		Placeholder: Point{X: 1, Y: 80},
	}
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestNewCreatesExactCount(t *testing.T) {
	for _, count := range []int{1, 2, 10, 350, 500} {
		f, err := New(count, testConfig(), seeded(1))
		require.NoError(t, err)
		assert.Equal(t, count, f.Len())
	}
}

func TestNewRaisesCountBelowOne(t *testing.T) {
	for _, count := range []int{0, -1, -50} {
		f, err := New(count, testConfig(), seeded(1))
		require.NoError(t, err)
		assert.Equal(t, 1, f.Len(), "count %d", count)
	}
}

func TestNewStartsAtPlaceholder(t *testing.T) {
	f, err := New(5, testConfig(), seeded(1))
	require.NoError(t, err)

	for _, p := range f.Particles() {
		assert.Equal(t, Particle{X: 1, Y: 80, SizeScale: 1, SpeedScale: 1}, p)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"sub-pixel height", func(c *Config) { c.Height = 0.5 }},
		{"no base size", func(c *Config) { c.BaseSize = 0 }},
		{"inverted scale", func(c *Config) { c.Scale = Range{Min: 1, Max: 0.2} }},
		{"zero scale", func(c *Config) { c.Scale = Range{} }},
		{"inverted speed", func(c *Config) { c.Speed = Range{Min: 1, Max: 0.3} }},
		{"inverted y", func(c *Config) { c.Y = Range{Min: 50, Max: 10} }},
		{"no sprites", func(c *Config) { c.Sprites = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := New(10, cfg, nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestAdvanceMovesByClampedDelta(t *testing.T) {
	f, err := New(10, testConfig(), seeded(2))
	require.NoError(t, err)

	// 100s of wall time is worth at most one second of drift.
	f.Advance(100 * time.Second)

	for _, p := range f.Particles() {
		assert.InDelta(t, 1+(-0.002*1*1000), p.X, 1e-9)
		assert.Equal(t, 80.0, p.Y)
	}
}

func TestAdvanceRespawnsOnRightWhenExitingLeft(t *testing.T) {
	cfg := testConfig()
	f, err := New(10, cfg, seeded(3))
	require.NoError(t, err)

	ps := f.Particles()
	ps[0].X = -11.5 // one step from the left margin at -12
	ps[1].X = 50

	f.Advance(time.Second)

	assert.Equal(t, 110.0, ps[0].X, "exited particle re-enters at width+base size")
	assert.True(t, cfg.Y.Contains(ps[0].Y))
	assert.True(t, cfg.Scale.Contains(ps[0].SizeScale))
	assert.Equal(t, ps[0].SizeScale, ps[0].SpeedScale)
	assert.InDelta(t, 48.0, ps[1].X, 1e-9)
}

func TestAdvanceRespawnsOnLeftWhenExitingRight(t *testing.T) {
	cfg := testConfig()
	cfg.DriftSpeed = 0.01
	f, err := New(3, cfg, seeded(4))
	require.NoError(t, err)

	ps := f.Particles()
	ps[2].X = 109

	f.Advance(time.Second)

	assert.Equal(t, -12.0, ps[2].X)
	assert.InDelta(t, 11.0, ps[0].X, 1e-9)
}

func TestAdvanceNeverLeavesParticlesOutOfBounds(t *testing.T) {
	cfg := testConfig()
	cfg.DriftSpeed = -0.05
	f, err := New(200, cfg, seeded(5))
	require.NoError(t, err)
	f.RespawnAll()

	xr := cfg.XRange()
	for step := 0; step < 500; step++ {
		f.Advance(66 * time.Millisecond)
		for i, p := range f.Particles() {
			require.True(t, xr.Contains(p.X), "step %d particle %d at x=%v", step, i, p.X)
		}
	}
}

func TestAdvanceAppliesWindAndSpeedScale(t *testing.T) {
	cfg := testConfig()
	cfg.DriftSpeed = 1
	cfg.Speed = Range{Min: 0.3, Max: 1}
	f, err := New(1, cfg, seeded(6))
	require.NoError(t, err)
	f.SetWind(-0.005)

	ps := f.Particles()
	ps[0].X = 50
	ps[0].SpeedScale = 0.5

	f.Advance(100 * time.Millisecond)

	assert.InDelta(t, 50-0.25, ps[0].X, 1e-9)
	assert.Equal(t, -0.005, f.Wind())
}

func TestAdvanceIgnoresZeroAndNegativeDelta(t *testing.T) {
	f, err := New(4, testConfig(), seeded(7))
	require.NoError(t, err)

	f.Advance(0)
	f.Advance(-time.Second)

	for _, p := range f.Particles() {
		assert.Equal(t, 1.0, p.X)
	}
}

func TestRespawnAllStaysInBounds(t *testing.T) {
	rng := seeded(8)
	for trial := 0; trial < 200; trial++ {
		w := 1 + rng.Float64()*2000
		h := 1 + rng.Float64()*2000
		size := min(w, h) / 50
		cfg := Config{
			Width:      w,
			Height:     h,
			BaseSize:   size,
			DriftSpeed: -0.002,
			Scale:      Range{Min: 0.2, Max: 1},
			Speed:      Range{Min: 0.3, Max: 1},
			Y:          Range{Min: -1.2 * size, Max: h + size},
			Sprites:    2,
		}
		f, err := New(50, cfg, rng)
		require.NoError(t, err)

		f.RespawnAll()

		xr := cfg.XRange()
		for _, p := range f.Particles() {
			require.True(t, xr.Contains(p.X), "x=%v outside %v for %vx%v", p.X, xr, w, h)
			require.True(t, cfg.Y.Contains(p.Y), "y=%v outside %v", p.Y, cfg.Y)
			require.True(t, cfg.Speed.Contains(p.SpeedScale))
			require.GreaterOrEqual(t, p.Sprite, 0)
			require.Less(t, p.Sprite, 2)
		}
	}
}

func TestRespawnAllProducesFreshLayouts(t *testing.T) {
	f, err := New(50, testConfig(), seeded(9))
	require.NoError(t, err)

	f.RespawnAll()
	first := append([]Particle(nil), f.Particles()...)
	f.RespawnAll()
	second := f.Particles()

	assert.NotEqual(t, first, second)
}

func TestResizeRegeneratesPlaceholders(t *testing.T) {
	f, err := New(10, testConfig(), seeded(10))
	require.NoError(t, err)
	f.RespawnAll()

	f.Resize(60)
	assert.Equal(t, 60, f.Len())
	for _, p := range f.Particles() {
		assert.Equal(t, 1.0, p.X)
		assert.Equal(t, 80.0, p.Y)
	}

	f.Resize(-40)
	assert.Equal(t, 1, f.Len())
}

func TestReconfigure(t *testing.T) {
	f, err := New(20, testConfig(), seeded(11))
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Width, cfg.Height = 400, 300
	cfg.Y = Range{Min: 10, Max: 200}
	require.NoError(t, f.Reconfigure(cfg))

	assert.Equal(t, cfg, f.Config())
	for _, p := range f.Particles() {
		assert.True(t, cfg.Y.Contains(p.Y))
		assert.True(t, cfg.XRange().Contains(p.X))
	}

	bad := cfg
	bad.Width = 0
	assert.ErrorIs(t, f.Reconfigure(bad), ErrInvalidConfig)
	assert.Equal(t, cfg, f.Config(), "failed reconfigure keeps the old bounds")
}
