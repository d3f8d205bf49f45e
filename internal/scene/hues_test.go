package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/render"
)

func TestHuesStartsAtInitialColour(t *testing.T) {
	h := NewHues(DefaultHuesConfig(), Options{})
	assert.Equal(t, "#003311", h.Hex())
}

func TestHuesStepsEachChannelByIndex(t *testing.T) {
	h := NewHues(DefaultHuesConfig(), Options{})
	h.Update(0)
	assert.Equal(t, [3]int{0x01, 0x35, 0x14}, h.Channels())
}

func TestHuesReflect(t *testing.T) {
	h := NewHues(DefaultHuesConfig(), Options{})
	h.channels = [3]int{255, 254, 254}

	h.Update(0)
	assert.Equal(t, [3]int{254, 253, 252}, h.Channels())
	assert.Equal(t, [3]int{-1, -1, -1}, h.dirs)

	h.channels = [3]int{0, 1, 2}
	h.Update(0)
	assert.Equal(t, [3]int{1, 2, 3}, h.Channels())
	assert.Equal(t, [3]int{1, 1, 1}, h.dirs)
}

func TestHuesStayInRange(t *testing.T) {
	h := NewHues(DefaultHuesConfig(), Options{})
	for i := 0; i < 2000; i++ {
		h.Update(0)
		for _, v := range h.Channels() {
			require.True(t, v >= 0 && v <= 255, "step %d: %v", i, h.Channels())
		}
	}
}

func TestHuesKeysResetChannels(t *testing.T) {
	h := NewHues(DefaultHuesConfig(), Options{})
	h.channels = [3]int{100, 100, 100}

	h.Handle(input.KeyPress(input.KeyLeft))
	assert.Equal(t, [3]int{0, 100, 100}, h.Channels())
	h.Handle(input.KeyPress(input.KeyRight))
	assert.Equal(t, [3]int{0, 100, 0}, h.Channels())
}

func TestHuesDrawFillsSurface(t *testing.T) {
	h := NewHues(DefaultHuesConfig(), Options{})
	list := render.NewList(10, 10, 2)
	h.Draw(list)

	require.Len(t, list.Ops(), 1)
	assert.Equal(t, h.Color(), list.Ops()[0].Color)
}
