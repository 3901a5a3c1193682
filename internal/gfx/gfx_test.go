package gfx

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/nightsky/internal/host"
	"github.com/tomz197/nightsky/internal/input"
)

func TestToColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, toColor(host.Paint{R: 1, G: 2, B: 3, A: 1}))
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 128}, toColor(host.Paint{R: 1, G: 2, B: 3, A: 0.5}))
	assert.Equal(t, uint8(255), toColor(host.Paint{A: 7}).A)
	assert.Equal(t, uint8(0), toColor(host.Paint{A: -1}).A)
	assert.Equal(t, uint8(0), toColor(host.Paint{A: math.NaN()}).A)
}

func TestWheelLines(t *testing.T) {
	var acc float64
	assert.Equal(t, input.WheelLines, wheelLines(&acc, -1), "wheel down scrolls down")
	assert.Equal(t, -input.WheelLines, wheelLines(&acc, 1))

	// A touchpad reports small fractions that add up.
	total := 0
	for range 10 {
		total += wheelLines(&acc, -0.5)
	}
	assert.Equal(t, 5*input.WheelLines, total)
}

func TestKeyRepeat(t *testing.T) {
	var fired []int
	for d := 0; d <= 25; d++ {
		if keyRepeat(d) {
			fired = append(fired, d)
		}
	}
	assert.Equal(t, []int{1, 18, 21, 24}, fired)
}

func TestSplitRun(t *testing.T) {
	text, blocks := splitRun("a█▄ ▸·z")
	assert.Equal(t, "a   >.z", text)
	assert.Equal(t, []block{
		{col: 1, top: 0, height: 1},
		{col: 2, top: 0.5, height: 0.5},
	}, blocks)

	text, blocks = splitRun("héllo")
	assert.Equal(t, "h?llo", text)
	assert.Empty(t, blocks)
}
