package site

import (
	"math"
	"strings"
)

// ridge describes one mountain range as a sum of two sine waves.
type ridge struct {
	base, amp1, amp2 float64 // in rows
	freq1, freq2     float64 // radians per column
	phase            float64
	fill             rune
}

// ridges are ordered front to back.
var ridges = []ridge{
	{base: 3.5, amp1: 1.5, amp2: 0.8, freq1: 0.11, freq2: 0.31, phase: 1.7, fill: '█'},
	{base: 5, amp1: 2, amp2: 1, freq1: 0.07, freq2: 0.23, phase: 4.2, fill: '▓'},
	{base: 6, amp1: 2.5, amp2: 1.2, freq1: 0.05, freq2: 0.17, phase: 0.4, fill: '▒'},
}

// height is the ridge height at column x, clamped to [0, rows].
func (r ridge) height(x int, rows int) float64 {
	fx := float64(x)
	h := r.base + r.amp1*math.Sin(fx*r.freq1+r.phase) + r.amp2*math.Sin(fx*r.freq2+2*r.phase)
	return math.Max(0, math.Min(h, float64(rows)))
}

// lines draws the ridge as rows of text, top row first. A column whose
// height ends in a half row gets a lower half block on top.
func (r ridge) lines(width, rows int) []string {
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	for x := range width {
		h := r.height(x, rows)
		full := int(h)
		for k := range full {
			grid[rows-1-k][x] = r.fill
		}
		if full < rows && h-float64(full) >= 0.5 {
			grid[rows-1-full][x] = '▄'
		}
	}
	out := make([]string, rows)
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}
