package tui

import (
	"math"
	"strings"
)

var sparkBlocks = []rune(" ▁▂▃▄▅▆▇█")

// Sparkline renders values as at most width block characters scaled so
// that ceil fills a cell. Each cell shows the maximum of the values it
// covers, so short peaks survive downsampling.
func Sparkline(values []float64, width int, ceil float64) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if width > len(values) {
		width = len(values)
	}
	if !(ceil > 0) {
		ceil = 1
	}
	top := len(sparkBlocks) - 1

	var b strings.Builder
	for c := range width {
		lo := c * len(values) / width
		hi := (c + 1) * len(values) / width
		peak := 0.0
		for _, v := range values[lo:hi] {
			peak = math.Max(peak, v)
		}
		level := int(math.Round(peak / ceil * float64(top)))
		level = max(0, min(top, level))
		b.WriteRune(sparkBlocks[level])
	}
	return b.String()
}
