package feedback

import (
	"fmt"
	"strconv"
)

const (
	hueScale   = 1.2
	saturation = 80
	lightness  = 50
)

// Position normalises value within [min, max] to a percentage. Degenerate
// bounds (max <= min) pin the position to zero.
func Position(value, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return (value - min) / (max - min) * 100
}

// Hue maps a position percentage to a hue: 120 (green) is the healthy end,
// 0 (red) the unhealthy end, according to polarity.
func Hue(percentage float64, polarity Polarity) float64 {
	if polarity == HigherIsBetter {
		return percentage * hueScale
	}
	return (100 - percentage) * hueScale
}

// Color formats hue as an hsl() colour at fixed saturation and lightness.
func Color(hue float64) string {
	return fmt.Sprintf("hsl(%s, %d%%, %d%%)", strconv.FormatFloat(hue, 'f', -1, 64), saturation, lightness)
}
