// Package scoring turns raw financial ratios into 0-100 scores.
package scoring

import "math"

// Neutral is returned for unknown metrics and degenerate ranges.
const Neutral = 0.5

// Normalize maps value onto [low, high] as a suitability in roughly [0, 1].
// When low > high the metric is lower-is-better and the scale is inverted.
// The result is not clamped.
func Normalize(value *float64, low, high float64) float64 {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return Neutral
	}
	v := *value
	switch {
	case low == high:
		return Neutral
	case low < high:
		return (v - low) / (high - low)
	default:
		return (low - v) / (low - high)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
