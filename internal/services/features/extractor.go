// Package features derives price-history features used by the scorer.
package features

import (
	"math"

	"StockScan/internal/domain/models"
)

// FiniteCloses drops bars whose close is NaN, infinite or non-positive.
func FiniteCloses(bars []models.PriceBar) []float64 {
	out := make([]float64, 0, len(bars))
	for _, b := range bars {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) || b.Close <= 0 {
			continue
		}
		out = append(out, b.Close)
	}
	return out
}

// OneYearChange returns (last - first) / first over the usable closes of a
// daily series covering roughly one year. It returns nil when fewer than two
// usable closes remain.
func OneYearChange(bars []models.PriceBar) *float64 {
	closes := FiniteCloses(bars)
	if len(closes) < 2 {
		return nil
	}
	first, last := closes[0], closes[len(closes)-1]
	change := (last - first) / first
	return &change
}
