// Package valuation holds the growth, intrinsic value and projection models.
// All functions are pure and safe for concurrent use.
package valuation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"StockScan/internal/domain/models"
)

const (
	MinGrowth = 0.0
	MaxGrowth = 0.30
)

// EstimateGrowth averages the finite analyst estimates in trend and clamps
// the mean to [MinGrowth, MaxGrowth]. With no estimates it returns fallback
// unchanged.
func EstimateGrowth(trend *models.EarningsTrend, fallback float64) float64 {
	if trend == nil {
		return fallback
	}
	estimates := make([]float64, 0, 3)
	for _, v := range []*float64{trend.LongTerm, trend.NextYear, trend.ThisYear} {
		if finite(v) {
			estimates = append(estimates, *v)
		}
	}
	if len(estimates) == 0 {
		return fallback
	}
	return clamp(stat.Mean(estimates, nil), MinGrowth, MaxGrowth)
}

// ModelGrowth is the growth rate the valuation and projection models use:
// the analyst estimate, or the assumed base growth when analysts are silent,
// always within [MinGrowth, MaxGrowth].
func ModelGrowth(trend *models.EarningsTrend, a models.Assumptions) float64 {
	return clamp(EstimateGrowth(trend, a.BaseGrowth), MinGrowth, MaxGrowth)
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
