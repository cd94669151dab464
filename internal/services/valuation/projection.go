package valuation

import (
	"math"

	"StockScan/internal/domain/models"
)

// Horizons are the projection horizons in years.
var Horizons = []int{5, 10}

// ScenarioGrowth returns the low, base and high growth rates for a quote's
// trend. Low never exceeds base and is floored at zero; high is never below base.
func ScenarioGrowth(trend *models.EarningsTrend, a models.Assumptions) (low, base, high float64) {
	base = ModelGrowth(trend, a)
	low = math.Max(0, math.Min(base, a.LowGrowth))
	high = math.Max(base, a.HighGrowth)
	return low, base, high
}

// Project extrapolates EPS under the three growth scenarios and prices it at
// the exit multiple for every horizon. Bands are nil when EPS or price is unusable.
func Project(q *models.Quote, trend *models.EarningsTrend, a models.Assumptions) []models.FutureProjection {
	out := make([]models.FutureProjection, 0, len(Horizons))
	eps, _, ok := usable(q)
	low, base, high := ScenarioGrowth(trend, a)

	for _, h := range Horizons {
		p := models.FutureProjection{Years: h}
		if ok {
			p.Low = price(eps, low, h, a.ExitPE)
			p.Base = price(eps, base, h, a.ExitPE)
			p.High = price(eps, high, h, a.ExitPE)
		}
		out = append(out, p)
	}
	return out
}

func price(eps, growth float64, years int, exitPE float64) *float64 {
	v := eps * math.Pow(1+growth, float64(years)) * exitPE
	if !isFinite(v) {
		return nil
	}
	return &v
}
