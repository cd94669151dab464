package scoring

import (
	"math"

	"StockScan/internal/domain/models"
	"StockScan/internal/services/valuation"
)

// Sub-score weights of the total.
const (
	WeightProfitability   = 0.28
	WeightGrowth          = 0.28
	WeightFinancialHealth = 0.18
	WeightValuation       = 0.18
	WeightMomentum        = 0.08
)

// GrowthFallback is the growth assumed for scoring when analysts are silent.
const GrowthFallback = 0.12

// Range is a calibration interval for Normalize.
type Range struct{ Low, High float64 }

var (
	roeRange          = Range{0.05, 0.30}
	marginRange       = Range{0.05, 0.30}
	growthRange       = Range{0.05, 0.25}
	debtRange         = Range{30, 150}
	healthMarginRange = Range{0.05, 0.25}
	peRange           = Range{10, 35}
	pegRange          = Range{0.8, 2.0}
	momentumRange     = Range{-0.20, 0.60}
)

func norm(v *float64, r Range) float64 { return Normalize(v, r.Low, r.High) }

// Components are the clamped [0,1] sub-scores before display rounding.
type Components struct {
	Profitability   float64
	Growth          float64
	FinancialHealth float64
	Valuation       float64
	Momentum        float64
}

// Total is the weighted sum of the components in [0,1].
func (c Components) Total() float64 {
	return WeightProfitability*c.Profitability +
		WeightGrowth*c.Growth +
		WeightFinancialHealth*c.FinancialHealth +
		WeightValuation*c.Valuation +
		WeightMomentum*c.Momentum
}

// Evaluate computes the clamped sub-scores. Any nil argument or field counts
// as unknown and scores neutral.
func Evaluate(q *models.Quote, f *models.Financials, trend *models.EarningsTrend, priceChange1Y *float64) Components {
	if q == nil {
		q = &models.Quote{}
	}
	if f == nil {
		f = &models.Financials{}
	}
	growth := valuation.EstimateGrowth(trend, GrowthFallback)

	profitability := 0.6*norm(f.ROE, roeRange) + 0.4*norm(f.ProfitMargin, marginRange)
	health := 0.7*(1-norm(f.DebtToEquity, debtRange)) + 0.3*norm(f.ProfitMargin, healthMarginRange)
	value := 0.6*(1-norm(pickPE(q), peRange)) + 0.4*(1-norm(q.PEG, pegRange))

	return Components{
		Profitability:   clamp01(profitability),
		Growth:          clamp01(norm(&growth, growthRange)),
		FinancialHealth: clamp01(health),
		Valuation:       clamp01(value),
		Momentum:        clamp01(norm(priceChange1Y, momentumRange)),
	}
}

// Score returns the displayed ScanScore for one symbol.
func Score(q *models.Quote, f *models.Financials, trend *models.EarningsTrend, priceChange1Y *float64) models.ScanScore {
	c := Evaluate(q, f, trend, priceChange1Y)
	return models.ScanScore{
		Profitability:   toPercent(c.Profitability),
		Growth:          toPercent(c.Growth),
		FinancialHealth: toPercent(c.FinancialHealth),
		Valuation:       toPercent(c.Valuation),
		Momentum:        toPercent(c.Momentum),
		Total:           toPercent(c.Total()),
	}
}

// pickPE prefers the trailing P/E and falls back to the forward one.
func pickPE(q *models.Quote) *float64 {
	if q.TrailingPE != nil && !math.IsNaN(*q.TrailingPE) && !math.IsInf(*q.TrailingPE, 0) {
		return q.TrailingPE
	}
	return q.ForwardPE
}

func toPercent(v float64) int {
	return int(math.Round(100 * clamp01(v)))
}
