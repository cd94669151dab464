package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"StockScan/internal/domain/models"
)

func ptr(v float64) *float64 { return &v }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		value     *float64
		low, high float64
		want      float64
	}{
		{"higher is better at low bound", ptr(0.05), 0.05, 0.30, 0},
		{"higher is better at high bound", ptr(0.30), 0.05, 0.30, 1},
		{"higher is better midpoint", ptr(0.175), 0.05, 0.30, 0.5},
		{"lower is better at numeric low", ptr(10), 35, 10, 1},
		{"lower is better at numeric high", ptr(35), 35, 10, 0},
		{"not clamped above", ptr(0.55), 0.05, 0.30, 2},
		{"not clamped below", ptr(-0.20), 0.05, 0.30, -1},
		{"nil is neutral", nil, 0.05, 0.30, Neutral},
		{"nan is neutral", ptr(math.NaN()), 0.05, 0.30, Neutral},
		{"inf is neutral", ptr(math.Inf(-1)), 0.05, 0.30, Neutral},
		{"degenerate range is neutral", ptr(7), 3, 3, Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Normalize(tt.value, tt.low, tt.high), 1e-12)
		})
	}
}

func TestScoreAllUnknown(t *testing.T) {
	got := Score(nil, nil, nil, nil)

	// growth falls back to 12% which sits 35% of the way through its range
	assert.Equal(t, models.ScanScore{
		Profitability:   50,
		Growth:          35,
		FinancialHealth: 50,
		Valuation:       50,
		Momentum:        50,
		Total:           46,
	}, got)
}

func TestScoreStrongCompany(t *testing.T) {
	q := &models.Quote{TrailingPE: ptr(10), PEG: ptr(0.8)}
	f := &models.Financials{ROE: ptr(0.30), ProfitMargin: ptr(0.30), DebtToEquity: ptr(30)}
	trend := &models.EarningsTrend{LongTerm: ptr(0.25)}

	got := Score(q, f, trend, ptr(0.60))

	assert.Equal(t, models.ScanScore{
		Profitability:   100,
		Growth:          100,
		FinancialHealth: 100,
		Valuation:       100,
		Momentum:        100,
		Total:           100,
	}, got)
}

func TestScoreWeakCompany(t *testing.T) {
	q := &models.Quote{TrailingPE: ptr(80), PEG: ptr(4)}
	f := &models.Financials{ROE: ptr(-0.4), ProfitMargin: ptr(-0.1), DebtToEquity: ptr(400)}
	trend := &models.EarningsTrend{LongTerm: ptr(-0.2)}

	got := Score(q, f, trend, ptr(-0.7))

	assert.Equal(t, models.ScanScore{}, got)
}

func TestScoreForwardPEFallback(t *testing.T) {
	trailing := Score(&models.Quote{TrailingPE: ptr(10)}, nil, nil, nil)
	forward := Score(&models.Quote{TrailingPE: ptr(math.NaN()), ForwardPE: ptr(10)}, nil, nil, nil)
	neither := Score(&models.Quote{}, nil, nil, nil)

	assert.Equal(t, trailing.Valuation, forward.Valuation)
	assert.Greater(t, forward.Valuation, neither.Valuation)
}

func TestScoreStaysInRange(t *testing.T) {
	values := []*float64{
		nil,
		ptr(math.NaN()),
		ptr(math.Inf(1)),
		ptr(math.Inf(-1)),
		ptr(-1e9),
		ptr(-1),
		ptr(0),
		ptr(0.1),
		ptr(25),
		ptr(1e9),
	}

	for _, a := range values {
		for _, b := range values {
			q := &models.Quote{TrailingPE: a, ForwardPE: b, PEG: b}
			f := &models.Financials{ROE: a, ProfitMargin: b, DebtToEquity: a}
			trend := &models.EarningsTrend{LongTerm: a, NextYear: b}

			s := Score(q, f, trend, b)
			for _, v := range []int{s.Profitability, s.Growth, s.FinancialHealth, s.Valuation, s.Momentum, s.Total} {
				assert.GreaterOrEqual(t, v, 0)
				assert.LessOrEqual(t, v, 100)
			}
		}
	}
}

func TestComponentsTotalWeights(t *testing.T) {
	sum := WeightProfitability + WeightGrowth + WeightFinancialHealth + WeightValuation + WeightMomentum
	assert.InDelta(t, 1.0, sum, 1e-12)

	c := Components{Profitability: 1}
	assert.InDelta(t, WeightProfitability, c.Total(), 1e-12)
}
