package valuation

import (
	"math"

	"StockScan/internal/domain/models"
)

// IntrinsicValue discounts a payout fraction of each projected year's EPS plus
// an exit-multiple terminal value back to today.
//
// The value and upside are nil unless EPS is finite and positive and the
// current price is finite and positive. InputsUsed is filled either way.
func IntrinsicValue(q *models.Quote, trend *models.EarningsTrend, a models.Assumptions) models.IntrinsicValueResult {
	g := ModelGrowth(trend, a)
	res := models.IntrinsicValueResult{
		InputsUsed: models.ValuationInputs{
			Growth:              g,
			DiscountRate:        a.DiscountRate,
			Years:               a.Years,
			ExitPE:              a.ExitPE,
			DividendPayoutRatio: a.DividendPayoutRatio,
		},
	}
	if q == nil {
		return res
	}
	res.InputsUsed.EPS = q.EPS
	res.InputsUsed.CurrentPrice = q.Price

	eps, price, ok := usable(q)
	if !ok {
		return res
	}

	r := a.DiscountRate
	presentValue := 0.0
	for t := 1; t <= a.Years; t++ {
		projected := eps * math.Pow(1+g, float64(t))
		presentValue += a.DividendPayoutRatio * projected / math.Pow(1+r, float64(t))
	}
	terminal := eps * math.Pow(1+g, float64(a.Years)) * a.ExitPE
	discountedTerminal := terminal / math.Pow(1+r, float64(a.Years))

	value := presentValue + discountedTerminal
	upside := 100 * (value - price) / price
	if !isFinite(value) || !isFinite(upside) {
		return res
	}
	res.IntrinsicValue = &value
	res.UpsidePercent = &upside
	return res
}

// usable reports whether the quote carries an EPS and price the models can use.
func usable(q *models.Quote) (eps, price float64, ok bool) {
	if q == nil || !finite(q.EPS) || !finite(q.Price) {
		return 0, 0, false
	}
	eps, price = *q.EPS, *q.Price
	if eps <= 0 || price <= 0 {
		return 0, 0, false
	}
	return eps, price, true
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
