package api

import (
	"StockScan/internal/domain/models"
	"StockScan/pkg/util"
)

// Display precision of response numbers.
const (
	pricePlaces  = 2
	upsidePlaces = 2
	ratioPlaces  = 4
)

func presentScan(res *models.ScanResponse) *models.ScanResponse {
	out := *res
	out.Results = make([]models.ScanResult, len(res.Results))
	for i, r := range res.Results {
		out.Results[i] = presentResult(r)
	}
	return &out
}

// presentResult rounds money to cents and ratios to basis points. Inputs are not modified.
func presentResult(r models.ScanResult) models.ScanResult {
	if r.Quote != nil {
		q := *r.Quote
		q.Price = util.RoundPtr(q.Price, pricePlaces)
		q.TrailingPE = util.RoundPtr(q.TrailingPE, pricePlaces)
		q.ForwardPE = util.RoundPtr(q.ForwardPE, pricePlaces)
		q.PEG = util.RoundPtr(q.PEG, pricePlaces)
		q.EPS = util.RoundPtr(q.EPS, pricePlaces)
		r.Quote = &q
	}
	if r.Financials != nil {
		f := *r.Financials
		f.TargetMeanPrice = util.RoundPtr(f.TargetMeanPrice, pricePlaces)
		r.Financials = &f
	}
	r.PriceChange1Y = util.RoundPtr(r.PriceChange1Y, ratioPlaces)
	if r.Valuation != nil {
		v := *r.Valuation
		v.IntrinsicValue = util.RoundPtr(v.IntrinsicValue, pricePlaces)
		v.UpsidePercent = util.RoundPtr(v.UpsidePercent, upsidePlaces)
		v.InputsUsed.Growth = util.Round(v.InputsUsed.Growth, ratioPlaces)
		r.Valuation = &v
	}
	if r.Projections != nil {
		ps := make([]models.FutureProjection, len(r.Projections))
		for i, p := range r.Projections {
			ps[i] = models.FutureProjection{
				Years: p.Years,
				Low:   util.RoundPtr(p.Low, pricePlaces),
				Base:  util.RoundPtr(p.Base, pricePlaces),
				High:  util.RoundPtr(p.High, pricePlaces),
			}
		}
		r.Projections = ps
	}
	return r
}
