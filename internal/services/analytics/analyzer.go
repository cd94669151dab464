// Package analytics assembles per-symbol results from fetched market data.
package analytics

import (
	"StockScan/internal/domain/models"
	domsvc "StockScan/internal/domain/service"
	"StockScan/internal/services/features"
	"StockScan/internal/services/scoring"
	"StockScan/internal/services/valuation"
)

// StockAnalyzer is stateless and safe for concurrent use.
type StockAnalyzer struct{}

func NewStockAnalyzer() *StockAnalyzer { return &StockAnalyzer{} }

// Analyze builds a result row. Without a summary the row only carries the
// quote and price change; score and valuation stay nil.
func (StockAnalyzer) Analyze(symbol string, data domsvc.MarketData, a models.Assumptions) models.ScanResult {
	res := models.ScanResult{
		Symbol:        symbol,
		Quote:         MergeQuote(data.Quote, data.Summary),
		PriceChange1Y: features.OneYearChange(data.History),
	}
	if data.Summary == nil {
		return res
	}

	fin := data.Summary.Financials
	trend := data.Summary.Trend
	res.Financials = &fin
	res.Trend = &trend

	score := scoring.Score(res.Quote, &fin, &trend, res.PriceChange1Y)
	res.Score = &score

	val := valuation.IntrinsicValue(res.Quote, &trend, a)
	res.Valuation = &val
	return res
}

// Project returns the price bands for the detail view.
func (StockAnalyzer) Project(data domsvc.MarketData, a models.Assumptions) []models.FutureProjection {
	var trend *models.EarningsTrend
	if data.Summary != nil {
		trend = &data.Summary.Trend
	}
	return valuation.Project(MergeQuote(data.Quote, data.Summary), trend, a)
}

// MergeQuote prefers live quote fields and fills the gaps from the summary.
func MergeQuote(q *models.Quote, s *models.Summary) *models.Quote {
	switch {
	case q == nil && s == nil:
		return nil
	case s == nil:
		out := *q
		return &out
	case q == nil:
		out := s.Quote
		return &out
	}

	out := *q
	fb := s.Quote
	if out.Name == "" {
		out.Name = fb.Name
	}
	if out.Currency == "" {
		out.Currency = fb.Currency
	}
	fill(&out.Price, fb.Price)
	fill(&out.TrailingPE, fb.TrailingPE)
	fill(&out.ForwardPE, fb.ForwardPE)
	fill(&out.PEG, fb.PEG)
	fill(&out.EPS, fb.EPS)
	fill(&out.MarketCap, fb.MarketCap)
	return &out
}

func fill(dst **float64, v *float64) {
	if *dst == nil {
		*dst = v
	}
}

var _ domsvc.Analyzer = (*StockAnalyzer)(nil)
