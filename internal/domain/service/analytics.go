package service

import "StockScan/internal/domain/models"

// MarketData is everything fetched for one symbol. Nil members were unavailable.
type MarketData struct {
	Quote   *models.Quote
	Summary *models.Summary
	History []models.PriceBar
}

// Analyzer derives scores, valuation and projections from fetched market data.
type Analyzer interface {
	Analyze(symbol string, data MarketData, a models.Assumptions) models.ScanResult
	Project(data MarketData, a models.Assumptions) []models.FutureProjection
}
