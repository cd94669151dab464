package models

import "time"

// Quote is a point-in-time market snapshot for one symbol.
type Quote struct {
	Symbol     string   `json:"symbol" msgpack:"symbol"`
	Name       string   `json:"name,omitempty" msgpack:"name"`
	Currency   string   `json:"currency,omitempty" msgpack:"currency"`
	Price      *float64 `json:"price" msgpack:"price"`
	TrailingPE *float64 `json:"trailingPE" msgpack:"trailing_pe"`
	ForwardPE  *float64 `json:"forwardPE" msgpack:"forward_pe"`
	PEG        *float64 `json:"peg" msgpack:"peg"`
	EPS        *float64 `json:"eps" msgpack:"eps"` // trailing twelve months
	MarketCap  *float64 `json:"marketCap" msgpack:"market_cap"`
}

// Financials holds fundamental ratios. Every field is optional.
type Financials struct {
	ROE             *float64 `json:"roe" msgpack:"roe"`                        // fraction
	DebtToEquity    *float64 `json:"debtToEquity" msgpack:"debt_to_equity"`    // percent
	ProfitMargin    *float64 `json:"profitMargin" msgpack:"profit_margin"`     // fraction
	RevenueGrowth   *float64 `json:"revenueGrowth" msgpack:"revenue_growth"`   // fraction
	EarningsGrowth  *float64 `json:"earningsGrowth" msgpack:"earnings_growth"` // fraction
	TargetMeanPrice *float64 `json:"targetMeanPrice" msgpack:"target_mean_price"`
}

// EarningsTrend carries analyst growth estimates as fractions.
type EarningsTrend struct {
	LongTerm *float64 `json:"longTerm" msgpack:"long_term"` // +5y
	NextYear *float64 `json:"nextYear" msgpack:"next_year"` // +1y
	ThisYear *float64 `json:"thisYear" msgpack:"this_year"` // 0y
}

// Summary is the fundamentals bundle returned by the quote provider.
type Summary struct {
	Quote      Quote         `json:"quote" msgpack:"quote"`
	Financials Financials    `json:"financials" msgpack:"financials"`
	Trend      EarningsTrend `json:"trend" msgpack:"trend"`
}

// PriceBar is one daily close of a price history.
type PriceBar struct {
	Time  time.Time `json:"time" msgpack:"time"`
	Close float64   `json:"close" msgpack:"close"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
