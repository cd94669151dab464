package models

// ScanScore holds the 0-100 sub-scores and their weighted total.
type ScanScore struct {
	Profitability   int `json:"profitability"`
	Growth          int `json:"growth"`
	FinancialHealth int `json:"financialHealth"`
	Valuation       int `json:"valuation"`
	Momentum        int `json:"momentum"`
	Total           int `json:"total"`
}

// ValuationInputs echoes every input the intrinsic value model used.
type ValuationInputs struct {
	EPS                 *float64 `json:"eps"`
	CurrentPrice        *float64 `json:"currentPrice"`
	Growth              float64  `json:"growth"`
	DiscountRate        float64  `json:"discountRate"`
	Years               int      `json:"years"`
	ExitPE              float64  `json:"exitPE"`
	DividendPayoutRatio float64  `json:"dividendPayoutRatio"`
}

// IntrinsicValueResult is the output of the intrinsic value model.
// IntrinsicValue and UpsidePercent are nil when EPS or price is unusable.
type IntrinsicValueResult struct {
	IntrinsicValue *float64        `json:"intrinsicValue"`
	UpsidePercent  *float64        `json:"upsidePercent"`
	InputsUsed     ValuationInputs `json:"inputsUsed"`
}

// FutureProjection is a low/base/high price band at a horizon in years.
type FutureProjection struct {
	Years int      `json:"years"`
	Low   *float64 `json:"low"`
	Base  *float64 `json:"base"`
	High  *float64 `json:"high"`
}

// ScanResult is one row of a scan. Score and Valuation are nil when the
// fundamentals could not be fetched; Error then says why.
type ScanResult struct {
	Symbol        string                `json:"symbol"`
	Quote         *Quote                `json:"quote"`
	Financials    *Financials           `json:"financials"`
	Trend         *EarningsTrend        `json:"trend"`
	PriceChange1Y *float64              `json:"priceChange1y"`
	Score         *ScanScore            `json:"score"`
	Valuation     *IntrinsicValueResult `json:"valuation"`
	Projections   []FutureProjection    `json:"projections,omitempty"`
	Error         string                `json:"error,omitempty"`
}

// Upside returns the modelled upside or nil.
func (r ScanResult) Upside() *float64 {
	if r.Valuation == nil {
		return nil
	}
	return r.Valuation.UpsidePercent
}

// ScanResponse is the payload of a batch scan.
type ScanResponse struct {
	Assumptions Assumptions  `json:"assumptions"`
	Results     []ScanResult `json:"results"`
	Count       int          `json:"count"`
	Failed      int          `json:"failed"`
}
