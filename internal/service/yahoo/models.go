package yahoo

// Wire formats of the public Yahoo Finance endpoints.

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol             string   `json:"symbol"`
	ShortName          string   `json:"shortName"`
	LongName           string   `json:"longName"`
	Currency           string   `json:"currency"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	TrailingPE         *float64 `json:"trailingPE"`
	ForwardPE          *float64 `json:"forwardPE"`
	PEGRatio           *float64 `json:"pegRatio"`
	EPSTrailing        *float64 `json:"epsTrailingTwelveMonths"`
	MarketCap          *float64 `json:"marketCap"`
}

// rawValue is the {"raw": x, "fmt": "..."} number envelope; {} means absent.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v *rawValue) value() *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *apiError       `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	Price *struct {
		Symbol             string    `json:"symbol"`
		ShortName          string    `json:"shortName"`
		LongName           string    `json:"longName"`
		Currency           string    `json:"currency"`
		RegularMarketPrice *rawValue `json:"regularMarketPrice"`
		MarketCap          *rawValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail *struct {
		TrailingPE *rawValue `json:"trailingPE"`
		ForwardPE  *rawValue `json:"forwardPE"`
		MarketCap  *rawValue `json:"marketCap"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics *struct {
		PEGRatio    *rawValue `json:"pegRatio"`
		TrailingEPS *rawValue `json:"trailingEps"`
		ForwardPE   *rawValue `json:"forwardPE"`
	} `json:"defaultKeyStatistics"`
	FinancialData *struct {
		CurrentPrice    *rawValue `json:"currentPrice"`
		ReturnOnEquity  *rawValue `json:"returnOnEquity"`
		DebtToEquity    *rawValue `json:"debtToEquity"`
		ProfitMargins   *rawValue `json:"profitMargins"`
		RevenueGrowth   *rawValue `json:"revenueGrowth"`
		EarningsGrowth  *rawValue `json:"earningsGrowth"`
		TargetMeanPrice *rawValue `json:"targetMeanPrice"`
	} `json:"financialData"`
	EarningsTrend *struct {
		Trend []struct {
			Period string    `json:"period"`
			Growth *rawValue `json:"growth"`
		} `json:"trend"`
	} `json:"earningsTrend"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}
