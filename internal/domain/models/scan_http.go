package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Requests for scan HTTP endpoints. Defined in domain for consistency and reuse.

type ScanRequest struct {
	Tickers TickerList `query:"tickers" json:"tickers"`
	AssumptionOverrides
}

type StockRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,max=20"`
	AssumptionOverrides
}

// TickerList accepts "AAPL, MSFT" style strings as well as JSON arrays.
// Entries are raw; the handler normalises them.
type TickerList []string

// UnmarshalParam implements echo.BindUnmarshaler for query strings.
func (t *TickerList) UnmarshalParam(param string) error {
	*t = SplitTickers(param)
	return nil
}

// UnmarshalParams implements echo.BindMultipleUnmarshaler for repeated keys.
func (t *TickerList) UnmarshalParams(params []string) error {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, SplitTickers(p)...)
	}
	*t = out
	return nil
}

// UnmarshalJSON accepts either a string or an array of strings.
func (t *TickerList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = SplitTickers(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("tickers must be a string or an array of strings")
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, SplitTickers(item)...)
	}
	*t = out
	return nil
}

// SplitTickers splits s on commas and whitespace, dropping empty parts.
func SplitTickers(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
