package repository

import (
	"context"
	"errors"

	"StockScan/internal/domain/models"
)

// ErrSymbolNotFound is returned by a QuoteProvider that has no data for a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// QuoteProvider fetches market data for a single symbol. Implementations must
// be safe for concurrent use and honour ctx cancellation.
type QuoteProvider interface {
	FetchQuote(ctx context.Context, symbol string) (*models.Quote, error)
	FetchSummary(ctx context.Context, symbol string) (*models.Summary, error)
	FetchHistory(ctx context.Context, symbol string) ([]models.PriceBar, error)
}

type Metrics interface {
	RecordFetch(endpoint string, seconds float64, err error)
	RecordCache(endpoint string, hit bool)
	RecordScan(symbols, failed int, seconds float64)
	RecordError(kind string)
}
