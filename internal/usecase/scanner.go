package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"StockScan/internal/domain/models"
	domrepo "StockScan/internal/domain/repository"
	domsvc "StockScan/internal/domain/service"
	applogger "StockScan/pkg/logger"
)

// ErrNoSymbols is returned when a scan is requested without symbols.
var ErrNoSymbols = errors.New("no symbols to scan")

// Scanner fetches market data for a batch of symbols concurrently and turns it
// into ranked result rows. A failing symbol never fails the batch.
type Scanner struct {
	provider     domrepo.QuoteProvider
	analyzer     domsvc.Analyzer
	metrics      domrepo.Metrics
	logger       *applogger.Logger
	fetchTimeout time.Duration
	concurrency  int
}

// ScannerOption configures Scanner.
type ScannerOption func(*Scanner)

// WithFetchTimeout bounds every individual upstream fetch.
func WithFetchTimeout(d time.Duration) ScannerOption {
	return func(s *Scanner) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithConcurrency caps how many symbols are processed at once.
func WithConcurrency(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewScanner(provider domrepo.QuoteProvider, analyzer domsvc.Analyzer, metrics domrepo.Metrics, l *applogger.Logger, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		provider:     provider,
		analyzer:     analyzer,
		metrics:      metrics,
		logger:       l,
		fetchTimeout: 10 * time.Second,
		concurrency:  16,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan evaluates every symbol under the same assumptions and returns the rows
// sorted by SortResults.
func (s *Scanner) Scan(ctx context.Context, symbols []string, a models.Assumptions) (*models.ScanResponse, error) {
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}
	start := time.Now()

	results := make([]models.ScanResult, len(symbols))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			data, err := s.fetch(ctx, symbol)
			row := s.analyzer.Analyze(symbol, data, a)
			if err != nil {
				row.Error = err.Error()
			}
			results[i] = row
			return nil
		})
	}
	_ = g.Wait()

	SortResults(results)

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	elapsed := time.Since(start)
	s.metrics.RecordScan(len(symbols), failed, elapsed.Seconds())
	s.logger.Info("scan finished",
		applogger.Int("symbols", len(symbols)),
		applogger.Int("failed", failed),
		applogger.Duration("duration_ms", elapsed),
	)

	return &models.ScanResponse{
		Assumptions: a,
		Results:     results,
		Count:       len(results),
		Failed:      failed,
	}, nil
}

// Detail evaluates one symbol and adds the price projections. It returns
// ErrSymbolNotFound when the provider knows nothing about the symbol.
func (s *Scanner) Detail(ctx context.Context, symbol string, a models.Assumptions) (*models.ScanResult, error) {
	data, err := s.fetch(ctx, symbol)
	if err != nil && data.Quote == nil && errors.Is(err, domrepo.ErrSymbolNotFound) {
		return nil, fmt.Errorf("detail %s: %w", symbol, err)
	}

	row := s.analyzer.Analyze(symbol, data, a)
	if err != nil {
		row.Error = err.Error()
	}
	if row.Score != nil {
		row.Projections = s.analyzer.Project(data, a)
	}
	return &row, nil
}

// fetch runs the quote, summary and history calls concurrently, each under its
// own timeout. The returned error is the summary failure, if any; quote and
// history failures only degrade the row.
func (s *Scanner) fetch(ctx context.Context, symbol string) (domsvc.MarketData, error) {
	var (
		data                          domsvc.MarketData
		quoteErr, summaryErr, histErr error
		g                             errgroup.Group
	)

	g.Go(func() error {
		fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
		data.Quote, quoteErr = s.provider.FetchQuote(fctx, symbol)
		return nil
	})
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
		data.Summary, summaryErr = s.provider.FetchSummary(fctx, symbol)
		return nil
	})
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
		data.History, histErr = s.provider.FetchHistory(fctx, symbol)
		return nil
	})
	_ = g.Wait()

	if quoteErr != nil {
		data.Quote = nil
		s.warn("quote fetch failed", symbol, quoteErr)
	}
	if histErr != nil {
		data.History = nil
		s.warn("history fetch failed", symbol, histErr)
	}
	if summaryErr != nil {
		data.Summary = nil
		s.warn("summary fetch failed", symbol, summaryErr)
		return data, fmt.Errorf("fundamentals unavailable: %w", summaryErr)
	}
	return data, nil
}

func (s *Scanner) warn(msg, symbol string, err error) {
	s.metrics.RecordError("provider")
	s.logger.Warn(msg, applogger.String("symbol", symbol), applogger.Error(err))
}
