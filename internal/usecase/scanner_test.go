package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScan/internal/domain/models"
	domrepo "StockScan/internal/domain/repository"
	"StockScan/internal/services/analytics"
	applogger "StockScan/pkg/logger"
	"StockScan/pkg/metrics"
)

type fakeProvider struct {
	mu         sync.Mutex
	summaries  map[string]*models.Summary
	quoteErr   map[string]error
	summaryErr map[string]error
	historyErr map[string]error
	delay      time.Duration
	calls      int
	inFlight   int
	peak       int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		summaries:  map[string]*models.Summary{},
		quoteErr:   map[string]error{},
		summaryErr: map[string]error{},
		historyErr: map[string]error{},
	}
}

func (f *fakeProvider) wait(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	f.peak = max(f.peak, f.inFlight)
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeProvider) FetchQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if err := f.quoteErr[symbol]; err != nil {
		return nil, err
	}
	s, ok := f.summaries[symbol]
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, domrepo.ErrSymbolNotFound)
	}
	q := s.Quote
	return &q, nil
}

func (f *fakeProvider) FetchSummary(ctx context.Context, symbol string) (*models.Summary, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if err := f.summaryErr[symbol]; err != nil {
		return nil, err
	}
	s, ok := f.summaries[symbol]
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, domrepo.ErrSymbolNotFound)
	}
	out := *s
	return &out, nil
}

func (f *fakeProvider) FetchHistory(ctx context.Context, symbol string) ([]models.PriceBar, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if err := f.historyErr[symbol]; err != nil {
		return nil, err
	}
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	return []models.PriceBar{{Time: start, Close: 100}, {Time: start.AddDate(1, 0, 0), Close: 120}}, nil
}

// company builds a summary whose score rises with quality in [0,1].
func company(symbol string, quality, eps float64) *models.Summary {
	return &models.Summary{
		Quote: models.Quote{
			Symbol:     symbol,
			Price:      models.Float(100),
			EPS:        models.Float(eps),
			TrailingPE: models.Float(35 - 25*quality),
			PEG:        models.Float(2 - 1.2*quality),
		},
		Financials: models.Financials{
			ROE:          models.Float(0.05 + 0.25*quality),
			ProfitMargin: models.Float(0.05 + 0.25*quality),
			DebtToEquity: models.Float(150 - 120*quality),
		},
		Trend: models.EarningsTrend{LongTerm: models.Float(0.05 + 0.2*quality)},
	}
}

func newTestScanner(p *fakeProvider, opts ...ScannerOption) *Scanner {
	return NewScanner(p, analytics.NewStockAnalyzer(), metrics.NewWithRegistry(prometheus.NewRegistry()), applogger.NewNop(), opts...)
}

func symbolsOf(rows []models.ScanResult) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Symbol
	}
	return out
}

func TestScanOrdersByTotalScore(t *testing.T) {
	p := newFakeProvider()
	p.summaries["LOW"] = company("LOW", 0.1, 2)
	p.summaries["MID"] = company("MID", 0.5, 2)
	p.summaries["TOP"] = company("TOP", 0.9, 2)

	resp, err := newTestScanner(p).Scan(context.Background(), []string{"LOW", "TOP", "MID"}, models.DefaultAssumptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"TOP", "MID", "LOW"}, symbolsOf(resp.Results))
	assert.Equal(t, 3, resp.Count)
	assert.Zero(t, resp.Failed)
	for _, r := range resp.Results {
		require.NotNil(t, r.Score)
		require.NotNil(t, r.PriceChange1Y)
		assert.InDelta(t, 0.2, *r.PriceChange1Y, 1e-12)
	}
}

func TestScanIsolatesFailures(t *testing.T) {
	p := newFakeProvider()
	p.summaries["AAA"] = company("AAA", 0.5, 2)
	p.summaries["BBB"] = company("BBB", 0.5, 2)
	p.summaryErr["BBB"] = errors.New("upstream 502")

	resp, err := newTestScanner(p).Scan(context.Background(), []string{"BBB", "NOPE", "AAA"}, models.DefaultAssumptions())
	require.NoError(t, err)

	require.Len(t, resp.Results, 3)
	assert.Equal(t, "AAA", resp.Results[0].Symbol)
	assert.Empty(t, resp.Results[0].Error)
	assert.Equal(t, 2, resp.Failed)

	partial := resp.Results[1]
	assert.Equal(t, "BBB", partial.Symbol)
	assert.Contains(t, partial.Error, "upstream 502")
	require.NotNil(t, partial.Quote, "quote survives a summary failure")
	assert.Nil(t, partial.Score)
	assert.Nil(t, partial.Valuation)
	assert.Nil(t, partial.Financials)

	missing := resp.Results[2]
	assert.Equal(t, "NOPE", missing.Symbol)
	assert.NotEmpty(t, missing.Error)
	assert.Nil(t, missing.Quote)
}

func TestScanHistoryFailureOnlyDropsMomentum(t *testing.T) {
	p := newFakeProvider()
	p.summaries["AAA"] = company("AAA", 0.5, 2)
	p.historyErr["AAA"] = errors.New("chart down")

	resp, err := newTestScanner(p).Scan(context.Background(), []string{"AAA"}, models.DefaultAssumptions())
	require.NoError(t, err)

	row := resp.Results[0]
	assert.Empty(t, row.Error)
	assert.Nil(t, row.PriceChange1Y)
	require.NotNil(t, row.Score)
	assert.Equal(t, 50, row.Score.Momentum)
}

func TestScanTiesBrokenByUpside(t *testing.T) {
	p := newFakeProvider()
	// identical fundamentals; only EPS differs so totals tie and upside decides
	p.summaries["CHEAP"] = company("CHEAP", 0.5, 8)
	p.summaries["RICH"] = company("RICH", 0.5, 3)
	p.summaries["NOEPS"] = company("NOEPS", 0.5, -1)

	resp, err := newTestScanner(p).Scan(context.Background(), []string{"NOEPS", "RICH", "CHEAP"}, models.DefaultAssumptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"CHEAP", "RICH", "NOEPS"}, symbolsOf(resp.Results))
	assert.Nil(t, resp.Results[2].Valuation.IntrinsicValue)
}

func TestScanTimeoutIsPerSymbolFailure(t *testing.T) {
	p := newFakeProvider()
	p.summaries["SLOW"] = company("SLOW", 0.5, 2)
	p.delay = 200 * time.Millisecond

	resp, err := newTestScanner(p, WithFetchTimeout(20*time.Millisecond)).
		Scan(context.Background(), []string{"SLOW"}, models.DefaultAssumptions())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Failed)
	assert.Contains(t, resp.Results[0].Error, context.DeadlineExceeded.Error())
}

func TestScanLimitsSymbolsInFlight(t *testing.T) {
	p := newFakeProvider()
	for _, s := range []string{"A", "B", "C", "D"} {
		p.summaries[s] = company(s, 0.5, 2)
	}
	p.delay = 10 * time.Millisecond

	resp, err := newTestScanner(p, WithConcurrency(1)).
		Scan(context.Background(), []string{"A", "B", "C", "D"}, models.DefaultAssumptions())
	require.NoError(t, err)

	assert.Zero(t, resp.Failed)
	// one symbol at a time, each with quote, summary and history in parallel
	assert.LessOrEqual(t, p.peak, 3)
	assert.Equal(t, 12, p.calls)
}

func TestScanRejectsEmptyBatch(t *testing.T) {
	_, err := newTestScanner(newFakeProvider()).Scan(context.Background(), nil, models.DefaultAssumptions())
	assert.ErrorIs(t, err, ErrNoSymbols)
}

func TestScanAppliesAssumptions(t *testing.T) {
	p := newFakeProvider()
	p.summaries["AAA"] = company("AAA", 0.5, 2)
	a := models.DefaultAssumptions()
	a.ExitPE = 30

	resp, err := newTestScanner(p).Scan(context.Background(), []string{"AAA"}, a)
	require.NoError(t, err)

	assert.Equal(t, a, resp.Assumptions)
	assert.Equal(t, 30.0, resp.Results[0].Valuation.InputsUsed.ExitPE)
}

func TestDetailAddsProjections(t *testing.T) {
	p := newFakeProvider()
	p.summaries["AAA"] = company("AAA", 0.5, 2)

	row, err := newTestScanner(p).Detail(context.Background(), "AAA", models.DefaultAssumptions())
	require.NoError(t, err)

	require.Len(t, row.Projections, 2)
	assert.Equal(t, 5, row.Projections[0].Years)
	assert.Equal(t, 10, row.Projections[1].Years)
	require.NotNil(t, row.Projections[0].Base)
}

func TestDetailMissingEPS(t *testing.T) {
	p := newFakeProvider()
	s := company("AAA", 0.5, 2)
	s.Quote.EPS = nil
	p.summaries["AAA"] = s

	row, err := newTestScanner(p).Detail(context.Background(), "AAA", models.DefaultAssumptions())
	require.NoError(t, err)

	require.NotNil(t, row.Score)
	assert.Nil(t, row.Valuation.IntrinsicValue)
	assert.Equal(t, []models.FutureProjection{{Years: 5}, {Years: 10}}, row.Projections)
}

func TestDetailUnknownSymbol(t *testing.T) {
	_, err := newTestScanner(newFakeProvider()).Detail(context.Background(), "NOPE", models.DefaultAssumptions())
	assert.ErrorIs(t, err, domrepo.ErrSymbolNotFound)
}

func TestDetailSummaryFailureKeepsQuote(t *testing.T) {
	p := newFakeProvider()
	p.summaries["AAA"] = company("AAA", 0.5, 2)
	p.summaryErr["AAA"] = errors.New("boom")

	row, err := newTestScanner(p).Detail(context.Background(), "AAA", models.DefaultAssumptions())
	require.NoError(t, err)

	assert.NotEmpty(t, row.Error)
	assert.NotNil(t, row.Quote)
	assert.Nil(t, row.Projections)
}
