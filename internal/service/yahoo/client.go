// Package yahoo implements the quote provider on the public Yahoo Finance endpoints.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"StockScan/internal/domain/models"
	"StockScan/internal/domain/repository"
	"StockScan/pkg/cache"
	xhttp "StockScan/pkg/http"
	applogger "StockScan/pkg/logger"
)

const summaryModules = "price,summaryDetail,defaultKeyStatistics,financialData,earningsTrend"

// Config holds provider settings.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	UserAgent     string
	RatePerSecond float64 // 0 disables throttling
	Burst         int
	Retries       int
	HistoryRange  string
	CacheTTL      time.Duration
}

// Client fetches and caches upstream records. It is safe for concurrent use.
type Client struct {
	base         *httpBase
	cache        cache.Service
	ttl          time.Duration
	historyRange string
	metrics      repository.Metrics
	logger       *applogger.Logger
}

// New builds a client. store may be nil to disable caching.
func New(cfg Config, store cache.Service, metrics repository.Metrics, l *applogger.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	historyRange := cfg.HistoryRange
	if historyRange == "" {
		historyRange = "1y"
	}

	hc := xhttp.NewClient(
		xhttp.WithTimeout(timeout),
		xhttp.WithHeader("User-Agent", cfg.UserAgent),
	)
	return &Client{
		base:         newHTTPBase(strings.TrimRight(cfg.BaseURL, "/"), hc, limiter, cfg.Retries+1),
		cache:        store,
		ttl:          cfg.CacheTTL,
		historyRange: historyRange,
		metrics:      metrics,
		logger:       l,
	}
}

// FetchQuote returns the live quote snapshot.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	return cached(ctx, c, "quote", cache.GenerateKey("quote", symbol), func(ctx context.Context) (*models.Quote, error) {
		var resp quoteResponse
		q := url.Values{"symbols": {symbol}}
		if err := c.base.GetJSONWithRetry(ctx, "/v7/finance/quote", q, &resp); err != nil {
			return nil, err
		}
		if e := resp.QuoteResponse.Error; e != nil {
			return nil, fmt.Errorf("quote %s: %s", symbol, e.Description)
		}
		for _, r := range resp.QuoteResponse.Result {
			if strings.EqualFold(r.Symbol, symbol) {
				return toQuote(r), nil
			}
		}
		return nil, fmt.Errorf("quote %s: %w", symbol, repository.ErrSymbolNotFound)
	})
}

// FetchSummary returns fundamentals and analyst estimates.
func (c *Client) FetchSummary(ctx context.Context, symbol string) (*models.Summary, error) {
	return cached(ctx, c, "summary", cache.GenerateKey("summary", symbol), func(ctx context.Context) (*models.Summary, error) {
		var resp summaryResponse
		q := url.Values{"modules": {summaryModules}}
		if err := c.base.GetJSONWithRetry(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), q, &resp); err != nil {
			return nil, classify(symbol, err)
		}
		if e := resp.QuoteSummary.Error; e != nil {
			return nil, fmt.Errorf("summary %s: %s", symbol, e.Description)
		}
		if len(resp.QuoteSummary.Result) == 0 {
			return nil, fmt.Errorf("summary %s: %w", symbol, repository.ErrSymbolNotFound)
		}
		return toSummary(symbol, resp.QuoteSummary.Result[0]), nil
	})
}

// FetchHistory returns daily closes over the configured range.
func (c *Client) FetchHistory(ctx context.Context, symbol string) ([]models.PriceBar, error) {
	return cached(ctx, c, "history", cache.GenerateKeyWithParams("history", symbol, c.historyRange), func(ctx context.Context) ([]models.PriceBar, error) {
		var resp chartResponse
		q := url.Values{"interval": {"1d"}, "range": {c.historyRange}}
		if err := c.base.GetJSONWithRetry(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), q, &resp); err != nil {
			return nil, classify(symbol, err)
		}
		if e := resp.Chart.Error; e != nil {
			return nil, fmt.Errorf("history %s: %s", symbol, e.Description)
		}
		if len(resp.Chart.Result) == 0 {
			return nil, fmt.Errorf("history %s: %w", symbol, repository.ErrSymbolNotFound)
		}
		return toBars(resp.Chart.Result[0].Timestamp, closes(resp)), nil
	})
}

// cached serves key from the cache when possible and stores fresh loads.
// Cache failures only cost a refetch.
func cached[T any](ctx context.Context, c *Client, endpoint, key string, load func(context.Context) (T, error)) (T, error) {
	if c.cache != nil {
		var hit T
		if err := c.cache.Get(ctx, key, &hit); err == nil {
			c.metrics.RecordCache(endpoint, true)
			return hit, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn("cache read failed", applogger.String("key", key), applogger.Error(err))
		}
		c.metrics.RecordCache(endpoint, false)
	}

	start := time.Now()
	v, err := load(ctx)
	c.metrics.RecordFetch(endpoint, time.Since(start).Seconds(), err)
	if err != nil {
		var zero T
		return zero, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, v, c.ttl); err != nil {
			c.logger.Warn("cache write failed", applogger.String("key", key), applogger.Error(err))
		}
	}
	return v, nil
}

// classify maps an upstream 404 onto ErrSymbolNotFound.
func classify(symbol string, err error) error {
	var se *xhttp.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w: %v", symbol, repository.ErrSymbolNotFound, err)
	}
	return err
}

func toQuote(r quoteResult) *models.Quote {
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}
	return &models.Quote{
		Symbol:     r.Symbol,
		Name:       name,
		Currency:   r.Currency,
		Price:      r.RegularMarketPrice,
		TrailingPE: r.TrailingPE,
		ForwardPE:  r.ForwardPE,
		PEG:        r.PEGRatio,
		EPS:        r.EPSTrailing,
		MarketCap:  r.MarketCap,
	}
}

func toSummary(symbol string, r summaryResult) *models.Summary {
	s := &models.Summary{Quote: models.Quote{Symbol: symbol}}

	if p := r.Price; p != nil {
		s.Quote.Name = p.LongName
		if s.Quote.Name == "" {
			s.Quote.Name = p.ShortName
		}
		s.Quote.Currency = p.Currency
		s.Quote.Price = p.RegularMarketPrice.value()
		s.Quote.MarketCap = p.MarketCap.value()
	}
	if d := r.SummaryDetail; d != nil {
		s.Quote.TrailingPE = d.TrailingPE.value()
		s.Quote.ForwardPE = d.ForwardPE.value()
		s.Quote.MarketCap = first(s.Quote.MarketCap, d.MarketCap.value())
	}
	if k := r.DefaultKeyStatistics; k != nil {
		s.Quote.PEG = k.PEGRatio.value()
		s.Quote.EPS = k.TrailingEPS.value()
		s.Quote.ForwardPE = first(s.Quote.ForwardPE, k.ForwardPE.value())
	}
	if f := r.FinancialData; f != nil {
		s.Quote.Price = first(s.Quote.Price, f.CurrentPrice.value())
		s.Financials = models.Financials{
			ROE:             f.ReturnOnEquity.value(),
			DebtToEquity:    f.DebtToEquity.value(),
			ProfitMargin:    f.ProfitMargins.value(),
			RevenueGrowth:   f.RevenueGrowth.value(),
			EarningsGrowth:  f.EarningsGrowth.value(),
			TargetMeanPrice: f.TargetMeanPrice.value(),
		}
	}
	if t := r.EarningsTrend; t != nil {
		for _, period := range t.Trend {
			switch period.Period {
			case "+5y":
				s.Trend.LongTerm = period.Growth.value()
			case "+1y":
				s.Trend.NextYear = period.Growth.value()
			case "0y":
				s.Trend.ThisYear = period.Growth.value()
			}
		}
	}
	return s
}

func closes(resp chartResponse) []*float64 {
	q := resp.Chart.Result[0].Indicators.Quote
	if len(q) == 0 {
		return nil
	}
	return q[0].Close
}

// toBars pairs timestamps with closes, skipping null observations.
func toBars(ts []int64, cl []*float64) []models.PriceBar {
	n := len(ts)
	if len(cl) < n {
		n = len(cl)
	}
	out := make([]models.PriceBar, 0, n)
	for i := 0; i < n; i++ {
		if cl[i] == nil {
			continue
		}
		out = append(out, models.PriceBar{Time: time.Unix(ts[i], 0).UTC(), Close: *cl[i]})
	}
	return out
}

func first(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}

var _ repository.QuoteProvider = (*Client)(nil)
