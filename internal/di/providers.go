package di

import (
	"fmt"

	"StockScan/internal/domain/repository"
	domsvc "StockScan/internal/domain/service"
	"StockScan/internal/handler/api"
	"StockScan/internal/service/warmup"
	"StockScan/internal/service/yahoo"
	"StockScan/internal/services/analytics"
	"StockScan/internal/usecase"
	"StockScan/pkg/cache"
	"StockScan/pkg/config"
	xhttp "StockScan/pkg/http"
	applogger "StockScan/pkg/logger"
	"StockScan/pkg/metrics"
	"StockScan/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache returns the upstream record cache: memory only, or memory in
// front of Redis when Redis is enabled. It returns nil when caching is off.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		l.Info("cache disabled")
		return nil, nil
	}
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemorySize)), nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	l.Info("redis cache connected", applogger.String("addr", cfg.Cache.Redis.Addr))
	return cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(cfg.Cache.MemorySize),
		cache.WithLayeredMemoryTTL(cfg.Cache.TTL),
	), nil
}

// ProvideQuoteProvider creates the Yahoo Finance provider.
func ProvideQuoteProvider(cfg *config.Config, store cache.Service, m repository.Metrics, l *applogger.Logger) repository.QuoteProvider {
	return yahoo.New(yahoo.Config{
		BaseURL:       cfg.Provider.BaseURL,
		Timeout:       cfg.Provider.Timeout,
		UserAgent:     cfg.Provider.UserAgent,
		RatePerSecond: cfg.Provider.RatePerSecond,
		Burst:         cfg.Provider.Burst,
		Retries:       cfg.Provider.Retries,
		HistoryRange:  cfg.Provider.HistoryRange,
		CacheTTL:      cfg.Cache.TTL,
	}, store, m, l.With(applogger.String("component", "yahoo")))
}

// ProvideAnalyzer creates the scoring and valuation analyzer.
func ProvideAnalyzer() domsvc.Analyzer {
	return analytics.NewStockAnalyzer()
}

// ProvideScanner creates the scan use case.
func ProvideScanner(cfg *config.Config, p repository.QuoteProvider, a domsvc.Analyzer, m repository.Metrics, l *applogger.Logger) *usecase.Scanner {
	return usecase.NewScanner(p, a, m, l,
		usecase.WithFetchTimeout(cfg.Provider.Timeout),
		usecase.WithConcurrency(cfg.Scan.Concurrency),
	)
}

// ProvideScanHandler creates the echo handler for the API.
func ProvideScanHandler(cfg *config.Config, s *usecase.Scanner, l *applogger.Logger) *api.ScanHandler {
	return api.NewScanHandler(l, s, api.ScanHandlerConfig{
		Defaults:   cfg.Assumptions,
		MaxSymbols: cfg.Scan.MaxSymbols,
		RateLimit: api.RateLimit{
			Enabled:  cfg.Scan.RateLimit.Enabled,
			Capacity: cfg.Scan.RateLimit.Capacity,
			Refill:   cfg.Scan.RateLimit.Refill,
		},
	})
}

// ProvideHTTPServer creates the echo server with the API routes.
func ProvideHTTPServer(cfg *config.Config, h *api.ScanHandler, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h, l,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORSOrigins(cfg.Server.CORSOrigins),
		xhttp.WithMetricsPath(metricsPath),
	)
}

// ProvideWarmup creates the watchlist warm-up job.
func ProvideWarmup(cfg *config.Config, p repository.QuoteProvider, store cache.Service, m repository.Metrics, l *applogger.Logger) *warmup.Job {
	return warmup.New(warmup.Config{
		Schedule:    cfg.Warmup.Cron,
		Symbols:     cfg.Warmup.Symbols,
		Concurrency: cfg.Scan.Concurrency,
	}, p, store, m, l.With(applogger.String("component", "warmup")))
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	h *api.ScanHandler,
	job *warmup.Job,
	store cache.Service,
) *server.App {
	return server.New(cfg, l, srv, h, job, store)
}
