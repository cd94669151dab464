package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockScan/internal/handler/api"
	"StockScan/internal/service/warmup"
	"StockScan/pkg/cache"
	"StockScan/pkg/config"
	xhttp "StockScan/pkg/http"
	applogger "StockScan/pkg/logger"
)

const (
	pruneEvery = time.Minute
	clientIdle = 10 * time.Minute
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg     *config.Config
	logger  *applogger.Logger
	server  *xhttp.Server
	handler *api.ScanHandler
	warmup  *warmup.Job
	store   cache.Service
}

// New creates a new App instance with all dependencies. store may be nil when
// caching is disabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	server *xhttp.Server,
	handler *api.ScanHandler,
	job *warmup.Job,
	store cache.Service,
) *App {
	return &App{
		cfg:     cfg,
		logger:  l,
		server:  server,
		handler: handler,
		warmup:  job,
		store:   store,
	}
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.server.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	if a.cfg.Warmup.Enabled && a.warmup != nil {
		if err := a.warmup.Start(); err != nil {
			a.logger.Error("warmup start error", applogger.Error(err))
			return err
		}
	}

	go a.pruneClients(ctx)

	a.logger.Info("stockscan started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Bool("cache", a.store != nil),
		applogger.Bool("warmup", a.cfg.Warmup.Enabled),
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// pruneClients drops idle rate-limit buckets until ctx ends.
func (a *App) pruneClients(ctx context.Context) {
	t := time.NewTicker(pruneEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := a.handler.PruneClients(clientIdle); n > 0 {
				a.logger.Debug("pruned idle clients", applogger.Int("count", n))
			}
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.warmup != nil {
		a.warmup.Stop(ctx)
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
