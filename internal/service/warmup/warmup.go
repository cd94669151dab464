// Package warmup periodically prefetches a watchlist so interactive scans
// are served from the provider cache.
package warmup

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	domrepo "StockScan/internal/domain/repository"
	"StockScan/pkg/cache"
	applogger "StockScan/pkg/logger"
)

const lockKey = "warmup:lock"

// Config drives the warm-up job.
type Config struct {
	Schedule    string // six-field cron expression, seconds first
	Symbols     []string
	Concurrency int
	Timeout     time.Duration // bound on a whole run
}

// Job fetches every watchlist symbol on a cron schedule. Runs on different
// replicas are serialised through a cache lock when a cache is configured.
type Job struct {
	cfg      Config
	provider domrepo.QuoteProvider
	lock     cache.Service
	metrics  domrepo.Metrics
	logger   *applogger.Logger
	cron     *cron.Cron
}

func New(cfg Config, provider domrepo.QuoteProvider, lock cache.Service, metrics domrepo.Metrics, l *applogger.Logger) *Job {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Job{
		cfg:      cfg,
		provider: provider,
		lock:     lock,
		metrics:  metrics,
		logger:   l,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start registers the schedule and starts the cron runner.
func (j *Job) Start() error {
	if len(j.cfg.Symbols) == 0 {
		j.logger.Info("warmup disabled: empty watchlist")
		return nil
	}
	if _, err := j.cron.AddFunc(j.cfg.Schedule, j.tick); err != nil {
		return fmt.Errorf("register warmup schedule %q: %w", j.cfg.Schedule, err)
	}
	j.cron.Start()
	j.logger.Info("warmup scheduled",
		applogger.String("cron", j.cfg.Schedule),
		applogger.Int("symbols", len(j.cfg.Symbols)),
	)
	return nil
}

// Stop stops scheduling and waits for a running warm-up or ctx, whichever ends first.
func (j *Job) Stop(ctx context.Context) {
	done := j.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		j.logger.Warn("warmup stop timed out", applogger.Error(ctx.Err()))
	}
}

func (j *Job) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.Timeout)
	defer cancel()
	if _, _, err := j.Run(ctx); err != nil {
		j.logger.Warn("warmup skipped", applogger.Error(err))
	}
}

// ErrLocked is returned by Run when another warm-up holds the lock.
var ErrLocked = errors.New("warmup already running")

// Run fetches quote, summary and history for every watchlist symbol once.
// It returns how many symbols were fully warmed and how many failed.
func (j *Job) Run(ctx context.Context) (warmed, failed int, err error) {
	if j.lock != nil {
		ok, err := j.lock.TryLock(ctx, lockKey, j.cfg.Timeout)
		if err != nil {
			return 0, 0, fmt.Errorf("acquire warmup lock: %w", err)
		}
		if !ok {
			return 0, 0, ErrLocked
		}
		defer func() {
			if err := j.lock.Unlock(context.Background(), lockKey); err != nil {
				j.logger.Warn("release warmup lock", applogger.Error(err))
			}
		}()
	}

	start := time.Now()
	var ok, bad atomic.Int64
	var g errgroup.Group
	g.SetLimit(j.cfg.Concurrency)
	for _, symbol := range j.cfg.Symbols {
		g.Go(func() error {
			if err := j.warm(ctx, symbol); err != nil {
				bad.Add(1)
				j.metrics.RecordError("warmup")
				j.logger.Warn("warmup symbol failed", applogger.String("symbol", symbol), applogger.Error(err))
				return nil
			}
			ok.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	warmed, failed = int(ok.Load()), int(bad.Load())
	j.logger.Info("warmup finished",
		applogger.Int("warmed", warmed),
		applogger.Int("failed", failed),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return warmed, failed, nil
}

func (j *Job) warm(ctx context.Context, symbol string) error {
	if _, err := j.provider.FetchQuote(ctx, symbol); err != nil {
		return fmt.Errorf("quote: %w", err)
	}
	if _, err := j.provider.FetchSummary(ctx, symbol); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	if _, err := j.provider.FetchHistory(ctx, symbol); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	return nil
}
