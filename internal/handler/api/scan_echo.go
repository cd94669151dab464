package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"StockScan/internal/domain/models"
	domrepo "StockScan/internal/domain/repository"
	"StockScan/internal/service/metrics"
	"StockScan/internal/service/ratelimit"
	"StockScan/internal/usecase"
	xhttp "StockScan/pkg/http"
	xlogger "StockScan/pkg/logger"
)

const (
	ErrCodeNoTickers     = "ERR_NO_TICKERS"
	ErrCodeInvalidSymbol = "ERR_INVALID_SYMBOL"
)

// RateLimit configures the per-client token bucket on scan endpoints.
type RateLimit struct {
	Enabled  bool
	Capacity float64
	Refill   float64 // tokens per second
}

// ScanHandlerConfig holds request-independent handler settings.
type ScanHandlerConfig struct {
	Defaults   models.Assumptions
	MaxSymbols int
	RateLimit  RateLimit
}

// ScanHandler serves the scan, stock detail and assumptions endpoints.
type ScanHandler struct {
	logger  *xlogger.Logger
	scanner *usecase.Scanner
	cfg     ScanHandlerConfig
	rl      *ratelimit.Limiter
}

func NewScanHandler(logger *xlogger.Logger, scanner *usecase.Scanner, cfg ScanHandlerConfig) *ScanHandler {
	metrics.Register()
	if cfg.MaxSymbols <= 0 {
		cfg.MaxSymbols = 50
	}
	return &ScanHandler{logger: logger, scanner: scanner, cfg: cfg, rl: ratelimit.New()}
}

func (h *ScanHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/scan", h.observe("scan", h.Scan), h.limit)
	g.POST("/scan", h.observe("scan", h.Scan), h.limit)
	g.GET("/stock/:symbol", h.observe("stock", h.Stock), h.limit)
	g.GET("/assumptions", h.Assumptions)
	e.GET("/healthz", h.Health)
}

// Scan evaluates a batch of tickers.
func (h *ScanHandler) Scan(c echo.Context) error {
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	symbols, invalid := usecase.NormalizeTickers(req.Tickers, h.cfg.MaxSymbols)
	if len(invalid) > 0 {
		return xhttp.AppErrorResponse(c, invalidSymbols(invalid))
	}
	if len(symbols) == 0 {
		return xhttp.AppErrorResponse(c,
			xhttp.NewAppError(ErrCodeNoTickers, "tickers", "at least one ticker is required", http.StatusBadRequest))
	}

	a := h.cfg.Defaults.Merge(req.AssumptionOverrides)
	res, err := h.scanner.Scan(c.Request().Context(), symbols, a)
	if err != nil {
		h.logger.Error("scan usecase error", xlogger.Error(err), xlogger.Strings("symbols", symbols))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("scan failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, presentScan(res))
}

// Stock evaluates one ticker including price projections.
func (h *ScanHandler) Stock(c echo.Context) error {
	req := &models.StockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if !usecase.ValidSymbol(symbol) {
		return xhttp.AppErrorResponse(c, invalidSymbols([]string{symbol}))
	}

	a := h.cfg.Defaults.Merge(req.AssumptionOverrides)
	row, err := h.scanner.Detail(c.Request().Context(), symbol, a)
	if errors.Is(err, domrepo.ErrSymbolNotFound) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("symbol %s not found", symbol).WithError(err))
	}
	if err != nil {
		h.logger.Error("detail usecase error", xlogger.Error(err), xlogger.String("symbol", symbol))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("detail failed").WithError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, presentResult(*row))
}

// Assumptions returns the server defaults.
func (h *ScanHandler) Assumptions(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.cfg.Defaults)
}

func (h *ScanHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// limit applies the per-client token bucket keyed by the real client IP.
func (h *ScanHandler) limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.cfg.RateLimit.Enabled {
			return next(c)
		}
		if !h.rl.Allow(c.RealIP(), h.cfg.RateLimit.Capacity, h.cfg.RateLimit.Refill) {
			metrics.RateLimited.Inc()
			h.logger.Warn("client rate limited", xlogger.String("ip", c.RealIP()), xlogger.String("path", c.Path()))
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests, slow down"))
		}
		return next(c)
	}
}

// PruneClients forgets rate-limit buckets idle for longer than idle.
func (h *ScanHandler) PruneClients(idle time.Duration) int {
	return h.rl.Prune(idle)
}

// observe records endpoint latency and error responses.
func (h *ScanHandler) observe(endpoint string, fn echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := fn(c)
		metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		if status := c.Response().Status; status >= http.StatusBadRequest {
			metrics.APIErrors.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
		}
		return err
	}
}

func invalidSymbols(symbols []string) *xhttp.AppError {
	return xhttp.NewAppError(ErrCodeInvalidSymbol, "tickers", "invalid ticker symbol", http.StatusBadRequest).
		WithParam("symbols", symbols)
}
