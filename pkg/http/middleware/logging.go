package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "StockScan/pkg/logger"
)

// RequestLogging logs HTTP requests.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("ip", c.RealIP()),
				applogger.Int("status", res.Status),
				applogger.Duration("duration_ms", time.Since(start)),
				applogger.Int64("bytes", res.Size),
			}
			if id := GetRequestID(c); id != "" {
				fields = append(fields, applogger.String("request_id", id))
			}
			if res.Status >= 500 {
				l.Error("http request", append(fields, applogger.Error(err))...)
			} else {
				l.Info("http request", fields...)
			}

			return nil
		}
	}
}
