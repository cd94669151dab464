package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	xhttp "StockScan/pkg/http"
)

// httpBase centralizes client construction, throttling and JSON GET handling.
type httpBase struct {
	baseURL  string
	client   *xhttp.Client
	limiter  *rate.Limiter
	attempts int
}

func newHTTPBase(baseURL string, client *xhttp.Client, limiter *rate.Limiter, attempts int) *httpBase {
	if attempts < 1 {
		attempts = 1
	}
	return &httpBase{
		baseURL:  baseURL,
		client:   client,
		limiter:  limiter,
		attempts: attempts,
	}
}

// GetJSON fetches `path` under baseURL and decodes JSON into dest.
func (b *httpBase) GetJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("yahoo http client not initialized")
	}
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("throttle: %w", err)
		}
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         b.baseURL + path,
		Headers:     map[string]string{"Accept": "application/json"},
		QueryParams: query,
	}, dest)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}

// GetJSONWithRetry retries transient failures with a linear backoff.
func (b *httpBase) GetJSONWithRetry(ctx context.Context, path string, query url.Values, dest interface{}) error {
	var err error
	for i := 1; i <= b.attempts; i++ {
		err = b.GetJSON(ctx, path, query, dest)
		if err == nil || !retryable(err) || i == b.attempts {
			return err
		}
		select {
		case <-time.After(time.Duration(i) * 200 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	// transport errors
	return true
}
