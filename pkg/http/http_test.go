package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAndParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "stockscan-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(`{"price":101.5}`))
	}))
	defer srv.Close()

	c := NewClient(WithHeader("User-Agent", "stockscan-test"))
	var out struct {
		Price float64 `json:"price"`
	}
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method:      MethodGet,
		URL:         srv.URL,
		QueryParams: map[string][]string{"symbols": {"AAPL"}},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, 101.5, out.Price)
}

func TestSendAndParseStatusError(t *testing.T) {
	tests := []struct {
		status    int
		temporary bool
	}{
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", tt.status)
		}))

		err := NewClient().SendAndParse(context.Background(), &RequestOptions{Method: MethodGet, URL: srv.URL}, nil)
		srv.Close()

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, tt.status, se.StatusCode)
		assert.Equal(t, tt.temporary, se.Temporary())
		assert.Contains(t, se.Body, "nope")
	}
}

func TestAppErrorResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := AppErrorResponse(c, NotFoundErrorf("symbol %s not found", "ZZZ").WithError(errors.New("upstream 404")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Status int        `json:"status"`
		Data   []AppError `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Status)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "ERR_NOT_FOUND", body.Data[0].Code)
	assert.Equal(t, "symbol ZZZ not found", body.Data[0].Message)
	assert.NotContains(t, rec.Body.String(), "upstream 404")
}

func TestAppErrorResponseHidesPlainErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, AppErrorResponse(c, errors.New("secret detail")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestValidateUsesJSONNames(t *testing.T) {
	type req struct {
		Years *int `json:"years" validate:"omitempty,gte=1"`
	}
	zero := 0

	errs, ok := Validate(req{Years: &zero}).([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_GTE", errs[0].Code)
	assert.Equal(t, "years", errs[0].Field)
	assert.Equal(t, "1", errs[0].Params["min"])

	assert.Nil(t, Validate(req{}))
}
