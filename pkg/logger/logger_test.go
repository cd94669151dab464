package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.DebugLevel)

	log.Info("scan finished",
		String("symbol", "AAPL"),
		Int("count", 3),
		Float64("upside", 12.5),
		Duration("took", 1500*time.Millisecond),
		Strings("tickers", []string{"AAPL", "MSFT"}),
		Bool("cached", true),
		Error(errors.New("boom")),
	)

	entry := decode(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "scan finished", entry["message"])
	assert.Equal(t, "AAPL", entry["symbol"])
	assert.Equal(t, float64(3), entry["count"])
	assert.Equal(t, 12.5, entry["upside"])
	assert.Equal(t, float64(1500), entry["took"])
	assert.Equal(t, "AAPL, MSFT", entry["tickers"])
	assert.Equal(t, true, entry["cached"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.WarnLevel)

	log.Debug("hidden")
	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Equal(t, "warn", decode(t, &buf)["level"])
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.InfoLevel).With(String("request_id", "abc"))

	log.Error("failed", Error(nil))

	entry := decode(t, &buf)
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "error", entry["level"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "chatty", Output: "stdout"})
	assert.Error(t, err)
}
