package features

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScan/internal/domain/models"
)

func bars(closes ...float64) []models.PriceBar {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		out[i] = models.PriceBar{Time: start.AddDate(0, 0, i), Close: c}
	}
	return out
}

func TestOneYearChange(t *testing.T) {
	got := OneYearChange(bars(100, 90, 130, 125))
	require.NotNil(t, got)
	assert.InDelta(t, 0.25, *got, 1e-12)
}

func TestOneYearChangeSkipsUnusableCloses(t *testing.T) {
	got := OneYearChange(bars(math.NaN(), 0, 50, math.Inf(1), 40, -3))
	require.NotNil(t, got)
	assert.InDelta(t, -0.2, *got, 1e-12)
}

func TestOneYearChangeInsufficientData(t *testing.T) {
	assert.Nil(t, OneYearChange(nil))
	assert.Nil(t, OneYearChange(bars(10)))
	assert.Nil(t, OneYearChange(bars(math.NaN(), 10)))
}
