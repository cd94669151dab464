package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewWithRegistry(prometheus.NewRegistry())

	r.RecordFetch("quote", 0.1, nil)
	r.RecordFetch("quote", 0.2, errors.New("boom"))
	r.RecordCache("summary", true)
	r.RecordCache("summary", false)
	r.RecordCache("summary", false)
	r.RecordScan(3, 1, 0.5)
	r.RecordError("provider")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchTotal.WithLabelValues("quote", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchTotal.WithLabelValues("quote", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheTotal.WithLabelValues("summary", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheTotal.WithLabelValues("summary", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.scanFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("provider")))
}

func TestRecordersOnSeparateRegistriesDoNotClash(t *testing.T) {
	assert.NotPanics(t, func() {
		NewWithRegistry(prometheus.NewRegistry())
		NewWithRegistry(prometheus.NewRegistry())
	})
}
