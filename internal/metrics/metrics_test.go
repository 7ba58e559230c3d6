package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestObserveLookup tests counters and gauges for both outcomes.
func TestObserveLookup(t *testing.T) {
	m := New()

	m.ObserveLookup("ip", time.Now(), 5, nil)
	m.ObserveLookup("ip", time.Now(), 0, errors.New("boom"))
	m.ObserveLookup("ip", time.Now(), 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("ip", ResultSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("ip", ResultFailure)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.PassesReturned))
	assert.Greater(t, testutil.ToFloat64(m.LastSuccess), 0.0)
}

// TestHandler tests that the collectors are exposed.
func TestHandler(t *testing.T) {
	m := New()
	m.ObserveLookup("sensor", time.Now(), 3, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `flyover_lookups_total{result="success",source="sensor"} 1`)
	assert.Contains(t, rec.Body.String(), "flyover_lookup_duration_seconds_bucket")
}
