package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the collectors for flyover lookups on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	LookupsTotal   *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
	PassesReturned prometheus.Gauge
	LastSuccess    prometheus.Gauge
}

// New creates and registers the lookup collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		LookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flyover_lookups_total",
			Help: "Total number of pass lookups by location source and result",
		}, []string{"source", "result"}),
		LookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flyover_lookup_duration_seconds",
			Help:    "Duration of a full pass lookup in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		PassesReturned: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flyover_passes_returned",
			Help: "Number of passes in the last successful lookup",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flyover_last_success_timestamp_seconds",
			Help: "Unix time of the last successful lookup",
		}),
	}

	m.registry.MustRegister(
		m.LookupsTotal,
		m.LookupDuration,
		m.PassesReturned,
		m.LastSuccess,
	)
	return m
}

// ObserveLookup records one finished lookup.
func (m *Metrics) ObserveLookup(source string, started time.Time, passes int, err error) {
	m.LookupDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
	if err != nil {
		m.LookupsTotal.WithLabelValues(source, ResultFailure).Inc()
		return
	}
	m.LookupsTotal.WithLabelValues(source, ResultSuccess).Inc()
	m.PassesReturned.Set(float64(passes))
	m.LastSuccess.SetToCurrentTime()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
