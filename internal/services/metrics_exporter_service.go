package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/benmeehan/iss-flyover/internal/metrics"
	"github.com/rs/zerolog"
)

// MetricsExporterService serves the Prometheus metrics endpoint.
type MetricsExporterService struct {
	address string
	metrics *metrics.Metrics
	logger  zerolog.Logger

	server   *http.Server
	listener net.Listener
	done     chan struct{}
}

// NewMetricsExporterService initializes a new MetricsExporterService.
func NewMetricsExporterService(address string, m *metrics.Metrics, logger zerolog.Logger) *MetricsExporterService {
	return &MetricsExporterService{
		address: address,
		metrics: m,
		logger:  logger,
	}
}

// Start binds the listen address and serves /metrics in the background.
func (e *MetricsExporterService) Start() error {
	if e.server != nil {
		e.logger.Warn().Msg("MetricsExporterService is already running")
		return errors.New("metrics exporter service is already running")
	}

	ln, err := net.Listen("tcp", e.address)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", e.metrics.Handler())
	e.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	e.listener = ln
	e.done = make(chan struct{})

	go func(srv *http.Server, done chan struct{}) {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error().Err(err).Msg("Metrics server stopped unexpectedly")
		}
	}(e.server, e.done)

	e.logger.Info().Str("address", ln.Addr().String()).Msg("MetricsExporterService started")
	return nil
}

// Stop shuts the HTTP server down.
func (e *MetricsExporterService) Stop() error {
	if e.server == nil {
		e.logger.Warn().Msg("MetricsExporterService is not running")
		return errors.New("metrics exporter service is not running")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := e.server.Shutdown(ctx)
	<-e.done
	e.server = nil
	e.listener = nil

	e.logger.Info().Msg("MetricsExporterService stopped")
	return err
}

// Addr returns the bound address while running.
func (e *MetricsExporterService) Addr() string {
	if e.listener == nil {
		return ""
	}
	return e.listener.Addr().String()
}
