package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benmeehan/iss-flyover/internal/metrics"
	"github.com/benmeehan/iss-flyover/internal/models"
	"github.com/benmeehan/iss-flyover/pkg/flyover"
	"github.com/benmeehan/iss-flyover/pkg/location"
	"github.com/benmeehan/iss-flyover/pkg/mqtt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PassFetcher returns the passes predicted over a position.
type PassFetcher interface {
	FetchISSFlyOverTimes(ctx context.Context, coords flyover.Coordinates) ([]flyover.Pass, error)
}

var _ PassFetcher = (*flyover.Client)(nil)

// FlyoverService looks up upcoming ISS passes for the current location and
// publishes each report to an MQTT topic.
type FlyoverService struct {
	// Configuration fields
	topic    string
	interval time.Duration
	qos      int

	// Dependencies
	passes           PassFetcher
	locationProvider location.Provider
	mqttClient       mqtt.MQTTClient // nil disables publishing
	metrics          *metrics.Metrics
	logger           zerolog.Logger

	// Internal state management
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFlyoverService creates a new FlyoverService instance with the provided configuration.
func NewFlyoverService(topic string, interval time.Duration, qos int, passes PassFetcher,
	locationProvider location.Provider, mqttClient mqtt.MQTTClient, m *metrics.Metrics, logger zerolog.Logger) *FlyoverService {
	return &FlyoverService{
		topic:            topic,
		interval:         interval,
		qos:              qos,
		passes:           passes,
		locationProvider: locationProvider,
		mqttClient:       mqttClient,
		metrics:          m,
		logger:           logger,
	}
}

// Start runs a lookup immediately and then once per interval.
func (f *FlyoverService) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ctx != nil {
		f.logger.Warn().Msg("FlyoverService is already running")
		return errors.New("flyover service is already running")
	}
	if f.interval <= 0 {
		return errors.New("flyover service needs a positive interval")
	}

	f.ctx, f.cancel = context.WithCancel(context.Background())

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.runLookupLoop(f.ctx)
	}()

	f.logger.Info().
		Str("topic", f.topic).
		Dur("interval", f.interval).
		Str("source", f.locationProvider.Source()).
		Msg("FlyoverService started")
	return nil
}

// Stop cancels any lookup in flight and waits for the loop to exit.
func (f *FlyoverService) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ctx == nil {
		f.logger.Warn().Msg("FlyoverService is not running")
		return errors.New("flyover service is not running")
	}

	f.cancel()
	f.wg.Wait()

	f.ctx = nil
	f.cancel = nil

	if err := f.locationProvider.Close(); err != nil {
		f.logger.Error().Err(err).Msg("Failed to close location provider")
		return err
	}

	f.logger.Info().Msg("FlyoverService stopped")
	return nil
}

func (f *FlyoverService) runLookupLoop(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		if _, err := f.RunOnce(ctx); err != nil && ctx.Err() == nil {
			f.logger.Error().Err(err).Msg("Flyover lookup failed")
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			f.logger.Info().Msg("FlyoverService is stopping")
			return
		}
	}
}

// RunOnce performs one lookup: location first, then passes for it. A failed
// step ends the lookup with its error and nothing is published.
func (f *FlyoverService) RunOnce(ctx context.Context) (*models.FlyoverReport, error) {
	report, err := f.lookup(ctx)
	if err != nil {
		return nil, err
	}

	f.logger.Info().
		Str("run_id", report.RunID).
		Float64("latitude", report.Latitude).
		Float64("longitude", report.Longitude).
		Int("passes", len(report.Passes)).
		Msg("Flyover lookup completed")

	if err := f.publish(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (f *FlyoverService) lookup(ctx context.Context) (_ *models.FlyoverReport, err error) {
	source := f.locationProvider.Source()
	started := time.Now()
	var passes []flyover.Pass
	defer func() {
		if f.metrics != nil {
			f.metrics.ObserveLookup(source, started, len(passes), err)
		}
	}()

	coords, err := f.locationProvider.GetLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("locate via %s: %w", source, err)
	}

	passes, err = f.passes.FetchISSFlyOverTimes(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("fetch pass times: %w", err)
	}

	return &models.FlyoverReport{
		RunID:     uuid.NewString(),
		Timestamp: started.UTC(),
		Source:    source,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
		Passes:    passes,
	}, nil
}

// publish sends the report to the MQTT topic when a client is configured.
func (f *FlyoverService) publish(report *models.FlyoverReport) error {
	if f.mqttClient == nil {
		return nil
	}

	payload, err := json.Marshal(report)
	if err != nil {
		f.logger.Error().Err(err).Msg("Failed to serialize flyover report")
		return err
	}

	token := f.mqttClient.Publish(f.topic, byte(f.qos), false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		f.logger.Error().
			Err(err).
			Str("topic", f.topic).
			Msg("Failed to publish flyover report to MQTT")
		return err
	}

	f.logger.Debug().Str("topic", f.topic).Str("run_id", report.RunID).Msg("Flyover report published")
	return nil
}
