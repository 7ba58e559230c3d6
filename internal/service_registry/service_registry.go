package service_registry

import (
	"errors"
	"fmt"

	"github.com/benmeehan/iss-flyover/internal/metrics"
	"github.com/benmeehan/iss-flyover/internal/services"
	"github.com/benmeehan/iss-flyover/internal/utils"
	"github.com/benmeehan/iss-flyover/pkg/location"
	"github.com/benmeehan/iss-flyover/pkg/mqtt"
	"github.com/rs/zerolog"
)

// ServiceRegistry manages the lifecycle of various services in the system.
type ServiceRegistry struct {
	services    map[string]Service // Stores registered services
	serviceKeys []string           // Maintains order of service registration
	passes      services.PassFetcher
	provider    location.Provider
	mqttClient  mqtt.MQTTClient
	metrics     *metrics.Metrics
	Logger      zerolog.Logger
}

// NewServiceRegistry initializes a new service registry with dependencies.
func NewServiceRegistry(passes services.PassFetcher, provider location.Provider, mqttClient mqtt.MQTTClient,
	m *metrics.Metrics, logger zerolog.Logger) *ServiceRegistry {
	return &ServiceRegistry{
		services:   make(map[string]Service),
		passes:     passes,
		provider:   provider,
		mqttClient: mqttClient,
		metrics:    m,
		Logger:     logger,
	}
}

// RegisterService adds a new service to the registry.
func (sr *ServiceRegistry) RegisterService(name string, svc Service) {
	if _, exists := sr.services[name]; exists {
		sr.Logger.Warn().Msgf("Service %s is already registered", name)
		return
	}
	sr.services[name] = svc
	sr.serviceKeys = append(sr.serviceKeys, name)
	sr.Logger.Info().Msgf("Registered service: %s", name)
}

// StartServices initiates all registered services in order.
// If a service fails to start, it stops already started services.
func (sr *ServiceRegistry) StartServices() error {
	startedServices := []string{}

	for _, name := range sr.serviceKeys {
		svc := sr.services[name]
		sr.Logger.Info().Msgf("Starting service: %s", name)
		if err := svc.Start(); err != nil {
			sr.Logger.Error().Err(err).Msgf("Failed to start service: %s", name)

			// Stop already started services before returning
			sr.Logger.Warn().Msg("Stopping already started services due to startup failure...")
			for i := len(startedServices) - 1; i >= 0; i-- {
				_ = sr.services[startedServices[i]].Stop()
			}
			return fmt.Errorf("start %s: %w", name, err)
		}
		startedServices = append(startedServices, name)
	}

	return nil
}

// StopServices stops all services in reverse order.
func (sr *ServiceRegistry) StopServices() error {
	var stopErrors []error
	for i := len(sr.serviceKeys) - 1; i >= 0; i-- {
		name := sr.serviceKeys[i]
		if err := sr.services[name].Stop(); err != nil {
			stopErrors = append(stopErrors, fmt.Errorf("failed to stop %s: %w", name, err))
		}
	}
	if len(stopErrors) > 0 {
		for _, e := range stopErrors {
			sr.Logger.Error().Err(e).Msg("Service stop failure")
		}
		return errors.Join(stopErrors...)
	}
	return nil
}

// RegisterServices initializes and registers enabled services based on configuration.
func (sr *ServiceRegistry) RegisterServices(config *utils.Config) error {
	// Metrics come first so the first lookup is already observable
	servicesInOrder := []struct {
		name        string
		enabled     bool
		constructor func() (Service, error)
	}{
		{
			name:    "metrics",
			enabled: config.Services.Metrics.Enabled,
			constructor: func() (Service, error) {
				if sr.metrics == nil {
					return nil, errors.New("metrics exporter enabled without metrics")
				}
				return services.NewMetricsExporterService(
					config.Services.Metrics.Address,
					sr.metrics,
					sr.Logger,
				), nil
			},
		},
		{
			name:    "flyover",
			enabled: config.Services.Flyover.Enabled,
			constructor: func() (Service, error) {
				return services.NewFlyoverService(
					config.Services.Flyover.Topic,
					config.Services.Flyover.Interval,
					config.Services.Flyover.QOS,
					sr.passes,
					sr.provider,
					sr.mqttClient,
					sr.metrics,
					sr.Logger,
				), nil
			},
		},
	}

	// Register services in the predefined order
	registeredServices := []string{}
	for _, svc := range servicesInOrder {
		if svc.enabled {
			serviceInstance, err := svc.constructor()
			if err != nil {
				sr.Logger.Error().Err(err).Msgf("Failed to create %s service", svc.name)
				return err
			}
			sr.RegisterService(svc.name, serviceInstance)
			registeredServices = append(registeredServices, svc.name)
		}
	}

	sr.Logger.Info().Msgf("Registered services in order: %v", registeredServices)
	return nil
}

// Registered returns the names of registered services in start order.
func (sr *ServiceRegistry) Registered() []string {
	return append([]string(nil), sr.serviceKeys...)
}
