package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benmeehan/iss-flyover/internal/metrics"
	"github.com/benmeehan/iss-flyover/internal/service_registry"
	"github.com/benmeehan/iss-flyover/internal/services"
	"github.com/benmeehan/iss-flyover/internal/utils"
	"github.com/benmeehan/iss-flyover/pkg/file"
	"github.com/benmeehan/iss-flyover/pkg/flyover"
	"github.com/benmeehan/iss-flyover/pkg/location"
	"github.com/benmeehan/iss-flyover/pkg/mqtt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	// Bootstrap logger until the configured one is available
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	fileClient := file.NewFileService()

	if err := utils.LoadDotEnv(fileClient, ".env"); err != nil {
		log.Fatal().Err(err).Msg("Failed to load .env file")
	}

	config, err := utils.LoadConfig(utils.ConfigPath(), fileClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = newLogger(config)

	client := flyover.NewClient(
		flyover.WithIPURL(config.Endpoints.IP),
		flyover.WithGeoURL(config.Endpoints.Geo),
		flyover.WithFlyOverURL(config.Endpoints.FlyOver),
	)

	provider, err := location.NewProvider(config.Location.Source, client, location.Options{
		MapsAPIKey:        config.Location.MapsAPIKey,
		GPSDevicePort:     config.Location.GPSDevicePort,
		GPSDeviceBaudRate: config.Location.GPSDeviceBaudRate,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create location provider")
	}

	var mqttClient mqtt.MQTTClient
	if config.MQTT.Enabled {
		// Unique client id per process so several instances can share a broker
		clientID := config.MQTT.ClientID + "-" + uuid.New().String()
		mqttService := mqtt.NewMqttService(fileClient)
		if err := mqttService.Initialize(config.MQTT.Broker, clientID, config.MQTT.CACertificate); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize MQTT connection")
		}
		defer mqttService.Disconnect(250)
		log.Info().Str("client_id", clientID).Msg("Connected to MQTT broker")
		mqttClient = mqttService
	}

	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.Services.Flyover.Interval == 0 {
		runOnce(ctx, config, client, provider, mqttClient, m, log)
		return
	}

	serviceRegistry := service_registry.NewServiceRegistry(client, provider, mqttClient, m, log)
	if err := serviceRegistry.RegisterServices(config); err != nil {
		log.Fatal().Err(err).Msg("Failed to register services")
	}
	if err := serviceRegistry.StartServices(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start services")
	}
	log.Info().Msg("All services started successfully")

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully...")
	if err := serviceRegistry.StopServices(); err != nil {
		log.Error().Err(err).Msg("Some services failed to stop")
	}
}

// runOnce performs a single lookup and prints the passes.
func runOnce(ctx context.Context, config *utils.Config, client *flyover.Client, provider location.Provider,
	mqttClient mqtt.MQTTClient, m *metrics.Metrics, log zerolog.Logger) {
	svc := services.NewFlyoverService(
		config.Services.Flyover.Topic,
		0,
		config.Services.Flyover.QOS,
		client,
		provider,
		mqttClient,
		m,
		log,
	)

	report, err := svc.RunOnce(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Flyover lookup failed")
		os.Exit(1)
	}

	for _, pass := range report.Passes {
		fmt.Println(pass)
	}
}

func newLogger(config *utils.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if config.Log.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
