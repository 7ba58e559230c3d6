package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/benmeehan/iss-flyover/pkg/file"
	"github.com/benmeehan/iss-flyover/pkg/flyover"
	"github.com/joho/godotenv"
)

// Environment variables that override values from the configuration file.
const (
	EnvConfigPath     = "FLYOVER_CONFIG"
	EnvMapsAPIKey     = "FLYOVER_MAPS_API_KEY"
	EnvMQTTBroker     = "FLYOVER_MQTT_BROKER"
	EnvLocationSource = "FLYOVER_LOCATION_SOURCE"
)

// DefaultConfigPath is used when FLYOVER_CONFIG is unset.
const DefaultConfigPath = "configs/config.yaml"

// Config represents the structure of the configuration file.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`  // zerolog level name
		Pretty bool   `yaml:"pretty"` // Human readable console output
	} `yaml:"log"`

	Endpoints struct {
		IP      string `yaml:"ip"`      // Public IP echo endpoint
		Geo     string `yaml:"geo"`     // IP geolocation endpoint, the IP is appended
		FlyOver string `yaml:"flyover"` // ISS pass prediction endpoint
	} `yaml:"endpoints"`

	Location struct {
		Source            string `yaml:"source"`          // ip, google or sensor
		MapsAPIKey        string `yaml:"maps_api_key"`    // Google maps API Key
		GPSDeviceBaudRate int    `yaml:"gps_baud_rate"`   // The Baud rate for GPS sensor
		GPSDevicePort     string `yaml:"gps_device_port"` // UNIX Port where the GPS sensor is mounted
	} `yaml:"location"`

	MQTT struct {
		Enabled       bool   `yaml:"enabled"`        // Publish reports over MQTT
		Broker        string `yaml:"broker"`         // MQTT broker address
		ClientID      string `yaml:"client_id"`      // MQTT client ID
		CACertificate string `yaml:"ca_certificate"` // Path to the CA certificate, plain TCP when empty
	} `yaml:"mqtt"`

	Services struct {
		Flyover struct {
			Enabled  bool          `yaml:"enabled"`  // Enable/disable flyover service
			Topic    string        `yaml:"topic"`    // MQTT topic for reports
			QOS      int           `yaml:"qos"`      // MQTT QoS level for reports
			Interval time.Duration `yaml:"interval"` // Time between lookups, 0 runs a single lookup
		} `yaml:"flyover"`

		Metrics struct {
			Enabled bool   `yaml:"enabled"` // Enable/disable the Prometheus exporter
			Address string `yaml:"address"` // Listen address, e.g. ":9102"
		} `yaml:"metrics"`
	} `yaml:"services"`
}

// LoadConfig loads the YAML configuration from the specified file,
// fills defaults and applies environment overrides.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	config.applyDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadDotEnv loads a .env file into the process environment when one exists.
// Variables already set are left untouched.
func LoadDotEnv(fileClient file.FileOperations, path string) error {
	exists, err := fileClient.IsFileExists(path)
	if err != nil || !exists {
		return err
	}
	return godotenv.Load(path)
}

// ConfigPath returns the configuration file to load.
func ConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Endpoints.IP == "" {
		c.Endpoints.IP = flyover.DefaultIPURL
	}
	if c.Endpoints.Geo == "" {
		c.Endpoints.Geo = flyover.DefaultGeoURL
	}
	if c.Endpoints.FlyOver == "" {
		c.Endpoints.FlyOver = flyover.DefaultFlyOverURL
	}
	if c.Location.Source == "" {
		c.Location.Source = "ip"
	}
	if c.Location.GPSDeviceBaudRate == 0 {
		c.Location.GPSDeviceBaudRate = 9600
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "iss-flyover"
	}
	if c.Services.Flyover.Topic == "" {
		c.Services.Flyover.Topic = "iss/flyover"
	}
	if c.Services.Metrics.Address == "" {
		c.Services.Metrics.Address = ":9102"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvMapsAPIKey); v != "" {
		c.Location.MapsAPIKey = v
	}
	if v := os.Getenv(EnvMQTTBroker); v != "" {
		c.MQTT.Broker = v
	}
	if v := os.Getenv(EnvLocationSource); v != "" {
		c.Location.Source = v
	}
}

// Validate checks settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.Services.Flyover.Interval < 0 {
		return errors.New("services.flyover.interval must not be negative")
	}
	if c.Services.Flyover.QOS < 0 || c.Services.Flyover.QOS > 2 {
		return fmt.Errorf("services.flyover.qos must be 0, 1 or 2, got %d", c.Services.Flyover.QOS)
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return errors.New("mqtt.broker is required when mqtt is enabled")
	}
	return nil
}
