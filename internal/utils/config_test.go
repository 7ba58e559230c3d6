package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benmeehan/iss-flyover/pkg/file"
	"github.com/benmeehan/iss-flyover/pkg/flyover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestLoadConfig_Defaults tests that an empty file yields the public endpoints.
func TestLoadConfig_Defaults(t *testing.T) {
	path := writeFile(t, "config.yaml", "log:\n  pretty: true\n")

	config, err := LoadConfig(path, file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, "info", config.Log.Level)
	assert.True(t, config.Log.Pretty)
	assert.Equal(t, flyover.DefaultIPURL, config.Endpoints.IP)
	assert.Equal(t, flyover.DefaultGeoURL, config.Endpoints.Geo)
	assert.Equal(t, flyover.DefaultFlyOverURL, config.Endpoints.FlyOver)
	assert.Equal(t, "ip", config.Location.Source)
	assert.Equal(t, time.Duration(0), config.Services.Flyover.Interval)
}

// TestLoadConfig_Values tests parsing of every section.
func TestLoadConfig_Values(t *testing.T) {
	path := writeFile(t, "config.yaml", `
log:
  level: debug
endpoints:
  ip: http://localhost:8080/ip
location:
  source: sensor
  gps_device_port: /dev/ttyACM0
  gps_baud_rate: 4800
mqtt:
  enabled: true
  broker: tcp://broker:1883
services:
  flyover:
    enabled: true
    topic: station/passes
    qos: 1
    interval: 15m
  metrics:
    enabled: true
    address: 127.0.0.1:9000
`)

	config, err := LoadConfig(path, file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "http://localhost:8080/ip", config.Endpoints.IP)
	assert.Equal(t, "sensor", config.Location.Source)
	assert.Equal(t, 4800, config.Location.GPSDeviceBaudRate)
	assert.Equal(t, "tcp://broker:1883", config.MQTT.Broker)
	assert.Equal(t, "station/passes", config.Services.Flyover.Topic)
	assert.Equal(t, 1, config.Services.Flyover.QOS)
	assert.Equal(t, 15*time.Minute, config.Services.Flyover.Interval)
	assert.Equal(t, "127.0.0.1:9000", config.Services.Metrics.Address)
}

// TestLoadConfig_EnvOverrides tests that environment variables win over the file.
func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "location:\n  source: ip\n  maps_api_key: from-file\n")
	t.Setenv(EnvMapsAPIKey, "from-env")
	t.Setenv(EnvLocationSource, "google")
	t.Setenv(EnvMQTTBroker, "tcp://env:1883")

	config, err := LoadConfig(path, file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, "from-env", config.Location.MapsAPIKey)
	assert.Equal(t, "google", config.Location.Source)
	assert.Equal(t, "tcp://env:1883", config.MQTT.Broker)
}

// TestLoadConfig_Invalid tests validation failures.
func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative interval": "services:\n  flyover:\n    interval: -1s\n",
		"bad qos":           "services:\n  flyover:\n    qos: 3\n",
		"mqtt no broker":    "mqtt:\n  enabled: true\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "config.yaml", content)

			_, err := LoadConfig(path, file.NewFileService())

			assert.Error(t, err)
		})
	}
}

// TestLoadConfig_MissingFile tests that a missing file is an error.
func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), file.NewFileService())
	assert.Error(t, err)
}

// TestLoadDotEnv tests loading of .env files.
func TestLoadDotEnv(t *testing.T) {
	t.Setenv(EnvMapsAPIKey, "")
	os.Unsetenv(EnvMapsAPIKey)
	path := writeFile(t, ".env", EnvMapsAPIKey+"=dotenv-key\n")

	require.NoError(t, LoadDotEnv(file.NewFileService(), path))
	assert.Equal(t, "dotenv-key", os.Getenv(EnvMapsAPIKey))

	assert.NoError(t, LoadDotEnv(file.NewFileService(), filepath.Join(t.TempDir(), ".env")))
}

// TestConfigPath tests the config path lookup.
func TestConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, DefaultConfigPath, ConfigPath())

	t.Setenv(EnvConfigPath, "/etc/flyover.yaml")
	assert.Equal(t, "/etc/flyover.yaml", ConfigPath())
}
