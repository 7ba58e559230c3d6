package location

import (
	"context"
	"fmt"

	"github.com/benmeehan/iss-flyover/pkg/flyover"
)

// Source names accepted by NewProvider.
const (
	SourceIP     = "ip"
	SourceGoogle = "google"
	SourceSensor = "sensor"
)

// Provider interface defines the methods for location providers
type Provider interface {
	GetLocation(ctx context.Context) (flyover.Coordinates, error)
	Source() string
	Close() error
}

// Options carries the settings of every provider kind.
type Options struct {
	MapsAPIKey        string
	GPSDevicePort     string
	GPSDeviceBaudRate int
}

// NewProvider builds the provider for the named source.
func NewProvider(source string, client *flyover.Client, opts Options) (Provider, error) {
	switch source {
	case "", SourceIP:
		return NewIPProvider(client), nil
	case SourceGoogle:
		return NewGoogleGeolocationProvider(opts.MapsAPIKey)
	case SourceSensor:
		return NewDeviceSensorProvider(opts.GPSDevicePort, opts.GPSDeviceBaudRate), nil
	default:
		return nil, fmt.Errorf("unknown location source %q", source)
	}
}
