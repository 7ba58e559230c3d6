package location

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/adrianmo/go-nmea"
	"github.com/benmeehan/iss-flyover/pkg/flyover"
	"github.com/tarm/serial"
)

// ErrNoFix is returned when the GPS output ends without a usable GGA sentence.
var ErrNoFix = errors.New("no valid GPS data found")

// DeviceSensorProvider is responsible for retrieving location data from a GPS device connected via serial port.
type DeviceSensorProvider struct {
	port     string // Serial port to which the GPS device is connected
	baudRate int    // Baud rate for the serial communication
}

// NewDeviceSensorProvider creates a new instance of DeviceSensorProvider with the specified port and baud rate.
func NewDeviceSensorProvider(port string, baudRate int) *DeviceSensorProvider {
	return &DeviceSensorProvider{
		port:     port,
		baudRate: baudRate,
	}
}

// GetLocation reads GPS data from the device and returns the first fix.
func (d *DeviceSensorProvider) GetLocation(ctx context.Context) (flyover.Coordinates, error) {
	c := &serial.Config{Name: d.port, Baud: d.baudRate}
	s, err := serial.OpenPort(c)
	if err != nil {
		return flyover.Coordinates{}, err
	}
	defer s.Close()

	// Closing the port unblocks the scanner when ctx ends first.
	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	coords, err := readFix(s)
	if err != nil && ctx.Err() != nil {
		return flyover.Coordinates{}, ctx.Err()
	}
	return coords, err
}

func (d *DeviceSensorProvider) Source() string { return SourceSensor }

func (d *DeviceSensorProvider) Close() error { return nil }

// readFix scans NMEA output for the first GGA sentence carrying a fix.
func readFix(r io.Reader) (flyover.Coordinates, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// GPGGA from GPS-only receivers, GNGGA from multi-constellation ones
		if !strings.HasPrefix(line, "$GPGGA") && !strings.HasPrefix(line, "$GNGGA") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			return flyover.Coordinates{}, err
		}

		gga, ok := sentence.(nmea.GGA)
		if !ok || gga.FixQuality == nmea.Invalid {
			continue
		}
		return flyover.Coordinates{
			Latitude:  gga.Latitude,
			Longitude: gga.Longitude,
		}, nil
	}

	if err := scanner.Err(); err != nil {
		return flyover.Coordinates{}, err
	}

	return flyover.Coordinates{}, ErrNoFix
}
