package location

import (
	"context"

	"github.com/benmeehan/iss-flyover/pkg/flyover"
	"googlemaps.github.io/maps"
)

// geolocator is the subset of *maps.Client used here.
type geolocator interface {
	Geolocate(ctx context.Context, r *maps.GeolocationRequest) (*maps.GeolocationResult, error)
}

// GoogleGeolocationProvider uses the Google Maps API to get location data.
type GoogleGeolocationProvider struct {
	client geolocator // Maps API client for making geolocation requests
}

// NewGoogleGeolocationProvider creates a new GoogleGeolocationProvider instance.
func NewGoogleGeolocationProvider(apiKey string) (*GoogleGeolocationProvider, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GoogleGeolocationProvider{
		client: c,
	}, nil
}

// GetLocation asks the Geolocation API to place the caller by its IP address.
func (g *GoogleGeolocationProvider) GetLocation(ctx context.Context) (flyover.Coordinates, error) {
	resp, err := g.client.Geolocate(ctx, &maps.GeolocationRequest{ConsiderIP: true})
	if err != nil {
		return flyover.Coordinates{}, err
	}

	return flyover.Coordinates{
		Latitude:  resp.Location.Lat,
		Longitude: resp.Location.Lng,
	}, nil
}

func (g *GoogleGeolocationProvider) Source() string { return SourceGoogle }

func (g *GoogleGeolocationProvider) Close() error { return nil }
