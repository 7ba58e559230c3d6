package location

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benmeehan/iss-flyover/pkg/flyover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

type mockGeolocator struct {
	mock.Mock
}

func (m *mockGeolocator) Geolocate(ctx context.Context, r *maps.GeolocationRequest) (*maps.GeolocationResult, error) {
	args := m.Called(ctx, r)
	res, _ := args.Get(0).(*maps.GeolocationResult)
	return res, args.Error(1)
}

// TestNewProvider tests source selection.
func TestNewProvider(t *testing.T) {
	client := flyover.NewClient()

	p, err := NewProvider("", client, Options{})
	require.NoError(t, err)
	assert.Equal(t, SourceIP, p.Source())

	p, err = NewProvider(SourceSensor, client, Options{GPSDevicePort: "/dev/ttyUSB0", GPSDeviceBaudRate: 9600})
	require.NoError(t, err)
	assert.Equal(t, SourceSensor, p.Source())

	p, err = NewProvider(SourceGoogle, client, Options{MapsAPIKey: "AIza-test-key"})
	require.NoError(t, err)
	assert.Equal(t, SourceGoogle, p.Source())

	_, err = NewProvider("carrier-pigeon", client, Options{})
	assert.Error(t, err)
}

// TestNewProvider_GoogleWithoutKey tests that the maps client rejects an empty key.
func TestNewProvider_GoogleWithoutKey(t *testing.T) {
	_, err := NewProvider(SourceGoogle, flyover.NewClient(), Options{})
	assert.Error(t, err)
}

// TestIPProvider_GetLocation tests that the IP chain is used.
func TestIPProvider_GetLocation(t *testing.T) {
	ipSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"8.8.8.8"}`))
	}))
	defer ipSrv.Close()
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/8.8.8.8", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"latitude":37.386,"longitude":-122.0838}`))
	}))
	defer geoSrv.Close()

	p := NewIPProvider(flyover.NewClient(flyover.WithIPURL(ipSrv.URL), flyover.WithGeoURL(geoSrv.URL+"/")))

	coords, err := p.GetLocation(context.Background())

	require.NoError(t, err)
	assert.Equal(t, flyover.Coordinates{Latitude: 37.386, Longitude: -122.0838}, coords)
	assert.NoError(t, p.Close())
}

// TestGoogleGeolocationProvider_GetLocation tests conversion of the API result.
func TestGoogleGeolocationProvider_GetLocation(t *testing.T) {
	m := new(mockGeolocator)
	m.On("Geolocate", mock.Anything, &maps.GeolocationRequest{ConsiderIP: true}).
		Return(&maps.GeolocationResult{Location: maps.LatLng{Lat: 51.5, Lng: -0.12}, Accuracy: 1200}, nil)
	g := &GoogleGeolocationProvider{client: m}

	coords, err := g.GetLocation(context.Background())

	require.NoError(t, err)
	assert.Equal(t, flyover.Coordinates{Latitude: 51.5, Longitude: -0.12}, coords)
	m.AssertExpectations(t)
}

// TestGoogleGeolocationProvider_Error tests that API errors are returned.
func TestGoogleGeolocationProvider_Error(t *testing.T) {
	m := new(mockGeolocator)
	m.On("Geolocate", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded"))
	g := &GoogleGeolocationProvider{client: m}

	_, err := g.GetLocation(context.Background())

	assert.EqualError(t, err, "quota exceeded")
}
