// Package flyover looks up upcoming ISS overhead passes for the caller's
// public IP address.
//
// A lookup is a strict chain of three GET requests: the public IP, the
// coordinates for that IP, then the pass predictions for those coordinates.
// The first failing step ends the chain and its error is returned as is.
package flyover

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultIPURL      = "https://api.ipify.org?format=json"
	DefaultGeoURL     = "http://ipwho.is/"
	DefaultFlyOverURL = "https://iss-flyover.herokuapp.com/json/"
)

// ErrNoResponse is returned when the pass endpoint answers without a response array.
var ErrNoResponse = errors.New("response did not contain pass predictions")

// Client performs the lookups against the three public endpoints.
type Client struct {
	httpClient *http.Client
	ipURL      string
	geoURL     string
	flyOverURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithIPURL overrides the public IP endpoint.
func WithIPURL(u string) Option {
	return func(c *Client) { c.ipURL = u }
}

// WithGeoURL overrides the geolocation endpoint. The IP is appended to it.
func WithGeoURL(u string) Option {
	return func(c *Client) { c.geoURL = u }
}

// WithFlyOverURL overrides the pass prediction endpoint.
func WithFlyOverURL(u string) Option {
	return func(c *Client) { c.flyOverURL = u }
}

// NewClient creates a Client using the public endpoints unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		// No timeout: a lookup runs until the endpoint answers or ctx ends.
		httpClient: &http.Client{Timeout: 0},
		ipURL:      DefaultIPURL,
		geoURL:     DefaultGeoURL,
		flyOverURL: DefaultFlyOverURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ipResponse struct {
	IP string `json:"ip"`
}

type geoResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	IP        string  `json:"ip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type flyOverResponse struct {
	Response []Pass `json:"response"`
}

// FetchMyIP returns the caller's public IP address.
func (c *Client) FetchMyIP(ctx context.Context) (string, error) {
	code, body, err := c.get(ctx, c.ipURL)
	if err != nil {
		return "", err
	}
	if code != http.StatusOK {
		return "", &StatusError{Op: "fetching IP", Code: code, Body: string(body)}
	}

	var parsed ipResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.IP == "" {
		return "", ErrNoIP
	}
	return parsed.IP, nil
}

// FetchCoordsByIP returns the approximate coordinates of ip.
//
// The status code is not inspected; the success flag in the body decides.
func (c *Client) FetchCoordsByIP(ctx context.Context, ip string) (Coordinates, error) {
	_, body, err := c.get(ctx, c.geoURL+url.PathEscape(ip))
	if err != nil {
		return Coordinates{}, err
	}

	var parsed geoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Coordinates{}, err
	}
	if !parsed.Success {
		return Coordinates{}, &LookupError{IP: ip, Message: parsed.Message}
	}
	return Coordinates{Latitude: parsed.Latitude, Longitude: parsed.Longitude}, nil
}

// FetchISSFlyOverTimes returns the upcoming passes over coords, as reported.
func (c *Client) FetchISSFlyOverTimes(ctx context.Context, coords Coordinates) ([]Pass, error) {
	u, err := url.Parse(c.flyOverURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	u.RawQuery = q.Encode()

	code, body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, &StatusError{Op: "fetching ISS pass times", Code: code, Body: string(body)}
	}

	var parsed flyOverResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	if parsed.Response == nil {
		return nil, ErrNoResponse
	}
	return parsed.Response, nil
}

// LocateByIP resolves the caller's public IP and then its coordinates.
func (c *Client) LocateByIP(ctx context.Context) (Coordinates, error) {
	ip, err := c.FetchMyIP(ctx)
	if err != nil {
		return Coordinates{}, err
	}
	return c.FetchCoordsByIP(ctx, ip)
}

// NextISSTimesForMyLocation chains the three lookups and returns the passes
// for the caller's current location. Nothing after a failed step is called.
func (c *Client) NextISSTimesForMyLocation(ctx context.Context) ([]Pass, error) {
	coords, err := c.LocateByIP(ctx)
	if err != nil {
		return nil, err
	}
	return c.FetchISSFlyOverTimes(ctx, coords)
}

// get issues a GET and returns the status code with the full body.
func (c *Client) get(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
