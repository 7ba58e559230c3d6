package flyover

import (
	"errors"
	"fmt"
)

// ErrNoIP is returned when the IP endpoint answers without an ip field.
var ErrNoIP = errors.New("response did not contain an ip")

// StatusError reports a non-200 answer from an endpoint.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code %d when %s. Response: %s", e.Code, e.Op, e.Body)
}

// LookupError reports a geolocation answer whose success flag was false.
type LookupError struct {
	IP      string
	Message string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("geolocation unsuccessful: server message says %q when fetching coordinates for IP %s", e.Message, e.IP)
}
