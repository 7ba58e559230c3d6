package flyover

import (
	"fmt"
	"time"
)

// Coordinates is the position pass predictions are requested for.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Pass is a single predicted overhead transit of the ISS.
type Pass struct {
	RiseTime int64 `json:"risetime"` // Unix seconds
	Duration int64 `json:"duration"` // Seconds
}

// Start returns the rise time as a time.Time.
func (p Pass) Start() time.Time {
	return time.Unix(p.RiseTime, 0)
}

func (p Pass) String() string {
	return fmt.Sprintf("Next pass at %s for %d seconds!", p.Start().Format(time.RFC1123), p.Duration)
}
