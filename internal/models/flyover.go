package models

import (
	"time"

	"github.com/benmeehan/iss-flyover/pkg/flyover"
)

// FlyoverReport is the result of one lookup as logged and published.
type FlyoverReport struct {
	RunID     string         `json:"run_id"`
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Passes    []flyover.Pass `json:"passes"`
}
