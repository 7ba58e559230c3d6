package location

import (
	"context"

	"github.com/benmeehan/iss-flyover/pkg/flyover"
)

// IPProvider locates the host by its public IP address.
type IPProvider struct {
	client *flyover.Client
}

// NewIPProvider creates an IPProvider backed by client.
func NewIPProvider(client *flyover.Client) *IPProvider {
	return &IPProvider{client: client}
}

// GetLocation resolves the public IP and then its coordinates.
func (p *IPProvider) GetLocation(ctx context.Context) (flyover.Coordinates, error) {
	return p.client.LocateByIP(ctx)
}

func (p *IPProvider) Source() string { return SourceIP }

func (p *IPProvider) Close() error { return nil }
