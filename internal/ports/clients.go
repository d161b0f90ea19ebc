package ports

import (
	"context"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/sample"
)

// SampleClient defines the client port for the downstream sample API.
// Implemented by the ACL adapter; called by the application layer.
// Methods map 1:1 to downstream endpoints using domain terminology.
type SampleClient interface {
	// GetSample returns a single sample by ID.
	// Returns domain.ErrNotFound if the sample does not exist.
	GetSample(ctx context.Context, id int64) (*sample.Sample, error)

	// SearchSamples returns samples matching the filter, sending the
	// criteria as query parameters.
	SearchSamples(ctx context.Context, filter sample.Filter) ([]sample.Sample, error)

	// SearchSamplesByPost returns samples matching the filter, sending the
	// criteria as a JSON body.
	SearchSamplesByPost(ctx context.Context, filter sample.Filter) ([]sample.Sample, error)
}
