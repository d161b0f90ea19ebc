package ports

import (
	"context"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/sample"
)

// SampleService defines the service port for sample queries.
// Implemented by the application layer; called by inbound adapters (handlers).
// Every returned sample carries the caller's client info when the request
// provided one.
type SampleService interface {
	// GetSample returns a single sample by ID.
	// Returns domain.ErrNotFound if the sample does not exist.
	GetSample(ctx context.Context, id int64) (*sample.Sample, error)

	// GetSamples fetches several samples concurrently. Uses partial success
	// semantics: each lookup succeeds or fails independently and failures
	// are collected in BatchResult.Errors. Duplicate IDs are fetched once.
	// Returns domain.ErrValidation for an empty or oversized ID list.
	GetSamples(ctx context.Context, ids []int64) (*BatchResult, error)

	// SearchSamples returns samples matching the filter via the downstream
	// GET search endpoint.
	// Returns domain.ErrValidation if the filter has no criteria.
	SearchSamples(ctx context.Context, filter sample.Filter) ([]sample.Sample, error)

	// SearchSamplesByPost returns samples matching the filter via the
	// downstream POST search endpoint.
	// Returns domain.ErrValidation if the filter has no criteria.
	SearchSamplesByPost(ctx context.Context, filter sample.Filter) ([]sample.Sample, error)
}

// BatchError records a single failed lookup within a batch.
type BatchError struct {
	ID  int64
	Err error
}

// BatchResult holds the outcomes of a batch lookup in request order.
// Samples contains successful lookups; Errors contains per-item failures.
type BatchResult struct {
	Samples []sample.Sample
	Errors  []BatchError
}
