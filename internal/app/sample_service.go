// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/jsamuelsen11/go-sample-gateway/internal/app/appctx"
	"github.com/jsamuelsen11/go-sample-gateway/internal/app/fanout"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/clientinfo"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/sample"
	"github.com/jsamuelsen11/go-sample-gateway/internal/ports"
)

// Compile-time check that SampleService implements ports.SampleService.
var _ ports.SampleService = (*SampleService)(nil)

const (
	// DefaultMaxBatch is the largest number of IDs GetSamples accepts.
	DefaultMaxBatch = 50

	// DefaultWorkers bounds concurrent downstream calls made by GetSamples.
	DefaultWorkers = 8
)

// SampleService implements ports.SampleService on top of the downstream
// sample API. Fetches are memoized per request when the context carries an
// appctx.RequestContext, and client info is stamped onto every returned
// sample.
type SampleService struct {
	client    ports.SampleClient
	populater *clientinfo.Populater
	samples   *appctx.DataProvider[int64, *sample.Sample]
	maxBatch  int
	workers   int
	logger    *slog.Logger
}

// ServiceOption configures a SampleService.
type ServiceOption func(*SampleService)

// WithBatchLimits overrides the GetSamples batch size and worker count.
// Non-positive values keep the defaults.
func WithBatchLimits(maxBatch, workers int) ServiceOption {
	return func(s *SampleService) {
		if maxBatch > 0 {
			s.maxBatch = maxBatch
		}
		if workers > 0 {
			s.workers = workers
		}
	}
}

// NewSampleService creates a SampleService. populater may be nil, in which
// case samples are returned without client info. A nil logger is replaced
// with a no-op logger.
func NewSampleService(client ports.SampleClient, populater *clientinfo.Populater, logger *slog.Logger, opts ...ServiceOption) *SampleService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &SampleService{
		client:    client,
		populater: populater,
		maxBatch:  DefaultMaxBatch,
		workers:   DefaultWorkers,
		logger:    logger,
	}
	s.samples = appctx.NewDataProvider("sample", client.GetSample)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSample returns a single sample by ID.
func (s *SampleService) GetSample(ctx context.Context, id int64) (*sample.Sample, error) {
	s.logger.InfoContext(ctx, "fetching sample", slog.Int64("id", id))

	smp, err := s.fetch(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch sample",
			slog.String("operation", "GetSample"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.populate(ctx, smp)
	return smp, nil
}

// GetSamples fetches several samples concurrently. Duplicate IDs are fetched
// once. Per-ID failures are reported in BatchResult.Errors rather than
// failing the whole batch; only invalid input returns an error.
func (s *SampleService) GetSamples(ctx context.Context, ids []int64) (*ports.BatchResult, error) {
	if len(ids) == 0 {
		return nil, domain.NewFieldError("ids", "is required")
	}

	unique := dedupe(ids)
	if len(unique) > s.maxBatch {
		return nil, domain.NewFieldError("ids", "must contain at most "+strconv.Itoa(s.maxBatch)+" distinct values")
	}

	s.logger.InfoContext(ctx, "fetching samples",
		slog.Int("count", len(unique)),
		slog.Int("workers", s.workers),
	)

	results := fanout.Run(ctx, s.workers, unique, s.fetch)

	out := &ports.BatchResult{Samples: make([]sample.Sample, 0, len(unique))}
	for i, r := range results {
		switch {
		case r.Err != nil:
			out.Errors = append(out.Errors, ports.BatchError{ID: unique[i], Err: r.Err})
		case r.Value != nil:
			out.Samples = append(out.Samples, *r.Value)
		}
	}

	if len(out.Errors) > 0 {
		s.logger.WarnContext(ctx, "some samples could not be fetched",
			slog.String("operation", "GetSamples"),
			slog.Int("failed", len(out.Errors)),
			slog.Int("succeeded", len(out.Samples)),
		)
	}

	s.populate(ctx, out.Samples)
	return out, nil
}

// SearchSamples validates the filter and searches via query parameters.
func (s *SampleService) SearchSamples(ctx context.Context, filter sample.Filter) ([]sample.Sample, error) {
	return s.search(ctx, "SearchSamples", filter, s.client.SearchSamples)
}

// SearchSamplesByPost validates the filter and searches with a JSON body.
func (s *SampleService) SearchSamplesByPost(ctx context.Context, filter sample.Filter) ([]sample.Sample, error) {
	return s.search(ctx, "SearchSamplesByPost", filter, s.client.SearchSamplesByPost)
}

func (s *SampleService) search(
	ctx context.Context,
	operation string,
	filter sample.Filter,
	fn func(context.Context, sample.Filter) ([]sample.Sample, error),
) ([]sample.Sample, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "searching samples",
		slog.String("operation", operation),
		slog.String("name", filter.Name),
		slog.String("description", filter.Description),
	)

	samples, err := fn(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to search samples",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.populate(ctx, samples)
	return samples, nil
}

// fetch returns a private copy of the memoized sample so callers may stamp
// or mutate it without affecting other readers of the request cache.
func (s *SampleService) fetch(ctx context.Context, id int64) (*sample.Sample, error) {
	smp, err := s.samples.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if smp == nil {
		return nil, domain.ErrNotFound
	}
	cp := *smp
	return &cp, nil
}

func (s *SampleService) populate(ctx context.Context, v any) {
	if s.populater != nil {
		s.populater.Populate(ctx, v)
	}
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
