package acl

import (
	"context"
	"log/slog"
	"strings"

	samplev1 "github.com/jsamuelsen11/go-sample-gateway/internal/adapters/clients/acl/sample"
	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/clients/restapi"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/sample"
	"github.com/jsamuelsen11/go-sample-gateway/internal/ports"
)

// Downstream endpoint templates, relative to the base URL.
const (
	pathSample       = "/api/samples/{id}"
	pathSampleSearch = "/api/samples/search"
)

// Compile-time interface check.
var _ ports.SampleClient = (*SampleClient)(nil)

// SampleClient is the outbound adapter for the downstream sample API. It
// implements [ports.SampleClient] on top of the [restapi] builder, so every
// call carries a service token and the caller's client info.
//
// Responses are translated to domain types via the [samplev1] translators.
// Failed calls are mapped to domain errors (ErrNotFound, ErrUnavailable,
// etc.) by [TranslateError].
type SampleClient struct {
	api     *restapi.API
	baseURL string
	breaker BreakerState
	logger  *slog.Logger
}

// NewSampleClient creates a SampleClient that sends requests through api to
// baseURL (e.g. "http://sample-api:8081"). breaker reports the transport's
// circuit state for health checks; *httpclient.Client satisfies it.
func NewSampleClient(api *restapi.API, baseURL string, breaker BreakerState, logger *slog.Logger) *SampleClient {
	return &SampleClient{
		api:     api,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		breaker: breaker,
		logger:  logger,
	}
}

// GetSample fetches GET /api/samples/{id}.
// Returns [domain.ErrNotFound] if the downstream API returns 404.
func (c *SampleClient) GetSample(ctx context.Context, id int64) (*sample.Sample, error) {
	req := c.api.Client(c.baseURL+pathSample).URIVariable("id", id)

	resp := restapi.Get[samplev1.SampleDTO](ctx, req)
	if resp.HasError() {
		return nil, c.fail(ctx, "GetSample", resp.Err())
	}

	dto := resp.Body()
	result := samplev1.ToDomainSample(&dto)
	return &result, nil
}

// SearchSamples fetches GET /api/samples/search with the filter encoded as
// query parameters.
func (c *SampleClient) SearchSamples(ctx context.Context, filter sample.Filter) ([]sample.Sample, error) {
	req := c.api.Client(c.baseURL + pathSampleSearch)

	resp := restapi.GetWithParams[[]samplev1.SampleDTO](ctx, req, samplev1.ToSearchDTO(filter))
	if resp.HasError() {
		return nil, c.fail(ctx, "SearchSamples", resp.Err())
	}
	return samplev1.ToDomainSampleList(resp.Body()), nil
}

// SearchSamplesByPost sends POST /api/samples/search with the filter as the
// JSON body.
func (c *SampleClient) SearchSamplesByPost(ctx context.Context, filter sample.Filter) ([]sample.Sample, error) {
	req := c.api.Client(c.baseURL + pathSampleSearch)

	resp := restapi.Post[[]samplev1.SampleDTO](ctx, req, samplev1.ToSearchDTO(filter))
	if resp.HasError() {
		return nil, c.fail(ctx, "SearchSamplesByPost", resp.Err())
	}
	return samplev1.ToDomainSampleList(resp.Body()), nil
}

func (c *SampleClient) fail(ctx context.Context, op string, err error) error {
	translated := TranslateError(err)
	c.logger.DebugContext(ctx, "downstream call failed",
		slog.String("operation", "acl.SampleClient."+op),
		slog.String("error", translated.Error()),
	)
	return translated
}
