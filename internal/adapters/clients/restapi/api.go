// Package restapi is a fluent builder for outbound REST calls.
//
// A call starts from an [API], which holds the shared transport and the
// collaborators every call needs, and proceeds through a single-use
// [Request]:
//
//	resp := restapi.Get[SampleDTO](ctx, api.Client(baseURL+"/api/samples/{id}").
//		URIVariable("id", "2"))
//	if resp.HasError() {
//		return resp.Err()
//	}
//	dto := resp.Body()
//
// Every call carries JSON Accept and Content-Type headers, a bearer token
// when token auth is enabled, and the caller's client info in the
// [clientinfo.HeaderName] header when one can be resolved. The result is a
// [Response] in exactly one of three states: success, HTTP-status error, or
// unknown error. Calls never panic and never return a bare error.
package restapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/clientinfo"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/token"
)

// defaultMaxBodyLog caps how many body bytes are written to a log record.
const defaultMaxBodyLog = 4096

// Transport dispatches a prepared request. *httpclient.Client satisfies it.
type Transport interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// API creates requests that share one transport, token source, client-info
// resolver and populater. It is immutable after construction and safe for
// concurrent use.
type API struct {
	transport  Transport
	tokens     token.Source
	resolver   clientinfo.Resolver
	populater  *clientinfo.Populater
	metrics    *telemetry.Metrics
	logger     *slog.Logger
	maxBodyLog int
}

// Option configures an API.
type Option func(*API)

// WithTokenSource sets the source of bearer tokens. Without one, requests
// with token auth enabled are sent without an Authorization header.
func WithTokenSource(src token.Source) Option {
	return func(a *API) { a.tokens = src }
}

// WithResolver sets the resolver for the client-info header.
func WithResolver(r clientinfo.Resolver) Option {
	return func(a *API) { a.resolver = r }
}

// WithPopulater stamps client info onto successfully decoded bodies.
func WithPopulater(p *clientinfo.Populater) Option {
	return func(a *API) { a.populater = p }
}

// WithMetrics records one RestCallTotal sample per call.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(a *API) { a.metrics = m }
}

// WithMaxBodyLog caps logged request and response bodies at n bytes.
// Zero disables body logging.
func WithMaxBodyLog(n int) Option {
	return func(a *API) {
		if n >= 0 {
			a.maxBodyLog = n
		}
	}
}

// New returns an API that dispatches through transport.
func New(transport Transport, logger *slog.Logger, opts ...Option) *API {
	a := &API{
		transport:  transport,
		logger:     logger,
		maxBodyLog: defaultMaxBodyLog,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Client starts a request to rawURL with token auth enabled. rawURL must be
// an absolute http or https URL and may contain {name} path templates.
func (a *API) Client(rawURL string) *Request {
	return a.ClientWithAuth(rawURL, true)
}

// ClientWithAuth starts a request to rawURL, attaching a bearer token only
// when tokenAuth is true.
func (a *API) ClientWithAuth(rawURL string, tokenAuth bool) *Request {
	return newRequest(a, rawURL, tokenAuth)
}
