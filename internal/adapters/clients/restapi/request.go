package restapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Errors recorded while building a request. They surface as unknown errors
// when the request is executed.
var (
	ErrInvalidURL         = errors.New("restapi: invalid URL")
	ErrUnresolvedVariable = errors.New("restapi: unresolved URI variable")
	ErrRequestAlreadySent = errors.New("restapi: request already executed")
	ErrUnsupportedParams  = errors.New("restapi: unsupported query params")
)

const mediaTypeJSON = "application/json"

// Request describes one outbound call. Build it fluently and pass it to one
// of the executors ([Get], [Post], ...). A Request is single-use and must not
// be shared between goroutines.
type Request struct {
	api       *API
	rawURL    string
	tokenAuth bool
	header    http.Header
	query     url.Values
	uriVars   map[string]string
	latency   time.Duration
	sent      bool
	err       error
}

func newRequest(api *API, rawURL string, tokenAuth bool) *Request {
	h := make(http.Header)
	h.Set("Accept", mediaTypeJSON)
	h.Set("Content-Type", mediaTypeJSON)

	return &Request{
		api:       api,
		rawURL:    rawURL,
		tokenAuth: tokenAuth,
		header:    h,
		query:     make(url.Values),
		uriVars:   make(map[string]string),
		latency:   -1,
	}
}

// AddHeader appends a value to the named header.
func (r *Request) AddHeader(name, value string) *Request {
	r.header.Add(name, value)
	return r
}

// SetHeader replaces the named header.
func (r *Request) SetHeader(name, value string) *Request {
	r.header.Set(name, value)
	return r
}

// QueryParam appends values to the named query parameter. A call with no
// values adds the parameter with an empty value.
func (r *Request) QueryParam(name string, values ...string) *Request {
	if len(values) == 0 {
		r.query.Add(name, "")
		return r
	}
	for _, v := range values {
		r.query.Add(name, v)
	}
	return r
}

// URIVariable binds a value to a {name} template in the URL. Values are
// path-escaped on expansion.
func (r *Request) URIVariable(name string, value any) *Request {
	r.uriVars[name] = fmt.Sprint(value)
	return r
}

// Headers returns a copy of the request headers as they stand, including
// any Authorization and client-info headers once the request has executed.
func (r *Request) Headers() http.Header {
	return r.header.Clone()
}

// Latency returns the wall time of the executed call, or -1 before the call.
func (r *Request) Latency() time.Duration {
	return r.latency
}

// TokenAuth reports whether a bearer token will be attached.
func (r *Request) TokenAuth() bool {
	return r.tokenAuth
}

// resolveURL expands URI variables, validates the result, and merges the
// query parameters.
func (r *Request) resolveURL() (*url.URL, error) {
	expanded := r.rawURL
	for name, value := range r.uriVars {
		expanded = strings.ReplaceAll(expanded, "{"+name+"}", url.PathEscape(value))
	}

	if i := strings.IndexByte(expanded, '{'); i >= 0 {
		if j := strings.IndexByte(expanded[i:], '}'); j > 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedVariable, expanded[i:i+j+1])
		}
	}

	u, err := url.Parse(expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidURL, r.rawURL)
	}

	if len(r.query) > 0 {
		q := u.Query()
		for name, values := range r.query {
			for _, v := range values {
				q.Add(name, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u, nil
}
