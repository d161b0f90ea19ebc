package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/clientinfo"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 10 << 20 // 10 MB

// errNoResponse is recorded when the transport returns neither a response
// nor an error.
var errNoResponse = errors.New("transport returned no response")

// ErrResponseTooLarge is wrapped by the unknown error of a call whose
// response body exceeded the read limit. RawBody holds the first
// maxResponseSize bytes.
var ErrResponseTooLarge = errors.New("restapi: response body too large")

// Get executes r as a GET and decodes the body into T.
func Get[T any](ctx context.Context, r *Request) *Response[T] {
	return Execute[T](ctx, r, http.MethodGet, nil)
}

// GetWithParams adds params to the query string and executes r as a GET.
// params may be a struct (fields keyed by their json tag), a map with string
// keys, or url.Values.
func GetWithParams[T any](ctx context.Context, r *Request, params any) *Response[T] {
	q, err := encodeParams(params)
	if err != nil {
		r.err = err
	}
	for name, values := range q {
		r.QueryParam(name, values...)
	}
	return Get[T](ctx, r)
}

// Post executes r as a POST with body encoded as JSON.
func Post[T any](ctx context.Context, r *Request, body any) *Response[T] {
	return Execute[T](ctx, r, http.MethodPost, body)
}

// Put executes r as a PUT with body encoded as JSON.
func Put[T any](ctx context.Context, r *Request, body any) *Response[T] {
	return Execute[T](ctx, r, http.MethodPut, body)
}

// Delete executes r as a DELETE.
func Delete[T any](ctx context.Context, r *Request) *Response[T] {
	return Execute[T](ctx, r, http.MethodDelete, nil)
}

// Execute sends r with the given method and body and wraps the outcome.
// A body of []byte, string or io.Reader is sent as is; anything else is
// encoded as JSON. A nil body sends no payload.
//
// On success the body is decoded into T: []byte and string receive the raw
// payload, every other type is decoded from JSON. An empty payload leaves T
// at its zero value.
func Execute[T any](ctx context.Context, r *Request, method string, body any) *Response[T] {
	start := time.Now()

	ex := r.send(ctx, method, body)
	resp := wrap[T](ctx, r.api, ex)

	r.latency = time.Since(start)
	r.api.observe(ctx, ex, resp.outcome, resp.err, r.latency)

	return resp
}

// exchange records one round trip for wrapping and logging.
type exchange struct {
	method     string
	url        string
	reqHeader  http.Header
	reqBody    []byte
	statusCode int
	status     string
	header     http.Header
	raw        []byte
	truncated  bool
	err        error
}

func (r *Request) send(ctx context.Context, method string, body any) *exchange {
	ex := &exchange{method: method, url: r.rawURL}

	if r.sent {
		ex.err = ErrRequestAlreadySent
		return ex
	}
	r.sent = true

	if r.err != nil {
		ex.err = r.err
		return ex
	}

	u, err := r.resolveURL()
	if err != nil {
		ex.err = err
		return ex
	}
	ex.url = u.String()

	ex.reqBody, err = encodeBody(body)
	if err != nil {
		ex.err = err
		return ex
	}

	err = r.prepareHeaders(ctx)
	ex.reqHeader = r.header.Clone()
	if err != nil {
		ex.err = err
		return ex
	}

	var payload io.Reader = http.NoBody
	if ex.reqBody != nil {
		payload = bytes.NewReader(ex.reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, ex.url, payload)
	if err != nil {
		ex.err = fmt.Errorf("creating request: %w", err)
		return ex
	}
	req.Header = r.header.Clone()

	// The transport may return both a response and an error once retries on
	// a retryable status are exhausted. The response is authoritative then.
	resp, err := r.api.transport.Do(ctx, req)
	if resp == nil {
		if err == nil {
			err = errNoResponse
		}
		ex.err = err
		return ex
	}
	defer func() { _ = resp.Body.Close() }()

	ex.statusCode = resp.StatusCode
	ex.status = resp.Status
	ex.header = resp.Header

	ex.raw, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		ex.err = fmt.Errorf("reading response body: %w", err)
	}
	if len(ex.raw) > maxResponseSize {
		ex.raw = ex.raw[:maxResponseSize]
		ex.truncated = true
	}

	return ex
}

// prepareHeaders attaches the bearer token and the client-info header.
func (r *Request) prepareHeaders(ctx context.Context) error {
	if r.tokenAuth && r.api.tokens != nil {
		tok, err := r.api.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("obtaining token: %w", err)
		}
		r.header.Set("Authorization", "Bearer "+tok)
	}

	if r.api.resolver == nil {
		return nil
	}
	info := r.api.resolver.Resolve(ctx)
	if info == nil {
		return nil
	}
	encoded, err := clientinfo.Encode(*info)
	if err != nil {
		return err
	}
	r.header.Set(clientinfo.HeaderName, encoded)
	return nil
}

func wrap[T any](ctx context.Context, api *API, ex *exchange) *Response[T] {
	if ex.err != nil {
		return unknownResponse[T](fmt.Errorf("%s %s: %w", ex.method, ex.url, ex.err))
	}

	resp := &Response[T]{
		statusCode: ex.statusCode,
		status:     ex.status,
		header:     ex.header,
		raw:        ex.raw,
	}

	if ex.truncated {
		resp.outcome = OutcomeUnknownError
		resp.err = fmt.Errorf("%w: %s %s: %w (limit %d bytes)",
			ErrUnknown, ex.method, ex.url, ErrResponseTooLarge, maxResponseSize)
		return resp
	}

	if ex.statusCode < http.StatusOK || ex.statusCode >= http.StatusMultipleChoices {
		resp.outcome = OutcomeResponseError
		resp.err = &StatusError{
			Method:     ex.method,
			URL:        ex.url,
			StatusCode: ex.statusCode,
			Status:     ex.status,
			Header:     ex.header,
			Body:       ex.raw,
		}
		return resp
	}

	if err := decodeBody(ex.raw, &resp.body); err != nil {
		var zero T
		resp.body = zero
		resp.outcome = OutcomeUnknownError
		resp.err = fmt.Errorf("%w: %s %s: decoding %T: %w", ErrUnknown, ex.method, ex.url, zero, err)
		return resp
	}

	if api.populater != nil {
		api.populater.Populate(ctx, &resp.body)
	}

	resp.outcome = OutcomeSuccess
	return resp
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		return data, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		return data, nil
	}
}

func decodeBody(raw []byte, dst any) error {
	switch d := dst.(type) {
	case *[]byte:
		*d = bytes.Clone(raw)
		return nil
	case *string:
		*d = string(raw)
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
