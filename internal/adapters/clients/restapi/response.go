package restapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Outcome classifies a finished call.
type Outcome int

const (
	// OutcomeSuccess is a 2xx response whose body decoded.
	OutcomeSuccess Outcome = iota
	// OutcomeResponseError is a response with a non-2xx status.
	OutcomeResponseError
	// OutcomeUnknownError is anything that prevented a usable response:
	// a bad URL, a token failure, an open circuit, a transport error, or a
	// body that failed to encode or decode or exceeded the read limit.
	OutcomeUnknownError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeResponseError:
		return "response_error"
	case OutcomeUnknownError:
		return "unknown_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ErrUnknown is wrapped by every error carried by an unknown-error response.
var ErrUnknown = errors.New("restapi: unknown error")

// StatusError is the error carried by an HTTP-status error response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

// Response is the outcome of one call. Exactly one of IsSuccess,
// HasResponseError and HasUnknownError is true.
type Response[T any] struct {
	outcome    Outcome
	statusCode int
	status     string
	header     http.Header
	body       T
	raw        []byte
	err        error
}

// Outcome returns the classification of the call.
func (r *Response[T]) Outcome() Outcome { return r.outcome }

// StatusCode returns the HTTP status, or 0 when no response was received.
func (r *Response[T]) StatusCode() int { return r.statusCode }

// Status returns the HTTP status line text (e.g., "404 Not Found").
func (r *Response[T]) Status() string { return r.status }

// Header returns the response headers, or nil when no response was received.
func (r *Response[T]) Header() http.Header { return r.header }

// Body returns the decoded body. It is the zero value unless the call
// succeeded.
func (r *Response[T]) Body() T { return r.body }

// RawBody returns the undecoded response body, kept for both successes and
// HTTP-status errors.
func (r *Response[T]) RawBody() []byte { return r.raw }

// Err returns a *StatusError for HTTP-status errors, an error wrapping
// ErrUnknown for unknown errors, and nil on success.
func (r *Response[T]) Err() error { return r.err }

// IsSuccess reports a 2xx response with a decoded body.
func (r *Response[T]) IsSuccess() bool { return r.outcome == OutcomeSuccess }

// HasError reports either kind of failure.
func (r *Response[T]) HasError() bool { return r.outcome != OutcomeSuccess }

// HasResponseError reports a non-2xx HTTP status.
func (r *Response[T]) HasResponseError() bool { return r.outcome == OutcomeResponseError }

// HasUnknownError reports a failure that produced no usable response.
func (r *Response[T]) HasUnknownError() bool { return r.outcome == OutcomeUnknownError }

func unknownResponse[T any](err error) *Response[T] {
	return &Response[T]{
		outcome: OutcomeUnknownError,
		err:     fmt.Errorf("%w: %w", ErrUnknown, err),
	}
}
