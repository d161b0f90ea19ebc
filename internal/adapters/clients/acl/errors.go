// Package acl is the anti-corruption layer between sample-api and the
// domain. The sample subpackage translates payloads; this package holds the
// client and the error mapping.
package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/clients/restapi"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/httpclient"
)

const maxErrorBodySize = 1 << 20

// statusErrors maps sample-api statuses onto domain sentinels. Any other 5xx
// is unavailable as well.
var statusErrors = map[int]error{
	http.StatusBadRequest:          domain.ErrValidation,
	http.StatusUnprocessableEntity: domain.ErrValidation,
	http.StatusUnauthorized:        domain.ErrForbidden,
	http.StatusForbidden:           domain.ErrForbidden,
	http.StatusNotFound:            domain.ErrNotFound,
	http.StatusGone:                domain.ErrNotFound,
	http.StatusConflict:            domain.ErrConflict,
	http.StatusTooManyRequests:     domain.ErrUnavailable,
}

// errorBody covers both error shapes sample-api emits: RFC 9457 problem
// details and the plain {"status","error","message","path"} JSON body.
type errorBody struct {
	Title   string       `json:"title"`
	Detail  string       `json:"detail"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors"`
}

type fieldError struct {
	Location string `json:"location"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (b errorBody) summary() string {
	for _, s := range []string{b.Detail, b.Message, b.Title} {
		if s != "" {
			return s
		}
	}
	return ""
}

// TranslateError maps the error of a failed [restapi.Response] onto a domain
// error. Caller cancellation and deadlines pass through unchanged so the
// inbound side can tell them apart from a downstream outage.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var statusErr *restapi.StatusError
	switch {
	case errors.As(err, &statusErr):
		return translateStatus(statusErr)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case httpclient.IsCircuitOpen(err):
		return fmt.Errorf("sample-api circuit open: %w", domain.ErrUnavailable)
	default:
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
}

func translateStatus(e *restapi.StatusError) error {
	body := parseErrorBody(e.Header, e.Body)
	detail := body.summary()
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}

	sentinel, ok := statusErrors[e.StatusCode]
	if !ok && e.StatusCode >= http.StatusInternalServerError {
		sentinel, ok = domain.ErrUnavailable, true
	}
	if !ok {
		return fmt.Errorf("unexpected sample-api status %d: %s", e.StatusCode, detail)
	}

	if errors.Is(sentinel, domain.ErrValidation) && len(body.Errors) > 0 {
		return toValidationError(body.Errors)
	}
	return fmt.Errorf("%s: %w", detail, sentinel)
}

// parseErrorBody reads a JSON or problem+json body. Anything else, or
// malformed JSON, yields the zero errorBody.
func parseErrorBody(header http.Header, raw []byte) errorBody {
	mt, _, err := mime.ParseMediaType(header.Get("Content-Type"))
	if err != nil || (mt != "application/problem+json" && mt != "application/json") {
		return errorBody{}
	}
	if len(raw) > maxErrorBodySize {
		raw = raw[:maxErrorBodySize]
	}

	var b errorBody
	if err := json.Unmarshal(raw, &b); err != nil {
		return errorBody{}
	}
	return b
}

// toValidationError keys fields by name, dropping the "body." or "query."
// prefix sample-api puts on locations.
func toValidationError(details []fieldError) *domain.ValidationError {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		name := d.Field
		if name == "" {
			name = d.Location
			for _, prefix := range []string{"body.", "query.", "path."} {
				name = strings.TrimPrefix(name, prefix)
			}
		}
		fields[name] = d.Message
	}
	return &domain.ValidationError{Fields: fields}
}
