package dto

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/logging"
)

// detailInternal replaces the detail of unmapped errors, which may carry
// sample-api response bodies or stack context.
const detailInternal = "an unexpected error occurred"

// ErrorResponse is an RFC 9457 problem details body. RequestID is an
// extension member echoing the X-Request-ID response header.
type ErrorResponse struct {
	Type      string        `json:"type"`
	Title     string        `json:"title"`
	Status    int           `json:"status"`
	Detail    string        `json:"detail,omitempty"`
	Instance  string        `json:"instance,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	Errors    []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail is one invalid input. Location is prefixed with where the
// value came from: "body.", "query.", "path." or "header.".
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// statusByError is checked in order; the first match wins.
var statusByError = []struct {
	target error
	status int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnavailable, http.StatusBadGateway},
	{domain.ErrTimeout, http.StatusGatewayTimeout},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

func statusFor(err error) int {
	for _, m := range statusByError {
		if errors.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

func problem(r *http.Request, status int, detail string) ErrorResponse {
	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.RequestURI,
	}
}

// NewErrorResponse maps err to a problem body for r. Only 500 responses hide
// the error text.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		return problem(r, status, detailInternal)
	}

	resp := problem(r, status, err.Error())
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = toErrorDetails(verr.Fields)
	}
	return resp
}

// WriteStatusResponse writes a problem body for a status that has no domain
// error behind it, such as 405 from the router.
func WriteStatusResponse(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblem(w, r, problem(r, status, detail))
}

// WriteErrorResponse writes err as application/problem+json. 500s are logged
// with the full error since the body no longer carries it.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := NewErrorResponse(r, err)
	if resp.Status == http.StatusInternalServerError {
		ctx := r.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	writeProblem(w, r, resp)
}

func writeProblem(w http.ResponseWriter, r *http.Request, resp ErrorResponse) {
	resp.RequestID = w.Header().Get("X-Request-ID")
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(resp.Status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode error response",
			slog.Any("error", err),
		)
	}
}

// toErrorDetails sorts field failures by location. Unprefixed field names
// belong to the body.
func toErrorDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		loc := field
		if !strings.Contains(field, ".") {
			loc = "body." + field
		}
		details = append(details, ErrorDetail{Location: loc, Message: msg})
	}
	slices.SortFunc(details, func(a, b ErrorDetail) int {
		return cmp.Compare(a.Location, b.Location)
	})
	return details
}
