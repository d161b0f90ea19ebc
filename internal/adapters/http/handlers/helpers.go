package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/logging"
)

const maxBodyBytes = 1 << 20

// pathID reads a positive int64 chi URL parameter.
func pathID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewFieldError("path."+param, "must be a positive integer")
	}
	return id, nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "failed to encode response",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
}

type validatable interface {
	Validate() error
}

// bindJSON decodes exactly one JSON document from the body into dst and
// validates it. It writes the problem response itself and returns false on
// any failure.
func bindJSON[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != "application/json" {
			dto.WriteStatusResponse(w, r, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return false
		}
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil && dec.More() {
		err = errors.New("trailing data")
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, domain.NewFieldError("body", bodyProblem(err)))
		return false
	}

	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

func bodyProblem(err error) string {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return "must not exceed 1 MiB"
	case errors.Is(err, io.EOF):
		return "is required"
	default:
		return "invalid JSON"
	}
}

// inLocation moves validation fields under loc, for example "query", so the
// problem details point at the right part of the request.
func inLocation(err error, loc string) error {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return verr.At(loc)
}
