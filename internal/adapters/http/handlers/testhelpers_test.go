package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/sample"
)

var fixtureTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

// getSampleRequest builds GET /api/v1/samples/{id} with the chi route
// parameter already bound, as the router would.
func getSampleRequest(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/samples/"+id, http.NoBody)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleFixture(id int64) sample.Sample {
	return sample.Sample{
		ID:          id,
		Name:        "alpha",
		Description: "first sample",
		CreatedAt:   fixtureTime,
		UpdatedAt:   fixtureTime,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("encoding request body: %v", err)
	}
	return bytes.NewBuffer(b)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding response body %q: %v", rec.Body.String(), err)
	}
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
