// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-sample-gateway/internal/ports"
)

// SampleHandler handles HTTP requests for sample lookups and searches.
type SampleHandler struct {
	svc ports.SampleService
}

// NewSampleHandler creates a new SampleHandler with the given service port.
func NewSampleHandler(svc ports.SampleService) *SampleHandler {
	return &SampleHandler{svc: svc}
}

// GetSample handles GET /api/v1/samples/{id}.
func (h *SampleHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	s, err := h.svc.GetSample(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToSampleResponse(s))
}

// ListSamples handles GET /api/v1/samples?ids=1,2,3. Lookups succeed or fail
// per ID; the response is 200 with both lists.
func (h *SampleHandler) ListSamples(w http.ResponseWriter, r *http.Request) {
	ids, err := dto.ParseIDList("query.ids", r.URL.Query().Get("ids"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	result, err := h.svc.GetSamples(r.Context(), ids)
	if err != nil {
		dto.WriteErrorResponse(w, r, inLocation(err, "query"))
		return
	}

	respond(w, r, http.StatusOK, dto.ToBatchSamplesResponse(result))
}

// SearchSamples handles GET /api/v1/samples/search?name=&description=.
func (h *SampleHandler) SearchSamples(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.SearchSamplesRequest{
		Name:        q.Get("name"),
		Description: q.Get("description"),
	}
	if err := req.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, inLocation(err, "query"))
		return
	}

	samples, err := h.svc.SearchSamples(r.Context(), req.ToFilter())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToSampleListResponse(samples))
}

// SearchSamplesByPost handles POST /api/v1/samples/search with a JSON body.
func (h *SampleHandler) SearchSamplesByPost(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchSamplesRequest
	if !bindJSON(w, r, &req) {
		return
	}

	samples, err := h.svc.SearchSamplesByPost(r.Context(), req.ToFilter())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToSampleListResponse(samples))
}
