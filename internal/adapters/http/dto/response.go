// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/sample"
	"github.com/jsamuelsen11/go-sample-gateway/internal/ports"
)

// SampleResponse represents a single sample in HTTP responses. Timestamps
// are rendered in the sample's client time zone when one was applied.
type SampleResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Locale      string `json:"locale,omitempty"`
	TimeZone    string `json:"time_zone,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// SampleListResponse represents a list of samples in HTTP responses.
type SampleListResponse struct {
	Samples []SampleResponse `json:"samples"`
	Count   int              `json:"count"`
}

// ToSampleResponse converts a domain Sample entity to an HTTP response DTO.
func ToSampleResponse(s *sample.Sample) SampleResponse {
	resp := SampleResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Locale:      s.DBLocaleLanguage,
		CreatedAt:   s.LocalCreatedAt().Format(time.RFC3339),
		UpdatedAt:   s.LocalUpdatedAt().Format(time.RFC3339),
	}
	if s.TimeZone != nil {
		resp.TimeZone = s.TimeZone.String()
	}
	return resp
}

// ToSampleListResponse converts a slice of domain Sample entities to an
// HTTP list response DTO.
func ToSampleListResponse(samples []sample.Sample) SampleListResponse {
	items := make([]SampleResponse, len(samples))
	for i := range samples {
		items[i] = ToSampleResponse(&samples[i])
	}
	return SampleListResponse{
		Samples: items,
		Count:   len(items),
	}
}

// BatchSamplesResponse represents the result of a batch lookup. It includes
// both found samples and per-ID errors.
type BatchSamplesResponse struct {
	Samples   []SampleResponse `json:"samples"`
	Errors    []BatchErrorItem `json:"errors"`
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
}

// BatchErrorItem represents a single failed lookup within a batch.
type BatchErrorItem struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// ToBatchSamplesResponse converts a ports.BatchResult to an HTTP response DTO.
func ToBatchSamplesResponse(result *ports.BatchResult) BatchSamplesResponse {
	samples := make([]SampleResponse, len(result.Samples))
	for i := range result.Samples {
		samples[i] = ToSampleResponse(&result.Samples[i])
	}

	errs := make([]BatchErrorItem, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = BatchErrorItem{
			ID:      e.ID,
			Message: e.Err.Error(),
		}
	}

	return BatchSamplesResponse{
		Samples:   samples,
		Errors:    errs,
		Total:     len(result.Samples) + len(result.Errors),
		Succeeded: len(result.Samples),
		Failed:    len(result.Errors),
	}
}
