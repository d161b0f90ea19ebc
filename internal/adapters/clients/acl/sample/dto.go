// Package sample implements the Anti-Corruption Layer translators for the
// downstream sample API's sample resources.
package sample

// SampleDTO matches the downstream Sample schema. The downstream serializes
// field names in camelCase and timestamps as RFC 3339 strings.
type SampleDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// SearchDTO is the downstream search criteria, sent as query parameters on
// GET and as the JSON body on POST.
type SearchDTO struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}
