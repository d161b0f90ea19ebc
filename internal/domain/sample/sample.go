// Package sample holds the Sample entity served by the downstream sample API.
package sample

import (
	"strings"
	"time"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/clientinfo"
)

// msgRequired is the validation message for mandatory fields.
const msgRequired = "is required"

// Sample is a named, described record. Client info is stamped onto it after
// it is fetched so timestamps can be rendered in the caller's zone.
type Sample struct {
	clientinfo.BaseEntity

	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LocalCreatedAt returns CreatedAt in the entity's time zone.
func (s *Sample) LocalCreatedAt() time.Time {
	return s.CreatedAt.In(s.Location())
}

// LocalUpdatedAt returns UpdatedAt in the entity's time zone.
func (s *Sample) LocalUpdatedAt() time.Time {
	return s.UpdatedAt.In(s.Location())
}

// Filter holds optional search criteria. Zero-value fields mean "no filter"
// for that dimension.
type Filter struct {
	Name        string
	Description string
}

// IsZero reports whether no criteria are set.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Name) == "" && strings.TrimSpace(f.Description) == ""
}

// Validate rejects a filter with no criteria.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) or nil.
func (f Filter) Validate() error {
	if f.IsZero() {
		return domain.NewFieldError("name", msgRequired+" (or description)")
	}
	return nil
}
