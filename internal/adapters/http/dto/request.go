package dto

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/sample"
)

const (
	msgRequired = "is required"
	msgInvalid  = "is invalid"
)

var validate = newValidator()

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SearchSamplesRequest represents the JSON body (or query parameters) of a
// sample search. At least one criterion is required.
type SearchSamplesRequest struct {
	Name        string `json:"name" validate:"required_without=Description,max=200"`
	Description string `json:"description" validate:"required_without=Name,max=200"`
}

// Validate checks the search criteria.
// Returns a *domain.ValidationError if any checks fail.
func (r *SearchSamplesRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	return toValidationError(validate.Struct(r))
}

// ToFilter converts the request to a domain filter.
func (r *SearchSamplesRequest) ToFilter() sample.Filter {
	return sample.Filter{Name: r.Name, Description: r.Description}
}

// ParseIDList parses a comma-separated list of positive integer IDs such as
// "1,2,3". Blank entries are skipped. field names the source in errors
// (e.g. "query.ids").
func ParseIDList(field, raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, domain.NewFieldError(field, "must be a comma-separated list of positive integers")
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, domain.NewFieldError(field, msgRequired)
	}
	return ids, nil
}

// toValidationError converts validator output to a *domain.ValidationError.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewFieldError("body", err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &domain.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return msgRequired
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return msgInvalid
	}
}
