// Package clientinfo carries the caller's locale and time zone from the
// inbound request to outbound REST calls and onto returned domain entities.
//
// The value travels in three forms: as a context value set by inbound
// middleware, as the JSON payload of the [HeaderName] header on outbound
// calls, and as fields on every entity that embeds [BaseEntity].
package clientinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// HeaderName is the HTTP header that carries the JSON-encoded client info.
const HeaderName = "X-Client-Info"

// ErrInvalid is returned by Decode when the header value is malformed.
var ErrInvalid = errors.New("invalid client info")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ClientInfo describes the locale and time zone the caller expects data in.
type ClientInfo struct {
	// DBLocaleLanguage is the BCP 47 language tag used for localized columns
	// (e.g., "en", "ko-KR").
	DBLocaleLanguage string `json:"dbLocaleLanguage" validate:"omitempty,bcp47_language_tag"`

	// DBTimeZone is the zone string handed to the database session
	// (e.g., "+09:00" or "Asia/Seoul").
	DBTimeZone string `json:"dbTimeZone" validate:"omitempty,max=64,printascii"`

	// TimeZone is an IANA zone name used to render timestamps.
	TimeZone string `json:"timeZone" validate:"omitempty,timezone"`
}

// Location resolves TimeZone. An empty or unknown zone yields UTC.
func (c ClientInfo) Location() *time.Location {
	if c.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsZero reports whether no field is set.
func (c ClientInfo) IsZero() bool {
	return c == ClientInfo{}
}

// Validate checks the field formats.
func (c ClientInfo) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Encode renders c as the JSON value of the client-info header.
func Encode(c ClientInfo) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding client info: %w", err)
	}
	return string(b), nil
}

// Decode parses and validates a client-info header value.
func Decode(raw string) (ClientInfo, error) {
	var c ClientInfo
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return ClientInfo{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return ClientInfo{}, err
	}
	return c, nil
}

type contextKey struct{}

// WithClientInfo returns a copy of ctx carrying c.
func WithClientInfo(ctx context.Context, c ClientInfo) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the client info stored in ctx, if any. The returned
// pointer refers to a copy.
func FromContext(ctx context.Context) (*ClientInfo, bool) {
	c, ok := ctx.Value(contextKey{}).(ClientInfo)
	if !ok {
		return nil, false
	}
	return &c, true
}
