package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// minSecretLength is the shortest HMAC secret accepted for service tokens.
const minSecretLength = 32

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})
	if err := v.RegisterValidation("origin", isOrigin); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(authRules, AuthConfig{})
	v.RegisterStructValidation(rateLimitRules, RateLimitConfig{})
	v.RegisterStructValidation(telemetryRules, TelemetryConfig{})
	return v
}

// Validate checks every section and joins one error per failing key, each
// naming the dotted koanf key (for example "server.port").
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}

	errs := make([]error, 0, len(fields))
	for _, fe := range fields {
		errs = append(errs, keyError(fe))
	}
	return errors.Join(errs...)
}

func keyError(fe validator.FieldError) error {
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}

	var msg string
	switch p := fe.Param(); fe.Tag() {
	case "required":
		msg = "must not be empty"
	case "min":
		msg = fmt.Sprintf("must be at least %s, got %v", p, fe.Value())
	case "max":
		msg = fmt.Sprintf("must be at most %s, got %v", p, fe.Value())
	case "gt":
		msg = fmt.Sprintf("must be greater than %s, got %v", p, fe.Value())
		if p == "0" {
			msg = fmt.Sprintf("must be positive, got %v", fe.Value())
		}
	case "gte":
		msg = fmt.Sprintf("must be >= %s, got %v", p, fe.Value())
	case "oneof":
		msg = fmt.Sprintf("must be one of: %s; got %q", strings.ReplaceAll(p, " ", ", "), fe.Value())
	case "http_url":
		msg = fmt.Sprintf("must be an absolute http(s) URL, got %q", fe.Value())
	case "timezone":
		msg = fmt.Sprintf("%q is not a known IANA zone", fe.Value())
	case "origin":
		msg = fmt.Sprintf("%q must be \"*\" or a scheme://host origin", fe.Value())
	case "secret_length":
		msg = fmt.Sprintf("must be at least %s characters when auth is enabled", p)
	case "refresh_window":
		msg = fmt.Sprintf("must be in [0, %s), got %v", p, fe.Value())
	case "burst_when_limited":
		msg = "must be >= 1 when rate limiting is enabled"
	default:
		msg = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return fmt.Errorf("%s %s", key, msg)
}

// isOrigin accepts "*" or a bare http(s) scheme://host[:port] origin.
func isOrigin(fl validator.FieldLevel) bool {
	origin := fl.Field().String()
	if origin == "*" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" || (u.Path != "" && u.Path != "/") {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func authRules(sl validator.StructLevel) {
	a, _ := sl.Current().Interface().(AuthConfig)
	if !a.Enabled {
		return
	}
	if len(a.Secret) < minSecretLength {
		sl.ReportError(nil, "secret", "Secret", "secret_length", strconv.Itoa(minSecretLength))
	}
	if a.Issuer == "" {
		sl.ReportError(a.Issuer, "issuer", "Issuer", "required", "")
	}
	if a.TTL <= 0 {
		sl.ReportError(a.TTL, "ttl", "TTL", "gt", "0")
	}
	if a.RefreshBefore < 0 || a.RefreshBefore >= a.TTL {
		sl.ReportError(a.RefreshBefore, "refresh_before", "RefreshBefore", "refresh_window", a.TTL.String())
	}
}

func rateLimitRules(sl validator.StructLevel) {
	r, _ := sl.Current().Interface().(RateLimitConfig)
	if r.RequestsPerSecond > 0 && r.BurstSize < 1 {
		sl.ReportError(r.BurstSize, "burst_size", "BurstSize", "burst_when_limited", "")
	}
}

func telemetryRules(sl validator.StructLevel) {
	t, _ := sl.Current().Interface().(TelemetryConfig)
	if !t.Enabled {
		return
	}
	switch t.Exporter {
	case "stdout":
	case "otlp":
		if t.Endpoint == "" {
			sl.ReportError(t.Endpoint, "endpoint", "Endpoint", "required", "")
		}
	default:
		sl.ReportError(t.Exporter, "exporter", "Exporter", "oneof", "stdout otlp")
	}
}
