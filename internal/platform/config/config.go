// Package config loads the gateway's layered koanf configuration and
// validates it. Field rules live in validate struct tags; rules that span
// fields are registered as struct-level validations in validate.go.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
	Client     ClientConfig     `koanf:"client"`
	Auth       AuthConfig       `koanf:"auth"`
	ClientInfo ClientInfoConfig `koanf:"client_info"`
	Samples    SamplesConfig    `koanf:"samples"`
	CORS       CORSConfig       `koanf:"cors"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"gte=0"`

	// HealthCheckTimeout bounds each readiness check.
	HealthCheckTimeout time.Duration `koanf:"health_check_timeout" validate:"gt=0"`
	// ShutdownTimeout bounds how long in-flight requests may drain.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

// ClientConfig holds settings for the shared outbound HTTP transport.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url" validate:"required,http_url"`
	Timeout        time.Duration        `koanf:"timeout" validate:"gt=0"`
	MaxBodyLog     int                  `koanf:"max_body_log" validate:"gte=0"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
// Only idempotent methods are retried unless RetryNonIdempotent is set.
type RetryConfig struct {
	MaxAttempts        int           `koanf:"max_attempts" validate:"min=1"`
	InitialInterval    time.Duration `koanf:"initial_interval" validate:"gte=0"`
	MaxInterval        time.Duration `koanf:"max_interval" validate:"gte=0"`
	Multiplier         float64       `koanf:"multiplier" validate:"gt=0"`
	RetryNonIdempotent bool          `koanf:"retry_non_idempotent"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures" validate:"min=1"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"gte=0"`
}

// RateLimitConfig holds client-side rate limiting settings. A zero
// RequestsPerSecond disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`
	BurstSize         int     `koanf:"burst_size"`
}

// SamplesConfig bounds the batch endpoint. MaxBatch counts distinct IDs.
type SamplesConfig struct {
	MaxBatch int `koanf:"max_batch" validate:"min=1"`
	Workers  int `koanf:"workers" validate:"min=1"`
}

// AuthConfig holds settings for the service tokens attached to outbound calls.
// Its fields are only checked when Enabled is set.
type AuthConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Issuer        string        `koanf:"issuer"`
	Subject       string        `koanf:"subject"`
	Audience      []string      `koanf:"audience"`
	Secret        string        `koanf:"secret"`
	TTL           time.Duration `koanf:"ttl"`
	RefreshBefore time.Duration `koanf:"refresh_before"`
}

// ClientInfoConfig holds the fallback locale and time zone values used when
// an inbound request carries no client context. Empty values disable the
// fallback.
type ClientInfoConfig struct {
	DBLocaleLanguage string `koanf:"db_locale_language"`
	DBTimeZone       string `koanf:"db_time_zone"`
	TimeZone         string `koanf:"time_zone" validate:"omitempty,timezone"`
}

// CORSConfig holds cross-origin settings for the inbound API.
type CORSConfig struct {
	AllowedOrigins []string      `koanf:"allowed_origins" validate:"dive,origin"`
	MaxAge         time.Duration `koanf:"max_age" validate:"gte=0"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
