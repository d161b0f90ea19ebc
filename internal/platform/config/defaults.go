package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultMaxBodyLog = 4096

	defaultSamplesMaxBatch = 50
	defaultSamplesWorkers  = 8
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"server.health_check_timeout": "2s",
		"server.shutdown_timeout":     "15s",

		"log.level":  "info",
		"log.format": "json",

		"client.base_url":                        "http://localhost:8081",
		"client.timeout":                         "30s",
		"client.max_body_log":                    defaultMaxBodyLog,
		"client.retry.max_attempts":              defaultRetryMaxAttempts,
		"client.retry.initial_interval":          "100ms",
		"client.retry.max_interval":              "10s",
		"client.retry.multiplier":                defaultRetryMultiplier,
		"client.retry.retry_non_idempotent":      false,
		"client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"client.rate_limit.requests_per_second":  0,
		"client.rate_limit.burst_size":           0,

		"auth.enabled":        true,
		"auth.issuer":         "sample-gateway",
		"auth.subject":        "sample-gateway",
		"auth.audience":       []string{"sample-api"},
		"auth.secret":         "",
		"auth.ttl":            "5m",
		"auth.refresh_before": "30s",

		"client_info.db_locale_language": "",
		"client_info.db_time_zone":       "",
		"client_info.time_zone":          "",

		"samples.max_batch": defaultSamplesMaxBatch,
		"samples.workers":   defaultSamplesWorkers,

		"cors.allowed_origins": []string{},
		"cors.max_age":         "5m",

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
