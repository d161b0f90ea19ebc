package ports

import "context"

// HealthChecker reports the state of one downstream dependency. The
// sample-api client implements it from its circuit breaker.
type HealthChecker interface {
	// Name identifies the dependency in readiness output, e.g. "sample-api".
	Name() string

	// HealthCheck returns nil when the dependency can take traffic. It must
	// return promptly once ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers for the readiness endpoint.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every checker and keys the results by Name. A nil
	// value means healthy.
	CheckAll(ctx context.Context) map[string]error
}
