package acl

import (
	"context"
	"fmt"
)

// serviceName identifies the downstream in health results, traces and
// metrics.
const serviceName = "sample-api"

// BreakerState exposes the transport's circuit breaker state.
type BreakerState interface {
	CircuitBreakerState() string
}

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry].
func (c *SampleClient) Name() string {
	return serviceName
}

// HealthCheck reports the downstream sample API's availability from the
// circuit breaker state. No network call is made.
//
// State mapping:
//   - "closed": operating normally; returns nil.
//   - "half-open": probing recovery; returns a degraded error.
//   - "open": rejecting requests; returns a failing error.
func (c *SampleClient) HealthCheck(_ context.Context) error {
	state := c.breaker.CircuitBreakerState()
	switch state {
	case "closed":
		return nil
	case "half-open":
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", serviceName)
	case "open":
		return fmt.Errorf("%s: failing (circuit breaker open)", serviceName)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %q", serviceName, state)
	}
}
