// Package ports holds the interfaces that connect the gateway's layers.
//
// SampleService is implemented in internal/app and consumed by the inbound
// HTTP handlers. SampleClient is implemented by the outbound sample-api
// adapter and consumed by the service. HealthChecker and HealthRegistry
// back the readiness endpoint.
package ports
