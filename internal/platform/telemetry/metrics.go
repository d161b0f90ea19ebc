package telemetry

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Metric label keys.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrOutcome     = attribute.Key("rest.outcome")
)

const meterName = "github.com/jsamuelsen11/go-sample-gateway"

// Metrics holds the instruments shared by the inbound middleware, the
// transport and the REST builder.
//
// ClientRequestTotal counts transport attempts by result. RestCallTotal counts
// builder calls by the outcome the caller sees: success, response_error or
// unknown_error.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
	RestCallTotal         metric.Int64Counter
}

// NewMetrics registers every instrument on mp under the module's meter.
func NewMetrics(mp metric.MeterProvider, serviceName string) (*Metrics, error) {
	r := registrar{meter: mp.Meter(meterName,
		metric.WithInstrumentationAttributes(semconv.ServiceName(serviceName)),
	)}

	m := &Metrics{
		ServerRequestDuration: r.seconds("http.server.request.duration", "Duration of inbound HTTP requests"),
		ServerRequestTotal:    r.count("http.server.request.total", "Inbound HTTP requests", "{request}"),
		ClientRequestDuration: r.seconds("http.client.request.duration", "Duration of outbound HTTP requests"),
		ClientRequestTotal:    r.count("http.client.request.total", "Outbound HTTP requests", "{request}"),
		RestCallTotal:         r.count("rest.client.call.total", "Outbound REST calls by outcome", "{call}"),
	}
	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return m, nil
}

type registrar struct {
	meter metric.Meter
	errs  []error
}

func (r *registrar) seconds(name, desc string) metric.Float64Histogram {
	h, err := r.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("creating %s: %w", name, err))
	}
	return h
}

func (r *registrar) count(name, desc, unit string) metric.Int64Counter {
	c, err := r.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("creating %s: %w", name, err))
	}
	return c
}
