package httpclient_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/config"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/telemetry"
)

func testConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// reply is one scripted downstream answer.
type reply struct {
	status     int
	retryAfter string
	body       string
}

// downstream answers with its script in order and repeats the last reply
// once the script runs out.
type downstream struct {
	*httptest.Server
	hits atomic.Int32

	mu       sync.Mutex
	requests []captured
}

type captured struct {
	header http.Header
	body   string
}

func newDownstream(t *testing.T, script ...reply) *downstream {
	t.Helper()

	d := &downstream{}
	d.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(d.hits.Add(1))
		b, _ := io.ReadAll(r.Body)

		d.mu.Lock()
		d.requests = append(d.requests, captured{header: r.Header.Clone(), body: string(b)})
		d.mu.Unlock()

		rep := script[min(n, len(script))-1]
		if rep.retryAfter != "" {
			w.Header().Set("Retry-After", rep.retryAfter)
		}
		w.WriteHeader(rep.status)
		_, _ = io.WriteString(w, rep.body)
	}))
	t.Cleanup(d.Close)
	return d
}

func (d *downstream) captured() []captured {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]captured(nil), d.requests...)
}

// call sends one request and returns the status (0 without a response), the
// response body and the error.
func call(t *testing.T, c *httpclient.Client, ctx context.Context, method, url, body string) (int, string, error) {
	t.Helper()

	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	resp, err := c.Do(ctx, req)
	if resp == nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b), err
}

func TestDo_RetryPolicy(t *testing.T) {
	t.Parallel()

	ok := reply{status: http.StatusOK, body: `{"id":1}`}

	tests := []struct {
		name       string
		method     string
		body       string
		script     []reply
		optIn      bool
		wantStatus int
		wantBody   string
		wantErr    bool
		wantHits   int32
	}{
		{
			name:       "first attempt succeeds",
			method:     http.MethodGet,
			script:     []reply{ok},
			wantStatus: http.StatusOK,
			wantBody:   `{"id":1}`,
			wantHits:   1,
		},
		{
			name:       "5xx retried until success",
			method:     http.MethodGet,
			script:     []reply{{status: http.StatusInternalServerError}, {status: http.StatusBadGateway}, ok},
			wantStatus: http.StatusOK,
			wantHits:   3,
		},
		{
			name:       "429 retried",
			method:     http.MethodGet,
			script:     []reply{{status: http.StatusTooManyRequests}, ok},
			wantStatus: http.StatusOK,
			wantHits:   2,
		},
		{
			name:       "Retry-After zero retries at once",
			method:     http.MethodGet,
			script:     []reply{{status: http.StatusServiceUnavailable, retryAfter: "0"}, ok},
			wantStatus: http.StatusOK,
			wantHits:   2,
		},
		{
			name:       "4xx returned as is",
			method:     http.MethodGet,
			script:     []reply{{status: http.StatusNotFound}},
			wantStatus: http.StatusNotFound,
			wantHits:   1,
		},
		{
			name:       "501 is permanent",
			method:     http.MethodGet,
			script:     []reply{{status: http.StatusNotImplemented}},
			wantStatus: http.StatusNotImplemented,
			wantHits:   1,
		},
		{
			name:       "exhausted retries keep the last body",
			method:     http.MethodGet,
			script:     []reply{{status: http.StatusServiceUnavailable, body: "sample-api down"}},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "sample-api down",
			wantErr:    true,
			wantHits:   3,
		},
		{
			name:       "POST is sent once",
			method:     http.MethodPost,
			body:       `{"name":"alpha"}`,
			script:     []reply{{status: http.StatusServiceUnavailable}},
			wantStatus: http.StatusServiceUnavailable,
			wantErr:    true,
			wantHits:   1,
		},
		{
			name:       "POST retried when opted in",
			method:     http.MethodPost,
			body:       `{"name":"alpha"}`,
			script:     []reply{{status: http.StatusBadGateway}, ok},
			optIn:      true,
			wantStatus: http.StatusOK,
			wantHits:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDownstream(t, tt.script...)
			cfg := testConfig(d.URL)
			cfg.Retry.RetryNonIdempotent = tt.optIn
			c := httpclient.New(cfg, "sample-api", nil, testLogger())

			status, body, err := call(t, c, context.Background(), tt.method, d.URL+"/api/samples/search", tt.body)

			if (err != nil) != tt.wantErr {
				t.Errorf("Do() error = %v, wantErr %v", err, tt.wantErr)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantBody != "" && body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if got := d.hits.Load(); got != tt.wantHits {
				t.Errorf("downstream hits = %d, want %d", got, tt.wantHits)
			}
			for i, r := range d.captured() {
				if r.body != tt.body {
					t.Errorf("attempt %d body = %q, want %q", i+1, r.body, tt.body)
				}
			}
		})
	}
}

func TestDo_ForwardsIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ctx      func() context.Context
		wantReq  string
		wantCorr string
	}{
		{
			name: "both ids",
			ctx: func() context.Context {
				ctx := httpclient.WithRequestID(context.Background(), "req-123")
				return httpclient.WithCorrelationID(ctx, "corr-456")
			},
			wantReq:  "req-123",
			wantCorr: "corr-456",
		},
		{
			name:    "request id only",
			ctx:     func() context.Context { return httpclient.WithRequestID(context.Background(), "req-9") },
			wantReq: "req-9",
		},
		{
			name: "empty ids are not sent",
			ctx: func() context.Context {
				return httpclient.WithCorrelationID(httpclient.WithRequestID(context.Background(), ""), "")
			},
		},
		{
			name: "no ids",
			ctx:  context.Background,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDownstream(t, reply{status: http.StatusOK})
			c := httpclient.New(testConfig(d.URL), "sample-api", nil, testLogger())

			if _, _, err := call(t, c, tt.ctx(), http.MethodGet, d.URL+"/api/samples/1", ""); err != nil {
				t.Fatalf("Do() error = %v", err)
			}

			h := d.captured()[0].header
			if got := h.Get("X-Request-ID"); got != tt.wantReq {
				t.Errorf("X-Request-ID = %q, want %q", got, tt.wantReq)
			}
			if got := h.Get("X-Correlation-ID"); got != tt.wantCorr {
				t.Errorf("X-Correlation-ID = %q, want %q", got, tt.wantCorr)
			}
		})
	}
}

func TestClient_BreakerLifecycle(t *testing.T) {
	t.Parallel()

	var failing atomic.Bool
	failing.Store(true)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	cfg.CircuitBreaker.Timeout = 100 * time.Millisecond
	cfg.Retry.MaxAttempts = 1
	c := httpclient.New(cfg, "sample-api", nil, testLogger())
	url := srv.URL + "/api/samples/1"
	ctx := context.Background()

	if got := c.Name(); got != "sample-api" {
		t.Errorf("Name() = %q, want sample-api", got)
	}
	if err := c.HealthCheck(ctx); err != nil || c.CircuitBreakerState() != "closed" {
		t.Fatalf("fresh client: state %q, HealthCheck() = %v", c.CircuitBreakerState(), err)
	}

	// One failure trips the breaker.
	if _, _, err := call(t, c, ctx, http.MethodGet, url, ""); err == nil {
		t.Fatal("Do() error = nil on 500, want error")
	}
	if got := c.CircuitBreakerState(); got != "open" {
		t.Fatalf("state = %q after failure, want open", got)
	}
	if err := c.HealthCheck(ctx); err == nil || !strings.Contains(err.Error(), "failing") {
		t.Errorf("HealthCheck() = %v, want failing", err)
	}

	// Open: rejected without reaching the downstream.
	before := hits.Load()
	_, _, err := call(t, c, ctx, http.MethodGet, url, "")
	if !errors.Is(err, gobreaker.ErrOpenState) || !httpclient.IsCircuitOpen(err) {
		t.Errorf("Do() error = %v, want open-state rejection", err)
	}
	if hits.Load() != before {
		t.Error("open breaker let a request through")
	}

	// After the timeout the breaker probes.
	time.Sleep(150 * time.Millisecond)
	if err := c.HealthCheck(ctx); err == nil || !strings.Contains(err.Error(), "degraded") {
		t.Errorf("HealthCheck() = %v, want degraded while half-open", err)
	}

	failing.Store(false)
	status, _, err := call(t, c, ctx, http.MethodGet, url, "")
	if err != nil || status != http.StatusOK {
		t.Fatalf("probe = %d, %v; want 200", status, err)
	}
	if got := c.CircuitBreakerState(); got != "closed" {
		t.Errorf("state = %q after successful probe, want closed", got)
	}
}

func TestDo_CallerCancellationLeavesBreakerClosed(t *testing.T) {
	t.Parallel()

	d := newDownstream(t, reply{status: http.StatusOK})
	cfg := testConfig(d.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	c := httpclient.New(cfg, "sample-api", nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := call(t, c, ctx, http.MethodGet, d.URL+"/api/samples/1", ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}
	if got := c.CircuitBreakerState(); got != "closed" {
		t.Errorf("CircuitBreakerState() = %q after caller cancel, want closed", got)
	}
	if n := d.hits.Load(); n != 0 {
		t.Errorf("downstream hits = %d, want 0", n)
	}
}

func TestDo_RecordsClientMetrics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })
	metrics, err := telemetry.NewMetrics(mp, "sample-gateway")
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	d := newDownstream(t, reply{status: http.StatusOK}, reply{status: http.StatusNotFound})
	c := httpclient.New(testConfig(d.URL), "sample-api", metrics, testLogger())
	for range 2 {
		if _, _, err := call(t, c, ctx, http.MethodGet, d.URL+"/api/samples/1", ""); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	byResult := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.client.request.total" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				result, _ := dp.Attributes.Value(telemetry.AttrResult)
				byResult[result.AsString()] += dp.Value
			}
		}
	}
	if byResult["success"] != 1 || byResult["error"] != 1 {
		t.Errorf("client requests by result = %v, want one success and one error", byResult)
	}
}
