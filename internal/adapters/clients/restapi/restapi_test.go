package restapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/clients/restapi"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/clientinfo"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/config"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/logging"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/token"
)

type sampleDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type localizedSample struct {
	clientinfo.BaseEntity
	ID int64 `json:"id"`
}

var seoul = clientinfo.ClientInfo{DBLocaleLanguage: "ko", DBTimeZone: "+09:00", TimeZone: "Asia/Seoul"}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func transportConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
}

func staticToken(tok string) token.Source {
	return token.SourceFunc(func(context.Context) (string, error) { return tok, nil })
}

func staticResolver(info *clientinfo.ClientInfo) clientinfo.Resolver {
	return clientinfo.ResolverFunc(func(context.Context) *clientinfo.ClientInfo { return info })
}

func newAPI(t *testing.T, baseURL string, opts ...restapi.Option) *restapi.API {
	t.Helper()
	transport := httpclient.New(transportConfig(baseURL), "sample-api", nil, discardLogger())
	return restapi.New(transport, discardLogger(), opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGet_Success(t *testing.T) {
	t.Parallel()

	reqs := make(chan *http.Request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs <- r.Clone(context.Background())
		writeJSON(w, http.StatusOK, sampleDTO{ID: 2, Name: "second", Description: "desc"})
	}))
	t.Cleanup(srv.Close)

	api := newAPI(t, srv.URL,
		restapi.WithTokenSource(staticToken("tok-123")),
		restapi.WithResolver(staticResolver(&seoul)),
	)

	req := api.Client(srv.URL + "/api/samples/{id}").URIVariable("id", 2)
	if req.Latency() != -1 {
		t.Errorf("Latency() before execution = %v, want -1", req.Latency())
	}

	resp := restapi.Get[sampleDTO](context.Background(), req)

	if resp.HasError() || resp.HasResponseError() || resp.HasUnknownError() {
		t.Fatalf("error flags set: err = %v", resp.Err())
	}
	if !resp.IsSuccess() {
		t.Error("IsSuccess() = false, want true")
	}
	if resp.Err() != nil {
		t.Errorf("Err() = %v, want nil", resp.Err())
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode() = %d, want 200", resp.StatusCode())
	}
	if body := resp.Body(); body.ID != 2 || body.Name != "second" {
		t.Errorf("Body() = %+v, want ID 2 named second", body)
	}
	if req.Latency() < 0 {
		t.Errorf("Latency() after execution = %v, want >= 0", req.Latency())
	}

	got := <-reqs

	if got.URL.Path != "/api/samples/2" {
		t.Errorf("path = %q, want /api/samples/2", got.URL.Path)
	}
	if v := got.Header.Get("Accept"); v != "application/json" {
		t.Errorf("Accept = %q, want application/json", v)
	}
	if v := got.Header.Get("Content-Type"); v != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", v)
	}
	if v := got.Header.Get("Authorization"); v != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", v)
	}

	info, err := clientinfo.Decode(got.Header.Get(clientinfo.HeaderName))
	if err != nil {
		t.Fatalf("decoding %s header: %v", clientinfo.HeaderName, err)
	}
	if info != seoul {
		t.Errorf("client info = %+v, want %+v", info, seoul)
	}

	if h := req.Headers().Get("Authorization"); h != "Bearer tok-123" {
		t.Errorf("Headers() Authorization = %q, want Bearer tok-123", h)
	}
}

func TestGet_ResponseError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"sample 9 not found"}`)
	}))
	t.Cleanup(srv.Close)

	api := newAPI(t, srv.URL)
	resp := restapi.Get[sampleDTO](context.Background(), api.Client(srv.URL+"/api/samples/9"))

	if !resp.HasError() || !resp.HasResponseError() {
		t.Fatalf("HasError/HasResponseError = %v/%v, want true/true", resp.HasError(), resp.HasResponseError())
	}
	if resp.HasUnknownError() {
		t.Error("HasUnknownError() = true, want false")
	}
	if resp.Body() != (sampleDTO{}) {
		t.Errorf("Body() = %+v, want zero value", resp.Body())
	}
	if resp.StatusCode() != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, want 404", resp.StatusCode())
	}
	if !strings.Contains(string(resp.RawBody()), "sample 9 not found") {
		t.Errorf("RawBody() = %q, want problem detail", resp.RawBody())
	}

	var statusErr *restapi.StatusError
	if !errors.As(resp.Err(), &statusErr) {
		t.Fatalf("Err() = %T, want *StatusError", resp.Err())
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusError.StatusCode = %d, want 404", statusErr.StatusCode)
	}
	if statusErr.Header.Get("Content-Type") != "application/problem+json" {
		t.Errorf("StatusError.Header Content-Type = %q", statusErr.Header.Get("Content-Type"))
	}
}

func TestGet_ServerErrorAfterRetries(t *testing.T) {
	t.Parallel()

	var count atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		count.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	cfg := transportConfig(srv.URL)
	cfg.Retry.MaxAttempts = 2
	api := restapi.New(httpclient.New(cfg, "sample-api", nil, discardLogger()), discardLogger())

	resp := restapi.Get[sampleDTO](context.Background(), api.Client(srv.URL+"/api/samples/1"))

	if !resp.HasResponseError() {
		t.Fatalf("HasResponseError() = false, want true (err = %v)", resp.Err())
	}
	if resp.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("StatusCode() = %d, want 503", resp.StatusCode())
	}
	if got := count.Load(); got != 2 {
		t.Errorf("request count = %d, want 2", got)
	}
}

func TestGet_NetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	api := newAPI(t, url)
	resp := restapi.Get[sampleDTO](context.Background(), api.Client(url+"/api/samples/1"))

	if !resp.HasError() || !resp.HasUnknownError() {
		t.Fatalf("HasError/HasUnknownError = %v/%v, want true/true", resp.HasError(), resp.HasUnknownError())
	}
	if resp.HasResponseError() {
		t.Error("HasResponseError() = true, want false")
	}
	if !errors.Is(resp.Err(), restapi.ErrUnknown) {
		t.Errorf("Err() = %v, want ErrUnknown", resp.Err())
	}
	if resp.StatusCode() != 0 {
		t.Errorf("StatusCode() = %d, want 0", resp.StatusCode())
	}
}

func TestGet_CircuitOpenIsUnknown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	cfg := transportConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	api := restapi.New(httpclient.New(cfg, "sample-api", nil, discardLogger()), discardLogger())

	first := restapi.Get[sampleDTO](context.Background(), api.Client(srv.URL+"/x"))
	if !first.HasResponseError() {
		t.Fatalf("first call: HasResponseError() = false (err = %v)", first.Err())
	}

	second := restapi.Get[sampleDTO](context.Background(), api.Client(srv.URL+"/x"))
	if !second.HasUnknownError() {
		t.Fatalf("second call: HasUnknownError() = false (err = %v)", second.Err())
	}
	if !httpclient.IsCircuitOpen(second.Err()) {
		t.Errorf("Err() = %v, want circuit-open error", second.Err())
	}
}

func TestGet_DecodeFailureIsUnknown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html>not json</html>")
	}))
	t.Cleanup(srv.Close)

	api := newAPI(t, srv.URL)
	resp := restapi.Get[sampleDTO](context.Background(), api.Client(srv.URL+"/api/samples/1"))

	if !resp.HasUnknownError() {
		t.Fatalf("HasUnknownError() = false, want true")
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode() = %d, want 200", resp.StatusCode())
	}
	if resp.Body() != (sampleDTO{}) {
		t.Errorf("Body() = %+v, want zero value", resp.Body())
	}
}

func TestGet_BodySizeLimit(t *testing.T) {
	t.Parallel()

	const limit = 10 << 20

	tests := []struct {
		name        string
		size        int
		wantSuccess bool
	}{
		{name: "at the limit", size: limit, wantSuccess: true},
		{name: "over the limit", size: limit + 1<<20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload := bytes.Repeat([]byte("x"), tt.size)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/octet-stream")
				_, _ = w.Write(payload)
			}))
			t.Cleanup(srv.Close)

			api := newAPI(t, srv.URL)
			resp := restapi.Get[[]byte](context.Background(), api.Client(srv.URL+"/api/samples/export"))

			if tt.wantSuccess {
				if !resp.IsSuccess() {
					t.Fatalf("IsSuccess() = false (err = %v)", resp.Err())
				}
				if len(resp.Body()) != tt.size {
					t.Errorf("len(Body()) = %d, want %d", len(resp.Body()), tt.size)
				}
				return
			}

			if !resp.HasUnknownError() {
				t.Fatalf("HasUnknownError() = false, want true (success = %v)", resp.IsSuccess())
			}
			if !errors.Is(resp.Err(), restapi.ErrResponseTooLarge) {
				t.Errorf("Err() = %v, want ErrResponseTooLarge", resp.Err())
			}
			if resp.Body() != nil {
				t.Errorf("len(Body()) = %d, want no body", len(resp.Body()))
			}
			if len(resp.RawBody()) != limit {
				t.Errorf("len(RawBody()) = %d, want %d", len(resp.RawBody()), limit)
			}
			if resp.StatusCode() != http.StatusOK {
				t.Errorf("StatusCode() = %d, want 200", resp.StatusCode())
			}
		})
	}
}

func TestGet_RawAndEmptyBodies(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = io.WriteString(w, "plain text")
	}))
	t.Cleanup(srv.Close)

	api := newAPI(t, srv.URL)

	text := restapi.Get[string](context.Background(), api.Client(srv.URL+"/text"))
	if text.Body() != "plain text" {
		t.Errorf("Get[string] Body() = %q, want plain text", text.Body())
	}

	raw := restapi.Get[[]byte](context.Background(), api.Client(srv.URL+"/text"))
	if string(raw.Body()) != "plain text" {
		t.Errorf("Get[[]byte] Body() = %q, want plain text", raw.Body())
	}

	empty := restapi.Delete[sampleDTO](context.Background(), api.Client(srv.URL+"/empty"))
	if !empty.IsSuccess() {
		t.Errorf("204 response: IsSuccess() = false (err = %v)", empty.Err())
	}
}

func TestClientWithAuth_Disabled(t *testing.T) {
	t.Parallel()

	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, sampleDTO{})
	}))
	t.Cleanup(srv.Close)

	api := newAPI(t, srv.URL, restapi.WithTokenSource(staticToken("tok")))
	req := api.ClientWithAuth(srv.URL+"/public", false)

	if req.TokenAuth() {
		t.Error("TokenAuth() = true, want false")
	}

	resp := restapi.Get[sampleDTO](context.Background(), req)
	if resp.HasError() {
		t.Fatalf("unexpected error: %v", resp.Err())
	}
	if got := auth.Load().(string); got != "" {
		t.Errorf("Authorization = %q, want empty", got)
	}
}

func TestTokenFailureIsUnknown(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)

	failing := token.SourceFunc(func(context.Context) (string, error) {
		return "", errors.New("signing key unavailable")
	})
	api := newAPI(t, srv.URL, restapi.WithTokenSource(failing))

	resp := restapi.Get[sampleDTO](context.Background(), api.Client(srv.URL+"/x"))

	if !resp.HasUnknownError() {
		t.Fatalf("HasUnknownError() = false, want true")
	}
	if hits.Load() != 0 {
		t.Errorf("server hit %d times, want 0", hits.Load())
	}
}

func TestNoClientInfoHeaderWithoutContext(t *testing.T) {
	t.Parallel()

	var header atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header.Store(r.Header.Get(clientinfo.HeaderName))
		writeJSON(w, http.StatusOK, sampleDTO{})
	}))
	t.Cleanup(srv.Close)

	api := newAPI(t, srv.URL, restapi.WithResolver(clientinfo.ContextResolver{}))
	resp := restapi.Get[sampleDTO](context.Background(), api.Client(srv.URL+"/x"))

	if resp.HasError() {
		t.Fatalf("unexpected error: %v", resp.Err())
	}
	if got := header.Load().(string); got != "" {
		t.Errorf("%s = %q, want empty", clientinfo.HeaderName, got)
	}
}

func TestInvalidURLs(t *testing.T) {
	t.Parallel()

	api := newAPI(t, "http://localhost")

	tests := []struct {
		name string
		req  *restapi.Request
		want error
	}{
		{name: "relative", req: api.Client("/api/samples/1"), want: restapi.ErrInvalidURL},
		{name: "unsupported scheme", req: api.Client("ftp://host/file"), want: restapi.ErrInvalidURL},
		{name: "malformed", req: api.Client("http://[::1"), want: restapi.ErrInvalidURL},
		{name: "unresolved variable", req: api.Client("http://localhost/api/samples/{id}"), want: restapi.ErrUnresolvedVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := restapi.Get[sampleDTO](context.Background(), tt.req)
			if !resp.HasUnknownError() {
				t.Fatalf("HasUnknownError() = false, want true")
			}
			if !errors.Is(resp.Err(), tt.want) {
				t.Errorf("Err() = %v, want %v", resp.Err(), tt.want)
			}
		})
	}
}

func TestRequestIsSingleUse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, sampleDTO{})
	}))
	t.Cleanup(srv.Close)

	api := newAPI(t, srv.URL)
	req := api.Client(srv.URL + "/x")

	if first := restapi.Get[sampleDTO](context.Background(), req); first.HasError() {
		t.Fatalf("first call failed: %v", first.Err())
	}

	second := restapi.Get[sampleDTO](context.Background(), req)
	if !errors.Is(second.Err(), restapi.ErrRequestAlreadySent) {
		t.Errorf("second call Err() = %v, want ErrRequestAlreadySent", second.Err())
	}
}

func TestQueryParamsAndHeaders(t *testing.T) {
	t.Parallel()

	reqs := make(chan *http.Request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs <- r.Clone(context.Background())
		writeJSON(w, http.StatusOK, []sampleDTO{})
	}))
	t.Cleanup(srv.Close)

	api := newAPI(t, srv.URL)
	req := api.Client(srv.URL+"/api/samples/search?page=1").
		QueryParam("tag", "a", "b").
		QueryParam("flag").
		AddHeader("X-Trace", "one").
		AddHeader("X-Trace", "two").
		SetHeader("Accept", "application/vnd.sample+json")

	resp := restapi.Get[[]sampleDTO](context.Background(), req)
	if resp.HasError() {
		t.Fatalf("unexpected error: %v", resp.Err())
	}

	got := <-reqs
	q := got.URL.Query()
	if q.Get("page") != "1" {
		t.Errorf("page = %q, want 1", q.Get("page"))
	}
	if tags := q["tag"]; len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Errorf("tag = %v, want [a b]", tags)
	}
	if _, ok := q["flag"]; !ok {
		t.Error("flag missing from query")
	}
	if vals := got.Header.Values("X-Trace"); len(vals) != 2 {
		t.Errorf("X-Trace = %v, want two values", vals)
	}
	if v := got.Header.Get("Accept"); v != "application/vnd.sample+json" {
		t.Errorf("Accept = %q, want application/vnd.sample+json", v)
	}
}

func TestGetWithParams_Struct(t *testing.T) {
	t.Parallel()

	var query atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.RawQuery)
		writeJSON(w, http.StatusOK, []sampleDTO{{ID: 1}})
	}))
	t.Cleanup(srv.Close)

	type searchParams struct {
		Name        string `json:"name,omitempty"`
		Description string `json:"description,omitempty"`
	}

	api := newAPI(t, srv.URL)
	resp := restapi.GetWithParams[[]sampleDTO](context.Background(),
		api.Client(srv.URL+"/api/samples/search"),
		searchParams{Name: "테스트이름", Description: "테스트설명"},
	)

	if resp.HasError() {
		t.Fatalf("unexpected error: %v", resp.Err())
	}
	if len(resp.Body()) != 1 {
		t.Errorf("len(Body()) = %d, want 1", len(resp.Body()))
	}

	raw, _ := query.Load().(string)
	if !strings.Contains(raw, "name=") || !strings.Contains(raw, "description=") {
		t.Errorf("query = %q, want name and description", raw)
	}
}

func TestPost_SendsJSONBody(t *testing.T) {
	t.Parallel()

	var received sampleDTO
	var method atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method.Store(r.Method)
		_ = json.NewDecoder(r.Body).Decode(&received)
		writeJSON(w, http.StatusOK, []sampleDTO{received})
	}))
	t.Cleanup(srv.Close)

	api := newAPI(t, srv.URL)
	resp := restapi.Post[[]sampleDTO](context.Background(),
		api.Client(srv.URL+"/api/samples/search"),
		sampleDTO{Name: "n", Description: "d"},
	)

	if resp.HasError() {
		t.Fatalf("unexpected error: %v", resp.Err())
	}
	if method.Load() != http.MethodPost {
		t.Errorf("method = %v, want POST", method.Load())
	}
	if body := resp.Body(); len(body) != 1 || body[0].Name != "n" || body[0].Description != "d" {
		t.Errorf("Body() = %+v, want echoed filter", body)
	}
}

func TestPost_UnencodableBodyIsUnknown(t *testing.T) {
	t.Parallel()

	api := newAPI(t, "http://localhost")
	resp := restapi.Post[sampleDTO](context.Background(), api.Client("http://localhost/x"), map[string]any{"ch": make(chan int)})

	if !resp.HasUnknownError() {
		t.Errorf("HasUnknownError() = false, want true")
	}
}

func TestPopulaterRunsOnSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, []localizedSample{{ID: 1}, {ID: 2}})
	}))
	t.Cleanup(srv.Close)

	resolver := staticResolver(&seoul)
	api := newAPI(t, srv.URL,
		restapi.WithResolver(resolver),
		restapi.WithPopulater(clientinfo.NewPopulater(resolver, discardLogger())),
	)

	resp := restapi.Get[[]localizedSample](context.Background(), api.Client(srv.URL+"/list"))
	if resp.HasError() {
		t.Fatalf("unexpected error: %v", resp.Err())
	}
	for i, s := range resp.Body() {
		if s.DBLocaleLanguage != "ko" || s.Location().String() != "Asia/Seoul" {
			t.Errorf("Body()[%d] not populated: %+v", i, s.BaseEntity)
		}
	}

	missing := restapi.Get[[]localizedSample](context.Background(), api.Client(srv.URL+"/missing"))
	if missing.Body() != nil {
		t.Errorf("Body() on error = %+v, want nil", missing.Body())
	}
}

func TestLogging_DebugOnSuccessErrorOnFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"detail":"bad"}`)
			return
		}
		writeJSON(w, http.StatusOK, sampleDTO{ID: 1})
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := logging.New("debug", "json", &buf)
	transport := httpclient.New(transportConfig(srv.URL), "sample-api", nil, discardLogger())
	api := restapi.New(transport, logger, restapi.WithTokenSource(staticToken("secret-token-value")))

	_ = restapi.Get[sampleDTO](context.Background(), api.Client(srv.URL+"/ok"))
	_ = restapi.Get[sampleDTO](context.Background(), api.Client(srv.URL+"/fail"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}

	var ok, failed map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ok); err != nil {
		t.Fatalf("parsing success log: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &failed); err != nil {
		t.Fatalf("parsing failure log: %v", err)
	}

	if ok["level"] != "DEBUG" || ok["outcome"] != "success" {
		t.Errorf("success log level/outcome = %v/%v, want DEBUG/success", ok["level"], ok["outcome"])
	}
	if failed["level"] != "ERROR" || failed["outcome"] != "response_error" {
		t.Errorf("failure log level/outcome = %v/%v, want ERROR/response_error", failed["level"], failed["outcome"])
	}
	if _, has := failed["error"]; !has {
		t.Error("failure log has no error attribute")
	}
	if !strings.Contains(lines[1], `{\"detail\":\"bad\"}`) {
		t.Errorf("failure log missing response body: %s", lines[1])
	}
	if strings.Contains(buf.String(), "secret-token-value") {
		t.Error("bearer token leaked into logs")
	}
}

func TestMaxBodyLog_Truncates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("x", 100))
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	transport := httpclient.New(transportConfig(srv.URL), "sample-api", nil, discardLogger())
	api := restapi.New(transport, logger, restapi.WithMaxBodyLog(10))

	_ = restapi.Get[string](context.Background(), api.Client(srv.URL+"/big"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("parsing log: %v", err)
	}
	want := strings.Repeat("x", 10) + "...(truncated)"
	if rec["response_body"] != want {
		t.Errorf("response_body = %v, want %q", rec["response_body"], want)
	}
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	tests := map[restapi.Outcome]string{
		restapi.OutcomeSuccess:       "success",
		restapi.OutcomeResponseError: "response_error",
		restapi.OutcomeUnknownError:  "unknown_error",
		restapi.Outcome(42):          "outcome(42)",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), got, want)
		}
	}
}
