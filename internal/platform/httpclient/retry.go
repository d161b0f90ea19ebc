package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/config"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/logging"
)

// jitterFraction is the maximum jitter applied to a backoff delay (±25%).
const jitterFraction = 0.25

// retryPolicy is the transport's copy of config.RetryConfig.
type retryPolicy struct {
	maxAttempts        int
	initialInterval    time.Duration
	maxInterval        time.Duration
	multiplier         float64
	retryNonIdempotent bool
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		maxAttempts:        cfg.MaxAttempts,
		initialInterval:    cfg.InitialInterval,
		maxInterval:        cfg.MaxInterval,
		multiplier:         cfg.Multiplier,
		retryNonIdempotent: cfg.RetryNonIdempotent,
	}
}

// attemptsFor returns how many times a request with the given method may be
// sent. POST and PATCH get one attempt unless retryNonIdempotent is set.
func (p retryPolicy) attemptsFor(method string) int {
	if !p.retryNonIdempotent && !isIdempotent(method) {
		return 1
	}
	return p.maxAttempts
}

// backoff returns the jittered exponential delay before retry number attempt
// (1 is the first retry), capped at maxInterval before jitter.
func (p retryPolicy) backoff(attempt int) time.Duration {
	delay := float64(p.initialInterval) * math.Pow(p.multiplier, float64(attempt-1))
	delay = min(delay, float64(p.maxInterval))
	delay += delay * jitterFraction * (2*rand.Float64() - 1)
	return time.Duration(max(delay, 0))
}

// delay returns the wait before retry number attempt. A Retry-After header on
// the previous response raises the delay, up to maxInterval.
func (p retryPolicy) delay(attempt int, prev *http.Response) time.Duration {
	d := p.backoff(attempt)
	if ra := retryAfter(prev, time.Now()); ra > d {
		d = min(ra, p.maxInterval)
	}
	return d
}

// send dispatches req, retrying transport failures and retryable statuses.
// It returns the number of attempts made. The response is written to resp
// so the caller owns closing its body; after the final retryable status both
// resp and the returned error are set.
func (c *Client) send(ctx context.Context, req *http.Request, resp **http.Response) (int, error) {
	if c.retry.maxAttempts <= 0 {
		return 0, fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retry.maxAttempts)
	}
	if err := makeReplayable(req); err != nil {
		return 0, err
	}

	attempts := c.retry.attemptsFor(req.Method)
	var (
		lastErr error
		prev    *http.Response
	)

	for attempt := range attempts {
		if attempt > 0 {
			if err := c.pause(ctx, req, attempt, attempts, prev, lastErr); err != nil {
				return attempt, err
			}
			if err := rewind(req); err != nil {
				return attempt, err
			}
		}

		r, err := c.httpClient.Do(req)
		if err != nil {
			lastErr, prev = err, nil
			if !isRetryable(err) {
				return attempt + 1, err
			}
			continue
		}

		if !isRetryableStatus(r.StatusCode) {
			*resp = r
			return attempt + 1, nil
		}

		lastErr, prev = fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName), r
		if attempt == attempts-1 {
			*resp = r
			return attempts, lastErr
		}
		discard(r)
	}

	return attempts, lastErr
}

// makeReplayable ensures req.GetBody is set so the body can be re-sent.
func makeReplayable(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody != nil {
		return nil
	}

	b, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}

	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(b)), nil
	}
	req.Body, _ = req.GetBody()
	req.ContentLength = int64(len(b))
	return nil
}

func rewind(req *http.Request) error {
	if req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}
	req.Body = body
	return nil
}

// discard drains and closes a response body so the connection is reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// pause logs the upcoming retry and waits for its delay or ctx.
func (c *Client) pause(ctx context.Context, req *http.Request, attempt, attempts int, prev *http.Response, lastErr error) error {
	d := c.retry.delay(attempt, prev)

	logging.FromContext(ctx).WarnContext(ctx, "retrying downstream request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
		slog.String("peer_service", c.serviceName),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", attempts),
		slog.Duration("backoff", d),
		slog.Any("error", lastErr),
	)

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP
// date. It returns 0 when the header is absent, malformed or in the past.
func retryAfter(resp *http.Response, now time.Time) time.Duration {
	if resp == nil {
		return 0
	}
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

// isRetryable reports whether a transport error may be retried. Anything
// but cancellation or an expired deadline is.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isIdempotent reports whether method is safe to replay per RFC 9110.
func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace,
		http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// isRetryableStatus reports whether sample-api may succeed on a later
// attempt. 501 and 505 are permanent.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
