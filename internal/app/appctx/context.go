// Package appctx provides request-scoped memoization for application
// services.
//
// A RequestContext is created per inbound HTTP request by middleware and
// carried in the request's context.Context. Services use it to fetch each
// downstream resource at most once per request, even when several goroutines
// ask for the same key at the same time:
//
//	rc, ok := appctx.FromContext(ctx)
//	s, err := appctx.GetOrFetch(rc, "sample:2", fetchSample)
package appctx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrTypeMismatch is returned by GetOrFetch when a cached value's type does
// not match the requested type T. This indicates a programming error where
// the same cache key is used with different types.
var ErrTypeMismatch = errors.New("appctx: cached value type mismatch")

// RequestContext is a request-scoped context wrapper that memoizes fetch
// results. Safe for concurrent use by the goroutines serving one request;
// never share it between requests.
type RequestContext struct {
	context.Context

	mu    sync.Mutex
	cache map[string]cacheEntry
	group singleflight.Group
}

// cacheEntry stores the result of a GetOrFetch call, including any error.
// Both successful results and errors are cached to prevent redundant calls
// within the same request.
type cacheEntry struct {
	value any
	err   error
}

// New creates a RequestContext wrapping ctx with an empty cache.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{
		Context: ctx,
		cache:   make(map[string]cacheEntry),
	}
}

type contextKey struct{}

// WithRequestContext stores rc in ctx.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext returns the RequestContext stored in ctx, if any.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(contextKey{}).(*RequestContext)
	return rc, ok && rc != nil
}

// Len returns the number of cached keys.
func (rc *RequestContext) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.cache)
}

// GetOrFetch returns a cached value for key, or calls fetchFn to fetch and
// cache it. Concurrent callers for the same uncached key share one fetchFn
// call. Errors are cached too.
//
// The same key must always be used with the same type T. If a cached value
// exists but its type does not match T, GetOrFetch returns ErrTypeMismatch.
// Use DataProvider for type-safe, reusable fetch bindings that prevent this.
func GetOrFetch[T any](rc *RequestContext, key string, fetchFn func(ctx context.Context) (T, error)) (T, error) {
	if entry, ok := rc.lookup(key); ok {
		return typed[T](key, entry)
	}

	v, _, _ := rc.group.Do(key, func() (any, error) {
		if entry, ok := rc.lookup(key); ok {
			return entry, nil
		}
		val, err := fetchFn(rc.Context)
		entry := cacheEntry{value: val, err: err}

		rc.mu.Lock()
		rc.cache[key] = entry
		rc.mu.Unlock()

		return entry, nil
	})

	entry, _ := v.(cacheEntry)
	return typed[T](key, entry)
}

func (rc *RequestContext) lookup(key string) (cacheEntry, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	entry, ok := rc.cache[key]
	return entry, ok
}

func typed[T any](key string, entry cacheEntry) (T, error) {
	var zero T
	if entry.err != nil {
		return zero, entry.err
	}
	if entry.value == nil {
		return zero, nil
	}
	v, ok := entry.value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T, requested %T", ErrTypeMismatch, key, entry.value, zero)
	}
	return v, nil
}

// DataProvider is a type-safe wrapper around GetOrFetch for a specific data
// type. It binds a key prefix and fetch function together.
type DataProvider[K comparable, T any] struct {
	prefix  string
	fetchFn func(ctx context.Context, key K) (T, error)
}

// NewDataProvider creates a DataProvider whose cache keys are prefix
// followed by the formatted key (e.g., "sample:2").
func NewDataProvider[K comparable, T any](prefix string, fetchFn func(ctx context.Context, key K) (T, error)) *DataProvider[K, T] {
	return &DataProvider[K, T]{prefix: prefix, fetchFn: fetchFn}
}

// Get returns the cached value for key or fetches it. With no
// RequestContext in ctx the fetch runs uncached.
func (p *DataProvider[K, T]) Get(ctx context.Context, key K) (T, error) {
	rc, ok := FromContext(ctx)
	if !ok {
		return p.fetchFn(ctx, key)
	}
	return GetOrFetch(rc, fmt.Sprintf("%s:%v", p.prefix, key), func(ctx context.Context) (T, error) {
		return p.fetchFn(ctx, key)
	})
}
