package clientinfo

import "context"

// Resolver supplies the client info for the current call. A nil result means
// no client context is available.
type Resolver interface {
	Resolve(ctx context.Context) *ClientInfo
}

// ResolverFunc adapts a function to [Resolver].
type ResolverFunc func(ctx context.Context) *ClientInfo

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context) *ClientInfo {
	return f(ctx)
}

// ContextResolver resolves from the request context first and falls back to
// Default, which may be nil.
type ContextResolver struct {
	Default *ClientInfo
}

// Resolve implements [Resolver].
func (r ContextResolver) Resolve(ctx context.Context) *ClientInfo {
	if c, ok := FromContext(ctx); ok {
		return c
	}
	if r.Default == nil {
		return nil
	}
	c := *r.Default
	return &c
}
