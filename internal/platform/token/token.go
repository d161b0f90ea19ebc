// Package token issues the bearer tokens attached to outbound REST calls.
//
// Tokens are HS256-signed JWTs minted locally from the auth config. A token is
// reused until it comes within RefreshBefore of expiry; concurrent refreshes
// collapse into a single signing operation.
package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/config"
)

// ErrNoSecret is returned by NewJWTSource when no signing secret is configured.
var ErrNoSecret = errors.New("token: signing secret is empty")

// Source supplies a bearer token for an outbound call.
type Source interface {
	Token(ctx context.Context) (string, error)
}

// SourceFunc adapts a function to [Source].
type SourceFunc func(ctx context.Context) (string, error)

// Token calls f.
func (f SourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// JWTSource mints and caches service tokens. Safe for concurrent use.
type JWTSource struct {
	issuer        string
	subject       string
	audience      []string
	secret        []byte
	ttl           time.Duration
	refreshBefore time.Duration
	now           func() time.Time
	logger        *slog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	cached  string
	expires time.Time
}

// Option configures a JWTSource.
type Option func(*JWTSource)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *JWTSource) { s.now = now }
}

// NewJWTSource builds a source from the auth config.
func NewJWTSource(cfg *config.AuthConfig, logger *slog.Logger, opts ...Option) (*JWTSource, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}

	s := &JWTSource{
		issuer:        cfg.Issuer,
		subject:       cfg.Subject,
		audience:      cfg.Audience,
		secret:        []byte(cfg.Secret),
		ttl:           cfg.TTL,
		refreshBefore: cfg.RefreshBefore,
		now:           time.Now,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Token returns a cached token or mints a new one.
func (s *JWTSource) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if tok, ok := s.fresh(); ok {
		return tok, nil
	}

	v, err, _ := s.group.Do("token", func() (any, error) {
		// Another caller may have refreshed while we waited on the group.
		if tok, ok := s.fresh(); ok {
			return tok, nil
		}
		return s.mint(ctx)
	})
	if err != nil {
		return "", err
	}
	tok, _ := v.(string)
	return tok, nil
}

func (s *JWTSource) fresh() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cached == "" || !s.now().Before(s.expires.Add(-s.refreshBefore)) {
		return "", false
	}
	return s.cached, true
}

func (s *JWTSource) mint(ctx context.Context) (string, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   s.subject,
		Audience:  jwt.ClaimStrings(s.audience),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: signing: %w", err)
	}

	s.mu.Lock()
	s.cached = signed
	s.expires = expires
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "minted service token",
		slog.String("jti", claims.ID),
		slog.Time("expires_at", expires),
	)

	return signed, nil
}

// Parse verifies a token minted with the same secret and returns its claims.
func (s *JWTSource) Parse(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("token: parsing: %w", err)
	}
	return claims, nil
}
