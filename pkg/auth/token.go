package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/tenantcore/pkg/logger"
	"github.com/dmitrymomot/tenantcore/pkg/roles"
)

// Claims is the claim set tenantcore tokens carry: the registered claims
// plus the tenant id and assigned role codes.
type Claims struct {
	TenantID string   `json:"tid"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenAuthenticator validates HS256-signed tokens and produces the same
// Principal shape as the API-key gate.
type TokenAuthenticator struct {
	key   []byte
	roles roles.Provider
	log   *slog.Logger
}

// TokenOption configures a TokenAuthenticator.
type TokenOption func(*TokenAuthenticator)

// WithTokenLogger sets the logger used for verification outcomes.
func WithTokenLogger(log *slog.Logger) TokenOption {
	return func(a *TokenAuthenticator) {
		if log != nil {
			a.log = log
		}
	}
}

// NewTokenAuthenticator creates an authenticator with the given HMAC signing
// key. The key should be at least 32 bytes.
func NewTokenAuthenticator(signingKey []byte, provider roles.Provider, opts ...TokenOption) (*TokenAuthenticator, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	a := &TokenAuthenticator{
		key:   signingKey,
		roles: provider,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Authenticate verifies the token signature and temporal claims, expands the
// role claims through the hierarchy and builds the principal. As with the
// API-key gate, every failure collapses into ErrInvalidCredential.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, tokenString string) (Principal, error) {
	if tokenString == "" {
		return Principal{}, ErrNoCredential
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		a.log.InfoContext(ctx, "token verification failed", logger.Error(err))
		return Principal{}, ErrInvalidCredential
	}

	catalog, err := a.roles.Roles(ctx)
	if err != nil {
		a.log.ErrorContext(ctx, "failed to load role catalog", logger.TenantID(claims.TenantID), logger.Error(err))
		return Principal{}, ErrInvalidCredential
	}

	return Principal{
		Name:     claims.Subject,
		TenantID: claims.TenantID,
		Roles:    roles.Expand(claims.Roles, catalog),
	}, nil
}

// Issue signs a token for the given identity. TTL of zero issues a token
// without an expiry claim.
func (a *TokenAuthenticator) Issue(subject, tenantID string, assignedRoles []string, ttl time.Duration) (string, error) {
	claims := Claims{
		TenantID: tenantID,
		Roles:    assignedRoles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
}
