package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/tenantcore/pkg/apikey"
	"github.com/dmitrymomot/tenantcore/pkg/logger"
	"github.com/dmitrymomot/tenantcore/pkg/roles"
)

// DefaultMasterName is the identity assigned to the administrative principal.
const DefaultMasterName = "master"

// Gate authenticates API-key credentials of the form "<tenantId>.<secret>".
type Gate struct {
	keys         *apikey.Service
	roles        roles.Provider
	masterSecret string
	masterName   string
	log          *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGateLogger sets the logger used for authentication outcomes.
func WithGateLogger(log *slog.Logger) GateOption {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}

// WithMasterName overrides the identity of the administrative principal.
func WithMasterName(name string) GateOption {
	return func(g *Gate) {
		if name != "" {
			g.masterName = name
		}
	}
}

// NewGate creates a gate. masterSecret is the inter-service secret; an empty
// value disables the master path entirely.
func NewGate(keys *apikey.Service, provider roles.Provider, masterSecret string, opts ...GateOption) *Gate {
	g := &Gate{
		keys:         keys,
		roles:        provider,
		masterSecret: masterSecret,
		masterName:   DefaultMasterName,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authenticate validates credential and returns the authenticated principal.
//
// An empty credential returns ErrNoCredential so callers can distinguish
// "nothing presented" from "presented and rejected". Every other failure is
// ErrInvalidCredential: malformed shape fails fast with no I/O, the master
// secret succeeds with no lookups, and user keys resolve through the cached
// API-key service with their roles expanded through the hierarchy.
func (g *Gate) Authenticate(ctx context.Context, credential string) (Principal, error) {
	if credential == "" {
		return Principal{}, ErrNoCredential
	}

	parts := strings.Split(credential, ".")
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return Principal{}, ErrInvalidCredential
	}
	tenantID, secret := parts[0], parts[1]

	if g.masterSecret != "" && subtle.ConstantTimeCompare([]byte(secret), []byte(g.masterSecret)) == 1 {
		return Principal{
			Name:     g.masterName,
			TenantID: tenantID,
			Master:   true,
		}, nil
	}

	key, err := g.keys.Resolve(ctx, tenantID, secret)
	if err != nil {
		// Severity is already classified by the key service; the caller
		// only ever observes the generic failure.
		return Principal{}, ErrInvalidCredential
	}

	catalog, err := g.roles.Roles(ctx)
	if err != nil {
		g.log.ErrorContext(ctx, "failed to load role catalog", logger.TenantID(tenantID), logger.Error(err))
		return Principal{}, ErrInvalidCredential
	}

	return Principal{
		Name:     key.Name,
		TenantID: tenantID,
		Roles:    roles.Expand(key.Roles, catalog),
	}, nil
}
