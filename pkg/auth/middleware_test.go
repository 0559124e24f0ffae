package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/apikey"
	"github.com/dmitrymomot/tenantcore/pkg/auth"
)

func TestMiddlewareAuthenticatesCredential(t *testing.T) {
	gate := newGate(t, &countingLookup{keys: map[string]apikey.Key{
		apikey.CacheID("acme", "s3cret"): {
			ID: "k1", TenantID: "acme", Name: "ci", Secret: "s3cret", Roles: []string{"viewer"},
		},
	}})

	var seen auth.Principal
	handler := auth.Middleware(gate, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(auth.DefaultHeader, "acme.s3cret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ci", seen.Name)
	assert.Equal(t, "acme", seen.TenantID)
}

func TestMiddlewareRejectsInvalidCredential(t *testing.T) {
	gate := newGate(t, &countingLookup{keys: map[string]apikey.Key{}})

	handler := auth.Middleware(gate, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a rejected credential")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(auth.DefaultHeader, "acme.wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credential")
}

func TestMiddlewarePassesThroughWithoutCredential(t *testing.T) {
	gate := newGate(t, &countingLookup{})

	called := false
	handler := auth.Middleware(gate, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := auth.FromContext(r.Context())
		assert.False(t, ok)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePrincipal(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	auth.RequirePrincipal(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{Name: "ci"}))
	rec = httptest.NewRecorder()
	auth.RequirePrincipal(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
