package tenant

import (
	"errors"
	"net/http"
)

// DefaultHeader is the header carrying the tenant identifier.
const DefaultHeader = "X-Tenant-ID"

// Resolver extracts a tenant identifier from an HTTP request. An empty
// result means the request carries no tenant identifier.
type Resolver interface {
	Resolve(r *http.Request) string
}

// HeaderResolver reads the tenant identifier from an HTTP header.
type HeaderResolver struct {
	Header string
}

// NewHeaderResolver creates a header resolver, defaulting to X-Tenant-ID.
func NewHeaderResolver(header string) *HeaderResolver {
	if header == "" {
		header = DefaultHeader
	}
	return &HeaderResolver{Header: header}
}

func (r *HeaderResolver) Resolve(req *http.Request) string {
	return req.Header.Get(r.Header)
}

// ErrorHandler renders tenant resolution failures.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidIdentifier):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Middleware resolves the tenant named by the request and stores it in the
// request context. Requests without a tenant identifier pass through
// untouched so tenant-agnostic routes keep working.
func Middleware(resolver Resolver, directory *Directory, errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := resolver.Resolve(r)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			t, err := directory.Resolve(r.Context(), id)
			if err != nil {
				errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// RequireTenant ensures a tenant is present in the context, for routes that
// cannot operate tenant-agnostically.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
