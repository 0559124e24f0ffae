package auth

import (
	"context"
	"net/http"
)

// DefaultHeader is the header carrying the API-key credential.
const DefaultHeader = "X-API-Key"

// Authenticator is implemented by both the API-key Gate and the
// TokenAuthenticator.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (Principal, error)
}

// Middleware authenticates the credential header and stores the resulting
// principal in the request context. Requests without a credential pass
// through unauthenticated; rejected credentials get a 401.
func Middleware(authn Authenticator, header string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := r.Header.Get(header)
			if credential == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := authn.Authenticate(r.Context(), credential)
			if err != nil {
				http.Error(w, "Invalid credential", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequirePrincipal rejects requests that reach it without an authenticated
// principal in the context.
func RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
