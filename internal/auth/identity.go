// Package auth resolves the caller identity that scopes every quiz,
// result and history row. The header provider is a placeholder
// identity mechanism, not real authentication; the Provider interface
// exists so it can be swapped for a credential-backed scheme without
// touching the repository or aggregator contracts.
package auth

import (
	"errors"
	"net/http"
	"strings"
)

// Identity header names required by the default provider.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-Username"
)

// ErrUnauthenticated is returned when a request carries no usable
// identity. Handlers map it to 401.
var ErrUnauthenticated = errors.New("authentication required")

// Identity is the caller: an opaque user id plus a display username.
type Identity struct {
	UserID   string
	Username string
}

// Provider extracts the caller identity from a request.
type Provider interface {
	Authenticate(r *http.Request) (Identity, error)
}

// HeaderProvider reads identity from request headers. Both headers are
// required; absence of either yields ErrUnauthenticated.
type HeaderProvider struct{}

func (HeaderProvider) Authenticate(r *http.Request) (Identity, error) {
	userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	username := strings.TrimSpace(r.Header.Get(HeaderUsername))
	if userID == "" || username == "" {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{UserID: userID, Username: username}, nil
}

// Middleware authenticates every request through p and stores the
// identity in the request context. Failures end the request with 401.
func Middleware(p Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := p.Authenticate(r)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"status":"error","message":"authentication required"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
