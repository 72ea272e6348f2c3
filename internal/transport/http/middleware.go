package httptransport

import (
	"net/http"
	"strings"

	"github.com/theusc6/global-impact-platform/internal/auth"
)

const bearerPrefix = "Bearer "

// AuthContext extracts the bearer token (if any) and attaches the resulting
// authorization context to the request. It never rejects a request: an
// invalid or revoked token degrades to anonymous, and field-level guards
// decide what anonymous callers may do.
func AuthContext(builder *auth.ContextBuilder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var rawToken string
			if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix); ok {
				rawToken = after
			}
			ac := builder.Build(r.Context(), rawToken)
			next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), ac)))
		})
	}
}
