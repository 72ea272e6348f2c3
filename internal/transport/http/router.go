// Package httptransport is the thin HTTP layer: it mounts the GraphQL
// endpoint, health, and metrics, and attaches the authorization context to
// each request. All business logic lives behind the resolver set.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theusc6/global-impact-platform/internal/auth"
)

// NewRouter wires the public endpoints.
func NewRouter(schema *graphql.Schema, builder *auth.ContextBuilder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(AuthContext(builder))
		r.Method(http.MethodPost, "/graphql", &relay.Handler{Schema: schema})
	})

	return r
}
