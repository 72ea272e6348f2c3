package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this project. GraphQL
// operations are short-lived; anything slower than the write timeout is a
// stuck repository call, not a legitimate request.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
