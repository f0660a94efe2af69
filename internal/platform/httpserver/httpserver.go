package httpserver

import (
	"net/http"

	"counsel/internal/platform/config"
)

// New builds the HTTP server from server configuration.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
