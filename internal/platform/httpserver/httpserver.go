package httpserver

import (
	"net/http"
	"time"
)

// New returns an http.Server with sane timeouts for a local gateway.
// Lifecycle (ListenAndServe, Shutdown) stays with the caller so main
// keeps control over graceful termination.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
