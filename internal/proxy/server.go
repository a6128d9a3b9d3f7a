package proxy

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wraps the relay in an HTTP server with health and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	relay      *Relay
	addr       string
}

// NewServer creates the relay server listening on addr.
func NewServer(addr string, relay *Relay) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		mux:   mux,
		relay: relay,
		addr:  addr,
	}

	s.registerRoutes()

	return s
}

// registerRoutes sets up all HTTP routes
func (s *Server) registerRoutes() {
	s.mux.Handle("/graphql", s.relay)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "healthy"}); err != nil {
		slog.Error("Failed to encode health response", "error", err)
	}
}

// Start starts the HTTP server in a goroutine and returns
// immediately.
func (s *Server) Start() error {
	go func() {
		slog.Info("Relay server starting",
			"addr", s.addr,
			"endpoints", []string{"/graphql", "/health", "/metrics"},
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Relay server error", "error", err)
		}
	}()

	// Give the server a moment to start
	time.Sleep(100 * time.Millisecond)

	return nil
}

// Shutdown gracefully shuts down the HTTP server, waiting for active
// connections to close or the context to time out.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Relay server shutting down...")
	return s.httpServer.Shutdown(ctx)
}
