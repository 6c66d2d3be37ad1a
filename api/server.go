package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	// Server timeouts
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second

	// DefaultMaxSourceSize bounds the request body of parse requests
	DefaultMaxSourceSize int64 = 4 << 20 // 4MB
)

// Server represents the HTTP parse service
type Server struct {
	mux           *http.ServeMux
	server        *http.Server
	port          int
	version       string
	maxSourceSize int64
}

// NewServer creates a new API server
func NewServer(port int) *Server {
	return NewServerWithVersion(port, "dev")
}

// NewServerWithVersion creates a new API server with version information
func NewServerWithVersion(port int, version string) *Server {
	s := &Server{
		mux:           http.NewServeMux(),
		port:          port,
		version:       version,
		maxSourceSize: DefaultMaxSourceSize,
	}

	// Register routes
	s.registerRoutes()

	return s
}

// SetMaxSourceSize overrides the parse request body limit
func (s *Server) SetMaxSourceSize(limit int64) {
	if limit > 0 {
		s.maxSourceSize = limit
	}
}

// Handler returns the HTTP handler with CORS middleware applied
func (s *Server) Handler() http.Handler {
	return s.corsMiddleware(s.mux)
}

// registerRoutes sets up all HTTP routes
func (s *Server) registerRoutes() {
	// Health check
	s.mux.HandleFunc("/health", s.handleHealth)

	// Parse endpoint
	s.mux.HandleFunc("/api/v1/parse", s.handleParse)

	// WebSocket endpoint for streaming parses
	s.mux.HandleFunc("/api/v1/ws", s.handleWebSocket)
}

// corsMiddleware adds CORS headers to all responses
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Printf("G-code parse service listening on port %d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
