// Package http is the driving HTTP adapter: routing, authentication
// middleware and JSON handlers over the core services.
package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parley-labs/parley-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService     driving.AuthService
	chatService     driving.ChatService
	contextService  driving.ContextService
	documentService driving.DocumentService

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	chatService driving.ChatService,
	contextService driving.ContextService,
	documentService driving.DocumentService,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:          http.NewServeMux(),
		version:         cfg.Version,
		authService:     authService,
		chatService:     chatService,
		contextService:  contextService,
		documentService: documentService,
		db:              db,
		redisClient:     redisClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoint (public)
	s.router.HandleFunc("POST /api/v1/auth/token", s.handleIssueToken)

	// Chat endpoint
	s.router.Handle("POST /api/v1/chat/message",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleChatMessage)))

	// Context endpoints
	s.router.Handle("GET /api/v1/context",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetContext)))
	s.router.Handle("GET /api/v1/context/summary",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleContextSummary)))
	s.router.Handle("POST /api/v1/context/refresh",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleRefreshContext)))
	s.router.Handle("PATCH /api/v1/context",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateContext)))
	s.router.Handle("DELETE /api/v1/context",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleClearContext)))
	s.router.Handle("DELETE /api/v1/contexts",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleClearAllContexts)))

	// Document endpoints
	s.router.Handle("POST /api/v1/documents",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUploadDocument)))
	s.router.Handle("GET /api/v1/documents",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListDocuments)))
	s.router.Handle("GET /api/v1/documents/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetDocument)))
	s.router.Handle("POST /api/v1/documents/{id}/enable",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleEnableDocument)))
	s.router.Handle("POST /api/v1/documents/{id}/disable",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDisableDocument)))
	s.router.Handle("DELETE /api/v1/documents/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteDocument)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
