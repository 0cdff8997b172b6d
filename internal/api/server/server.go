package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/echelon-room/marketplace/internal/api/middleware"
	"github.com/echelon-room/marketplace/internal/api/rest"
	"github.com/echelon-room/marketplace/internal/api/shared/executor"
	"github.com/echelon-room/marketplace/internal/auth"
	"github.com/echelon-room/marketplace/internal/logger"
	"github.com/echelon-room/marketplace/internal/messaging"
	"github.com/echelon-room/marketplace/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Feed         executor.FeedSettings
}

// Server wraps the HTTP server
type Server struct {
	config      Config
	store       store.Store
	broadcaster messaging.Broadcaster
	tokens      *auth.TokenIssuer
	nonces      *auth.NonceStore
	httpServer  *http.Server
}

// New creates a new API server
func New(cfg Config, s store.Store, broadcaster messaging.Broadcaster, tokens *auth.TokenIssuer, nonces *auth.NonceStore) *Server {
	return &Server{
		config:      cfg,
		store:       s,
		broadcaster: broadcaster,
		tokens:      tokens,
		nonces:      nonces,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// Create the executor holding the business logic
	exec := executor.NewExecutor(s.store, s.broadcaster, s.tokens, s.nonces, s.config.Feed)

	// Create REST handler
	restHandler := rest.NewHandler(exec)

	// Setup REST routes
	rest.SetupRoutes(router, restHandler, s.tokens, s.store)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
