// Package api serves the planner's HTTP API with gin.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/ration/internal/core/ports/driving"
	"github.com/custodia-labs/ration/internal/logger"
)

// Default timeouts.
const (
	DefaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 10 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	// AllowedOrigins lists CORS origins. Empty or containing "*" allows any.
	AllowedOrigins []string

	// ShutdownTimeout bounds graceful shutdown (default: 10s).
	ShutdownTimeout time.Duration
}

// Services holds the driving ports the handlers call.
type Services struct {
	Calories driving.CalorieService
	Search   driving.SearchService
	Foraging driving.ForagingService
}

// Server is the HTTP gateway. Requests share no mutable state.
type Server struct {
	engine          *gin.Engine
	services        Services
	shutdownTimeout time.Duration
}

// NewServer creates a server with routes and middleware installed.
func NewServer(cfg Config, services Services) (*Server, error) {
	if services.Calories == nil || services.Search == nil || services.Foraging == nil {
		return nil, errors.New("api: calorie, search and foraging services are required")
	}

	corsCfg := corsConfig(cfg.AllowedOrigins)
	if err := corsCfg.Validate(); err != nil {
		return nil, fmt.Errorf("api: cors: %w", err)
	}

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(requestID(), requestLogger(), recovery(), cors.New(corsCfg))

	s := &Server{
		engine:          engine,
		services:        services,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/formSubmit", s.formSubmit)
		api.POST("/search", s.search)
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. In-flight requests get ShutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
