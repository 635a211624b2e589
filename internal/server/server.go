package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/config"
	"github.com/jackzampolin/pokedex/internal/metrics"
	"github.com/jackzampolin/pokedex/internal/pokemon"
	"github.com/jackzampolin/pokedex/internal/server/endpoints"
	"github.com/jackzampolin/pokedex/internal/session"
	"github.com/jackzampolin/pokedex/internal/svcctx"
)

// Server is the Pokédex front end: it renders the list and detail pages
// from the backend API and serves the embedded assets.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	client     *api.Client
	configMgr  *config.Manager
	logger     *slog.Logger

	waitBackend time.Duration

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: server.host from config)
	Host string
	// Port is the port to listen on (default: server.port from config)
	Port string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
	// Metrics records gateway and render metrics (default: a fresh recorder)
	Metrics *metrics.Recorder
	// HTTPClient overrides the gateway's HTTP client
	HTTPClient *http.Client
	// WaitBackend makes Start wait up to this long for the backend to answer
	WaitBackend time.Duration
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	conf := config.DefaultConfig()
	if cfg.ConfigManager != nil {
		conf = cfg.ConfigManager.Get()
	}
	if cfg.Host == "" {
		cfg.Host = conf.Server.Host
	}
	if cfg.Port == "" {
		cfg.Port = conf.Server.Port
	}

	opts := []api.ClientOption{
		api.WithLogger(cfg.Logger),
		api.WithTimeout(conf.API.Timeout),
		api.WithObserver(cfg.Metrics),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, api.WithHTTPClient(cfg.HTTPClient))
	}
	client := api.NewClient(conf.ResolvedBaseURL(), opts...)

	s := &Server{
		client:      client,
		configMgr:   cfg.ConfigManager,
		logger:      cfg.Logger,
		waitBackend: cfg.WaitBackend,
		services: &svcctx.Services{
			Pokemon:  pokemon.NewService(client, conf.API.CollectionPath),
			Sessions: session.NewStore(conf.Session.MaxEntries, conf.Session.TTL),
			Metrics:  cfg.Metrics,
			Config:   cfg.ConfigManager,
			Logger:   cfg.Logger,
		},
	}

	if cfg.ConfigManager != nil {
		// UI settings are read per request; the gateway keeps its startup target.
		cfg.ConfigManager.OnChange(func(c *config.Config) {
			cfg.Logger.Info("config reloaded",
				"default_size", c.UI.DefaultSize,
				"size_options", c.UI.SizeOptions)
			if c.ResolvedBaseURL() != client.BaseURL() {
				cfg.Logger.Warn("api.base_url changed, restart to apply",
					"current", client.BaseURL(), "configured", c.ResolvedBaseURL())
			}
		})
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireBackend)
	s.handler = s.withServices(mux)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the HTTP server.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if s.waitBackend > 0 {
		svc := s.services.Pokemon
		s.logger.Info("waiting for backend", "url", s.client.BaseURL(), "timeout", s.waitBackend)
		if err := s.client.WaitReady(ctx, svc.ListPath(0, 1), s.waitBackend); err != nil {
			s.setNotRunning()
			return fmt.Errorf("backend not ready: %w", err)
		}
		s.logger.Info("backend is ready", "url", s.client.BaseURL())
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr, "backend", s.client.BaseURL())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Client returns the backend gateway.
func (s *Server) Client() *api.Client {
	return s.client
}

// Services returns the services attached to every request.
func (s *Server) Services() *svcctx.Services {
	return s.services
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireBackend is middleware that ensures the collection service exists.
// Returns 503 Service Unavailable otherwise.
func (s *Server) requireBackend(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.services == nil || s.services.Pokemon == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"backend not configured"}`))
			return
		}
		next(w, r)
	}
}
