// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/pokedex/internal/config"
	"github.com/jackzampolin/pokedex/internal/metrics"
	"github.com/jackzampolin/pokedex/internal/pokemon"
	"github.com/jackzampolin/pokedex/internal/session"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Pokemon  *pokemon.Service
	Sessions *session.Store
	Metrics  *metrics.Recorder
	Config   *config.Manager
	Logger   *slog.Logger
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// PokemonFrom extracts the collection service from context.
func PokemonFrom(ctx context.Context) *pokemon.Service {
	if s := ServicesFrom(ctx); s != nil {
		return s.Pokemon
	}
	return nil
}

// SessionsFrom extracts the session store from context.
func SessionsFrom(ctx context.Context) *session.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Sessions
	}
	return nil
}

// MetricsFrom extracts the metrics recorder from context.
func MetricsFrom(ctx context.Context) *metrics.Recorder {
	if s := ServicesFrom(ctx); s != nil {
		return s.Metrics
	}
	return nil
}

// LoggerFrom extracts the logger from context, falling back to slog.Default.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// UIFrom returns the current UI settings, defaults when no config manager
// is attached. Reads through the manager so hot reloads apply per request.
func UIFrom(ctx context.Context) config.UIConfig {
	if s := ServicesFrom(ctx); s != nil && s.Config != nil {
		return s.Config.Get().UI
	}
	return config.DefaultConfig().UI
}
