package endpoints

import (
	"github.com/jackzampolin/pokedex/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&MetricsEndpoint{},

		// Pokémon pages
		&ListPageEndpoint{},
		&DetailPageEndpoint{},
		&ClearCacheEndpoint{},

		// Assets and fallbacks
		&ConfigJSEndpoint{},
		&StaticEndpoint{},
		&RootEndpoint{},
	}
}
