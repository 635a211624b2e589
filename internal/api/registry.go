package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Registry holds all registered endpoints.
type Registry struct {
	endpoints []Endpoint
}

// NewRegistry creates a new endpoint registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an endpoint to the registry.
func (r *Registry) Register(ep Endpoint) {
	r.endpoints = append(r.endpoints, ep)
}

// RegisterRoutes registers all endpoint HTTP routes with the given mux.
// backendMiddleware wraps handlers that need the backend services.
func (r *Registry) RegisterRoutes(mux *http.ServeMux, backendMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	for _, ep := range r.endpoints {
		method, path, handler := ep.Route()
		if ep.RequiresBackend() && backendMiddleware != nil {
			handler = backendMiddleware(handler)
		}
		pattern := path
		if method != "" {
			pattern = method + " " + path
		}
		mux.HandleFunc(pattern, handler)
	}
}

// BuildCommands returns a cobra.Command grouping the CLI form of every
// registered endpoint that has one.
func (r *Registry) BuildCommands(resolve func() Target) *cobra.Command {
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the Pokémon collection from the terminal",
		Long: `Browse commands talk to the backend API directly through the gateway.

Use --api to point at a different backend (default: config api.base_url,
then $POKEDEX_API_URL, then http://localhost:8080).

Examples:
  pokedex browse list --page 2 --size 6
  pokedex browse get 25
  pokedex browse clear-cache`,
	}

	for _, ep := range r.endpoints {
		if cmd := ep.Command(resolve); cmd != nil {
			browseCmd.AddCommand(cmd)
		}
	}

	return browseCmd
}

// Endpoints returns all registered endpoints.
func (r *Registry) Endpoints() []Endpoint {
	return r.endpoints
}
