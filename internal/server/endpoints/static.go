package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/web"
)

// StaticEndpoint serves the embedded CSS and scripts.
type StaticEndpoint struct{}

var _ api.Endpoint = (*StaticEndpoint)(nil)

func (e *StaticEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/static/", e.handler
}

func (e *StaticEndpoint) RequiresBackend() bool {
	return false
}

func (e *StaticEndpoint) Command(_ func() api.Target) *cobra.Command {
	return nil // No CLI command for static files
}

func (e *StaticEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	staticFS, err := web.StaticFS()
	if err != nil {
		http.Error(w, "Frontend not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))).ServeHTTP(w, r)
}

// RootEndpoint sends every unmatched GET to the list page.
type RootEndpoint struct{}

var _ api.Endpoint = (*RootEndpoint)(nil)

func (e *RootEndpoint) Route() (string, string, http.HandlerFunc) {
	// Go 1.22 wildcard pattern catches all unmatched GET requests
	return "GET", "/{path...}", e.handler
}

func (e *RootEndpoint) RequiresBackend() bool {
	return false
}

func (e *RootEndpoint) Command(_ func() api.Target) *cobra.Command {
	return nil
}

func (e *RootEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/pokemon", http.StatusFound)
}
