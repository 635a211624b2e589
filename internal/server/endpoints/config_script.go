package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/svcctx"
)

// ConfigJSEndpoint handles GET /config.js, exposing the resolved backend URL
// to scripts as window.POKEDEX_API_URL.
type ConfigJSEndpoint struct{}

var _ api.Endpoint = (*ConfigJSEndpoint)(nil)

func (e *ConfigJSEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/config.js", e.handler
}

func (e *ConfigJSEndpoint) RequiresBackend() bool { return false }

func (e *ConfigJSEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	baseURL := api.ResolveBaseURL("")
	if svc := svcctx.PokemonFrom(r.Context()); svc != nil {
		baseURL = svc.Client().BaseURL()
	}
	quoted, err := json.Marshal(baseURL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprintf(w, "window.POKEDEX_API_URL = %s;\n", quoted)
}

func (e *ConfigJSEndpoint) Command(resolve func() api.Target) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoint",
		Short: "Print the resolved backend URL and collection path",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := resolve()
			return api.Output(map[string]string{
				"base_url":   t.Client.BaseURL(),
				"collection": t.Collection,
			})
		},
	}
}
