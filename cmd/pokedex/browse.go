package main

import (
	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/server/endpoints"
)

var (
	apiURL     string
	collection string
)

// resolveTarget builds the gateway at runtime (after flag parsing and config load).
func resolveTarget() api.Target {
	cfg := configMgr.Get()
	baseURL := cfg.ResolvedBaseURL()
	if apiURL != "" {
		baseURL = apiURL
	}
	path := cfg.API.CollectionPath
	if collection != "" {
		path = collection
	}
	return api.Target{
		Client: api.NewClient(baseURL,
			api.WithTimeout(cfg.API.Timeout),
			api.WithLogger(logger),
		),
		Collection: path,
	}
}

func init() {
	registry := api.NewRegistry()
	for _, ep := range endpoints.All() {
		registry.Register(ep)
	}

	browseCmd := registry.BuildCommands(resolveTarget)
	// Persistent so all subcommands inherit it
	browseCmd.PersistentFlags().StringVar(
		&apiURL, "api", "", "Backend URL (default: api.base_url, then $POKEDEX_API_URL)",
	)
	browseCmd.PersistentFlags().StringVar(
		&collection, "collection", "", "Collection path (default: api.collection_path)",
	)

	rootCmd.AddCommand(browseCmd)
}
