package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Target is what a CLI command needs to reach the backend: the gateway and
// the collection path under it.
type Target struct {
	Client     *Client
	Collection string
}

// Endpoint defines both an HTTP route and its corresponding CLI command.
// This provides a single source of truth for front-end operations.
type Endpoint interface {
	// Route returns the HTTP method, path, and handler for this endpoint.
	Route() (method, path string, handler http.HandlerFunc)

	// RequiresBackend returns true if the handler needs the gateway and
	// collection services in its request context.
	RequiresBackend() bool

	// Command returns a Cobra command that performs the same operation
	// from the terminal, or nil when the endpoint has no CLI form.
	// resolve is called at runtime, after flags and config are loaded.
	Command(resolve func() Target) *cobra.Command
}
