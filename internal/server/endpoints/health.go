package endpoints

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/pokemon"
	"github.com/jackzampolin/pokedex/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status  string `json:"status" yaml:"status"`
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Text renders the response for the terminal.
func (h HealthResponse) Text() string {
	s := fmt.Sprintf("Status:  %s", h.Status)
	if h.Backend != "" {
		s += fmt.Sprintf("\nBackend: %s", h.Backend)
	}
	if h.Message != "" {
		s += fmt.Sprintf("\n         %s", h.Message)
	}
	return s
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresBackend() bool { return false }

func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Command is nil: liveness only concerns the running front end.
func (e *HealthEndpoint) Command(_ func() api.Target) *cobra.Command {
	return nil
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresBackend() bool { return false }

// handler godoc
//
//	@Summary		Readiness
//	@Description	Reports whether the backend answers a one-record page.
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	svc := svcctx.PokemonFrom(r.Context())
	if svc == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Backend: "not_initialized"})
		return
	}

	resp, ok := probe(r.Context(), svc)
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func probe(ctx context.Context, svc *pokemon.Service) (HealthResponse, bool) {
	if err := svc.Client().Ping(ctx, svc.ListPath(0, 1)); err != nil {
		resp := HealthResponse{Status: "degraded", Backend: "unreachable", Message: err.Error()}
		if f, ok := api.AsFailure(err); ok && !f.IsNetwork() {
			resp.Backend = "unhealthy"
		}
		return resp, false
	}
	return HealthResponse{Status: "ok", Backend: "ok"}, true
}

func (e *ReadyEndpoint) Command(resolve func() api.Target) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := resolve()
			svc := pokemon.NewService(t.Client, t.Collection)
			resp, ok := probe(cmd.Context(), svc)
			if err := api.Output(resp); err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("backend %s is %s", t.Client.BaseURL(), resp.Backend)
			}
			return nil
		},
	}
}
