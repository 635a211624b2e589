package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/browse"
	"github.com/jackzampolin/pokedex/internal/pokemon"
	"github.com/jackzampolin/pokedex/internal/svcctx"
)

// DetailPageEndpoint handles GET /pokemon/{id}.
type DetailPageEndpoint struct{}

var _ api.Endpoint = (*DetailPageEndpoint)(nil)

func (e *DetailPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/pokemon/{id}", e.handler
}

func (e *DetailPageEndpoint) RequiresBackend() bool { return true }

type stageMember struct {
	pokemon.Pokemon
	Href    string
	Current bool
	Picture imageData
}

type detailPage struct {
	Title    string
	Record   *pokemon.PokemonDetail
	Picture  imageData
	Stages   [][]stageMember
	BackHref string
	Notice   *browse.Notice
}

// handler godoc
//
//	@Summary		Detail page
//	@Description	Renders one record with its evolution chain. page/size are the list page to return to.
//	@Tags			pokemon
//	@Produce		html,json
//	@Param			id		path	string	true	"record id"
//	@Param			page	query	int		false	"list page to return to"
//	@Success		200	{object}	browse.DetailView
//	@Router			/pokemon/{id} [get]
func (e *DetailPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc := svcctx.PokemonFrom(ctx)
	logger := svcctx.LoggerFrom(ctx)
	id := r.PathValue("id")

	ctrl := browse.NewDetailController(svc, logger)
	ctrl.Load(ctx, id)
	view := ctrl.View()

	if m := svcctx.MetricsFrom(ctx); m != nil {
		m.ObserveRender("detail", view.Status.String())
	}

	status := http.StatusOK
	if view.Failure != nil {
		status = failureStatus(view.Failure)
	}
	if wantsJSON(r) {
		writeJSON(w, status, view)
		return
	}

	back := backQuery(w, r)
	page := detailPage{
		Title:    "Pokémon",
		Record:   view.Record,
		BackHref: "/pokemon",
		Notice:   view.Notice(),
	}
	if back != nil {
		page.BackHref = listHref(*back)
	}
	if view.Record != nil {
		page.Title = view.Record.Name
		page.Picture = imageData{Src: view.Record.DisplayImage(), Alt: view.Record.Name, Size: 140}
	}
	from := browse.PageQuery{Size: browse.DefaultSize}
	if back != nil {
		from = *back
	}
	for _, stage := range view.Stages {
		members := make([]stageMember, 0, len(stage))
		for _, p := range stage {
			pid := strconv.Itoa(p.ID)
			members = append(members, stageMember{
				Pokemon: p,
				Href:    detailHref(pid, from),
				Current: pid == id,
				Picture: imageData{Src: p.Image, Alt: p.Name, Size: 96},
			})
		}
		page.Stages = append(page.Stages, members)
	}

	renderPage(w, logger, status, "detail", page)
}

// backQuery finds the list page to return to: the URL wins, the session's
// last visited page is the fallback.
func backQuery(w http.ResponseWriter, r *http.Request) *browse.PageQuery {
	store := browse.NewValuesStore(r.URL.Query())
	if store.Get(browse.PageKey) != "" {
		q := browse.ReadQuery(store, svcctx.UIFrom(r.Context()).DefaultSize)
		return &q
	}
	if sessions := svcctx.SessionsFrom(r.Context()); sessions != nil {
		if q, ok := sessions.LastPage(sessions.ID(w, r)); ok {
			return &q
		}
	}
	return nil
}

func (e *DetailPageEndpoint) Command(resolve func() api.Target) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one record and its evolution chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t := resolve()
			svc := pokemon.NewService(t.Client, t.Collection)

			ctrl := browse.NewDetailController(svc, nil)
			ctrl.Load(ctx, args[0])
			view := ctrl.View()
			if view.Failure != nil {
				return fmt.Errorf("get %s: %w", args[0], view.Failure)
			}
			return api.Output(view)
		},
	}
}
