package endpoints

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/browse"
	"github.com/jackzampolin/pokedex/internal/pokemon"
	"github.com/jackzampolin/pokedex/internal/svcctx"
)

// Form-only query keys; they never survive the redirect that applies them.
const (
	resizeKey = "resize"
	jumpKey   = "jump"
)

// ListPageEndpoint handles GET /pokemon.
type ListPageEndpoint struct{}

var _ api.Endpoint = (*ListPageEndpoint)(nil)

func (e *ListPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/pokemon", e.handler
}

func (e *ListPageEndpoint) RequiresBackend() bool { return true }

type sizeOption struct {
	Size     int
	Selected bool
}

type listItem struct {
	pokemon.Pokemon
	Href        string
	AbilityText []string
	Picture     imageData
}

type listPage struct {
	Title       string
	View        browse.ListView
	Items       []listItem
	SizeOptions []sizeOption
	PrevHref    string
	NextHref    string
	Notice      *browse.Notice
}

// handler godoc
//
//	@Summary		List page
//	@Description	Renders one page of the collection. page is 1-based. resize changes the size and returns to page 1; jump goes to a page when it is in range.
//	@Tags			pokemon
//	@Produce		html,json
//	@Param			page	query	int		false	"1-based page"
//	@Param			size	query	int		false	"page size"
//	@Param			resize	query	int		false	"new page size"
//	@Param			jump	query	string	false	"page to jump to"
//	@Success		200	{object}	browse.ListView
//	@Success		303
//	@Router			/pokemon [get]
func (e *ListPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc := svcctx.PokemonFrom(ctx)
	logger := svcctx.LoggerFrom(ctx)
	ui := svcctx.UIFrom(ctx)

	store := browse.NewValuesStore(r.URL.Query())
	ctrl := browse.NewListController(svc, store, ui.DefaultSize, browse.WithListLogger(logger))

	if raw := store.Get(resizeKey); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && slices.Contains(ui.SizeOptions, size) {
			ctrl.SetSize(size)
		}
		http.Redirect(w, r, listHref(ctrl.Query()), http.StatusSeeOther)
		return
	}

	if raw := store.Get(jumpKey); raw != "" {
		// The range check needs the total count of the current page.
		ctrl.Load(ctx)
		if n := ctrl.View().Notice; n != nil {
			setNotice(w, *n)
		} else {
			ctrl.Jump(raw)
		}
		http.Redirect(w, r, listHref(ctrl.Query()), http.StatusSeeOther)
		return
	}

	ctrl.Load(ctx)
	view := ctrl.View()

	if sessions := svcctx.SessionsFrom(ctx); sessions != nil {
		sessions.Remember(sessions.ID(w, r), view.Query)
	}
	if m := svcctx.MetricsFrom(ctx); m != nil {
		m.ObserveRender("list", view.Status.String())
	}

	if wantsJSON(r) {
		status := http.StatusOK
		if view.Failure != nil {
			status = failureStatus(view.Failure)
		}
		writeJSON(w, status, view)
		return
	}

	page := listPage{
		Title:    "Pokémon",
		View:     view,
		PrevHref: listHref(view.Query.Prev()),
		NextHref: listHref(view.Query.Next()),
		Notice:   view.Notice,
	}
	if n := takeNotice(w, r); n != nil {
		page.Notice = n
	}
	for _, s := range ui.SizeOptions {
		page.SizeOptions = append(page.SizeOptions, sizeOption{Size: s, Selected: s == view.Query.Size})
	}
	for _, p := range view.Items {
		page.Items = append(page.Items, listItem{
			Pokemon:     p,
			Href:        detailHref(strconv.Itoa(p.ID), view.Query),
			AbilityText: p.AbilityLabels(),
			Picture:     imageData{Src: p.Image, Alt: p.Name, Size: 120},
		})
	}

	renderPage(w, logger, http.StatusOK, "list", page)
}

// failureStatus maps a failure onto the status the front end answers with.
func failureStatus(f *api.Failure) int {
	if f.Status >= 400 {
		return f.Status
	}
	return http.StatusBadGateway
}

// detailHref links to a record and remembers the list page it came from.
func detailHref(id string, from browse.PageQuery) string {
	return "/pokemon/" + url.PathEscape(id) + "?" + from.Values().Encode()
}

func (e *ListPageEndpoint) Command(resolve func() api.Target) *cobra.Command {
	var page, size int
	var jump string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of the collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t := resolve()
			svc := pokemon.NewService(t.Client, t.Collection)

			store := browse.NewValuesStore(url.Values{
				browse.PageKey: {strconv.Itoa(page)},
				browse.SizeKey: {strconv.Itoa(size)},
			})
			ctrl := browse.NewListController(svc, store, browse.DefaultSize)
			if jump != "" {
				ctrl.Load(ctx)
				if !ctrl.Jump(jump) && ctrl.View().Failure == nil {
					cmd.PrintErrf("page %s is out of range, staying on page %d\n", jump, ctrl.Query().Page+1)
				}
			}

			ctrl.Load(ctx)
			view := ctrl.View()
			if view.Failure != nil {
				return view.Failure
			}
			return api.Output(view)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&size, "size", browse.DefaultSize, "records per page")
	cmd.Flags().StringVar(&jump, "jump", "", "jump to a page after checking it is in range")
	return cmd
}
