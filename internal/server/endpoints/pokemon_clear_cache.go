package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/browse"
	"github.com/jackzampolin/pokedex/internal/pokemon"
	"github.com/jackzampolin/pokedex/internal/svcctx"
)

// ClearCacheEndpoint handles POST /pokemon/clear-cache.
type ClearCacheEndpoint struct{}

var _ api.Endpoint = (*ClearCacheEndpoint)(nil)

func (e *ClearCacheEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/pokemon/clear-cache", e.handler
}

func (e *ClearCacheEndpoint) RequiresBackend() bool { return true }

// handler godoc
//
//	@Summary		Clear backend cache
//	@Description	Asks the backend to drop its cache, then redirects to the list page with a toast.
//	@Tags			pokemon
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			page	formData	int	false	"list page to return to"
//	@Param			size	formData	int	false	"list page size"
//	@Success		200	{object}	browse.Notice
//	@Success		303
//	@Router			/pokemon/clear-cache [post]
func (e *ClearCacheEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	svc := svcctx.PokemonFrom(ctx)
	store := browse.NewValuesStore(r.PostForm)
	ctrl := browse.NewListController(svc, store, svcctx.UIFrom(ctx).DefaultSize, browse.WithListLogger(svcctx.LoggerFrom(ctx)))
	notice := ctrl.ClearCache(ctx)

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, notice)
		return
	}
	setNotice(w, notice)
	http.Redirect(w, r, listHref(ctrl.Query()), http.StatusSeeOther)
}

func (e *ClearCacheEndpoint) Command(resolve func() api.Target) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Ask the backend to drop its cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := resolve()
			svc := pokemon.NewService(t.Client, t.Collection)
			ctrl := browse.NewListController(svc, browse.NewValuesStore(nil), browse.DefaultSize)

			notice := ctrl.ClearCache(cmd.Context())
			if err := api.Output(notice); err != nil {
				return err
			}
			if notice.Severity != api.SeveritySuccess {
				return api.ServerFailure(0, notice.Message, notice.Severity)
			}
			return nil
		},
	}
}
