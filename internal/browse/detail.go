package browse

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/pokemon"
)

// Getter is the part of the collection service the detail controller needs.
type Getter interface {
	Get(ctx context.Context, id string) api.Result[pokemon.DetailResult]
}

// DetailController loads one record and its evolution chain.
type DetailController struct {
	svc    Getter
	logger *slog.Logger

	mu         sync.Mutex
	id         string
	record     *pokemon.PokemonDetail
	stages     []pokemon.Stage
	status     Status
	failure    *api.Failure
	generation uint64
}

// NewDetailController creates an idle controller.
func NewDetailController(svc Getter, logger *slog.Logger) *DetailController {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailController{svc: svc, logger: logger}
}

// Load fetches id. A response that arrives after a newer Load started is
// dropped.
func (c *DetailController) Load(ctx context.Context, id string) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	if id != c.id {
		c.record = nil
		c.stages = nil
	}
	c.id = id
	c.status = StatusLoading
	c.failure = nil
	c.mu.Unlock()

	res := c.svc.Get(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.logger.Debug("discarding superseded detail response", "id", id)
		return
	}
	if !res.OK() {
		c.status = StatusFailed
		c.failure = res.Failure()
		return
	}
	v := res.Value()
	rec := v.Record
	c.record = &rec
	c.stages = slices.Clone(v.EvolutionStages)
	c.status = StatusSuccess
}

// DetailView is a consistent snapshot of the controller for rendering.
type DetailView struct {
	ID      string                 `json:"id" yaml:"id"`
	Record  *pokemon.PokemonDetail `json:"record,omitempty" yaml:"record,omitempty"`
	Stages  []pokemon.Stage        `json:"evolution_stages" yaml:"evolution_stages"`
	Status  Status                 `json:"-" yaml:"-"`
	Failure *api.Failure           `json:"failure,omitempty" yaml:"failure,omitempty"`
}

// Loading reports whether a load is in flight.
func (v DetailView) Loading() bool { return v.Status == StatusLoading }

// Notice is the failure as a toast, nil when there is none.
func (v DetailView) Notice() *Notice { return NoticeFrom(v.Failure) }

// View returns a snapshot of the current state.
func (c *DetailController) View() DetailView {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := DetailView{
		ID:      c.id,
		Stages:  slices.Clone(c.stages),
		Status:  c.status,
		Failure: c.failure,
	}
	if c.record != nil {
		rec := *c.record
		v.Record = &rec
	}
	return v
}
