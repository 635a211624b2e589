package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/pokemon"
)

// fakeService is an in-memory collection of `total` records.
type fakeService struct {
	mu       sync.Mutex
	total    int
	calls    []PageQuery
	fail     *api.Failure
	clearErr error
	chains   map[string][]pokemon.Stage

	// Gated calls block until their channel is closed; started is signalled
	// when one begins.
	pageGates map[int]chan struct{}
	idGates   map[string]chan struct{}
	started   chan struct{}
}

func newFakeService(total int) *fakeService {
	return &fakeService{
		total:     total,
		chains:    make(map[string][]pokemon.Stage),
		pageGates: make(map[int]chan struct{}),
		idGates:   make(map[string]chan struct{}),
		started:   make(chan struct{}, 8),
	}
}

func (f *fakeService) List(ctx context.Context, page, size int) api.Result[pokemon.ListResult] {
	f.mu.Lock()
	f.calls = append(f.calls, PageQuery{Page: page, Size: size})
	gate := f.pageGates[page]
	fail := f.fail
	total := f.total
	f.mu.Unlock()

	if gate != nil {
		f.started <- struct{}{}
		<-gate
	}
	if fail != nil {
		return api.Err[pokemon.ListResult](fail)
	}

	items := []pokemon.Pokemon{}
	for id := page*size + 1; id <= (page+1)*size && id <= total; id++ {
		items = append(items, pokemon.Pokemon{ID: id, Name: fmt.Sprintf("p%d", id)})
	}
	return api.Ok(pokemon.ListResult{Items: items, TotalCount: total})
}

func (f *fakeService) ClearCache(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clearErr
}

func (f *fakeService) Get(ctx context.Context, id string) api.Result[pokemon.DetailResult] {
	f.mu.Lock()
	gate := f.idGates[id]
	fail := f.fail
	chain := f.chains[id]
	f.mu.Unlock()

	if gate != nil {
		f.started <- struct{}{}
		<-gate
	}
	if fail != nil {
		return api.Err[pokemon.DetailResult](fail)
	}
	if id == "" {
		return api.Err[pokemon.DetailResult](api.ServerFailure(404, "not found", api.SeverityWarning))
	}
	return api.Ok(pokemon.DetailResult{
		Record:          pokemon.PokemonDetail{Pokemon: pokemon.Pokemon{Name: "record-" + id}},
		EvolutionStages: chain,
	})
}

func (f *fakeService) gatePage(page int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.pageGates[page] = ch
	return ch
}

func (f *fakeService) gateID(id string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.idGates[id] = ch
	return ch
}

func (f *fakeService) setFailure(fail *api.Failure) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func (f *fakeService) lastCall() PageQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

var errPlain = errors.New("plain error")
