package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/jackzampolin/pokedex/internal/pokemon"
)

// Backend is an in-process stand-in for the Pokémon API.
// It serves GET /pokemon, GET /pokemon/{id} and GET /pokemon/clear-cache.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	records   []pokemon.PokemonDetail
	chains    map[int][]pokemon.Stage
	requests  []string
	failNext  *cannedResponse
	clearResp *cannedResponse
}

type cannedResponse struct {
	status int
	body   string
}

// NewBackend starts a backend holding n generated records with ids 1..n.
// The server is closed when the test ends.
func NewBackend(t testing.TB, n int) *Backend {
	t.Helper()
	b := &Backend{chains: make(map[int][]pokemon.Stage)}
	for i := 1; i <= n; i++ {
		b.records = append(b.records, Record(i))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /pokemon", b.handleList)
	mux.HandleFunc("GET /pokemon/clear-cache", b.handleClearCache)
	mux.HandleFunc("GET /pokemon/{id}", b.handleGet)
	b.Server = httptest.NewServer(b.record(mux))
	t.Cleanup(b.Server.Close)
	return b
}

// Record builds a deterministic record for id.
func Record(id int) pokemon.PokemonDetail {
	name := fmt.Sprintf("pokemon-%03d", id)
	return pokemon.PokemonDetail{
		Pokemon: pokemon.Pokemon{
			ID:        id,
			Name:      name,
			Image:     fmt.Sprintf("https://img.example/list/%d.png", id),
			Types:     []string{"normal"},
			Abilities: []string{"run\naway"},
			Weight:    float64(id) / 10,
		},
		Height:      float64(id) / 100,
		DetailImage: fmt.Sprintf("https://img.example/detail/%d.png", id),
		Species:     pokemon.Species{FlavorText: name + " lives in tall grass."},
	}
}

// URL returns the backend base URL.
func (b *Backend) URL() string {
	return b.Server.URL
}

// SetRecord replaces or adds a record.
func (b *Backend) SetRecord(rec pokemon.PokemonDetail) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.records {
		if b.records[i].ID == rec.ID {
			b.records[i] = rec
			return
		}
	}
	b.records = append(b.records, rec)
}

// SetChain sets the evolution chain returned for every id in it.
func (b *Backend) SetChain(stages ...[]int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	chain := make([]pokemon.Stage, 0, len(stages))
	for _, ids := range stages {
		var stage pokemon.Stage
		for _, id := range ids {
			stage = append(stage, b.find(id).Pokemon)
		}
		chain = append(chain, stage)
	}
	for _, ids := range stages {
		for _, id := range ids {
			b.chains[id] = chain
		}
	}
}

// FailNext makes the next request answer status with body.
func (b *Backend) FailNext(status int, body string) {
	b.mu.Lock()
	b.failNext = &cannedResponse{status: status, body: body}
	b.mu.Unlock()
}

// SetClearCache fixes the clear-cache response.
func (b *Backend) SetClearCache(status int, body string) {
	b.mu.Lock()
	b.clearResp = &cannedResponse{status: status, body: body}
	b.mu.Unlock()
}

// Requests returns every request URI received so far.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// LastRequest returns the most recent request URI, or "".
func (b *Backend) LastRequest() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return ""
	}
	return b.requests[len(b.requests)-1]
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.URL.RequestURI())
		canned := b.failNext
		b.failNext = nil
		b.mu.Unlock()

		if canned != nil {
			w.WriteHeader(canned.status)
			fmt.Fprint(w, canned.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = 3
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	items := []pokemon.Pokemon{}
	for i := page * size; i < (page+1)*size && i < len(b.records); i++ {
		if i >= 0 {
			items = append(items, b.records[i].Pokemon)
		}
	}
	writeBody(w, http.StatusOK, pokemon.ListResult{Items: items, TotalCount: len(b.records)})
}

func (b *Backend) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil || b.find(id).ID == 0 {
		writeBody(w, http.StatusNotFound, map[string]string{"message": "Pokémon not found", "severity": "warning"})
		return
	}
	writeBody(w, http.StatusOK, pokemon.DetailResult{Record: b.find(id), EvolutionStages: b.chains[id]})
}

func (b *Backend) handleClearCache(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	canned := b.clearResp
	b.mu.Unlock()
	if canned != nil {
		w.WriteHeader(canned.status)
		fmt.Fprint(w, canned.body)
		return
	}
	writeBody(w, http.StatusOK, map[string]bool{"ok": true})
}

// find must be called with b.mu held.
func (b *Backend) find(id int) pokemon.PokemonDetail {
	for _, rec := range b.records {
		if rec.ID == id {
			return rec
		}
	}
	return pokemon.PokemonDetail{}
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
