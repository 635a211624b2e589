package pokemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jackzampolin/pokedex/internal/api"
)

// DefaultCollection is the backend path of the Pokémon collection.
const DefaultCollection = "/pokemon"

// ErrInvalidID is returned for identifiers that are not record ids.
var ErrInvalidID = errors.New("invalid pokemon id")

// ParseID accepts positive decimal record ids. Anything else, including the
// collection's own action segments such as "clear-cache", is rejected.
func ParseID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return n, nil
}

// Service is a typed view of the collection endpoints.
type Service struct {
	client     *api.Client
	collection string
}

// NewService binds client to a collection path. An empty path uses
// DefaultCollection.
func NewService(client *api.Client, collection string) *Service {
	collection = strings.TrimSuffix(strings.TrimSpace(collection), "/")
	if collection == "" {
		collection = DefaultCollection
	}
	if !strings.HasPrefix(collection, "/") {
		collection = "/" + collection
	}
	return &Service{client: client, collection: collection}
}

// Collection returns the normalized collection path.
func (s *Service) Collection() string {
	return s.collection
}

// Client returns the underlying gateway.
func (s *Service) Client() *api.Client {
	return s.client
}

// ListParams builds the query for one page.
func ListParams(page, size int) url.Values {
	return url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
}

// ListPath returns the request path for one page, relative to the base URL.
func (s *Service) ListPath(page, size int) string {
	return s.collection + "?" + ListParams(page, size).Encode()
}

// List fetches one page. page is 0-based.
func (s *Service) List(ctx context.Context, page, size int) api.Result[ListResult] {
	res := api.Do[ListResult](ctx, s.client, http.MethodGet, s.collection, api.Options{
		Params: ListParams(page, size),
	})
	if res.OK() && res.Value().Items == nil {
		v := res.Value()
		v.Items = []Pokemon{}
		return api.Ok(v)
	}
	return res
}

// Get fetches one record and its evolution chain. An id that is not a record
// id fails as not found without reaching the backend.
func (s *Service) Get(ctx context.Context, id string) api.Result[DetailResult] {
	n, err := ParseID(id)
	if err != nil {
		return api.Err[DetailResult](api.ServerFailure(http.StatusNotFound, NotFoundMessage, api.SeverityWarning))
	}
	return api.Do[DetailResult](ctx, s.client, http.MethodGet, s.collection+"/"+strconv.Itoa(n), api.Options{})
}

// NotFoundMessage is shown for ids the collection cannot contain.
const NotFoundMessage = "Pokémon not found"

// ClearCache asks the backend to drop its cached records.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.client.Request(ctx, http.MethodGet, s.collection+"/clear-cache", api.Options{}, nil)
}
