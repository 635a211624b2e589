package browse

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/pokemon"
)

// Cache-clear messages.
const (
	CacheClearedMessage     = "Cache cleared successfully"
	CacheClearFailedMessage = "Cache clear failed"
)

// Lister is the part of the collection service the list controller needs.
type Lister interface {
	List(ctx context.Context, page, size int) api.Result[pokemon.ListResult]
	ClearCache(ctx context.Context) error
}

// ListController owns the pagination state of the list page.
//
// The page and size always match the QueryStore: navigation writes the
// store, and the store is read once at construction. Load applies a response
// only if no newer load started in the meantime.
type ListController struct {
	svc    Lister
	store  QueryStore
	logger *slog.Logger

	mu         sync.Mutex
	query      PageQuery
	loaded     *PageQuery
	items      []pokemon.Pokemon
	totalCount int
	status     Status
	failure    *api.Failure
	notice     *Notice
	generation uint64
}

// ListOption configures a ListController.
type ListOption func(*ListController)

// WithListLogger sets the controller's logger.
func WithListLogger(l *slog.Logger) ListOption {
	return func(c *ListController) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewListController reads the current query from store.
func NewListController(svc Lister, store QueryStore, defaultSize int, opts ...ListOption) *ListController {
	c := &ListController{
		svc:    svc,
		store:  store,
		logger: slog.Default(),
		query:  ReadQuery(store, defaultSize),
		items:  []pokemon.Pokemon{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query returns the current page query.
func (c *ListController) Query() PageQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Load fetches the current page. The previous failure is cleared first;
// items from the last successful load stay in place if this one fails.
func (c *ListController) Load(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	q := c.query
	c.status = StatusLoading
	c.failure = nil
	c.notice = nil
	c.mu.Unlock()

	res := c.svc.List(ctx, q.Page, q.Size)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.logger.Debug("discarding superseded list response", "page", q.Page, "size", q.Size)
		return
	}
	loaded := q
	c.loaded = &loaded
	if !res.OK() {
		c.status = StatusFailed
		c.failure = res.Failure()
		c.notice = NoticeFrom(res.Failure())
		return
	}
	v := res.Value()
	c.items = slices.Clone(v.Items)
	c.totalCount = v.TotalCount
	c.status = StatusSuccess
}

// Sync loads only when the query differs from the last applied load.
func (c *ListController) Sync(ctx context.Context) {
	c.mu.Lock()
	stale := c.loaded == nil || *c.loaded != c.query
	c.mu.Unlock()
	if stale {
		c.Load(ctx)
	}
}

// Prev moves one page back, never below the first page.
func (c *ListController) Prev() bool {
	return c.navigate(func(q PageQuery) PageQuery { return q.Prev() })
}

// Next moves one page forward without clamping.
func (c *ListController) Next() bool {
	return c.navigate(func(q PageQuery) PageQuery { return q.Next() })
}

// SetSize changes the page size and resets to the first page.
func (c *ListController) SetSize(size int) bool {
	if size <= 0 {
		return false
	}
	return c.navigate(func(q PageQuery) PageQuery { return q.WithSize(size) })
}

// Jump goes to a 1-based page typed by the user. Input outside
// [1, TotalPages] is ignored.
func (c *ListController) Jump(input string) bool {
	v, err := ParsePageInput(input)
	if err != nil {
		return false
	}
	c.mu.Lock()
	total := TotalPages(c.totalCount, c.query.Size)
	c.mu.Unlock()
	if v < 1 || v > total {
		return false
	}
	return c.navigate(func(q PageQuery) PageQuery { return PageQuery{Page: v - 1, Size: q.Size} })
}

// SetPage goes to a 0-based page index.
func (c *ListController) SetPage(page int) bool {
	if page < 0 {
		return false
	}
	return c.navigate(func(q PageQuery) PageQuery { return PageQuery{Page: page, Size: q.Size} })
}

func (c *ListController) navigate(fn func(PageQuery) PageQuery) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := fn(c.query)
	WriteQuery(c.store, next)
	if next == c.query {
		return false
	}
	c.query = next
	return true
}

// ClearCache asks the backend to drop its cache and reports the outcome as a
// notice. An unreachable backend keeps the gateway's fatal network failure;
// a refusal keeps the server's message and severity. Missing fields fall
// back to CacheClearFailedMessage with error severity.
func (c *ListController) ClearCache(ctx context.Context) Notice {
	n := Notice{Message: CacheClearedMessage, Severity: api.SeveritySuccess}
	if err := c.svc.ClearCache(ctx); err != nil {
		n = Notice{Message: CacheClearFailedMessage, Severity: api.SeverityError}
		if f, ok := api.AsFailure(err); ok {
			if f.Message != "" {
				n.Message = f.Message
			}
			if f.Severity.Valid() {
				n.Severity = f.Severity
			}
		}
		c.logger.Warn("cache clear failed", "error", err)
	}

	c.mu.Lock()
	c.notice = &n
	c.mu.Unlock()
	return n
}

// DismissNotice clears the pending notice.
func (c *ListController) DismissNotice() {
	c.mu.Lock()
	c.notice = nil
	c.mu.Unlock()
}

// ListView is a consistent snapshot of the controller for rendering.
type ListView struct {
	Query      PageQuery         `json:"query" yaml:"query"`
	Items      []pokemon.Pokemon `json:"items" yaml:"items"`
	TotalCount int               `json:"total_count" yaml:"total_count"`
	TotalPages int               `json:"total_pages" yaml:"total_pages"`
	Status     Status            `json:"-" yaml:"-"`
	Failure    *api.Failure      `json:"failure,omitempty" yaml:"failure,omitempty"`
	Notice     *Notice           `json:"notice,omitempty" yaml:"notice,omitempty"`
}

// Loading reports whether a load is in flight.
func (v ListView) Loading() bool { return v.Status == StatusLoading }

// CanPrev reports whether a previous page exists.
func (v ListView) CanPrev() bool { return v.Query.Page > 0 }

// CanNext reports whether a following page exists.
func (v ListView) CanNext() bool { return v.Query.Page+1 < v.TotalPages }

// PageNumber is the 1-based page shown to the user.
func (v ListView) PageNumber() int { return v.Query.Page + 1 }

// View returns a snapshot of the current state.
func (c *ListController) View() ListView {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := ListView{
		Query:      c.query,
		Items:      slices.Clone(c.items),
		TotalCount: c.totalCount,
		TotalPages: TotalPages(c.totalCount, c.query.Size),
		Status:     c.status,
		Failure:    c.failure,
	}
	if c.notice != nil {
		n := *c.notice
		v.Notice = &n
	}
	return v
}
