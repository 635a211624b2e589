// Package session keeps small, expiring per-visitor conveniences such as the
// last list page visited. Nothing in it is authoritative: entries can vanish
// at any time and callers fall back to the URL.
package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jackzampolin/pokedex/internal/browse"
)

const (
	// CookieName names the session cookie.
	CookieName = "pokedex_session"

	DefaultMaxEntries = 4096
	DefaultTTL        = 30 * time.Minute
)

// Store maps session ids to the last list query they visited.
type Store struct {
	lastPage *expirable.LRU[string, browse.PageQuery]
	ttl      time.Duration
}

// NewStore creates a store holding at most maxEntries sessions for ttl each.
func NewStore(maxEntries int, ttl time.Duration) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		lastPage: expirable.NewLRU[string, browse.PageQuery](maxEntries, nil, ttl),
		ttl:      ttl,
	}
}

// Remember records q as the last list page for id.
func (s *Store) Remember(id string, q browse.PageQuery) {
	if id == "" {
		return
	}
	s.lastPage.Add(id, q)
}

// LastPage returns the last list page recorded for id.
func (s *Store) LastPage(id string) (browse.PageQuery, bool) {
	if id == "" {
		return browse.PageQuery{}, false
	}
	return s.lastPage.Get(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.lastPage.Len()
}

// ID returns the request's session id, issuing a new cookie when missing.
func (s *Store) ID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
