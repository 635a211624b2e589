// Package browse holds the list and detail controllers: the pagination and
// loading state behind the front end, independent of how it is rendered.
package browse

import (
	"errors"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Query keys mirrored into the URL.
const (
	PageKey = "page"
	SizeKey = "size"
)

// DefaultSize is the page size used when the URL carries none.
const DefaultSize = 3

// SizeOptions are the page sizes offered by the front end.
var SizeOptions = []int{3, 6, 12}

// ErrInvalidPage is returned when a page input cannot be parsed.
var ErrInvalidPage = errors.New("invalid page")

// QueryStore is the shareable location (the URL query) seen as a key-value
// store. Controllers are its only writers.
type QueryStore interface {
	Get(key string) string
	Set(key, value string)
}

// ValuesStore adapts url.Values to QueryStore.
type ValuesStore struct {
	Values url.Values
}

// NewValuesStore copies v so writes never leak into the caller's request.
func NewValuesStore(v url.Values) *ValuesStore {
	cp := make(url.Values, len(v))
	for k, vals := range v {
		cp[k] = slices.Clone(vals)
	}
	return &ValuesStore{Values: cp}
}

func (s *ValuesStore) Get(key string) string { return s.Values.Get(key) }

func (s *ValuesStore) Set(key, value string) { s.Values.Set(key, value) }

// Encode returns the query string.
func (s *ValuesStore) Encode() string { return s.Values.Encode() }

// PageQuery is the current page index (0-based) and page size.
type PageQuery struct {
	Page int `json:"page" yaml:"page"`
	Size int `json:"size" yaml:"size"`
}

// ReadQuery derives a PageQuery from the store. The URL's page is 1-based;
// missing or malformed values fall back to the first page and defaultSize.
func ReadQuery(store QueryStore, defaultSize int) PageQuery {
	if defaultSize <= 0 {
		defaultSize = DefaultSize
	}
	q := PageQuery{Page: 0, Size: defaultSize}
	if p, err := strconv.Atoi(store.Get(PageKey)); err == nil && p >= 1 {
		q.Page = p - 1
	}
	if s, err := strconv.Atoi(store.Get(SizeKey)); err == nil && s > 0 {
		q.Size = s
	}
	return q
}

// WriteQuery mirrors q into the store.
func WriteQuery(store QueryStore, q PageQuery) {
	store.Set(PageKey, strconv.Itoa(q.Page+1))
	store.Set(SizeKey, strconv.Itoa(q.Size))
}

// Values returns q in its URL form.
func (q PageQuery) Values() url.Values {
	s := NewValuesStore(nil)
	WriteQuery(s, q)
	return s.Values
}

// Prev is the previous page, floored at the first page.
func (q PageQuery) Prev() PageQuery {
	return PageQuery{Page: max(0, q.Page-1), Size: q.Size}
}

// Next is the following page. It is not clamped; callers disable the
// control using TotalPages.
func (q PageQuery) Next() PageQuery {
	return PageQuery{Page: q.Page + 1, Size: q.Size}
}

// WithSize changes the size and always returns to the first page.
func (q PageQuery) WithSize(size int) PageQuery {
	return PageQuery{Page: 0, Size: size}
}

// TotalPages is ceil(totalCount/size), never less than 1.
func TotalPages(totalCount, size int) int {
	if size <= 0 || totalCount <= 0 {
		return 1
	}
	return (totalCount-1)/size + 1
}

// ParsePageInput parses a 1-based page typed by the user. Leading zeros are
// ignored.
func ParsePageInput(input string) (int, error) {
	trimmed := strings.TrimLeft(strings.TrimSpace(input), "0")
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, ErrInvalidPage
	}
	return v, nil
}
