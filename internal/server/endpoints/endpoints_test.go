package endpoints

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/browse"
	"github.com/jackzampolin/pokedex/internal/metrics"
	"github.com/jackzampolin/pokedex/internal/pokemon"
	"github.com/jackzampolin/pokedex/internal/session"
	"github.com/jackzampolin/pokedex/internal/svcctx"
	"github.com/jackzampolin/pokedex/internal/testutil"
)

// harness serves every endpoint against a fake backend.
type harness struct {
	backend  *testutil.Backend
	services *svcctx.Services
	handler  http.Handler
}

func newHarness(t *testing.T, records int) *harness {
	t.Helper()
	return newHarnessAt(t, testutil.NewBackend(t, records), "")
}

func newHarnessAt(t *testing.T, backend *testutil.Backend, baseURL string) *harness {
	t.Helper()
	if baseURL == "" {
		baseURL = backend.URL()
	}
	rec := metrics.New()
	client := api.NewClient(baseURL, api.WithObserver(rec), api.WithLogger(testutil.Logger()))
	services := &svcctx.Services{
		Pokemon:  pokemon.NewService(client, ""),
		Sessions: session.NewStore(16, 0),
		Metrics:  rec,
		Logger:   testutil.Logger(),
	}

	reg := api.NewRegistry()
	for _, ep := range All() {
		reg.Register(ep)
	}
	mux := http.NewServeMux()
	reg.RegisterRoutes(mux, nil)

	return &harness{
		backend:  backend,
		services: services,
		handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mux.ServeHTTP(w, r.WithContext(svcctx.WithServices(r.Context(), services)))
		}),
	}
}

func (h *harness) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec.Result()
}

func (h *harness) get(t *testing.T, target string) *http.Response {
	t.Helper()
	return h.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func document(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func cardIDs(doc *goquery.Document) []string {
	var ids []string
	doc.Find("li.pokemon-card").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-id")
		ids = append(ids, id)
	})
	return ids
}

func TestListPage_Render(t *testing.T) {
	h := newHarness(t, 7)

	resp := h.get(t, "/pokemon?page=2&size=3")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/pokemon?page=1&size=3", h.backend.LastRequest())

	doc := document(t, resp)
	assert.Equal(t, []string{"4", "5", "6"}, cardIDs(doc))
	assert.Equal(t, "pokemon-004", strings.TrimSpace(doc.Find("li.pokemon-card .pokemon-name").First().Text()))
	assert.Equal(t, "run away", doc.Find("li.pokemon-card .pokemon-abilities li").First().Text())

	href, _ := doc.Find("li.pokemon-card a").First().Attr("href")
	assert.Equal(t, "/pokemon/4?page=2&size=3", href)

	prev, _ := doc.Find("a.prev").Attr("href")
	next, _ := doc.Find("a.next").Attr("href")
	assert.Equal(t, "/pokemon?page=1&size=3", prev)
	assert.Equal(t, "/pokemon?page=3&size=3", next)

	jumpMax, _ := doc.Find("input[name=jump]").Attr("max")
	assert.Equal(t, "3", jumpMax)

	selected, _ := doc.Find("select[name=resize] option[selected]").Attr("value")
	assert.Equal(t, "3", selected)
	assert.Equal(t, 3, doc.Find("select[name=resize] option").Length())

	src, _ := doc.Find("li.pokemon-card .img-loader img").First().Attr("src")
	assert.Equal(t, "https://img.example/list/4.png", src)
}

func TestListPage_Boundaries(t *testing.T) {
	h := newHarness(t, 7)

	t.Run("first page disables previous", func(t *testing.T) {
		doc := document(t, h.get(t, "/pokemon"))
		assert.Equal(t, 1, doc.Find("span.prev.disabled").Length())
		assert.Equal(t, 1, doc.Find("a.next").Length())
	})

	t.Run("last page disables next", func(t *testing.T) {
		doc := document(t, h.get(t, "/pokemon?page=3&size=3"))
		assert.Equal(t, []string{"7"}, cardIDs(doc))
		assert.Equal(t, 1, doc.Find("span.next.disabled").Length())
		assert.Equal(t, 1, doc.Find("a.prev").Length())
	})

	t.Run("past the end renders empty", func(t *testing.T) {
		doc := document(t, h.get(t, "/pokemon?page=9&size=3"))
		assert.Empty(t, cardIDs(doc))
		assert.Equal(t, 1, doc.Find("li.empty").Length())
	})
}

func TestListPage_Resize(t *testing.T) {
	h := newHarness(t, 20)

	resp := h.get(t, "/pokemon?page=4&size=3&resize=6")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/pokemon?page=1&size=6", resp.Header.Get("Location"))

	resp = h.get(t, "/pokemon?page=4&size=3&resize=7")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/pokemon?page=4&size=3", resp.Header.Get("Location"), "sizes outside the options are ignored")
}

func TestListPage_Jump(t *testing.T) {
	h := newHarness(t, 7)

	tests := []struct {
		jump string
		want string
	}{
		{"3", "/pokemon?page=3&size=3"},
		{"03", "/pokemon?page=3&size=3"},
		{"4", "/pokemon?page=1&size=3"},
		{"0", "/pokemon?page=1&size=3"},
		{"x", "/pokemon?page=1&size=3"},
	}
	for _, tt := range tests {
		t.Run(tt.jump, func(t *testing.T) {
			resp := h.get(t, "/pokemon?page=1&size=3&jump="+tt.jump)
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, tt.want, resp.Header.Get("Location"))
		})
	}
}

func TestListPage_JumpFailureKeepsToast(t *testing.T) {
	h := newHarness(t, 7)
	h.backend.FailNext(http.StatusInternalServerError, `{"message":"db offline","severity":"error"}`)

	resp := h.get(t, "/pokemon?page=1&size=3&jump=2")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/pokemon?page=1&size=3", resp.Header.Get("Location"))

	var notice *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == noticeCookie {
			notice = c
		}
	}
	require.NotNil(t, notice, "the load failure travels across the redirect")

	follow := httptest.NewRequest(http.MethodGet, resp.Header.Get("Location"), nil)
	follow.AddCookie(notice)
	toast := document(t, h.do(t, follow)).Find(".toast")
	assert.True(t, toast.HasClass("toast-error"))
	assert.Equal(t, "db offline", toast.Find(".toast-message").Text())
}

func TestListPage_BackendFailure(t *testing.T) {
	h := newHarness(t, 7)
	h.backend.FailNext(http.StatusInternalServerError, `{"message":"db offline","severity":"error"}`)

	resp := h.get(t, "/pokemon")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "the page still renders with a toast")

	doc := document(t, resp)
	toast := doc.Find(".toast")
	assert.True(t, toast.HasClass("toast-error"))
	assert.Equal(t, "db offline", toast.Find(".toast-message").Text())
	dur, _ := toast.Attr("data-duration")
	assert.Equal(t, "4000", dur)
}

func TestListPage_Unreachable(t *testing.T) {
	backend := testutil.NewBackend(t, 1)
	backend.Server.Close()
	h := newHarnessAt(t, backend, backend.URL())

	doc := document(t, h.get(t, "/pokemon"))
	toast := doc.Find(".toast")
	assert.True(t, toast.HasClass("toast-fatal"))
	assert.Equal(t, api.NetworkErrorMessage, toast.Find(".toast-message").Text())

	resp := h.do(t, jsonRequest(http.MethodGet, "/pokemon"))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestListPage_JSON(t *testing.T) {
	h := newHarness(t, 7)

	resp := h.do(t, jsonRequest(http.MethodGet, "/pokemon?page=3"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body := readBody(t, resp)
	assert.Contains(t, body, `"total_pages":3`)
	assert.Contains(t, body, `"query":{"page":2,"size":3}`)
}

func TestClearCache(t *testing.T) {
	t.Run("success redirects with a toast", func(t *testing.T) {
		h := newHarness(t, 7)
		req := httptest.NewRequest(http.MethodPost, "/pokemon/clear-cache", strings.NewReader("page=2&size=3"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp := h.do(t, req)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/pokemon?page=2&size=3", resp.Header.Get("Location"))
		assert.Equal(t, "/pokemon/clear-cache", h.backend.LastRequest())

		var notice *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == noticeCookie {
				notice = c
			}
		}
		require.NotNil(t, notice)

		follow := httptest.NewRequest(http.MethodGet, resp.Header.Get("Location"), nil)
		follow.AddCookie(notice)
		doc := document(t, h.do(t, follow))
		toast := doc.Find(".toast")
		assert.True(t, toast.HasClass("toast-success"))
		assert.Equal(t, "Cache cleared successfully", toast.Find(".toast-message").Text())
		assert.Equal(t, "✅", toast.Find(".toast-icon").Text())
	})

	t.Run("refusal keeps server message", func(t *testing.T) {
		h := newHarness(t, 7)
		h.backend.SetClearCache(http.StatusForbidden, `{"message":"Not allowed","severity":"warning"}`)

		resp := h.do(t, jsonRequest(http.MethodPost, "/pokemon/clear-cache"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.JSONEq(t, `{"message":"Not allowed","severity":"warning"}`, body)
	})

	t.Run("refusal without body uses defaults", func(t *testing.T) {
		h := newHarness(t, 7)
		h.backend.SetClearCache(http.StatusInternalServerError, `{}`)

		body := readBody(t, h.do(t, jsonRequest(http.MethodPost, "/pokemon/clear-cache")))
		assert.Contains(t, body, `"severity":"error"`)
	})
}

func TestDetailPage(t *testing.T) {
	h := newHarness(t, 30)
	h.backend.SetChain([]int{24}, []int{25}, []int{26})

	resp := h.get(t, "/pokemon/25?page=9&size=3")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/pokemon/25", h.backend.LastRequest())

	doc := document(t, resp)
	assert.Equal(t, "pokemon-025", doc.Find("h1.pokemon-name").Text())
	assert.Equal(t, "pokemon-025 lives in tall grass.", doc.Find(".description p").Text())
	assert.Equal(t, 3, doc.Find(".evolution .stage").Length())
	assert.Equal(t, 2, doc.Find(".evolution .arrow").Length())

	current := doc.Find(".stage-member.current")
	require.Equal(t, 1, current.Length())
	assert.Equal(t, "pokemon-025", strings.TrimSpace(current.Find("span").Last().Text()))

	back, _ := doc.Find("a.back").Attr("href")
	assert.Equal(t, "/pokemon?page=9&size=3", back)

	src, _ := doc.Find(".detail-card img").Attr("src")
	assert.Equal(t, "https://img.example/detail/25.png", src)
}

func TestDetailPage_BackFromSession(t *testing.T) {
	h := newHarness(t, 30)

	// Visiting a list page issues the session cookie and remembers the page.
	resp := h.get(t, "/pokemon?page=4&size=6")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)

	req := httptest.NewRequest(http.MethodGet, "/pokemon/5", nil)
	req.AddCookie(sessionCookie)
	doc := document(t, h.do(t, req))
	back, _ := doc.Find("a.back").Attr("href")
	assert.Equal(t, "/pokemon?page=4&size=6", back)

	doc = document(t, h.get(t, "/pokemon/5"))
	back, _ = doc.Find("a.back").Attr("href")
	assert.Equal(t, "/pokemon", back, "no session and no page falls back to the list")
}

func TestDetailPage_NotFound(t *testing.T) {
	h := newHarness(t, 3)

	resp := h.get(t, "/pokemon/9999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	doc := document(t, resp)
	assert.True(t, doc.Find(".toast").HasClass("toast-warning"))
	assert.Equal(t, 0, doc.Find(".detail-card").Length())
}

func TestDetailPage_ClearCacheSegmentIsNotARecord(t *testing.T) {
	h := newHarness(t, 3)

	resp := h.get(t, "/pokemon/clear-cache")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, h.backend.Requests(), "a GET must never reach the backend's clear-cache")

	resp = h.do(t, jsonRequest(http.MethodGet, "/pokemon/clear-cache"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, h.backend.Requests())
}

func TestHealthAndReady(t *testing.T) {
	h := newHarness(t, 3)

	resp := h.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.get(t, "/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/pokemon?page=0&size=1", h.backend.LastRequest())

	h.backend.FailNext(http.StatusInternalServerError, "boom")
	resp = h.get(t, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"backend":"unhealthy"`)

	h.backend.Server.Close()
	resp = h.get(t, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"backend":"unreachable"`)
}

func TestAssetsAndFallbacks(t *testing.T) {
	h := newHarness(t, 3)

	resp := h.get(t, "/static/pokedex.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")

	resp = h.get(t, "/config.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `window.POKEDEX_API_URL = "`+h.backend.URL()+"\";\n", readBody(t, resp))

	for _, path := range []string{"/", "/nowhere", "/a/b/c"} {
		resp = h.get(t, path)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/pokemon", resp.Header.Get("Location"), path)
	}

	h.get(t, "/pokemon")
	resp = h.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `pokedex_web_page_renders_total{page="list",status="success"} 1`)
}

func TestTakeNotice(t *testing.T) {
	noticeFixture := browse.Notice{Message: "Cache cleared successfully", Severity: api.SeveritySuccess}

	rec := httptest.NewRecorder()
	setNotice(rec, noticeFixture)
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/pokemon", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	got := takeNotice(rec, req)
	require.NotNil(t, got)
	assert.Equal(t, noticeFixture, *got)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge, "the notice is shown once")

	req = httptest.NewRequest(http.MethodGet, "/pokemon", nil)
	req.AddCookie(&http.Cookie{Name: noticeCookie, Value: "%%%"})
	assert.Nil(t, takeNotice(httptest.NewRecorder(), req))
}

func TestWantsJSON(t *testing.T) {
	tests := map[string]bool{
		"":                                false,
		"text/html":                       false,
		"application/json":                true,
		"text/html, application/json;q=1": true,
		"application/jsonp":               false,
	}
	for accept, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", accept)
		assert.Equal(t, want, wantsJSON(req), accept)
	}
}

func TestFailureStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, failureStatus(api.ServerFailure(404, "x", api.SeverityWarning)))
	assert.Equal(t, http.StatusBadGateway, failureStatus(api.NetworkFailure(nil)))
	assert.Equal(t, http.StatusBadGateway, failureStatus(api.ServerFailure(200, "decode", api.SeverityError)))
}

func jsonRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Accept", "application/json")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var b strings.Builder
	_, err := io.Copy(&b, resp.Body)
	require.NoError(t, err)
	return b.String()
}
