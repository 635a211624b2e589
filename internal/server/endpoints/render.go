package endpoints

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"html/template"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/jackzampolin/pokedex/internal/browse"
	"github.com/jackzampolin/pokedex/web"
)

// noticeCookie carries a one-shot toast across a redirect.
const noticeCookie = "pokedex_notice"

var pageTemplates = map[string]*template.Template{
	"list":   parsePage("list.html"),
	"detail": parsePage("detail.html"),
}

var templateFuncs = template.FuncMap{
	"ms": func(d time.Duration) int64 { return d.Milliseconds() },
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).ParseFS(web.TemplatesFS(), "layout.html", name))
}

// imageData feeds the "image" template (image with loader).
type imageData struct {
	Src  string
	Alt  string
	Size int
}

// renderPage executes a page template into a buffer first so a template
// error never produces a half-written response.
func renderPage(w http.ResponseWriter, logger *slog.Logger, status int, page string, data any) {
	tmpl, ok := pageTemplates[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("template render failed", "page", page, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// wantsJSON reports whether the client asked for JSON instead of HTML.
func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mt == "application/json" {
			return true
		}
	}
	return false
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// setNotice stores n for the next page render.
func setNotice(w http.ResponseWriter, n browse.Notice) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeNotice reads and clears a pending notice.
func takeNotice(w http.ResponseWriter, r *http.Request) *browse.Notice {
	c, err := r.Cookie(noticeCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: noticeCookie, Value: "", Path: "/", MaxAge: -1})
	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var n browse.Notice
	if err := json.Unmarshal(data, &n); err != nil || n.Message == "" {
		return nil
	}
	if !n.Severity.Valid() {
		return nil
	}
	return &n
}

// listHref is the list page URL for q.
func listHref(q browse.PageQuery) string {
	return "/pokemon?" + q.Values().Encode()
}
