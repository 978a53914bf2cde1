package http

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	applog "personal-budget/internal/log"
	"personal-budget/internal/middleware/security"
)

// page is a client-side route that is served the application shell.
type page struct {
	Path  string
	Title string
}

var pages = []page{
	{Path: "/", Title: "Home"},
	{Path: "/about", Title: "About"},
	{Path: "/login", Title: "Login"},
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !s.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("shutting down"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func handleRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, security.ClientIP(r),
		applog.FieldPath, r.URL.Path)
	http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.greeting))
}

// handleBudget serves the pre-encoded document. ServeContent takes care of
// HEAD and If-None-Match against the ETag set here.
func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", s.budgetETag)
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(s.budgetBody))
}

// renderPages executes the shell template once per client route.
func renderPages(t *template.Template, version string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(pages))
	for _, p := range pages {
		data := struct {
			Title   string
			Path    string
			Version string
		}{
			Title:   p.Title,
			Path:    p.Path,
			Version: version,
		}

		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, "index.html", data); err != nil {
			return nil, fmt.Errorf("render %s: %w", p.Path, err)
		}
		out[p.Path] = buf.Bytes()
	}
	return out, nil
}

func (s *Server) handleIndex(p page) http.HandlerFunc {
	body := s.pages[p.Path]
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}
}
