package http

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"personal-budget/internal/core"
	applog "personal-budget/internal/log"
	"personal-budget/internal/middleware/cors"
	"personal-budget/internal/middleware/ratelimit"
	"personal-budget/internal/middleware/security"
	"personal-budget/internal/middleware/trace"
	appweb "personal-budget/web"
)

// Options configures a Server. Zero values select defaults.
type Options struct {
	Greeting       string
	AllowedOrigins []string
	RateLimit      ratelimit.Config
	Logger         *applog.Logger
}

type Server struct {
	http.Server
	logger      *applog.Logger
	pages       map[string][]byte
	greeting    string
	rateLimiter *ratelimit.Limiter
	tracer      *trace.Middleware

	// The document is encoded once; every response reuses these bytes.
	budgetBody []byte
	budgetETag string
	loadedAt   time.Time

	ready        atomic.Bool
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, doc core.Document, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig())
	}
	if opts.Greeting == "" {
		opts.Greeting = "Hello World!, This is the Personal Budget homepage"
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	body, etag, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}

	loadedAt := time.Now().UTC()
	rendered, err := renderPages(t, loadedAt.Format("20060102150405"))
	if err != nil {
		return nil, err
	}

	s := &Server{
		logger:      opts.Logger.WithComponent(applog.ComponentHTTP),
		pages:       rendered,
		greeting:    opts.Greeting,
		rateLimiter: ratelimit.NewLimiter(opts.RateLimit),
		tracer:      trace.NewMiddleware(opts.Logger, security.ClientIP),
		budgetBody:  body,
		budgetETag:  etag,
		loadedAt:    loadedAt,
	}
	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(static, opts.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	s.ready.Store(true)
	return s, nil
}

func (s *Server) routes(static fs.FS, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(s.tracer.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(cors.Middleware(allowedOrigins))
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	// API
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimiter.Middleware(security.ClientIP, handleRateLimited))
		r.Get("/budget", s.handleBudget)
		r.Get("/hello", s.handleHello)
	})

	// Frontend
	files := http.StripPrefix("/static/", http.FileServer(http.FS(assetFS{static})))
	r.With(security.StaticAssetMiddleware(3600)).Handle("/static/*", files)
	for _, page := range pages {
		r.Get(page.Path, s.handleIndex(page))
	}

	return r
}

// assetFS hides directories so the file server never lists them.
type assetFS struct {
	fs.FS
}

func (a assetFS) Open(name string) (fs.File, error) {
	f, err := a.FS.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}

// Shutdown stops accepting requests, releases background goroutines and
// drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.ready.Store(false)
		requests := s.tracer.GetMetrics()
		limits := s.rateLimiter.GetMetrics()
		s.logger.InfoContext(ctx, "HTTP server shutting down",
			applog.FieldOperation, applog.OpShutdown,
			"uptime", time.Since(s.loadedAt).Round(time.Second).String(),
			"requests", requests.TotalRequests,
			"server_errors", requests.ServerErrors,
			"rate_limited", limits.TotalHits,
			"tracked_clients", limits.ClientCount)
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// ETag returns the entity tag of the served document.
func (s *Server) ETag() string {
	return s.budgetETag
}

func encodeDocument(doc core.Document) ([]byte, string, error) {
	if doc.Items == nil {
		doc.Items = []core.Item{}
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, "", fmt.Errorf("encode budget document: %w", err)
	}
	sum := sha256.Sum256(buf.Bytes())
	return buf.Bytes(), `"` + hex.EncodeToString(sum[:8]) + `"`, nil
}
