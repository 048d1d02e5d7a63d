// Package server exposes the analysis pipeline over HTTP. Every request is
// analysed in its own session; nothing is kept between requests.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/soldes-dev/soldes/internal/buildinfo"
	"github.com/soldes-dev/soldes/internal/registry"
)

// CompanyLookup resolves a SIREN to a company identity.
type CompanyLookup interface {
	Lookup(ctx context.Context, siren string) (*registry.Company, error)
}

// Options configures a Server.
type Options struct {
	Logger         *slog.Logger
	Registry       CompanyLookup
	MaxUploadBytes int64
	RateLimit      int // requests per minute per client IP; 0 disables
	RequestTimeout time.Duration
}

// Server serves the JSON API.
type Server struct {
	logger    *slog.Logger
	registry  CompanyLookup
	maxUpload int64
	rateLimit int
	timeout   time.Duration
}

// New creates a server from opts.
func New(opts Options) *Server {
	s := &Server{
		logger:    opts.Logger,
		registry:  opts.Registry,
		maxUpload: opts.MaxUploadBytes,
		rateLimit: opts.RateLimit,
		timeout:   opts.RequestTimeout,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = 32 << 20
	}
	if s.timeout <= 0 {
		s.timeout = 60 * time.Second
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'",
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(secureMiddleware.Handler)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(httprate.Limit(s.rateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		}
		r.Post("/analyses", s.handleAnalyse)
		r.Post("/analyses/detail", s.handleDetail)
		r.Get("/companies/{siren}", s.handleCompany)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
