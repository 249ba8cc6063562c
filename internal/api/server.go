// Package api serves the document pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz               build information
//	POST /v1/dump               description in, GDL text out
//	POST /v1/render?format=svg  description in, preview out
//	GET  /v1/documents          stored documents, newest first
//	GET  /v1/documents/{id}     one stored document with its text
//
// Descriptions are read as JSON, YAML or TOML according to the request's
// Content-Type (JSON when absent). Errors are JSON objects carrying the
// error code:
//
//	{"error": {"code": "INVALID_INPUT", "message": "graph.edges[0]: ..."}}
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gdlkit/pkg/observability"
	"github.com/matzehuels/gdlkit/pkg/pipeline"
)

// Defaults.
const (
	DefaultMaxBodyBytes = 1 << 20
	DefaultTimeout      = 30 * time.Second
)

// Options configures a Server.
type Options struct {
	// MaxBodyBytes limits request bodies. Zero uses DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Timeout bounds each request. Zero uses DefaultTimeout.
	Timeout time.Duration
}

// Server is the HTTP API. It implements http.Handler.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
	timeout time.Duration
	router  chi.Router
}

// New creates a server backed by runner. Document routes use runner.Store
// and answer 503 when it is nil.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		maxBody: opts.MaxBodyBytes,
		timeout: opts.Timeout,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/dump", s.dump)
		r.Post("/render", s.render)
		r.Get("/documents", s.listDocuments)
		r.Get("/documents/{id}", s.getDocument)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, s.logger, notFoundError(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed")
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe reports each request to the HTTP hooks and the debug log once it
// has been routed.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)

		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, status, duration)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", duration,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
