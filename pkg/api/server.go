package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridtext/pkg/httputil"
	"github.com/matzehuels/gridtext/pkg/pipeline"
)

// Server timeouts.
const (
	ReadHeaderTimeout = 10 * time.Second
	RequestTimeout    = 2 * time.Minute
	ShutdownTimeout   = 15 * time.Second
)

// Server is the HTTP front end of a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMaxBodyBytes bounds request bodies.
func WithMaxBodyBytes(n int64) Option { return func(s *Server) { s.maxBody = n } }

// New builds a server around runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		maxBody: httputil.DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(RequestTimeout))
		r.Post("/blocks", s.handleBlocks)
		r.Post("/clusters", s.handleClusters)
		r.Post("/frames", s.handleFrames)
		r.Post("/labels", s.handleLabels)
		r.Post("/render/{format}", s.handleRender)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, notFound(r))
	})
	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
