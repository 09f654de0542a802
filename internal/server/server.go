// Package server exposes the recipe calculator over HTTP.
//
// Routes live under /api/v1 and speak JSON. Numeric fields in request
// bodies may be strings or numbers and go through the same lenient parsing
// as the interactive calculator, so "1,5" and "abc" are accepted (as 1.5
// and 0). Failures are answered with {"code": ..., "message": ...} and the
// status errors.HTTPStatus assigns to the code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/pipeline"
	"github.com/matzehuels/recipecost/pkg/prefs"
	"github.com/matzehuels/recipecost/pkg/recipe"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Runner   *pipeline.Runner
	Prefs    prefs.Store
	Logger   *log.Logger
	Defaults cost.Settings
	Currency string
}

// New creates a server. Nil dependencies get in-memory or default values.
func New(runner *pipeline.Runner, store prefs.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	return &Server{
		Runner:   runner,
		Prefs:    store,
		Logger:   logger,
		Defaults: recipe.DefaultSettings(),
		Currency: cost.DefaultCurrency,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Post("/ingredient-cost", s.handleIngredientCost)
		r.Post("/chart", s.handleChart)

		r.Get("/examples", s.handleExamples)
		r.Get("/examples/{name}", s.handleExample)

		r.Route("/preferences/theme", func(r chi.Router) {
			r.Get("/", s.handleGetTheme)
			r.Put("/", s.handleSetTheme)
			r.Post("/toggle", s.handleToggleTheme)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound(r.URL.Path))
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
