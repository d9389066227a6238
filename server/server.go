// Package server exposes dictionary lookups and the saved word list over HTTP.
//
// The /message endpoint speaks the same request/response shapes a browser
// extension uses with its background worker, so an existing content script
// can be pointed at it unchanged. The /v1 routes are a plain REST surface
// over the same operations.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/ZaguanLabs/gotdict"
	"github.com/ZaguanLabs/gotdict/wordlist"
)

// DefaultRequestTimeout bounds every request handled by the router.
const DefaultRequestTimeout = 30 * time.Second

// maxBodyBytes caps JSON and CSV request bodies.
const maxBodyBytes = 1 << 20

// Lookup resolves a word into translated dictionary entries.
type Lookup interface {
	LookupWord(ctx context.Context, word string) ([]gotdict.WordEntry, error)
	Stats() gotdict.Stats
}

// MeaningFinder finds the short Korean meaning saved alongside a word.
type MeaningFinder interface {
	Find(ctx context.Context, word string) (string, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	lookup  Lookup
	words   wordlist.Store
	finder  MeaningFinder
	origins []string
	timeout time.Duration
	log     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithWordList enables the word list routes and the saveWord action.
func WithWordList(store wordlist.Store) Option {
	return func(s *Server) {
		s.words = store
	}
}

// WithMeaningFinder sets the finder used by saveWord and by POST /v1/words
// when no definition is supplied.
func WithMeaningFinder(f MeaningFinder) Option {
	return func(s *Server) {
		s.finder = f
	}
}

// WithCORSOrigins sets the allowed origins. An empty list allows any origin.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithRequestTimeout overrides DefaultRequestTimeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.log = logger
		}
	}
}

// New creates a Server around lookup.
func New(lookup Lookup, opts ...Option) *Server {
	s := &Server{
		lookup:  lookup,
		timeout: DefaultRequestTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "server")
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Post("/message", s.handleMessage)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/definitions/{word}", s.handleDefinition)

		r.Route("/words", func(r chi.Router) {
			r.Use(s.requireWordList)
			r.Get("/", s.handleListWords)
			r.Post("/", s.handleAddWord)
			r.Get("/export.csv", s.handleExportWords)
			r.Post("/import", s.handleImportWords)
		})
		r.With(s.requireWordList).Get("/quiz", s.handleQuiz)
	})

	return r
}

// ListenAndServe serves Handler on addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) requireWordList(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.words == nil {
			respondError(w, http.StatusNotImplemented, "word list is not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": gotdict.Version,
		"cache":   s.lookup.Stats(),
	})
}
