package gotdict

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ZaguanLabs/gotdict/cache"
)

// DictionaryClient fetches raw entries for an already normalized word.
type DictionaryClient interface {
	Fetch(ctx context.Context, word string) ([]RawEntry, error)
}

// Translator produces Korean text for English text and never fails.
// *Resolver is the standard implementation.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

// DefinitionCache is the interface for the shaped definition cache, keyed
// by normalized word.
type DefinitionCache interface {
	Get(key string) ([]WordEntry, bool)
	Put(key string, entries []WordEntry)
	Sweep() int
	Len() int
}

// DefaultConcurrency caps in-flight translations per lookup.
const DefaultConcurrency = 8

// Service orchestrates word lookups.
type Service struct {
	client        DictionaryClient
	definitions   DefinitionCache
	resolver      *Resolver
	translator    Translator
	translate     bool
	concurrency   int
	coalesce      bool
	group         singleflight.Group
	sweepInterval time.Duration
	logger        *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// Option is a functional option for configuring the Service.
type Option func(*Service)

// WithDefinitionCache replaces the default definition cache.
func WithDefinitionCache(c DefinitionCache) Option {
	return func(s *Service) {
		s.definitions = c
	}
}

// WithResolver sets the translation resolver.
func WithResolver(r *Resolver) Option {
	return func(s *Service) {
		s.resolver = r
		s.translator = r
	}
}

// WithTranslator sets a custom translator. Cache sweeps and stats only cover
// translations when a Resolver is set through WithResolver.
func WithTranslator(t Translator) Option {
	return func(s *Service) {
		s.resolver = nil
		s.translator = t
	}
}

// WithTranslation enables or disables Korean enrichment. Enabled by default.
func WithTranslation(enabled bool) Option {
	return func(s *Service) {
		s.translate = enabled
	}
}

// WithConcurrency caps concurrent translations within one lookup.
// Zero or less means no cap.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		s.concurrency = n
	}
}

// WithCoalescing makes concurrent misses for the same word share a single
// fetch. Off by default.
func WithCoalescing(enabled bool) Option {
	return func(s *Service) {
		s.coalesce = enabled
	}
}

// WithSweepInterval sets how often RunSweeper purges expired entries.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Service) {
		s.sweepInterval = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a lookup service. Without WithResolver it translates
// through a Resolver that has no remote backend.
func NewService(client DictionaryClient, opts ...Option) *Service {
	s := &Service{
		client:        client,
		translate:     true,
		concurrency:   DefaultConcurrency,
		sweepInterval: cache.DefaultTTL,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.definitions == nil {
		s.definitions = cache.NewDefinitionStore[[]WordEntry]()
	}
	if s.translator == nil {
		s.resolver = NewResolver(WithResolverLogger(s.logger))
		s.translator = s.resolver
	}
	s.logger = s.logger.With("component", "lookup")
	return s
}

// LookupWord returns shaped, translated entries for raw. Results are served
// from the definition cache when fresh. Nothing is cached on error.
//
// The returned slice is owned by the caller.
func (s *Service) LookupWord(ctx context.Context, raw string) ([]WordEntry, error) {
	word, err := NormalizeWord(raw)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.definitions.Get(word); ok {
		s.hits.Add(1)
		s.logger.DebugContext(ctx, "definition cache hit", "word", word)
		return CloneEntries(cached), nil
	}
	s.misses.Add(1)

	if !s.coalesce {
		return s.fetchAndStore(ctx, word)
	}

	// The shared fetch must not die with whichever caller started it; each
	// caller still stops waiting when its own ctx is done.
	ch := s.group.DoChan(word, func() (any, error) {
		return s.fetchAndStore(context.WithoutCancel(ctx), word)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.DebugContext(ctx, "coalesced lookup", "word", word)
		}
		return CloneEntries(res.Val.([]WordEntry)), nil
	}
}

func (s *Service) fetchAndStore(ctx context.Context, word string) ([]WordEntry, error) {
	start := time.Now()

	raw, err := s.client.Fetch(ctx, word)
	if err != nil {
		s.logger.InfoContext(ctx, "lookup failed", "word", word, "error", err)
		return nil, err
	}

	entries := Shape(raw)
	if s.translate {
		// Translation outlives a departed caller so the cache still fills;
		// each remote call carries its own timeout.
		s.translateEntries(context.WithoutCancel(ctx), entries)
	}

	s.definitions.Put(word, CloneEntries(entries))
	s.logger.DebugContext(ctx, "lookup complete",
		"word", word,
		"entries", len(entries),
		"duration", time.Since(start))
	return entries, nil
}

// RunSweeper purges expired definitions and translations every sweep
// interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context) {
	if s.sweepInterval <= 0 {
		return
	}

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			defs, translations := s.Sweep()
			if defs > 0 || translations > 0 {
				s.logger.DebugContext(ctx, "cache sweep",
					"definitions_removed", defs,
					"translations_removed", translations)
			}
		}
	}
}

// Sweep purges expired entries from both caches once.
func (s *Service) Sweep() (definitions, translations int) {
	definitions = s.definitions.Sweep()
	if s.resolver != nil {
		translations = s.resolver.SweepCache()
	}
	return definitions, translations
}

// Stats returns cache sizes and definition cache hit counts.
func (s *Service) Stats() Stats {
	st := Stats{
		DefinitionEntries: s.definitions.Len(),
		Hits:              s.hits.Load(),
		Misses:            s.misses.Load(),
	}
	if s.resolver != nil {
		st.TranslationEntries = s.resolver.CacheLen()
	}
	return st
}

// Resolver returns the service's resolver, or nil when a custom Translator is set.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}
