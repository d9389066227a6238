package gotdict

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ZaguanLabs/gotdict/cache"
)

// DefaultTranslationTimeout bounds a single remote translation call.
const DefaultTranslationTimeout = 5 * time.Second

// TranslationBackend is the interface for remote translation services.
type TranslationBackend interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslationCache is the interface for the translation cache, keyed by the
// exact source text.
type TranslationCache interface {
	Get(key string) (string, bool)
	Put(key string, value string)
	Sweep() int
	Len() int
}

// Resolver turns English text into Korean. It consults, in order, the
// static table, the translation cache, the remote backend and the heuristic
// fallback. It never fails.
type Resolver struct {
	table      *StaticTable
	cache      TranslationCache
	backend    TranslationBackend
	sourceLang string
	targetLang string
	timeout    time.Duration
	logger     *slog.Logger

	tableHits   atomic.Int64
	cacheHits   atomic.Int64
	remoteCalls atomic.Int64
	fallbacks   atomic.Int64
}

// ResolverOption is a functional option for configuring the Resolver.
type ResolverOption func(*Resolver)

// WithStaticTable replaces the built-in static table.
func WithStaticTable(table *StaticTable) ResolverOption {
	return func(r *Resolver) {
		r.table = table
	}
}

// WithTranslationCache sets the translation cache. Passing nil disables caching.
func WithTranslationCache(c TranslationCache) ResolverOption {
	return func(r *Resolver) {
		r.cache = c
	}
}

// WithBackend sets the remote translation backend.
func WithBackend(backend TranslationBackend) ResolverOption {
	return func(r *Resolver) {
		r.backend = backend
	}
}

// WithLanguages sets the source and target languages sent to the backend.
func WithLanguages(source, target string) ResolverOption {
	return func(r *Resolver) {
		r.sourceLang = source
		r.targetLang = target
	}
}

// WithTranslationTimeout bounds each remote call. Zero disables the bound.
func WithTranslationTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithResolverLogger sets the logger.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver using the built-in static table and a
// translation cache of cache.TranslationCapacity entries. Without a backend
// every table and cache miss goes to the fallback.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		table:      DefaultStaticTable(),
		cache:      cache.NewTranslationStore[string](),
		sourceLang: DefaultSourceLang,
		targetLang: DefaultTargetLang,
		timeout:    DefaultTranslationTimeout,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.logger = r.logger.With("component", "resolver")
	return r
}

// Translate resolves text. Empty text yields "".
func (r *Resolver) Translate(ctx context.Context, text string) string {
	if text == "" {
		return ""
	}

	if r.table != nil {
		if v, ok := r.table.Lookup(text); ok {
			r.tableHits.Add(1)
			return v
		}
	}

	if r.cache != nil {
		if v, ok := r.cache.Get(text); ok && v != "" {
			r.cacheHits.Add(1)
			return v
		}
	}

	translated, err := r.remote(ctx, text)
	if err != nil {
		r.fallbacks.Add(1)
		r.logger.DebugContext(ctx, "remote translation failed, using fallback",
			"error", err, "text_len", len(text))
		return FallbackTranslation(text)
	}

	if translated == "" {
		return text
	}
	if translated != text && r.cache != nil {
		r.cache.Put(text, translated)
	}
	return translated
}

func (r *Resolver) remote(ctx context.Context, text string) (string, error) {
	if r.backend == nil {
		return "", ErrBackendUnavailable
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.remoteCalls.Add(1)
	out, err := r.backend.Translate(ctx, TranslateRequest{
		Text:       text,
		SourceLang: r.sourceLang,
		TargetLang: r.targetLang,
	})
	if err != nil {
		return "", err
	}
	return CleanKoreanTranslation(out), nil
}

// SweepCache removes expired translations and returns how many were removed.
func (r *Resolver) SweepCache() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.Sweep()
}

// CacheLen returns the number of cached translations.
func (r *Resolver) CacheLen() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.Len()
}

// ResolverStats counts where translations came from.
type ResolverStats struct {
	TableHits   int64 `json:"table_hits"`
	CacheHits   int64 `json:"cache_hits"`
	RemoteCalls int64 `json:"remote_calls"`
	Fallbacks   int64 `json:"fallbacks"`
}

// Stats returns a snapshot of the resolver counters.
func (r *Resolver) Stats() ResolverStats {
	return ResolverStats{
		TableHits:   r.tableHits.Load(),
		CacheHits:   r.cacheHits.Load(),
		RemoteCalls: r.remoteCalls.Load(),
		Fallbacks:   r.fallbacks.Load(),
	}
}

// FallbackTranslation is the last-resort heuristic. Matching is
// case-sensitive on substrings; text matching no rule is returned unchanged.
func FallbackTranslation(text string) string {
	switch {
	case strings.Contains(text, "make") && strings.Contains(text, "clear"):
		return "명확하게 만들다"
	case strings.Contains(text, "describe"):
		return "설명하다"
	case strings.Contains(text, "tell"), strings.Contains(text, "say"):
		return "말하다"
	default:
		return text
	}
}
