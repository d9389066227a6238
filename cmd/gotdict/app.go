package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/gotdict"
	"github.com/ZaguanLabs/gotdict/cache"
	"github.com/ZaguanLabs/gotdict/dictionary"
	"github.com/ZaguanLabs/gotdict/internal/config"
	"github.com/ZaguanLabs/gotdict/naver"
	"github.com/ZaguanLabs/gotdict/provider"
	"github.com/ZaguanLabs/gotdict/wordlist"
)

// app carries the global flags and the state built from them.
type app struct {
	configFile string
	debug      bool

	cfg    *config.Config
	logger *slog.Logger
}

// setup loads the configuration and installs the logger. Logs go to the
// command's error stream so they never mix with command output.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg
	a.logger = newLogger(cfg.Log, a.debug, cmd.ErrOrStderr())
	slog.SetDefault(a.logger)
	return nil
}

func newLogger(cfg config.LogConfig, debug bool, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)
	if debug {
		level = slog.LevelDebug
	}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newBackend chains the configured translation services, then wraps the
// chain with rate limiting and retries. It returns nil when no service is
// configured.
func (a *app) newBackend() gotdict.TranslationBackend {
	cfg := a.cfg
	var backends []provider.Backend
	for _, name := range cfg.Translation.Backends {
		switch name {
		case "openai":
			backends = append(backends, provider.NewOpenAI(provider.OpenAIConfig{
				APIKey:  cfg.OpenAI.APIKey,
				Model:   cfg.OpenAI.Model,
				BaseURL: cfg.OpenAI.BaseURL,
			}))
		case "google":
			backends = append(backends, provider.NewGoogle(provider.GoogleConfig{Logger: a.logger}))
		case "mymemory":
			backends = append(backends, provider.NewMyMemory(provider.MyMemoryConfig{
				Email:  cfg.MyMemory.Email,
				Logger: a.logger,
			}))
		}
	}
	if len(backends) == 0 {
		return nil
	}

	var backend gotdict.TranslationBackend = provider.NewChain(backends...)
	if rl := cfg.Translation.RateLimit; rl.RPM > 0 {
		backend = gotdict.NewRateLimitedBackend(backend, gotdict.RateLimitConfig{
			RequestsPerMinute: rl.RPM,
			BurstSize:         rl.Burst,
		})
	}
	if r := cfg.Translation.Retry; r.MaxRetries > 0 {
		backend = gotdict.NewRetryableBackend(backend, gotdict.RetryConfig{
			MaxRetries: r.MaxRetries,
			BaseDelay:  r.BaseDelay,
			MaxDelay:   r.MaxDelay,
		})
	}
	return backend
}

func (a *app) newResolver() (*gotdict.Resolver, error) {
	cfg := a.cfg

	table := gotdict.DefaultStaticTable()
	if cfg.StaticTable != "" {
		f, err := os.Open(cfg.StaticTable)
		if err != nil {
			return nil, fmt.Errorf("open static table: %w", err)
		}
		defer f.Close()

		custom, err := gotdict.LoadStaticTable(f)
		if err != nil {
			return nil, fmt.Errorf("load static table %s: %w", cfg.StaticTable, err)
		}
		table = table.Merge(custom)
	}

	opts := []gotdict.ResolverOption{
		gotdict.WithStaticTable(table),
		gotdict.WithTranslationCache(cache.New[string](cfg.Cache.TranslationCapacity, cfg.Cache.TTL)),
		gotdict.WithTranslationTimeout(cfg.Translation.Timeout),
		gotdict.WithResolverLogger(a.logger),
	}
	if backend := a.newBackend(); backend != nil {
		opts = append(opts, gotdict.WithBackend(backend))
	}
	return gotdict.NewResolver(opts...), nil
}

func (a *app) newService() (*gotdict.Service, error) {
	cfg := a.cfg

	resolver, err := a.newResolver()
	if err != nil {
		return nil, err
	}
	client := dictionary.NewClient(dictionary.Config{
		BaseURL: cfg.Dictionary.BaseURL,
		Timeout: cfg.Dictionary.Timeout,
		Logger:  a.logger,
	})

	return gotdict.NewService(client,
		gotdict.WithDefinitionCache(cache.New[[]gotdict.WordEntry](cfg.Cache.DefinitionCapacity, cfg.Cache.TTL)),
		gotdict.WithResolver(resolver),
		gotdict.WithTranslation(cfg.Translation.Enabled),
		gotdict.WithConcurrency(cfg.Translation.Concurrency),
		gotdict.WithCoalescing(cfg.Lookup.Coalesce),
		gotdict.WithLogger(a.logger),
	), nil
}

func (a *app) newFinder() *naver.Finder {
	return naver.NewFinder(naver.Config{
		BaseURL: a.cfg.Naver.BaseURL,
		Timeout: a.cfg.Naver.Timeout,
		Logger:  a.logger,
	})
}

// newWordStore opens the configured word list. The returned func releases
// it.
func (a *app) newWordStore() (wordlist.Store, func() error, error) {
	cfg := a.cfg.WordList
	noop := func() error { return nil }

	switch cfg.Backend {
	case "memory":
		return wordlist.NewMemoryStore(), noop, nil
	case "redis":
		store, err := wordlist.NewRedisStore(wordlist.RedisConfig{URL: cfg.RedisURL, Key: cfg.RedisKey})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		path := cfg.Path
		if path == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, nil, fmt.Errorf("locate word list: %w", err)
			}
			path = filepath.Join(dir, gotdict.Name, "words.json")
		}
		return wordlist.NewFileStore(path), noop, nil
	}
}
