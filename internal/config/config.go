// Package config loads gotdict settings from a YAML file and the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Dictionary  DictionaryConfig  `mapstructure:"dictionary"`
	Translation TranslationConfig `mapstructure:"translation"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	MyMemory    MyMemoryConfig    `mapstructure:"mymemory"`
	Naver       NaverConfig       `mapstructure:"naver"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Lookup      LookupConfig      `mapstructure:"lookup"`
	Server      ServerConfig      `mapstructure:"server"`
	WordList    WordListConfig    `mapstructure:"wordlist"`
	Log         LogConfig         `mapstructure:"log"`
	// Optional YAML table merged over the built-in static translations.
	StaticTable string `mapstructure:"static_table" validate:"omitempty,file"`
}

type DictionaryConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type TranslationConfig struct {
	Enabled     bool            `mapstructure:"enabled"`
	Timeout     time.Duration   `mapstructure:"timeout" validate:"gte=0"`
	Concurrency int             `mapstructure:"concurrency" validate:"gte=0"`
	Backends    []string        `mapstructure:"backends" validate:"dive,oneof=openai google mymemory"`
	Retry       RetryConfig     `mapstructure:"retry"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
}

type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0"`
	BaseDelay  time.Duration `mapstructure:"base_delay" validate:"gte=0"`
	MaxDelay   time.Duration `mapstructure:"max_delay" validate:"gte=0"`
}

type RateLimitConfig struct {
	RPM   int `mapstructure:"rpm" validate:"gte=0"`
	Burst int `mapstructure:"burst" validate:"gte=0"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type MyMemoryConfig struct {
	Email string `mapstructure:"email" validate:"omitempty,email"`
}

// NaverConfig points the meaning finder used when saving words.
type NaverConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type CacheConfig struct {
	DefinitionCapacity  int           `mapstructure:"definition_capacity" validate:"gte=0"`
	TranslationCapacity int           `mapstructure:"translation_capacity" validate:"gte=0"`
	TTL                 time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type LookupConfig struct {
	Coalesce bool `mapstructure:"coalesce"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr" validate:"required"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type WordListConfig struct {
	Backend  string `mapstructure:"backend" validate:"oneof=memory file redis"`
	Path     string `mapstructure:"path"` // file backend; empty means words.json in the user config dir
	RedisURL string `mapstructure:"redis_url" validate:"required_if=Backend redis"`
	RedisKey string `mapstructure:"redis_key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Load reads configFile, or config.yaml from the working directory or
// $HOME/.config/gotdict when configFile is empty. A missing file is not an
// error. Every key can be overridden by GOTDICT_<KEY> with dots replaced by
// underscores, e.g. GOTDICT_CACHE_TTL=30m.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gotdict")
	}

	setDefaults(v)

	v.SetEnvPrefix("gotdict")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional names without the prefix.
	if err := v.BindEnv("openai.api_key", "GOTDICT_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("wordlist.redis_url", "GOTDICT_REDIS_URL", "REDIS_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind GOTDICT_REDIS_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dictionary.base_url", "https://api.dictionaryapi.dev/api/v2")
	v.SetDefault("dictionary.timeout", 10*time.Second)

	v.SetDefault("translation.enabled", true)
	v.SetDefault("translation.timeout", 5*time.Second)
	v.SetDefault("translation.concurrency", 8)
	v.SetDefault("translation.backends", []string{"google", "mymemory"})
	v.SetDefault("translation.retry.max_retries", 2)
	v.SetDefault("translation.retry.base_delay", 200*time.Millisecond)
	v.SetDefault("translation.retry.max_delay", 2*time.Second)
	v.SetDefault("translation.rate_limit.rpm", 120)
	v.SetDefault("translation.rate_limit.burst", 0)

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("mymemory.email", "")

	v.SetDefault("naver.base_url", "https://m.search.naver.com")
	v.SetDefault("naver.timeout", 10*time.Second)

	v.SetDefault("cache.definition_capacity", 1000)
	v.SetDefault("cache.translation_capacity", 500)
	v.SetDefault("cache.ttl", time.Hour)

	v.SetDefault("lookup.coalesce", false)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("wordlist.backend", "file")
	v.SetDefault("wordlist.path", "")
	v.SetDefault("wordlist.redis_url", "")
	v.SetDefault("wordlist.redis_key", "gotdict:words")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("static_table", "")
}
