// Package dictionary is the client for the public Free Dictionary API
// (dictionaryapi.dev).
package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ZaguanLabs/gotdict"
)

const (
	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2"
	DefaultTimeout = 10 * time.Second
)

// Config configures a Client.
type Config struct {
	BaseURL string        // Defaults to DefaultBaseURL
	Timeout time.Duration // Defaults to DefaultTimeout
	Logger  *slog.Logger
}

// Client fetches raw entries. It never retries.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

// NewClient creates a dictionary client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	hc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", gotdict.UserAgent())

	return &Client{
		http: hc,
		log:  cfg.Logger.With("adapter", "dictionaryapi"),
	}
}

// Fetch requests the entries for word, which must already be normalized.
//
// 404 maps to gotdict.ErrWordNotFound, 429 to gotdict.ErrRateLimited, other
// non-2xx statuses to *gotdict.UpstreamError and transport failures to
// *gotdict.NetworkError. A 2xx payload that is not a non-empty array yields
// gotdict.ErrNoDefinition.
func (c *Client) Fetch(ctx context.Context, word string) ([]gotdict.RawEntry, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("word", word).
		Get("/entries/en/{word}")
	if err != nil {
		c.log.WarnContext(ctx, "request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, &gotdict.NetworkError{Cause: err}
	}

	status := res.StatusCode()
	switch {
	case status == http.StatusNotFound:
		return nil, gotdict.ErrWordNotFound
	case status == http.StatusTooManyRequests:
		c.log.WarnContext(ctx, "rate limited", slog.String("word", word))
		return nil, gotdict.ErrRateLimited
	case status < 200 || status > 299:
		c.log.ErrorContext(ctx, "unexpected status", slog.String("word", word), slog.Int("status", status))
		return nil, &gotdict.UpstreamError{Status: status}
	}

	entries, err := decodeEntries(res.Body())
	if err != nil {
		var upErr *gotdict.UpstreamError
		if errors.As(err, &upErr) {
			upErr.Status = status
		}
		return nil, err
	}
	return entries, nil
}

// decodeEntries parses a 2xx body. Fields of the wrong type are left empty
// instead of failing the whole payload.
func decodeEntries(body []byte) ([]gotdict.RawEntry, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, &gotdict.UpstreamError{Cause: errors.New("invalid JSON payload")}
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, gotdict.ErrNoDefinition
	}

	var entries []gotdict.RawEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, &gotdict.UpstreamError{Cause: err}
		}
	}
	if len(entries) == 0 {
		return nil, gotdict.ErrNoDefinition
	}
	return entries, nil
}
