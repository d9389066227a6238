// Package naver finds the primary Korean meaning of an English word by
// scraping Naver's mobile English-Korean dictionary search.
package naver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/ZaguanLabs/gotdict"
)

// DefaultBaseURL is Naver's mobile search host.
const DefaultBaseURL = "https://m.search.naver.com"

// ErrMeaningNotFound is returned when the result page has no meaning block.
var ErrMeaningNotFound = errors.New("meaning not found")

// Config configures a Finder.
type Config struct {
	BaseURL string
	Timeout time.Duration // default 10s
	Logger  *slog.Logger
}

// Finder looks up meanings.
type Finder struct {
	http *resty.Client
	log  *slog.Logger
}

// NewFinder creates a Finder.
func NewFinder(cfg Config) *Finder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Finder{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("User-Agent", gotdict.UserAgent()),
		log: cfg.Logger.With("adapter", "naver"),
	}
}

// Find returns the first listed meaning of word.
func (f *Finder) Find(ctx context.Context, word string) (string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", gotdict.ErrInvalidInput
	}

	res, err := f.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"sm":    "mtp_hty.top",
			"where": "m",
			"query": "영한사전 " + word,
		}).
		Get("/search.naver")
	if err != nil {
		return "", &gotdict.NetworkError{Cause: err}
	}
	if res.StatusCode() != 200 {
		return "", &gotdict.UpstreamError{Status: res.StatusCode()}
	}

	meaning, err := ExtractMeaning(res.Body())
	if err != nil {
		f.log.DebugContext(ctx, "no meaning on page", slog.String("word", word))
		return "", err
	}
	return meaning, nil
}

// ExtractMeaning pulls the first meaning out of a search result page. It
// prefers the first ".txt" list item and falls back to the whole block.
func ExtractMeaning(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse result page: %w", err)
	}

	block := doc.Find(".mean_tray .cont").First()
	if block.Length() == 0 {
		return "", ErrMeaningNotFound
	}

	text := block.Find("li .txt").First().Text()
	if strings.TrimSpace(text) == "" {
		text = block.Text()
	}

	meaning := strings.Join(strings.Fields(text), " ")
	if meaning == "" {
		return "", ErrMeaningNotFound
	}
	return meaning, nil
}
