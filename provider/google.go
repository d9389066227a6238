package provider

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ZaguanLabs/gotdict"
)

// DefaultGoogleURL is the public web-client endpoint used by browser extensions.
const DefaultGoogleURL = "https://translate.googleapis.com"

// GoogleConfig holds configuration for the Google backend.
type GoogleConfig struct {
	BaseURL string        // Defaults to DefaultGoogleURL
	Timeout time.Duration // HTTP timeout (default: 10s)
	Logger  *slog.Logger
}

// Google translates with the keyless translate_a/single endpoint.
type Google struct {
	http *resty.Client
	log  *slog.Logger
}

// NewGoogle creates a Google backend.
func NewGoogle(cfg GoogleConfig) *Google {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGoogleURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Google{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("User-Agent", gotdict.UserAgent()),
		log: cfg.Logger.With("adapter", "google"),
	}
}

// Translate implements Backend.
func (g *Google) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	res, err := g.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     sourceLang(req),
			"tl":     targetLang(req),
			"dt":     "t",
			"q":      req.Text,
		}).
		Get("/translate_a/single")
	if err != nil {
		return "", &gotdict.BackendError{Backend: "google", Message: "request failed", Cause: err, Retryable: true}
	}
	if status := res.StatusCode(); status != 200 {
		g.log.WarnContext(ctx, "unexpected status", slog.Int("status", status))
		return "", &gotdict.BackendError{
			Backend:   "google",
			Message:   "unexpected status " + res.Status(),
			Retryable: retryableStatus(status),
		}
	}

	text, err := parseGoogleResponse(res.Body())
	if err != nil {
		return "", &gotdict.BackendError{Backend: "google", Message: "invalid response format", Cause: err}
	}
	return text, nil
}

// parseGoogleResponse joins the translated segments of a payload shaped like
// [[["번역","source",...],["...","...",...]],null,"en",...].
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", nil
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}

// Verify Google implements Backend
var _ Backend = (*Google)(nil)
