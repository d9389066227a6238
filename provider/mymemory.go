package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ZaguanLabs/gotdict"
)

// DefaultMyMemoryURL is the MyMemory API endpoint.
const DefaultMyMemoryURL = "https://api.mymemory.translated.net"

// MyMemoryConfig holds configuration for the MyMemory backend.
type MyMemoryConfig struct {
	BaseURL string        // Defaults to DefaultMyMemoryURL
	Email   string        // Optional contact address; raises the daily quota
	Timeout time.Duration // HTTP timeout (default: 10s)
	Logger  *slog.Logger
}

// MyMemory translates with the MyMemory translation memory API.
type MyMemory struct {
	http  *resty.Client
	email string
	log   *slog.Logger
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string  `json:"translatedText"`
		Match          float64 `json:"match"`
	} `json:"responseData"`
	// Usually a number, sometimes a quoted one.
	ResponseStatus  json.Number `json:"responseStatus"`
	ResponseDetails string      `json:"responseDetails"`
}

// NewMyMemory creates a MyMemory backend.
func NewMyMemory(cfg MyMemoryConfig) *MyMemory {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMyMemoryURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &MyMemory{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("User-Agent", gotdict.UserAgent()),
		email: cfg.Email,
		log:   cfg.Logger.With("adapter", "mymemory"),
	}
}

// Translate implements Backend.
func (m *MyMemory) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	params := map[string]string{
		"q":        req.Text,
		"langpair": sourceLang(req) + "|" + targetLang(req),
	}
	if m.email != "" {
		params["de"] = m.email
	}

	res, err := m.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/get")
	if err != nil {
		return "", &gotdict.BackendError{Backend: "mymemory", Message: "request failed", Cause: err, Retryable: true}
	}
	if status := res.StatusCode(); status != 200 {
		return "", &gotdict.BackendError{
			Backend:   "mymemory",
			Message:   "unexpected status " + res.Status(),
			Retryable: retryableStatus(status),
		}
	}

	var payload myMemoryResponse
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return "", &gotdict.BackendError{Backend: "mymemory", Message: "invalid response format", Cause: err}
	}

	if status := payload.ResponseStatus.String(); status != "" && status != "200" {
		m.log.WarnContext(ctx, "translation refused",
			slog.String("status", status),
			slog.String("details", payload.ResponseDetails))
		return "", &gotdict.BackendError{
			Backend: "mymemory",
			Message: fmt.Sprintf("status %s: %s", status, payload.ResponseDetails),
		}
	}

	text := payload.ResponseData.TranslatedText
	if strings.HasPrefix(text, "MYMEMORY WARNING") {
		return "", &gotdict.BackendError{Backend: "mymemory", Message: "daily quota exhausted"}
	}
	return text, nil
}

// Verify MyMemory implements Backend
var _ Backend = (*MyMemory)(nil)
