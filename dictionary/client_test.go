package dictionary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ZaguanLabs/gotdict"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Logger: newTestLogger()})
}

func TestClient_Fetch_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "explain",
		"phonetics": [{"text": "/ɪkˈspleɪn/", "audio": "https://example.com/explain-us.mp3"}],
		"meanings": [{
			"partOfSpeech": "verb",
			"definitions": [{"definition": "Make plain and comprehensible.", "example": "He explained the rules.", "synonyms": [], "antonyms": []}],
			"synonyms": ["clarify"],
			"antonyms": []
		}]
	}]`

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/entries/en/explain" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})

	entries, err := c.Fetch(context.Background(), "explain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Word != "explain" {
		t.Errorf("Word = %q", e.Word)
	}
	if len(e.Phonetics) != 1 || e.Phonetics[0].Audio != "https://example.com/explain-us.mp3" {
		t.Errorf("Phonetics = %+v", e.Phonetics)
	}
	if e.Meanings[0].Definitions[0].Example != "He explained the rules." {
		t.Errorf("Example = %q", e.Meanings[0].Definitions[0].Example)
	}
	if e.Meanings[0].Synonyms[0] != "clarify" {
		t.Errorf("Synonyms = %v", e.Meanings[0].Synonyms)
	}
}

func TestClient_Fetch_EscapesWord(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/entries/en/ice%20cream" {
			t.Errorf("unexpected escaped path: %s", r.URL.EscapedPath())
		}
		w.Write([]byte(`[{"word":"ice cream"}]`))
	})

	if _, err := c.Fetch(context.Background(), "ice cream"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Fetch_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"not found", http.StatusNotFound, func(err error) bool { return errors.Is(err, gotdict.ErrWordNotFound) }},
		{"rate limited", http.StatusTooManyRequests, func(err error) bool { return errors.Is(err, gotdict.ErrRateLimited) }},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var up *gotdict.UpstreamError
			return errors.As(err, &up) && up.Status == http.StatusInternalServerError
		}},
		{"bad request", http.StatusBadRequest, func(err error) bool {
			var up *gotdict.UpstreamError
			return errors.As(err, &up) && up.Status == http.StatusBadRequest
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"title":"No Definitions Found"}`))
			})

			_, err := c.Fetch(context.Background(), "zzzzqx")
			if err == nil || !tt.check(err) {
				t.Errorf("unexpected error for status %d: %v", tt.status, err)
			}
		})
	}
}

func TestClient_Fetch_NoDefinition(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`[]`, `{"title":"No Definitions Found"}`, `null`, `"text"`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		_, err := c.Fetch(context.Background(), "explain")
		if !errors.Is(err, gotdict.ErrNoDefinition) {
			t.Errorf("body %s: expected ErrNoDefinition, got %v", body, err)
		}
	}
}

func TestClient_Fetch_InvalidJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word": `))
	})

	_, err := c.Fetch(context.Background(), "explain")
	var up *gotdict.UpstreamError
	if !errors.As(err, &up) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if up.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", up.Status)
	}
}

func TestClient_Fetch_WrongFieldTypesAreTolerated(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word":"odd","phonetics":{"text":"x"},"meanings":[{"partOfSpeech":7,"definitions":[{"definition":"still here"}]}]}]`))
	})

	entries, err := c.Fetch(context.Background(), "odd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries[0].Word != "odd" {
		t.Errorf("Word = %q", entries[0].Word)
	}
	if len(entries[0].Phonetics) != 0 {
		t.Errorf("Phonetics = %+v, want empty", entries[0].Phonetics)
	}
	if got := entries[0].Meanings[0].Definitions[0].Definition; got != "still here" {
		t.Errorf("Definition = %q", got)
	}
}

func TestClient_Fetch_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url, Logger: newTestLogger()})
	_, err := c.Fetch(context.Background(), "explain")

	var netErr *gotdict.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestClient_Fetch_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, Logger: newTestLogger()})
	_, err := c.Fetch(context.Background(), "explain")

	var netErr *gotdict.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestClient_Fetch_NoRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	c.Fetch(context.Background(), "explain")
	if calls.Load() != 1 {
		t.Errorf("server called %d times, want 1", calls.Load())
	}
}

func TestClient_ShapesIntoService(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word":"explain","meanings":[{"partOfSpeech":"verb","definitions":[{"definition":"<b>explain</b> &amp; clarify"}]}]}]`))
	})

	svc := gotdict.NewService(c, gotdict.WithTranslation(false))
	entries, err := svc.LookupWord(context.Background(), "Explain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := entries[0].Meanings[0].Definitions[0].Definition; got != "explain & clarify" {
		t.Errorf("Definition = %q", got)
	}
}
