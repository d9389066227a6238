package gotdict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZaguanLabs/gotdict/cache"
)

func TestResolver_EmptyText(t *testing.T) {
	backend := &stubBackend{}
	r := NewResolver(WithBackend(backend))

	if got := r.Translate(context.Background(), ""); got != "" {
		t.Errorf("Translate(\"\") = %q, want empty", got)
	}
	if backend.Calls() != 0 {
		t.Error("backend should not be called for empty text")
	}
}

func TestResolver_StaticTableWins(t *testing.T) {
	c := cache.NewTranslationStore[string]()
	c.Put("explain", "캐시된 값")
	backend := &stubBackend{translations: map[string]string{"explain": "원격 값"}}

	r := NewResolver(WithBackend(backend), WithTranslationCache(c))

	if got := r.Translate(context.Background(), "explain"); got != "설명하다" {
		t.Errorf("Translate = %q, want static entry", got)
	}
	if backend.Calls() != 0 {
		t.Errorf("backend called %d times, want 0", backend.Calls())
	}
	if r.Stats().TableHits != 1 {
		t.Errorf("TableHits = %d, want 1", r.Stats().TableHits)
	}
}

func TestResolver_BuiltinTableWithoutBackend(t *testing.T) {
	r := NewResolver()
	ctx := context.Background()

	tests := map[string]string{
		"accept":   "받아들이다",
		"Daughter": "딸",
		"machine":  "기계",
		"thank":    "감사하다",
		"yard":     "마당",
		"zone":     "지역",
	}
	for text, want := range tests {
		if got := r.Translate(ctx, text); got != want {
			t.Errorf("Translate(%q) = %q, want %q", text, got, want)
		}
	}
	if r.Stats().TableHits != int64(len(tests)) {
		t.Errorf("TableHits = %d, want %d", r.Stats().TableHits, len(tests))
	}
}

func TestResolver_CachesRemoteResult(t *testing.T) {
	backend := &stubBackend{translations: map[string]string{
		"Make plain and comprehensible.": "분명하고 이해하기 쉽게 만들다.",
	}}
	r := NewResolver(WithBackend(backend))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got := r.Translate(ctx, "Make plain and comprehensible.")
		if got != "분명하고 이해하기 쉽게 만들다." {
			t.Fatalf("Translate = %q", got)
		}
	}

	if backend.Calls() != 1 {
		t.Errorf("backend called %d times, want 1", backend.Calls())
	}
	if r.CacheLen() != 1 {
		t.Errorf("CacheLen = %d, want 1", r.CacheLen())
	}
}

func TestResolver_CacheKeyIsExactText(t *testing.T) {
	backend := &stubBackend{}
	r := NewResolver(WithBackend(backend), WithStaticTable(NewStaticTable(nil)))
	ctx := context.Background()

	r.Translate(ctx, "a sentence")
	r.Translate(ctx, "A sentence")

	if backend.Calls() != 2 {
		t.Errorf("backend called %d times, want 2", backend.Calls())
	}
}

func TestResolver_CleansRemoteResult(t *testing.T) {
	backend := &stubBackend{translations: map[string]string{"to speak": "번역:   말하다  "}}
	r := NewResolver(WithBackend(backend), WithStaticTable(NewStaticTable(nil)))

	if got := r.Translate(context.Background(), "to speak"); got != "말하다" {
		t.Errorf("Translate = %q, want %q", got, "말하다")
	}
}

func TestResolver_EmptyRemoteResultReturnsOriginal(t *testing.T) {
	backend := &stubBackend{translations: map[string]string{"xyz": "   "}}
	r := NewResolver(WithBackend(backend))

	if got := r.Translate(context.Background(), "xyz"); got != "xyz" {
		t.Errorf("Translate = %q, want original text", got)
	}
	if r.CacheLen() != 0 {
		t.Error("empty translations must not be cached")
	}
}

func TestResolver_IdentityResultNotCached(t *testing.T) {
	backend := &stubBackend{translations: map[string]string{"API": "API"}}
	r := NewResolver(WithBackend(backend))

	if got := r.Translate(context.Background(), "API"); got != "API" {
		t.Errorf("Translate = %q", got)
	}
	if r.CacheLen() != 0 {
		t.Error("translations equal to the input must not be cached")
	}
}

func TestResolver_FallbackOnError(t *testing.T) {
	backend := &stubBackend{err: errors.New("service down")}
	r := NewResolver(WithBackend(backend), WithStaticTable(NewStaticTable(nil)))
	ctx := context.Background()

	if got := r.Translate(ctx, "to describe something"); got != "설명하다" {
		t.Errorf("Translate = %q, want fallback", got)
	}
	if r.CacheLen() != 0 {
		t.Error("fallback results must not be cached")
	}
	if r.Stats().Fallbacks != 1 {
		t.Errorf("Fallbacks = %d, want 1", r.Stats().Fallbacks)
	}
}

func TestResolver_NoBackend(t *testing.T) {
	r := NewResolver()

	if got := r.Translate(context.Background(), "Something unusual."); got != "Something unusual." {
		t.Errorf("Translate = %q, want original text", got)
	}
}

func TestResolver_Timeout(t *testing.T) {
	backend := &stubBackend{delay: time.Second}
	r := NewResolver(
		WithBackend(backend),
		WithTranslationTimeout(20*time.Millisecond),
		WithStaticTable(NewStaticTable(nil)),
	)

	start := time.Now()
	got := r.Translate(context.Background(), "please tell me")
	if time.Since(start) > 500*time.Millisecond {
		t.Error("timeout did not bound the remote call")
	}
	if got != "말하다" {
		t.Errorf("Translate = %q, want fallback", got)
	}
}

func TestResolver_Languages(t *testing.T) {
	var seen TranslateRequest
	backend := backendFunc(func(_ context.Context, req TranslateRequest) (string, error) {
		seen = req
		return "설명", nil
	})
	r := NewResolver(WithBackend(backend), WithLanguages("en", "ko"), WithStaticTable(NewStaticTable(nil)))

	r.Translate(context.Background(), "a description")
	if seen.SourceLang != "en" || seen.TargetLang != "ko" || seen.Text != "a description" {
		t.Errorf("unexpected request: %+v", seen)
	}
}

type backendFunc func(context.Context, TranslateRequest) (string, error)

func (f backendFunc) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	return f(ctx, req)
}

func TestFallbackTranslation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"to make something clear", "명확하게 만들다"},
		{"describe the scene", "설명하다"},
		{"tell a story", "말하다"},
		{"say hello", "말하다"},
		{"Make it Clear", "Make it Clear"}, // case-sensitive
		{"run quickly", "run quickly"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FallbackTranslation(tt.input); got != tt.expected {
				t.Errorf("FallbackTranslation(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolver_SweepCache(t *testing.T) {
	clock := newFakeClock()
	c := cache.NewTranslationStore[string](cache.WithClock(clock.Now))
	r := NewResolver(WithBackend(&stubBackend{}), WithTranslationCache(c))

	r.Translate(context.Background(), "one thing")
	clock.Advance(2 * time.Hour)

	if removed := r.SweepCache(); removed != 1 {
		t.Errorf("SweepCache removed %d, want 1", removed)
	}
}
