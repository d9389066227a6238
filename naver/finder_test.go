package naver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZaguanLabs/gotdict"
)

const resultPage = `<html><body>
<div class="mean_tray">
  <div class="cont">
    <ul>
      <li><span class="num">1.</span><span class="txt">설명하다,
        해명하다</span></li>
      <li><span class="txt">이유를 대다</span></li>
    </ul>
  </div>
</div>
</body></html>`

func newTestFinder(t *testing.T, handler http.HandlerFunc) *Finder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFinder(Config{BaseURL: srv.URL, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

func TestExtractMeaning(t *testing.T) {
	meaning, err := ExtractMeaning([]byte(resultPage))
	if err != nil {
		t.Fatalf("ExtractMeaning failed: %v", err)
	}
	if meaning != "설명하다, 해명하다" {
		t.Errorf("meaning = %q", meaning)
	}
}

func TestExtractMeaning_FallbackToBlock(t *testing.T) {
	page := `<div class="mean_tray"><div class="cont"> <p>달성하다</p> </div></div>`

	meaning, err := ExtractMeaning([]byte(page))
	if err != nil {
		t.Fatalf("ExtractMeaning failed: %v", err)
	}
	if meaning != "달성하다" {
		t.Errorf("meaning = %q", meaning)
	}
}

func TestExtractMeaning_NotFound(t *testing.T) {
	for _, page := range []string{
		`<html><body><p>검색결과가 없습니다</p></body></html>`,
		`<div class="mean_tray"><div class="cont">   </div></div>`,
	} {
		if _, err := ExtractMeaning([]byte(page)); !errors.Is(err, ErrMeaningNotFound) {
			t.Errorf("expected ErrMeaningNotFound for %q, got %v", page, err)
		}
	}
}

func TestFinder_Find(t *testing.T) {
	f := newTestFinder(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/search.naver" || q.Get("query") != "영한사전 explain" || q.Get("where") != "m" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Write([]byte(resultPage))
	})

	meaning, err := f.Find(context.Background(), " explain ")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if meaning != "설명하다, 해명하다" {
		t.Errorf("meaning = %q", meaning)
	}
}

func TestFinder_Find_Status(t *testing.T) {
	f := newTestFinder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := f.Find(context.Background(), "explain")
	var up *gotdict.UpstreamError
	if !errors.As(err, &up) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if up.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want %d", up.Status, http.StatusBadGateway)
	}
}

func TestFinder_Find_Blank(t *testing.T) {
	f := NewFinder(Config{})
	if _, err := f.Find(context.Background(), "  "); !errors.Is(err, gotdict.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
