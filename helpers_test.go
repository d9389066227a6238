package gotdict

import (
	"context"
	"sync"
	"time"
)

// stubBackend is a scripted TranslationBackend.
type stubBackend struct {
	mu           sync.Mutex
	translations map[string]string
	err          error
	failures     int // leading calls that fail with a retryable error
	delay        time.Duration
	calls        int
}

func (b *stubBackend) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	b.mu.Lock()
	b.calls++
	call := b.calls
	b.mu.Unlock()

	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if call <= b.failures {
		return "", &BackendError{Backend: "stub", Message: "temporary failure", Retryable: true}
	}
	if b.err != nil {
		return "", b.err
	}
	if v, ok := b.translations[req.Text]; ok {
		return v, nil
	}
	return "[ko] " + req.Text, nil
}

func (b *stubBackend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// stubClient is a scripted DictionaryClient.
type stubClient struct {
	mu      sync.Mutex
	entries map[string][]RawEntry
	err     error
	delay   time.Duration
	calls   map[string]int
}

func newStubClient(entries map[string][]RawEntry) *stubClient {
	return &stubClient{entries: entries, calls: make(map[string]int)}
}

func (c *stubClient) Fetch(ctx context.Context, word string) ([]RawEntry, error) {
	c.mu.Lock()
	c.calls[word]++
	c.mu.Unlock()

	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	raw, ok := c.entries[word]
	if !ok {
		return nil, ErrWordNotFound
	}
	return raw, nil
}

func (c *stubClient) Calls(word string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[word]
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func explainEntries() []RawEntry {
	return []RawEntry{{
		Word: "explain",
		Phonetics: []RawPhonetic{
			{Text: "/ɪkˈspleɪn/", Audio: "https://api.dictionaryapi.dev/media/pronunciations/en/explain-us.mp3"},
		},
		Meanings: []RawMeaning{{
			PartOfSpeech: "verb",
			Definitions: []RawDefinition{
				{Definition: "Make plain and comprehensible.", Example: "He explained the rules."},
				{Definition: "describe and make clear"},
			},
			Synonyms: []string{"clarify", "elucidate"},
		}},
	}}
}
