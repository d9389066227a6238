package provider

import (
	"context"
	"sync"
)

// Mock is a translation backend for testing.
type Mock struct {
	mu           sync.Mutex
	Translations map[string]string // Map of source text to translation
	Err          error             // Returned by every call when set
	callCount    int
	lastRequest  *TranslateRequest
}

// NewMock creates a mock backend with a few default translations.
func NewMock() *Mock {
	return &Mock{
		Translations: map[string]string{
			"Make plain and comprehensible.": "분명하고 이해하기 쉽게 하다.",
			"He explained the rules.":        "그는 규칙을 설명했다.",
			"To give a reason for.":          "이유를 대다.",
		},
	}
}

// Translate returns the mapped translation, or the text wrapped in brackets.
func (m *Mock) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	m.lastRequest = &req

	if m.Err != nil {
		return "", m.Err
	}
	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}
	return "[" + req.Text + "]", nil
}

// CallCount returns the number of Translate calls.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the most recent request, or nil.
func (m *Mock) LastRequest() *TranslateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset resets the call count and last request.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastRequest = nil
}

// Verify Mock implements Backend
var _ Backend = (*Mock)(nil)
