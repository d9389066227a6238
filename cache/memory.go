package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry holds a cached value with its insertion timestamp.
type entry[T any] struct {
	key       string
	value     T
	timestamp time.Time
}

// Store is a thread-safe in-memory cache with TTL and a size bound.
type Store[T any] struct {
	mu       sync.Mutex
	items    map[string]*list.Element
	order    *list.List // front is the oldest insertion
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// New creates a store holding at most capacity entries, each valid for ttl.
// A capacity or ttl of 0 or less disables that bound.
func New[T any](capacity int, ttl time.Duration, opts ...Option) *Store[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		items:    make(map[string]*list.Element),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      o.now,
	}
}

// Get returns the value for key. An entry older than the TTL is removed and
// reported as missing.
func (s *Store[T]) Get(key string) (T, bool) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		return zero, false
	}

	e := el.Value.(*entry[T])
	if s.expired(e, s.now()) {
		s.remove(el)
		return zero, false
	}
	return e.value, true
}

// Put stores value under key with a fresh timestamp. A new key is appended
// and, if the store is then over capacity, the oldest key is evicted. An
// existing key keeps its place in the eviction order.
func (s *Store[T]) Put(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if el, ok := s.items[key]; ok {
		e := el.Value.(*entry[T])
		e.value = value
		e.timestamp = now
		return
	}

	s.items[key] = s.order.PushBack(&entry[T]{key: key, value: value, timestamp: now})
	if s.capacity > 0 && s.order.Len() > s.capacity {
		s.remove(s.order.Front())
	}
}

// Delete removes key if present.
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		s.remove(el)
	}
}

// Sweep removes every expired entry and returns how many were removed.
func (s *Store[T]) Sweep() int {
	return s.SweepAt(s.now())
}

// SweepAt removes entries that are expired as of now.
func (s *Store[T]) SweepAt(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		if s.expired(el.Value.(*entry[T]), now) {
			s.remove(el)
			removed++
		}
		el = next
	}
	return removed
}

// Len returns the number of entries, including expired ones not yet swept.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Keys returns the keys in insertion order.
func (s *Store[T]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, s.order.Len())
	for el := s.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[T]).key)
	}
	return keys
}

// Clear removes all entries.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*list.Element)
	s.order.Init()
}

// expired must be called with the lock held.
func (s *Store[T]) expired(e *entry[T], now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.timestamp) > s.ttl
}

// remove must be called with the lock held.
func (s *Store[T]) remove(el *list.Element) {
	s.order.Remove(el)
	delete(s.items, el.Value.(*entry[T]).key)
}
