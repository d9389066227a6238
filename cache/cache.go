// Package cache provides the bounded, time-expiring stores used for
// definitions and translations.
//
// A Store evicts by insertion order: when it grows past its capacity the
// key that was inserted first is dropped. Reads never change that order and
// neither does overwriting an existing key.
package cache

import "time"

// Defaults for the two stores a lookup service keeps.
const (
	DefaultTTL          = time.Hour
	DefinitionCapacity  = 1000
	TranslationCapacity = 500
)

// Option configures a Store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly so tests can move time forward.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewDefinitionStore returns a store sized for shaped dictionary entries.
func NewDefinitionStore[T any](opts ...Option) *Store[T] {
	return New[T](DefinitionCapacity, DefaultTTL, opts...)
}

// NewTranslationStore returns a store sized for translated strings.
func NewTranslationStore[T any](opts ...Option) *Store[T] {
	return New[T](TranslationCapacity, DefaultTTL, opts...)
}
