// Package wordlist keeps the user's saved vocabulary and runs quizzes over it.
package wordlist

import (
	"context"
	"errors"
)

// ErrEmptyList is returned when a quiz is requested over no words.
var ErrEmptyList = errors.New("word list is empty")

// Entry is a saved word with the meaning shown to the user.
type Entry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// Store persists the word list in insertion order.
type Store interface {
	// List returns all entries in the order they were added.
	List(ctx context.Context) ([]Entry, error)
	// Add appends e unless an entry with the same word exists. It reports
	// whether the entry was added.
	Add(ctx context.Context, e Entry) (bool, error)
	// Replace overwrites the whole list.
	Replace(ctx context.Context, entries []Entry) error
}

func contains(entries []Entry, word string) bool {
	for _, e := range entries {
		if e.Word == word {
			return true
		}
	}
	return false
}
