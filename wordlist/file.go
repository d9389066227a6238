package wordlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileStore keeps the list as a JSON array in a local file. Writes go to a
// temporary file that is renamed over the original.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file and its directory are
// created on the first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// List returns the saved entries in insertion order. A missing or empty file
// is an empty list.
func (s *FileStore) List(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Add appends e unless its word is already saved and reports whether it
// was added.
func (s *FileStore) Add(_ context.Context, e Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return false, err
	}
	if contains(entries, e.Word) {
		return false, nil
	}
	return true, s.write(append(entries, e))
}

// Replace overwrites the file with entries.
func (s *FileStore) Replace(_ context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(slices.Clone(entries))
}

func (s *FileStore) read() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode word list %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *FileStore) write(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode word list: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create word list dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".words-*.json")
	if err != nil {
		return fmt.Errorf("write word list: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write word list: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write word list: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write word list: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
