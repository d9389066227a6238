package gotdict

import (
	_ "embed"
	"fmt"
	"io"
	"maps"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed static_table.yaml
var builtinTable []byte

// StaticTable is an immutable English to Korean lookup table. Keys match the
// whole input case-insensitively.
type StaticTable struct {
	entries map[string]string
}

var defaultTable = sync.OnceValue(func() *StaticTable {
	t, err := parseStaticTable(builtinTable)
	if err != nil {
		panic(fmt.Sprintf("gotdict: built-in static table: %v", err))
	}
	return t
})

// DefaultStaticTable returns the built-in table.
func DefaultStaticTable() *StaticTable {
	return defaultTable()
}

// LoadStaticTable reads a YAML mapping of English text to Korean text.
func LoadStaticTable(r io.Reader) (*StaticTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read static table: %w", err)
	}
	return parseStaticTable(data)
}

// NewStaticTable builds a table from an in-memory map.
func NewStaticTable(entries map[string]string) *StaticTable {
	t := &StaticTable{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		if k == "" || v == "" {
			continue
		}
		t.entries[strings.ToLower(k)] = v
	}
	return t
}

func parseStaticTable(data []byte) (*StaticTable, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse static table: %w", err)
	}
	return NewStaticTable(raw), nil
}

// Lookup returns the translation for text, ignoring case.
func (t *StaticTable) Lookup(text string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[strings.ToLower(text)]
	return v, ok
}

// Merge returns a new table containing t's entries overridden by other's.
func (t *StaticTable) Merge(other *StaticTable) *StaticTable {
	merged := &StaticTable{entries: make(map[string]string, t.Len()+other.Len())}
	if t != nil {
		maps.Copy(merged.entries, t.entries)
	}
	if other != nil {
		maps.Copy(merged.entries, other.entries)
	}
	return merged
}

// Len returns the number of entries.
func (t *StaticTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
