package roadmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/pathfinder/internal/schemas"
)

// RoleKey is a role name trimmed and case-folded for table lookups.
// "Data Scientist" and " data scientist" share a key; "Data  Scientist" does not.
type RoleKey string

// NormalizeKey derives the lookup key for role
func NormalizeKey(role string) RoleKey {
	return RoleKey(strings.ToLower(strings.TrimSpace(role)))
}

// Table is the read-only set of pre-authored roadmaps.
// Entries are kept encoded and decoded on every lookup, so each caller gets
// its own record and the table itself is never written after construction.
type Table struct {
	entries map[RoleKey][]byte
}

// NewTable builds a table from raw roadmap objects keyed by role name.
// Keys are normalized; two keys that normalize to the same RoleKey are an error.
func NewTable(entries map[string]json.RawMessage) (*Table, error) {
	t := &Table{entries: make(map[RoleKey][]byte, len(entries))}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		key := NormalizeKey(name)
		if key == "" {
			return nil, fmt.Errorf("roadmap table: empty role key %q", name)
		}
		if _, dup := t.entries[key]; dup {
			return nil, fmt.Errorf("roadmap table: role %q collides with an existing entry for key %q", name, key)
		}

		raw := bytes.TrimSpace(entries[name])
		if len(raw) == 0 || raw[0] != '{' {
			return nil, fmt.Errorf("roadmap table: entry %q is not a JSON object", name)
		}
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, fmt.Errorf("roadmap table: entry %q: %w", name, err)
		}

		t.entries[key] = append([]byte(nil), raw...)
	}

	return t, nil
}

// EmptyTable returns a table with no entries; every lookup misses
func EmptyTable() *Table {
	return &Table{entries: map[RoleKey][]byte{}}
}

// Lookup returns a fresh copy of the roadmap stored for role, if any
func (t *Table) Lookup(role string) (Record, bool) {
	if t == nil {
		return nil, false
	}
	raw, ok := t.entries[NormalizeKey(role)]
	if !ok {
		return nil, false
	}

	rec, err := decodeObject(raw)
	if err != nil {
		// Entries are checked in NewTable, so this only fires on a corrupted table.
		return nil, false
	}
	return rec, true
}

// Contains reports whether role has a stored roadmap
func (t *Table) Contains(role string) bool {
	if t == nil {
		return false
	}
	_, ok := t.entries[NormalizeKey(role)]
	return ok
}

// Len returns the number of entries
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Keys returns the normalized keys in sorted order
func (t *Table) Keys() []RoleKey {
	if t == nil {
		return nil
	}
	keys := make([]RoleKey, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ReadTableFile reads and validates a roadmap table file.
// A missing file is not an error: it yields no entries.
func ReadTableFile(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, &TableLoadError{Source: path, Message: "failed to read file", Cause: err}
	}

	if err := schemas.ValidateRoadmapTable(data); err != nil {
		return nil, &TableLoadError{Source: path, Message: "file does not match roadmap table schema", Cause: err}
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &TableLoadError{Source: path, Message: "failed to parse JSON", Cause: err}
	}
	if entries == nil {
		entries = map[string]json.RawMessage{}
	}
	return entries, nil
}

// LoadTableFile reads path and builds a Table from it
func LoadTableFile(path string) (*Table, error) {
	entries, err := ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	table, err := NewTable(entries)
	if err != nil {
		return nil, &TableLoadError{Source: path, Message: "invalid entries", Cause: err}
	}
	return table, nil
}

// decodeObject decodes raw as a single JSON object, keeping numbers exact
func decodeObject(raw []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("not a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return rec, nil
}
