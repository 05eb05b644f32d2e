// Package prefs is a small persistent key/value store for player settings and
// counters. Values are ints or strings; timestamps are stored as RFC 3339
// strings. A Store is saved as a flat TOML document.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// Prefs is the contract the managers consume.
type Prefs interface {
	GetInt(key string, def int) int
	SetInt(key string, value int)
	GetString(key string, def string) string
	SetString(key string, value string)
	GetBool(key string, def bool) bool
	SetBool(key string, value bool)
	GetTime(key string, def time.Time) time.Time
	SetTime(key string, value time.Time)
	Has(key string) bool
	Delete(key string)
	DeleteAll()
	Keys() []string
	Save() error
}

// Store is the TOML-file backed Prefs implementation.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
	path   string
	dirty  bool
}

var _ Prefs = (*Store)(nil)

// NewMemory returns a Store without a backing file. Save is a no-op.
func NewMemory() *Store {
	return &Store{values: make(map[string]any)}
}

// Open loads the store at path. A missing file yields an empty store that will
// be created on the first Save.
func Open(path string) (*Store, error) {
	s := &Store{values: make(map[string]any), path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prefs %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), &s.values); err != nil {
		return nil, fmt.Errorf("decode prefs %s: %w", path, err)
	}

	for k, v := range s.values {
		switch val := v.(type) {
		case int64:
			s.values[k] = int(val)
		case string:
		default:
			// Hand-edited files may carry floats, tables or arrays.
			delete(s.values, k)
		}
	}
	return s, nil
}

// Path returns the backing file, or "" for memory stores.
func (s *Store) Path() string {
	return s.path
}

// Value returns the raw stored value, an int or a string.
func (s *Store) Value(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Store) GetInt(key string, def int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key].(int); ok {
		return v
	}
	return def
}

func (s *Store) SetInt(key string, value int) {
	s.set(key, value)
}

func (s *Store) GetString(key string, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return def
}

func (s *Store) SetString(key string, value string) {
	s.set(key, value)
}

// GetBool reads a flag stored as 0 or 1.
func (s *Store) GetBool(key string, def bool) bool {
	d := 0
	if def {
		d = 1
	}
	return s.GetInt(key, d) != 0
}

func (s *Store) SetBool(key string, value bool) {
	v := 0
	if value {
		v = 1
	}
	s.set(key, v)
}

// GetTime parses an RFC 3339 timestamp. Unparseable values return def.
func (s *Store) GetTime(key string, def time.Time) time.Time {
	raw := s.GetString(key, "")
	if raw == "" {
		return def
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return def
	}
	return t
}

func (s *Store) SetTime(key string, value time.Time) {
	s.set(key, value.UTC().Format(time.RFC3339Nano))
}

func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
}

func (s *Store) DeleteAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]any)
	s.dirty = true
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dirty reports whether there are changes not yet saved.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Save writes the store to its file via a temporary file and rename.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		s.dirty = false
		return nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.values); err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	s.dirty = false
	return nil
}

func (s *Store) set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.dirty = true
}
