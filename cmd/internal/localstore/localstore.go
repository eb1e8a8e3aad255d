// Package localstore is a small file-backed key-value store. It stands in for
// the browser's local storage: theme preference and authentication artifacts
// live here under documented key prefixes, and sign-out clears its namespace
// with a prefix scan.
package localstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/labstack/gommon/log"
)

// Key prefixes shared between the session store and the theme store. All
// access is serialized by the store's own mutex; callers only need to stay
// inside their prefix.
const (
	AuthPrefix = "clientflow.auth."
	ThemeKey   = "clientflow.theme"
)

type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open loads the store from path, starting empty when the file does not exist
// yet. Pass an empty path for a purely in-memory store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]string{}}
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.values); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, found := s.values[key]
	return value, found
}

func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	s.persist()
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	s.persist()
}

// ClearPrefix removes every key under the given prefix.
func (s *Store) ClearPrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			delete(s.values, key)
		}
	}
	s.persist()
}

// Keys returns all stored keys under the given prefix.
func (s *Store) Keys(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}

// persist writes the store to disk best effort. A write failure loses
// persistence, not the in-memory state, so it is logged and swallowed.
// Caller must hold s.mu.
func (s *Store) persist() {
	if s.path == "" {
		return
	}

	raw, err := json.Marshal(s.values)
	if err != nil {
		log.Errorf("localstore: failed to marshal values: %v", err)
		return
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		log.Errorf("localstore: failed to write %s: %v", s.path, err)
	}
}
