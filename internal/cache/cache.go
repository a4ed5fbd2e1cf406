// Package cache is the engine's write-through report store: computed market
// and seller reports are parked here so repeat queries inside the TTL skip
// recomputation. The engine itself never reads its own past output for
// anything but serving it back.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	TTL       time.Duration   `json:"ttl"`
}

// Store is a JSON-file-backed key/value cache with per-entry TTL. Safe for
// concurrent use.
type Store struct {
	path       string
	defaultTTL time.Duration
	mu         sync.RWMutex
	entries    map[string]entry
}

// New opens (or creates) a cache file. A corrupt file is discarded rather
// than surfaced as an error; the cache starts fresh.
func New(path string, defaultTTL time.Duration) (*Store, error) {
	s := &Store{
		path:       path,
		defaultTTL: defaultTTL,
		entries:    make(map[string]entry),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.entries); err != nil {
			s.entries = make(map[string]entry)
		}
	}
	return s, nil
}

// Get unmarshals a live entry into target. Returns false on a miss or an
// expired entry.
func (s *Store) Get(key string, target interface{}) (bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if e.TTL > 0 && time.Since(e.Timestamp) > e.TTL {
		s.mu.Lock()
		if cur, exists := s.entries[key]; exists && cur.Timestamp.Equal(e.Timestamp) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return false, nil
	}

	if err := json.Unmarshal(e.Data, target); err != nil {
		return false, fmt.Errorf("unmarshal cache entry %q: %w", key, err)
	}
	return true, nil
}

// Put stores value under key with the store's default TTL and writes through
// to disk.
func (s *Store) Put(key string, value interface{}) error {
	return s.PutTTL(key, value, s.defaultTTL)
}

// PutTTL stores value with an explicit TTL. A zero TTL never expires.
func (s *Store) PutTTL(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}

	s.mu.Lock()
	s.entries[key] = entry{Data: data, Timestamp: time.Now(), TTL: ttl}
	s.mu.Unlock()

	return s.flush()
}

// Purge drops expired entries and rewrites the file.
func (s *Store) Purge() error {
	s.mu.Lock()
	for key, e := range s.entries {
		if e.TTL > 0 && time.Since(e.Timestamp) > e.TTL {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()

	return s.flush()
}

// Len reports the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) flush() error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}

	s.mu.RLock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	return os.WriteFile(s.path, data, 0644)
}
