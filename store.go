package loom

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrPathNotFound reports a state-store path with no entry.
var ErrPathNotFound = errors.New("loom: state path not found")

// StateStore is the external persisted-state collaborator: a key-value
// document store reachable by path-like keys such as
// "visAssetGradients/{uuid}". Updates replace the addressed subtree
// wholesale; there is no partial in-place mutation contract.
type StateStore interface {
	Get(path string) (json.RawMessage, error)
	Update(path string, value any) error
	Remove(path string) error
}

// MemStore is an in-memory StateStore used by tests and offline tools.
// It is safe for concurrent use.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]json.RawMessage)}
}

// Get returns the raw document at path.
func (s *MemStore) Get(path string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.entries[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, nil
}

// Update marshals value and replaces the document at path.
func (s *MemStore) Update(path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[path] = raw
	return nil
}

// Remove deletes the document at path. Removing a missing path is a
// no-op, matching the replace-this-subtree contract.
func (s *MemStore) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, path)
	return nil
}
