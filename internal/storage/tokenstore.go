// Package storage persists the upstream session token per persona so a
// conversation survives app restarts.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore is a single-string key-value store keyed by persona identifier.
type TokenStore interface {
	Get(personaID string) (string, error)
	Set(personaID, token string) error
	Delete(personaID string) error
}

// FileTokenStore keeps one file per persona under a base directory, mirroring
// the mobile client's cache-directory files.
type FileTokenStore struct {
	dir string
}

// NewFileTokenStore creates the base directory if needed.
func NewFileTokenStore(dir string) (*FileTokenStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("token store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create token store directory: %w", err)
	}
	return &FileTokenStore{dir: dir}, nil
}

func (s *FileTokenStore) path(personaID string) string {
	return filepath.Join(s.dir, "chat_id_"+personaID+".txt")
}

// Get returns the stored token, or empty when none exists.
func (s *FileTokenStore) Get(personaID string) (string, error) {
	data, err := os.ReadFile(s.path(personaID))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes the token, replacing any previous value.
func (s *FileTokenStore) Set(personaID, token string) error {
	if err := os.WriteFile(s.path(personaID), []byte(token), 0o644); err != nil {
		return fmt.Errorf("write session token: %w", err)
	}
	return nil
}

// Delete removes the stored token. Deleting a missing token is not an error.
func (s *FileTokenStore) Delete(personaID string) error {
	err := os.Remove(s.path(personaID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}

// MemoryTokenStore is an in-process TokenStore for tests.
type MemoryTokenStore struct {
	tokens map[string]string
}

// NewMemoryTokenStore returns an empty MemoryTokenStore.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]string)}
}

// Get implements TokenStore.
func (s *MemoryTokenStore) Get(personaID string) (string, error) {
	return s.tokens[personaID], nil
}

// Set implements TokenStore.
func (s *MemoryTokenStore) Set(personaID, token string) error {
	s.tokens[personaID] = token
	return nil
}

// Delete implements TokenStore.
func (s *MemoryTokenStore) Delete(personaID string) error {
	delete(s.tokens, personaID)
	return nil
}
