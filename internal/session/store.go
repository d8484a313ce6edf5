package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

// Storage keys, kept compatible with the browser client this replaces.
const (
	tokenKey = "user_token"
	userKey  = "user_data"
)

// Store persists the session token and user record as a unit: either both
// are present or both are absent. Getters return zero values rather than
// errors when nothing usable is stored.
type Store interface {
	Save(token string, user *domain.User) error
	Token() string
	User() *domain.User
	Clear() error
}

// FileStore keeps the two session values in a small JSON document on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore builds a store backed by the given file path. The file is
// created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() map[string]string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	values := make(map[string]string)
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}

// Save persists both values in a single write.
func (s *FileStore) Save(token string, user *domain.User) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(map[string]string{
		tokenKey: token,
		userKey:  string(userData),
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, doc, 0o600)
}

// Token returns the stored token, or empty when absent.
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()[tokenKey]
}

// User returns the stored user record, or nil when absent or unparseable.
func (s *FileStore) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw := s.load()[userKey]
	if raw == "" {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// Clear removes the persisted state. Safe to call when nothing is stored.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore holds the session values in memory, for tests and hosts that
// do not want credentials on disk.
type MemoryStore struct {
	mu       sync.Mutex
	token    string
	userData string
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token string, user *domain.User) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.userData = string(userData)
	return nil
}

func (s *MemoryStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryStore) User() *domain.User {
	s.mu.Lock()
	raw := s.userData
	s.mu.Unlock()
	if raw == "" {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userData = ""
	return nil
}
