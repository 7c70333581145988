// internal/client/credstore/file_store.go
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"shopauth-service/internal/domain/account"
)

// FileStore persists credentials as a single JSON document on disk. Both
// slots live in one file so they are written and cleared together; the write
// goes through a temp file and rename, so a concurrent Load observes either
// the old pair or the new one, never a torn update.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		// An unreadable file is the same as no credentials.
		return Credentials{}, nil
	}

	return creds, nil
}

func (s *FileStore) Save(token string, identity account.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(Credentials{Token: token, UserData: &identity})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	return s.writeAtomic(data)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	return nil
}

func (s *FileStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit credentials: %w", err)
	}

	return nil
}
