package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Conceptual-Machines/synesthesia-api/internal/logger"
)

// FileStore keeps all preferences in one JSON file keyed by user key.
// A missing or unreadable file starts empty.
type FileStore struct {
	path  string
	mu    sync.RWMutex
	prefs map[string]Preferences
}

// NewFileStore loads path if it exists
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path, prefs: map[string]Preferences{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to read preferences file, starting empty", logger.Fields{"path": path, "error": err.Error()})
		}
		return s
	}

	if err := json.Unmarshal(data, &s.prefs); err != nil {
		logger.Warn("Corrupted preferences file, starting empty", logger.Fields{"path": path, "error": err.Error()})
		s.prefs = map[string]Preferences{}
	}
	return s
}

// Load implements Store
func (s *FileStore) Load(_ context.Context, key string) (Preferences, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[key]
	return p, ok, nil
}

// Save implements Store. The whole file is rewritten through a temp file.
func (s *FileStore) Save(_ context.Context, key string, prefs Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[key] = prefs

	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".preferences-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close preferences: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace preferences file: %w", err)
	}
	return nil
}

// Len returns the number of stored users
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prefs)
}
