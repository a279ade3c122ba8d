package state

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/obsbot/logbot/internal/domain/repository"
	"github.com/obsbot/logbot/pkg/logger"
)

// Store is a json-backed key/value state file for runtime toggles,
// rewritten in full on every change.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]any
}

var _ repository.StateRepository = (*Store)(nil)

// Open loads the state file at path, starting fresh when there is none.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]any)}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.InfoLogger.Println("No state file found, starting a new one")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	if err := json.Unmarshal(b, &s.values); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) GetBool(key string, def bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.values[key].(bool); ok {
		return v
	}
	return def
}

func (s *Store) SetBool(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.save()
}

// save must be called with the lock held.
func (s *Store) save() error {
	b, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}
