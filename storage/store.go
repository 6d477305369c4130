package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Store reads and writes named JSON slots under a data directory.
// Each slot is a single document persisted as <name>.json.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Load reads a slot into v. A missing file leaves v untouched. A corrupt
// file is logged and treated as empty so the process stays up; the old
// contents are lost on the next Save.
func (s *Store) Load(slot string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(slot)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("No save file for slot %q, starting empty", slot)
			return nil
		}
		return fmt.Errorf("failed to read slot %q: %w", slot, err)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.WithFields(log.Fields{
			"slot": slot,
			"path": path,
		}).Errorf("Slot contains invalid JSON, starting empty: %v", err)
		return nil
	}
	return nil
}

// Save writes v to a slot synchronously. The write completes before
// returning so a crash after a successful call cannot lose it.
func (s *Store) Save(slot string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal slot %q: %w", slot, err)
	}
	if err := os.WriteFile(s.path(slot), data, 0644); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", slot, err)
	}
	return nil
}

func (s *Store) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}
