package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aquamarinepk/aqm"

	"github.com/appetiteclub/tableorder/internal/tableorder"
)

const (
	tableFile = "table"
	menuFile  = "menu.json"
)

// Store keeps the session's two keys on disk: the table token as a raw
// string and the menu snapshot as JSON. Writes go through a temp file and a
// rename so a crash never leaves a half-written snapshot behind.
type Store struct {
	mu     sync.Mutex
	dir    string
	logger aqm.Logger
}

// NewStore creates a Store rooted at the configured directory
// (store.directory, defaulting next to the binary).
func NewStore(config *aqm.Config, logger aqm.Logger) (*Store, error) {
	return NewStoreAt(config.GetStringOrDef("store.directory", "./data"), logger)
}

// NewStoreAt creates a Store rooted at an explicit directory.
func NewStoreAt(dir string, logger aqm.Logger) (*Store, error) {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create store directory %s: %w", dir, err)
	}

	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) LoadTable(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, tableFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("cannot read table key: %w", err)
	}
	return string(data), nil
}

func (s *Store) SaveTable(ctx context.Context, table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeFile(tableFile, []byte(table))
}

func (s *Store) LoadMenu(ctx context.Context) ([]tableorder.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, menuFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read menu snapshot: %w", err)
	}

	var items []tableorder.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("cannot decode menu snapshot: %w", err)
	}
	return items, nil
}

func (s *Store) SaveMenu(ctx context.Context, items []tableorder.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cannot encode menu snapshot: %w", err)
	}
	return s.writeFile(menuFile, data)
}

// writeFile must be called with s.mu held.
func (s *Store) writeFile(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("cannot replace %s: %w", name, err)
	}
	return nil
}
