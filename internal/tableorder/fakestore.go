package tableorder

import (
	"context"
	"sync"
)

// FakeStore is an in-memory Store used in tests and when no storage
// directory is configured. State is lost on restart.
type FakeStore struct {
	mu    sync.RWMutex
	table string
	menu  []MenuItem
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (s *FakeStore) LoadTable(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, nil
}

func (s *FakeStore) SaveTable(ctx context.Context, table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
	return nil
}

func (s *FakeStore) LoadMenu(ctx context.Context) ([]MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.menu == nil {
		return nil, nil
	}
	out := make([]MenuItem, len(s.menu))
	copy(out, s.menu)
	return out, nil
}

func (s *FakeStore) SaveMenu(ctx context.Context, items []MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = make([]MenuItem, len(items))
	copy(s.menu, items)
	return nil
}
