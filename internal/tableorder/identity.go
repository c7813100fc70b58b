package tableorder

import (
	"context"
	"strings"
)

// IdentityStore persists the active table token. There is one identity per
// session; setting a new token replaces the old one without touching the
// menu snapshot.
type IdentityStore struct {
	store Store
}

func NewIdentityStore(store Store) *IdentityStore {
	return &IdentityStore{store: store}
}

// Get returns the cached table token, or an empty string when none is set.
func (s *IdentityStore) Get(ctx context.Context) (string, error) {
	return s.store.LoadTable(ctx)
}

// Set validates and persists the table token. The token is trimmed before
// validation; an empty result is rejected as user input error.
func (s *IdentityStore) Set(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", &ValidationError{Field: "table", Message: "table token cannot be empty"}
	}
	if err := s.store.SaveTable(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}
