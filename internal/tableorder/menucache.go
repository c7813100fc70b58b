package tableorder

import (
	"context"

	"github.com/aquamarinepk/aqm"
)

// MenuCache serves the item collection for a session. A persisted snapshot
// is returned without touching the network; a cold cache triggers exactly
// one fetch from the remote source. Callers gate Load on identity presence
// and never invoke it concurrently for the same session.
type MenuCache struct {
	store   Store
	fetcher MenuFetcher
	logger  aqm.Logger
}

func NewMenuCache(store Store, fetcher MenuFetcher, logger aqm.Logger) *MenuCache {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &MenuCache{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Load returns the cached snapshot when one exists, otherwise fetches a
// fresh one, normalizes every item to idle and persists it. A failed
// exchange leaves the cache empty and surfaces a FetchError.
func (c *MenuCache) Load(ctx context.Context) ([]MenuItem, error) {
	items, err := c.store.LoadMenu(ctx)
	if err != nil {
		c.logger.Error("cannot read menu snapshot, falling back to fetch", "error", err)
	}
	if items != nil {
		return NormalizeStatuses(items), nil
	}

	fetched, err := c.fetcher.FetchMenu(ctx)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	fetched = NormalizeStatuses(fetched)
	if err := c.store.SaveMenu(ctx, fetched); err != nil {
		// The session still gets the menu; only the snapshot is missing.
		c.logger.Error("cannot persist menu snapshot", "error", err)
	}

	c.logger.Info("menu fetched", "items", len(fetched))
	return fetched, nil
}

// Persist overwrites the stored snapshot. Called on every quantity change so
// the cache and the in-memory collection stay consistent.
func (c *MenuCache) Persist(ctx context.Context, items []MenuItem) error {
	return c.store.SaveMenu(ctx, items)
}
