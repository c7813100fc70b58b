package tableorder

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/appetiteclub/tableorder/internal/enums/itemstatus"
)

func TestMenuCacheLoad(t *testing.T) {
	t.Run("cachedSnapshotSkipsTheFetch", func(t *testing.T) {
		store := NewFakeStore()
		if err := store.SaveMenu(context.Background(), sampleItems()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		fetcher := NewMockMenuFetcher()
		cache := NewMenuCache(store, fetcher, nil)

		items, err := cache.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		if fetcher.Calls() != 0 {
			t.Errorf("cached load must not fetch, got %d calls", fetcher.Calls())
		}
	})

	t.Run("coldCacheFetchesNormalizesAndPersists", func(t *testing.T) {
		store := NewFakeStore()
		fetcher := NewMockMenuFetcher()
		fetcher.FetchFunc = func(ctx context.Context) ([]MenuItem, error) {
			return []MenuItem{
				{Code: 1, Name: "Soup", Price: 4.5},
				{Code: 2, Name: "Bread", Price: 1.5, Status: "loading"},
			}, nil
		}
		cache := NewMenuCache(store, fetcher, nil)

		items, err := cache.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, item := range items {
			if item.Status != itemstatus.Statuses.Idle.Code() {
				t.Errorf("item %d should be idle after fetch, got %s", item.Code, item.Status)
			}
		}

		persisted, err := store.LoadMenu(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(persisted) != 2 {
			t.Errorf("fetched menu should be persisted, got %d items", len(persisted))
		}
		if fetcher.Calls() != 1 {
			t.Errorf("expected exactly one fetch, got %d", fetcher.Calls())
		}
	})

	t.Run("failedFetchLeavesCacheEmpty", func(t *testing.T) {
		store := NewFakeStore()
		fetcher := NewMockMenuFetcher()
		fetcher.FetchFunc = func(ctx context.Context) ([]MenuItem, error) {
			return nil, fmt.Errorf("no responders")
		}
		cache := NewMenuCache(store, fetcher, nil)

		_, err := cache.Load(context.Background())
		var fErr *FetchError
		if !errors.As(err, &fErr) {
			t.Fatalf("expected FetchError, got %v", err)
		}

		persisted, err := store.LoadMenu(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if persisted != nil {
			t.Error("a failed exchange must not leave a snapshot behind")
		}
	})

	t.Run("persistedStatusesSurviveReload", func(t *testing.T) {
		store := NewFakeStore()
		cache := NewMenuCache(store, NewMockMenuFetcher(), nil)

		items := sampleItems()
		items[0].Quantity = 2
		items[0].Status = itemstatus.Statuses.Success.Code()
		items[1].Quantity = 1
		items[1].Status = itemstatus.Statuses.Loading.Code()
		items[2].Status = itemstatus.Statuses.Error.Code()
		if err := cache.Persist(context.Background(), items); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		loaded, err := cache.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loaded[0].Status != itemstatus.Statuses.Success.Code() {
			t.Errorf("success should survive a reload, got %s", loaded[0].Status)
		}
		if loaded[1].Status != itemstatus.Statuses.Idle.Code() {
			t.Errorf("loading should reset to idle on reload, got %s", loaded[1].Status)
		}
		if loaded[2].Status != itemstatus.Statuses.Error.Code() {
			t.Errorf("error should survive a reload, got %s", loaded[2].Status)
		}
		if loaded[0].Quantity != 2 {
			t.Errorf("quantities should survive a reload, got %d", loaded[0].Quantity)
		}
	})
}
