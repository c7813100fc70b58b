package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/appetiteclub/tableorder/internal/tableorder"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStoreAt(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("cannot create store: %v", err)
	}
	return store
}

func TestStoreTable(t *testing.T) {
	t.Run("roundTrip", func(t *testing.T) {
		store := newTestStore(t)

		if err := store.SaveTable(context.Background(), "7"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := store.LoadTable(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "7" {
			t.Errorf("expected 7, got %q", got)
		}
	})

	t.Run("missingFileIsAbsent", func(t *testing.T) {
		store := newTestStore(t)

		got, err := store.LoadTable(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("expected empty token, got %q", got)
		}
	})

	t.Run("overwriteReplaces", func(t *testing.T) {
		store := newTestStore(t)

		if err := store.SaveTable(context.Background(), "7"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.SaveTable(context.Background(), "12"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := store.LoadTable(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "12" {
			t.Errorf("expected 12, got %q", got)
		}
	})
}

func TestStoreMenu(t *testing.T) {
	t.Run("roundTrip", func(t *testing.T) {
		store := newTestStore(t)

		items := []tableorder.MenuItem{
			{Code: 1, Name: "Soup", Price: 4.5, Quantity: 2, Status: "success"},
			{Code: 2, Name: "Bread", Price: 1.5},
		}
		if err := store.SaveMenu(context.Background(), items); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		loaded, err := store.LoadMenu(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(loaded) != 2 {
			t.Fatalf("expected 2 items, got %d", len(loaded))
		}
		if loaded[0].Name != "Soup" || loaded[0].Quantity != 2 || loaded[0].Status != "success" {
			t.Errorf("unexpected first item: %+v", loaded[0])
		}
	})

	t.Run("missingFileIsAbsent", func(t *testing.T) {
		store := newTestStore(t)

		loaded, err := store.LoadMenu(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loaded != nil {
			t.Errorf("expected nil snapshot, got %+v", loaded)
		}
	})

	t.Run("corruptSnapshotSurfacesError", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewStoreAt(dir, nil)
		if err != nil {
			t.Fatalf("cannot create store: %v", err)
		}

		if err := os.WriteFile(filepath.Join(dir, "menu.json"), []byte("{not json"), 0o644); err != nil {
			t.Fatalf("cannot seed corrupt file: %v", err)
		}

		if _, err := store.LoadMenu(context.Background()); err == nil {
			t.Error("corrupt snapshot should surface a decode error")
		}
	})

	t.Run("noTempFileLeftBehind", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewStoreAt(dir, nil)
		if err != nil {
			t.Fatalf("cannot create store: %v", err)
		}

		if err := store.SaveMenu(context.Background(), []tableorder.MenuItem{{Code: 1, Name: "Soup"}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, e := range entries {
			if filepath.Ext(e.Name()) == ".tmp" {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})
}
