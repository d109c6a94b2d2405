package testsupport

import (
	"context"
	"testing"

	"platter/internal/config"
	"platter/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// StartRun records a running rip for tests using the provided store.
func StartRun(t testing.TB, store *history.Store, discName, mediaKind string) string {
	t.Helper()

	id, err := store.RecordStart(context.Background(), discName, mediaKind, "/dev/sr0", "")
	if err != nil {
		t.Fatalf("store.RecordStart: %v", err)
	}
	return id
}
