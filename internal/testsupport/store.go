package testsupport

import (
	"testing"

	"tally/internal/config"
	"tally/internal/links"
)

// MustOpenStore opens a links.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *links.Store {
	t.Helper()

	store, err := links.Open(cfg)
	if err != nil {
		t.Fatalf("links.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
