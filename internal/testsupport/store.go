package testsupport

import (
	"testing"

	"switchyard/internal/config"
	"switchyard/internal/logging"
	"switchyard/internal/settings"
)

// MustOpenStore opens a settings.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *settings.Store {
	t.Helper()

	store, err := settings.NewStore(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("settings.NewStore: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
