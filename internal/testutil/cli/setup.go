package cli

import (
	"context"
	"testing"

	"github.com/thenoetrevino/taskdeck/internal/app"
	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/database"
	"github.com/thenoetrevino/taskdeck/internal/testutil"
)

// SetupCLITest starts an API server on an in-memory database and returns an
// app pointed at it, with a memory cache. The repository seeds test data.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles.
func SetupCLITest(t *testing.T) (*app.App, *database.Repository) {
	t.Helper()
	srv, repo := testutil.NewAPIServer(t)

	cfg := config.Default()
	cfg.API.BaseURL = srv.URL
	cfg.Cache.Backend = config.CacheBackendMemory

	appInstance, err := app.New(context.Background(), cfg, app.WithCacheBackend(cache.NewMemoryBackend()))
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	t.Cleanup(func() { _ = appInstance.Close() })

	return appInstance, repo
}
