package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/testutil"
)

// setupEnv points the whole command tree at a test API with a memory cache
func setupEnv(t *testing.T) string {
	t.Helper()
	srv, repo := testutil.NewAPIServer(t)
	dir := t.TempDir()

	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("TASKDECK_API_URL", srv.URL)
	t.Setenv("TASKDECK_CACHE_BACKEND", "memory")
	t.Setenv("TASKDECK_LOG_PATH", filepath.Join(dir, "taskdeck.log"))

	return testutil.CreateTestProject(t, repo, "Seeded")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_ProjectListJSON(t *testing.T) {
	id := setupEnv(t)

	out, err := run(t, "project", "list", "--json")
	require.NoError(t, err, out)

	var got struct {
		Success bool `json:"success"`
		Data    []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Success)
	require.Len(t, got.Data, 1)
	assert.Equal(t, id, got.Data[0].ID)
}

func TestRoot_ExitCodes(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "project", "show", "missing")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeOf(err))

	_, err = run(t, "project", "create")
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))

	_, err = run(t, "nope")
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
}

func TestRoot_ConfigFlag(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  backend: redis\n"), 0o644))

	// The environment wins over the file, so clear the backend override
	t.Setenv("TASKDECK_CACHE_BACKEND", "")

	_, err := run(t, "--config", path, "project", "list")
	assert.Equal(t, cli.ExitDataErr, cli.ExitCodeOf(err))
}

func TestRoot_Subcommands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"project", "task", "worker", "cache", "serve", "board"} {
		assert.Contains(t, names, want)
	}
}
