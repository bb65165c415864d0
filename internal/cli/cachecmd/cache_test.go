package cachecmd

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/testutil"
	cliutil "github.com/thenoetrevino/taskdeck/internal/testutil/cli"
)

func TestKeysAndClear(t *testing.T) {
	testApp, repo := cliutil.SetupCLITest(t)
	testutil.CreateTestProject(t, repo, "One")

	ctx := context.Background()
	testApp.Projects.FetchAll(ctx)
	testApp.Tasks.FetchAll(ctx)

	res := cliutil.ExecuteCLICommand(t, testApp, KeysCmd(), []string{"--quiet"})
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"projects", "tasks"}, strings.Fields(res.Stdout))

	res = cliutil.ExecuteCLICommand(t, testApp, ClearCmd(), []string{"tasks"})
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Cleared tasks")

	keys, err := testApp.Cache.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"projects"}, keys)

	res = cliutil.ExecuteCLICommand(t, testApp, ClearCmd(), nil)
	require.NoError(t, res.Err)

	res = cliutil.ExecuteCLICommand(t, testApp, KeysCmd(), nil)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Cache is empty")
}

func TestClear_UnknownCollection(t *testing.T) {
	testApp, _ := cliutil.SetupCLITest(t)

	res := cliutil.ExecuteCLICommand(t, testApp, ClearCmd(), []string{"labels", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(res.Err))
	out := cliutil.ParseJSON(t, res.Stdout)
	assert.Equal(t, "USAGE_ERROR", out["error"].(map[string]any)["code"])
}
