// Package cachecmd holds the commands that inspect and clear the local cache
//
// e.g., taskdeck cache ...
package cachecmd

import (
	"fmt"
	"io"
	"log"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/cli"
)

var entityKeys = []string{cache.KeyProjects, cache.KeyTasks, cache.KeyWorkers}

// CacheCmd returns the cache parent command
func CacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local cache",
	}

	cmd.AddCommand(KeysCmd())
	cmd.AddCommand(ClearCmd())

	return cmd
}

// KeysCmd returns the cache keys subcommand
func KeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the cached collections",
		Args:  cobra.NoArgs,
		RunE:  runKeys,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runKeys(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	keys, err := cliInstance.App.Cache.Keys(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(keys, func(w io.Writer) error {
		if len(keys) == 0 {
			_, err := fmt.Fprintln(w, "Cache is empty")
			return err
		}
		for _, key := range keys {
			fmt.Fprintf(w, "  %s\n", key)
		}
		return nil
	})
}

// ClearCmd returns the cache clear subcommand
func ClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear [projects|tasks|workers]...",
		Short: "Drop cached collections",
		Long: `Drop cached collections so the next read fetches from the API.
Without arguments every collection is dropped.

Examples:
  taskdeck cache clear
  taskdeck cache clear tasks
`,
		RunE: runClear,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	keys := args
	if len(keys) == 0 {
		keys = entityKeys
	}
	for _, key := range keys {
		if !slices.Contains(entityKeys, key) {
			return formatter.Usage(
				fmt.Sprintf("unknown collection %q", key),
				"Use one of: "+strings.Join(entityKeys, ", "),
			)
		}
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	for _, key := range keys {
		if err := cliInstance.App.Cache.Clear(ctx, key); err != nil {
			return formatter.Fail(err)
		}
	}

	return formatter.Success(keys, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Cleared %s\n", strings.Join(keys, ", "))
		return err
	})
}
