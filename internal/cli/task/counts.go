package task

import (
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
)

// CountsCmd returns the task counts subcommand
func CountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Show the number of tasks per project id",
		Long: `Show the number of tasks per project id, including ids of projects
that no longer exist. Projects without tasks are not listed.`,
		Args: cobra.NoArgs,
		RunE: runCounts,
	}

	cmd.Flags().Bool("refresh", false, "Ignore the local cache and fetch from the API")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCounts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	refresh, _ := cmd.Flags().GetBool("refresh")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	tasks := cliInstance.App.Tasks
	if err := cli.Load(ctx, tasks, refresh); err != nil {
		return formatter.Fail(err)
	}

	counts := tasks.CountByProject()
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return formatter.Success(counts, func(w io.Writer) error {
		if len(ids) == 0 {
			_, err := fmt.Fprintln(w, "No tasks found")
			return err
		}
		for _, id := range ids {
			fmt.Fprintf(w, "  %s: %d\n", id, counts[id])
		}
		return nil
	})
}
