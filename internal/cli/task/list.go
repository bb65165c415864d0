package task

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/cli/styles"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, optionally only those of one project.

Examples:
  taskdeck task list
  taskdeck task list --project 3f2c... --sort status
  taskdeck task list --project 3f2c... --sync --json
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("project", "", "Only tasks of this project id")
	cmd.Flags().Bool("sync", false, "Re-fetch the project's tasks from the API first (requires --project)")
	cmd.Flags().String("sort", "", "Sort key: "+strings.Join(models.TaskSortKeys, ", "))
	cmd.Flags().Bool("desc", false, "Sort descending")
	cmd.Flags().Bool("refresh", false, "Ignore the local cache and fetch from the API")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	projectID, _ := cmd.Flags().GetString("project")
	sync, _ := cmd.Flags().GetBool("sync")
	sortKey, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")
	refresh, _ := cmd.Flags().GetBool("refresh")

	if sync && projectID == "" {
		return formatter.Usage("--sync needs a project", "Pass --project <id> together with --sync")
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

	tasks := cliInstance.App.Tasks
	if err := cli.Load(ctx, tasks, refresh); err != nil {
		return formatter.Fail(err)
	}
	if sync {
		if err := tasks.SyncProject(ctx, projectID); err != nil {
			return formatter.Fail(err)
		}
	}

	var list []models.Task
	if projectID != "" {
		list = tasks.TasksByProject(projectID).Tasks()
	} else {
		list = tasks.Tasks()
	}
	if sortKey != "" {
		list, err = models.SortTasks(list, sortKey, desc)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	return formatter.Success(cli.List[models.Task](list), func(w io.Writer) error {
		return printTasks(w, list)
	})
}

func printTasks(w io.Writer, tasks []models.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found")
		return err
	}

	fmt.Fprintf(w, "Found %d tasks:\n\n", len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(w, "  [%s] %s %s", t.ID, t.Name, styles.RenderTaskStatus(t.Status))
		if t.Assignee != "" {
			fmt.Fprintf(w, " @%s", t.Assignee)
		}
		if t.DueDate != "" {
			fmt.Fprintf(w, " due %s", t.DueDate)
		}
		fmt.Fprintln(w)
	}
	return nil
}
