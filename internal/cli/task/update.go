package task

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	taskservice "github.com/thenoetrevino/taskdeck/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Long: `Update the given fields of a task. Fields that are not passed are left as they are.

Examples:
  taskdeck task update 9a1b... --status=Done
  taskdeck task update 9a1b... --project=3f2c... --position=2
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("project", "", "Move the task to this project id")
	cmd.Flags().String("name", "", "New task name")
	cmd.Flags().String("assignee", "", "New assignee")
	cmd.Flags().String("status", "", "New status: To Do, In Progress or Done")
	cmd.Flags().String("due", "", "New due date")
	cmd.Flags().Float64("position", 0, "New ordering hint")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	id := args[0]

	req := taskservice.UpdateTaskRequest{
		ProjectID: cli.OptionalString(cmd, "project"),
		Name:      cli.OptionalString(cmd, "name"),
		Assignee:  cli.OptionalString(cmd, "assignee"),
		DueDate:   cli.OptionalString(cmd, "due"),
	}
	if raw := cli.OptionalString(cmd, "status"); raw != nil {
		status, err := models.ParseTaskStatus(*raw)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Status = &status
	}
	if cmd.Flags().Changed("position") {
		position, _ := cmd.Flags().GetFloat64("position")
		req.Position = &position
	}
	if req == (taskservice.UpdateTaskRequest{}) {
		return formatter.Usage("nothing to update", "Pass at least one of --project, --name, --assignee, --status, --due, --position")
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

	cliInstance.App.Tasks.FetchAll(ctx)

	task, err := cliInstance.App.Tasks.Update(ctx, id, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(task, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Task '%s' updated (status: %s)\n", task.Name, task.Status)
		return err
	})
}
