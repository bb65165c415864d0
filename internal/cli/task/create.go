package task

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/cli/forms"
	"github.com/thenoetrevino/taskdeck/internal/models"
	taskservice "github.com/thenoetrevino/taskdeck/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task in a project. Without --project or --name, a terminal
session opens a form instead.

Examples:
  # Simple task
  taskdeck task create --project=3f2c... --name="Write docs"

  # Quiet mode for bash capture
  TASK_ID=$(taskdeck task create --project=$PROJECT_ID --name="Ship" --quiet)

  # Fully specified
  taskdeck task create --project=3f2c... --name="Review" \
    --assignee=ana --status="In Progress" --due=2024-06-01 --position=1.5
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	// Required flags, prompted for in a terminal
	cmd.Flags().String("project", "", "Project id (required)")
	cmd.Flags().String("name", "", "Task name (required)")

	// Optional flags
	cmd.Flags().String("assignee", "", "Assignee")
	cmd.Flags().String("status", "", "To Do, In Progress or Done (default To Do)")
	cmd.Flags().String("due", "", "Due date")
	cmd.Flags().Float64("position", 0, "Ordering hint")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	projectID, _ := cmd.Flags().GetString("project")
	name, _ := cmd.Flags().GetString("name")
	assignee, _ := cmd.Flags().GetString("assignee")
	due, _ := cmd.Flags().GetString("due")
	statusFlag, _ := cmd.Flags().GetString("status")

	missing := cli.MissingFlags(cmd, "project", "name")
	if len(missing) > 0 && !cli.CanPrompt(cmd) {
		return cli.RequiredFlagsError(formatter, missing)
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
	a := cliInstance.App

	if len(missing) > 0 {
		input := forms.TaskInput{ProjectID: projectID, Name: name, Assignee: assignee, Status: statusFlag, DueDate: due}
		if err := cli.Load(ctx, a.Projects, false); err != nil {
			return formatter.Fail(err)
		}
		err := forms.Run(forms.TaskForm(&input, a.Projects.Projects()), a.Config.ColorScheme, &input.Confirm)
		if errors.Is(err, forms.ErrCancelled) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
			return nil
		}
		if err != nil {
			return formatter.Fail(err)
		}
		projectID, name, assignee, statusFlag, due = input.ProjectID, input.Name, input.Assignee, input.Status, input.DueDate
	}

	req := taskservice.CreateTaskRequest{
		ProjectID: projectID,
		Name:      name,
		Assignee:  assignee,
		DueDate:   due,
	}
	if statusFlag != "" {
		status, err := models.ParseTaskStatus(statusFlag)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Status = status
	}
	if cmd.Flags().Changed("position") {
		position, _ := cmd.Flags().GetFloat64("position")
		req.Position = &position
	}

	// Populate first so the snapshot written after the add is complete
	a.Tasks.FetchAll(ctx)

	task, err := a.Tasks.Add(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(task, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Task '%s' created successfully (ID: %s)\n", task.Name, task.ID)
		return err
	})
}
