package project

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/cli/forms"
	"github.com/thenoetrevino/taskdeck/internal/models"
	projectservice "github.com/thenoetrevino/taskdeck/internal/services/project"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project with specified attributes.

Without --name, a terminal session opens a form instead.

Examples:
  # Simple project (human-readable output)
  taskdeck project create --name="Backend API"

  # JSON output for agents
  taskdeck project create --name="Backend API" --json

  # Quiet mode for bash capture
  PROJECT_ID=$(taskdeck project create --name="Backend API" --quiet)

  # With description and status
  taskdeck project create \
    --name="Backend API" \
    --description="REST API for mobile app" \
    --status=Archived
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	// Required flags, prompted for in a terminal
	cmd.Flags().String("name", "", "Project name (required)")

	// Optional flags
	cmd.Flags().String("description", "", "Project description (markdown)")
	cmd.Flags().String("status", "", "Active, Archived or Completed (default Active)")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	statusFlag, _ := cmd.Flags().GetString("status")

	if missing := cli.MissingFlags(cmd, "name"); len(missing) > 0 {
		if !cli.CanPrompt(cmd) {
			return cli.RequiredFlagsError(formatter, missing)
		}
		input := forms.ProjectInput{Description: description, Status: statusFlag}
		err := forms.Run(forms.ProjectForm(&input), cli.ConfigFromContext(ctx).ColorScheme, &input.Confirm)
		if errors.Is(err, forms.ErrCancelled) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
			return nil
		}
		if err != nil {
			return formatter.Fail(err)
		}
		name, description, statusFlag = input.Name, input.Description, input.Status
	}

	req := projectservice.CreateProjectRequest{Name: name, Description: description}
	if statusFlag != "" {
		status, err := models.ParseProjectStatus(statusFlag)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Status = status
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

	// Populate first so the snapshot written after the add is complete
	cliInstance.App.Projects.FetchAll(ctx)

	project, err := cliInstance.App.Projects.Add(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(project, func(w io.Writer) error {
		fmt.Fprintf(w, "✓ Project '%s' created successfully (ID: %s)\n", project.Name, project.ID)
		if project.Description != "" {
			fmt.Fprintf(w, "  Description: %s\n", project.Description)
		}
		return nil
	})
}
