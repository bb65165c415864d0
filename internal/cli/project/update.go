package project

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	projectservice "github.com/thenoetrevino/taskdeck/internal/services/project"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Long: `Update the given fields of a project. Fields that are not passed are left as they are.

Examples:
  taskdeck project update 3f2c... --status=Completed
  taskdeck project update 3f2c... --name="Backend" --description=""
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("name", "", "New project name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("status", "", "New status: Active, Archived or Completed")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	id := args[0]

	req := projectservice.UpdateProjectRequest{
		Name:        cli.OptionalString(cmd, "name"),
		Description: cli.OptionalString(cmd, "description"),
	}
	if raw := cli.OptionalString(cmd, "status"); raw != nil {
		status, err := models.ParseProjectStatus(*raw)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Status = &status
	}
	if req.Name == nil && req.Description == nil && req.Status == nil {
		return formatter.Usage("nothing to update", "Pass at least one of --name, --description, --status")
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

	cliInstance.App.Projects.FetchAll(ctx)

	project, err := cliInstance.App.Projects.Update(ctx, id, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(project, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Project '%s' updated (status: %s)\n", project.Name, project.Status)
		return err
	})
}
