package project

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects with their task counts",
		Long: `List all projects. Task counts are derived from the task collection.

Examples:
  taskdeck project list
  taskdeck project list --sort tasksCount --desc
  taskdeck project list --refresh --json
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("sort", "", "Sort key: "+strings.Join(models.ProjectSortKeys, ", "))
	cmd.Flags().Bool("desc", false, "Sort descending")
	cmd.Flags().Bool("refresh", false, "Ignore the local cache and fetch from the API")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	sortKey, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")
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

	a := cliInstance.App
	if err := cli.Load(ctx, a.Tasks, refresh); err != nil {
		return formatter.Fail(err)
	}
	if err := cli.Load(ctx, a.Projects, refresh); err != nil {
		return formatter.Fail(err)
	}

	projects := a.Projects.ProjectsWithCount()
	if sortKey != "" {
		projects, err = models.SortProjects(projects, sortKey, desc)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	return formatter.Success(cli.List[models.Project](projects), func(w io.Writer) error {
		return printProjects(w, projects)
	})
}

func printProjects(w io.Writer, projects []models.Project) error {
	if len(projects) == 0 {
		_, err := fmt.Fprintln(w, "No projects found")
		return err
	}

	fmt.Fprintf(w, "Found %d projects:\n\n", len(projects))
	for _, p := range projects {
		fmt.Fprintf(w, "  [%s] %s (%s, %d tasks)", p.ID, p.Name, p.Status, p.TasksCount)
		if p.Description != "" {
			fmt.Fprintf(w, " - %s", firstLine(p.Description))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
