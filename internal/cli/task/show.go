package task

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/cli/styles"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().Bool("refresh", false, "Ignore the local cache and fetch from the API")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	id := args[0]
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
	task, ok := a.Tasks.GetTaskByID(id)
	if !ok {
		return formatter.Fail(fmt.Errorf("task %s: %w", id, cli.ErrNotFound))
	}

	// The project name is decoration only; a failed project load is not fatal
	projectName := task.ProjectID
	a.Projects.FetchAll(ctx)
	if p, ok := a.Projects.GetProjectByID(task.ProjectID); ok {
		projectName = p.Name
	}

	return formatter.Success(task, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, renderTask(task, projectName))
		return err
	})
}

func renderTask(t models.Task, projectName string) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(t.Name))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(t.ID))
	b.WriteString("\n\n")
	b.WriteString(styles.LabelStyle.Render("Status:") + " " + styles.RenderTaskStatus(t.Status))
	b.WriteString("\n")
	b.WriteString(styles.RenderField("Project", projectName))
	if t.Assignee != "" {
		b.WriteString("\n")
		b.WriteString(styles.RenderField("Assignee", t.Assignee))
	}
	if t.DueDate != "" {
		b.WriteString("\n")
		b.WriteString(styles.RenderField("Due", t.DueDate))
	}
	if t.Position != nil {
		b.WriteString("\n")
		b.WriteString(styles.RenderField("Position", strconv.FormatFloat(*t.Position, 'g', -1, 64)))
	}
	return styles.RenderCard(b.String())
}
