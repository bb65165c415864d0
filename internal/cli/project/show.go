package project

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

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show project details",
		Long:  "Display a project with its task count and markdown-rendered description.",
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
	if err := cli.Load(ctx, a.Projects, refresh); err != nil {
		return formatter.Fail(err)
	}

	var project models.Project
	found := false
	for _, p := range a.Projects.ProjectsWithCount() {
		if p.ID == id {
			project, found = p, true
			break
		}
	}
	if !found {
		return formatter.Fail(fmt.Errorf("project %s: %w", id, cli.ErrNotFound))
	}

	return formatter.Success(project, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, renderProject(project))
		return err
	})
}

func renderProject(p models.Project) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(p.ID))
	b.WriteString("\n\n")
	b.WriteString(styles.RenderField("Status", string(p.Status)))
	b.WriteString("\n")
	b.WriteString(styles.RenderField("Tasks", fmt.Sprintf("%d", p.TasksCount)))
	b.WriteString("\n")
	if created := p.CreatedTime(); !created.IsZero() {
		b.WriteString(styles.RenderField("Created", created.Format("2006-01-02 15:04")))
		b.WriteString("\n")
	}
	b.WriteString(styles.SectionStyle.Render("Description"))
	b.WriteString("\n")
	b.WriteString(styles.RenderMarkdown(p.Description, styles.CardWidth-6))
	return styles.RenderCard(b.String())
}
