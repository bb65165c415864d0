package project

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Long:  "Delete a project. Its tasks are not deleted and keep their project id.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	id := args[0]

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

	if err := cliInstance.App.Projects.Delete(ctx, id); err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(map[string]string{"id": id}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Project %s deleted\n", id)
		return err
	})
}
