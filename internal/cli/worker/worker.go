// Package worker holds all cli commands related to workers
//
// e.g., taskdeck worker ...
package worker

import (
	"fmt"
	"io"
	"log"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/models"
	workerservice "github.com/thenoetrevino/taskdeck/internal/services/worker"
)

// WorkerCmd returns the worker parent command
func WorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage workers",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// ListCmd returns the worker list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workers",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().Bool("refresh", false, "Ignore the local cache and fetch from the API")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	workers := cliInstance.App.Workers
	if err := cli.Load(ctx, workers, refresh); err != nil {
		return formatter.Fail(err)
	}
	list := workers.Workers()

	return formatter.Success(cli.List[models.Worker](list), func(w io.Writer) error {
		if len(list) == 0 {
			_, err := fmt.Fprintln(w, "No workers found")
			return err
		}
		fmt.Fprintf(w, "Found %d workers:\n\n", len(list))
		for _, wk := range list {
			fmt.Fprintf(w, "  [%s] %s", wk.ID, wk.Name)
			if wk.Role != "" {
				fmt.Fprintf(w, " (%s)", wk.Role)
			}
			for _, key := range slices.Sorted(maps.Keys(wk.Extra)) {
				fmt.Fprintf(w, " %s=%s", key, wk.Extra[key])
			}
			fmt.Fprintln(w)
		}
		return nil
	})
}

// CreateCmd returns the worker create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a worker",
		Long: `Create a worker. Extra attributes are passed as --field key=value and
are stored as-is; values that parse as JSON keep their type.

Examples:
  taskdeck worker create --name=ana --role=dev
  taskdeck worker create --name=bo --field email=bo@example.com --field capacity=3
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Worker name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("role", "", "Worker role")
	cmd.Flags().StringArray("field", nil, "Extra attribute as key=value (repeatable)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	name, _ := cmd.Flags().GetString("name")
	role, _ := cmd.Flags().GetString("role")
	pairs, _ := cmd.Flags().GetStringArray("field")

	fields, err := cli.ParseFields(pairs)
	if err != nil {
		return formatter.Fail(err)
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

	cliInstance.App.Workers.FetchAll(ctx)

	wk, err := cliInstance.App.Workers.Add(ctx, workerservice.CreateWorkerRequest{Name: name, Role: role, Fields: fields})
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(wk, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Worker '%s' created successfully (ID: %s)\n", wk.Name, wk.ID)
		return err
	})
}

// UpdateCmd returns the worker update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a worker",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("role", "", "New role")
	cmd.Flags().StringArray("field", nil, "Extra attribute as key=value (repeatable)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	id := args[0]

	pairs, _ := cmd.Flags().GetStringArray("field")
	fields, err := cli.ParseFields(pairs)
	if err != nil {
		return formatter.Fail(err)
	}
	req := workerservice.UpdateWorkerRequest{
		Name:   cli.OptionalString(cmd, "name"),
		Role:   cli.OptionalString(cmd, "role"),
		Fields: fields,
	}
	if req.Name == nil && req.Role == nil && len(req.Fields) == 0 {
		return formatter.Usage("nothing to update", "Pass at least one of --name, --role, --field")
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

	cliInstance.App.Workers.FetchAll(ctx)

	wk, err := cliInstance.App.Workers.Update(ctx, id, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(wk, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Worker '%s' updated\n", wk.Name)
		return err
	})
}

// DeleteCmd returns the worker delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a worker",
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

	cliInstance.App.Workers.FetchAll(ctx)

	if err := cliInstance.App.Workers.Delete(ctx, id); err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(map[string]string{"id": id}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Worker %s deleted\n", id)
		return err
	})
}
