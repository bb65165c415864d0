package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	tea "charm.land/bubbletea/v2"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/app"
	"github.com/thenoetrevino/taskdeck/internal/board"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/metrics"
)

func boardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE:  runBoard,
	}

	cmd.Flags().String("metrics-addr", "", "Serve store metrics on this address while the board runs")

	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg := cli.ConfigFromContext(ctx)
	opts := []app.Option{}

	if metricsAddr, _ := cmd.Flags().GetString("metrics-addr"); metricsAddr != "" {
		reg := prom.NewRegistry()
		opts = append(opts, app.WithRecorder(metrics.NewPrometheusRecorder(reg)))

		metricsServer := &http.Server{Addr: metricsAddr, Handler: metrics.HTTPHandler(reg)}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			if err := metricsServer.Close(); err != nil {
				slog.Error("error closing metrics server", "error", err)
			}
		}()
	}

	a, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return &cli.CommandError{Code: cli.ExitError, Err: fmt.Errorf("failed to initialize app: %w", err)}
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("error closing app", "error", err)
		}
	}()

	model, err := board.New(ctx, a)
	if err != nil {
		return &cli.CommandError{Code: cli.ExitError, Err: err}
	}

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return &cli.CommandError{Code: cli.ExitError, Err: fmt.Errorf("error running board: %w", err)}
	}
	return nil
}
