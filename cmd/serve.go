package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskdeck/internal/cli"
	"github.com/thenoetrevino/taskdeck/internal/database"
	"github.com/thenoetrevino/taskdeck/internal/logging"
	"github.com/thenoetrevino/taskdeck/internal/metrics"
	"github.com/thenoetrevino/taskdeck/internal/server"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development REST API on a sqlite database",
		Long: `Run the REST API the stores talk to, backed by a local sqlite file.
Prometheus metrics are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default from config, :3000)")
	cmd.Flags().String("db", "", "Database path, or :memory: (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := cli.ConfigFromContext(cmd.Context())
	addr := cfg.Server.Addr
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		addr = v
	}
	dbPath := cfg.Server.DBPath
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		dbPath = v
	}

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger := logging.New(cmd.ErrOrStderr(), level)

	db, err := database.InitDB(ctx, dbPath)
	if err != nil {
		return &cli.CommandError{Code: cli.ExitError, Err: err}
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := server.New(addr, database.NewRepository(db),
		server.WithLogger(logger),
		server.WithMetrics(metrics.NewPrometheusRecorder(reg), reg),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			return &cli.CommandError{Code: cli.ExitError, Err: fmt.Errorf("server error: %w", err)}
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down api server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return &cli.CommandError{Code: cli.ExitError, Err: err}
	}
	return <-errCh
}
