package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/taskdeck/internal/app"
	"github.com/thenoetrevino/taskdeck/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App  *app.App // Application container with services and stores
	owns bool
}

// NewCLI builds the application container from cfg
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	application, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}

	return &CLI{App: application, owns: true}, nil
}

// GetCLIFromContext returns a CLI backed by the app stored in ctx (tests),
// or builds a new one from the config stored in ctx.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	return NewCLI(ctx, ConfigFromContext(ctx))
}

// Close cleans up CLI resources. An injected app is left open for its owner.
func (c *CLI) Close() error {
	if !c.owns {
		return nil
	}
	return c.App.Close()
}
