package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locvowork/hrrecords/internal/bootstrap"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hrctl",
		Short:        "Employee records API and maintenance tools",
		SilenceUsage: true,
	}
	cmd.AddCommand(newServeCmd(), newImportCmd(), newExportCmd(), newSeedCmd())
	return cmd
}

// initApp loads configuration and connects to PostgreSQL.
func initApp(ctx context.Context) (*bootstrap.App, error) {
	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return app, nil
}
