package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/falcomnl/api-controller/internal/app"

	"github.com/spf13/cobra"
)

// InitServeCommands registers the serve command.
func InitServeCommands(rootCmd *cobra.Command) error {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE:  runServe,
	}
	rootCmd.AddCommand(cmd)
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := setupLogger(cfg)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("Failed to close database: ", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.Run(ctx)
}
