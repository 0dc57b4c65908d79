package commands

import (
	"fmt"

	v1 "github.com/falcomnl/api-controller/internal/api/rest/v1"
	"github.com/falcomnl/api-controller/internal/infrastructure/persistence"

	"github.com/spf13/cobra"
)

// InitMigrateCommands registers the migrate command.
func InitMigrateCommands(rootCmd *cobra.Command) error {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  runMigrate,
	}
	rootCmd.AddCommand(cmd)
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := setupLogger(cfg)
	if err != nil {
		return err
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}
	defer func() { _ = persistence.CloseDB(db) }()

	if err := persistence.Migrate(db, v1.Models()...); err != nil {
		return err
	}

	log.Info("Database migrations completed successfully")
	return nil
}
