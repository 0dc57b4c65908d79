// Package main is the entry point for the api-controller application.
// It registers the serve, migrate, routes and token sub-commands and
// executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/falcomnl/api-controller/cmd/api-controller/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "api-controller",
		Short: "Example REST API built on the generic resource controller",
		Long: `api-controller serves a blog API (authors, posts, comments) whose
endpoints are generic resource controllers with query-string filtering,
sorting, includes, sparse fieldsets and pagination.

Configuration is read from the environment and an optional dotenv file
(--env-file). See SERVER_*, DB_*, LOG_* and AUTH_* variables.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String(commands.EnvFileFlag, ".env", "Path to a dotenv file")

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitServeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize serve commands: %w", err)
	}

	if err := commands.InitMigrateCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize migrate commands: %w", err)
	}

	if err := commands.InitRoutesCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize routes commands: %w", err)
	}

	if err := commands.InitTokenCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize token commands: %w", err)
	}
	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
