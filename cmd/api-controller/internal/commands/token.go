package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/falcomnl/api-controller/pkg/controller"

	"github.com/spf13/cobra"
)

// InitTokenCommands registers the token command.
func InitTokenCommands(rootCmd *cobra.Command) error {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token signed with AUTH_JWT_SECRET",
		RunE:  runToken,
	}
	cmd.Flags().String("subject", "", "Token subject")
	cmd.Flags().StringSlice("abilities", []string{string(controller.AbilityViewAny), string(controller.AbilityView)},
		"Granted abilities (viewAny, view, create, update, delete, reorder), * for all")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(cmd)
	return nil
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is not set")
	}

	subject, _ := cmd.Flags().GetString("subject")
	abilities, _ := cmd.Flags().GetStringSlice("abilities")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	auth := controller.NewBearerAuthorizer(cfg.Auth.JWTSecret, controller.AbilityPolicy)
	token, err := auth.Issue(subject, abilities, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
