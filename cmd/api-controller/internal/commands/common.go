package commands

import (
	"fmt"

	"github.com/falcomnl/api-controller/internal/pkg/config"
	"github.com/falcomnl/api-controller/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// EnvFileFlag is the persistent flag naming the dotenv file.
const EnvFileFlag = "env-file"

func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	envFile, err := cmd.Flags().GetString(EnvFileFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func setupLogger(cfg *config.AppConfig) (logger.Logger, error) {
	log, err := logger.ForApp(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
