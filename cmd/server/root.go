package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"post-board-service/internal/infrastructure/config"
	"post-board-service/internal/infrastructure/logger"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:          "post-board",
	Short:        "Post board service",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./config", "directory containing config.yaml")
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.New(cfg.Env), nil
}
