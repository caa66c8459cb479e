package main

import (
	"github.com/spf13/cobra"

	"post-board-service/internal/infrastructure/outbound/repository/migrator"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or revert the database schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(migrator.Up), string(migrator.Down)},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if err := runMigrations(cfg, log, migrator.Direction(args[0])); err != nil {
		return err
	}
	cmd.Printf("Migration %s complete (%s).\n", args[0], cfg.Storage.Driver)
	return nil
}
