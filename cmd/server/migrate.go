package main

import (
	"fmt"

	"github.com/mundipagg/gateway-core/internal/shared/config"
	"github.com/mundipagg/gateway-core/internal/shared/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(&cfg.Database, cfg.Log.Level == "debug")
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables\n", len(database.Models()))
	return nil
}
