package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/collections_app/internal/platform/config"
	"github.com/SscSPs/collections_app/pkg/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply every pending "up" migration from MIGRATIONS_PATH to the database at PGSQL_URL.

Examples:
  collectionsctl migrate
  MIGRATIONS_PATH=file:///srv/migrations collectionsctl migrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, slog.Default())
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No new migrations to apply")
			}
			return nil
		},
	}
}
