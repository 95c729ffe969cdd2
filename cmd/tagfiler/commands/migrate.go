package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagfiler/tagfiler/pkg/config"
	"github.com/tagfiler/tagfiler/pkg/metastore/models"
	"github.com/tagfiler/tagfiler/pkg/metastore/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations for the configured metadata store.

This creates or updates the tags, files and file_tags tables in
the configured database (SQLite or PostgreSQL). It is safe to run
multiple times; migrations are idempotent.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	fmt.Printf("Running migrations (database type: %s)...\n", cfg.Database.Type)

	// Opening the store triggers auto-migration.
	st, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer func() { _ = st.Close() }()

	// Probe query to verify the schema is usable.
	if _, err := st.ListTags(context.Background(), 1, models.OrderMostUsed); err != nil {
		return fmt.Errorf("migration verification failed: %w", err)
	}

	fmt.Printf("Migrations completed successfully (database type: %s)\n", st.Type())
	return nil
}
