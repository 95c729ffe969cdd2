package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagfiler/tagfiler/internal/browse"
	"github.com/tagfiler/tagfiler/internal/fileops"
	"github.com/tagfiler/tagfiler/pkg/config"
	"github.com/tagfiler/tagfiler/pkg/metastore/store"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Remove metadata for files that no longer exist on disk",
	Long: `Scan all tracked file records and soft-delete the ones whose path no
longer exists on the filesystem.

Files are normally cleaned up when they are deleted through tagfiler,
but files removed by other programs leave stale records behind. Run
this periodically (or from cron) to keep the metadata store in sync
with the filesystem.`,
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	st, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize metadata store: %w", err)
	}
	defer func() { _ = st.Close() }()

	fs := browse.NewOSFilesystem()
	coordinator := fileops.NewCoordinator(fs, browse.NewResolver(), st, nil, cfg.FileOps.CopyTags)

	report, err := coordinator.Reconcile(context.Background())
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	fmt.Printf("Reconciliation complete: %d records scanned, %d stale records removed\n",
		report.Scanned, report.Removed)
	return nil
}
