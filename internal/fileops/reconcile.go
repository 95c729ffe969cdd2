package fileops

import (
	"context"
	"fmt"

	"github.com/tagfiler/tagfiler/internal/logger"
)

// ReconcileReport summarizes one reconciliation run.
type ReconcileReport struct {
	Scanned int
	Removed int
}

// Reconcile walks the live file records and soft-deletes those whose path
// no longer exists on disk. A record pointing at a vanished path is a
// valid state, not corruption; this scan is how it gets detected and
// repaired.
func (c *Coordinator) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	records, err := c.store.ListLiveFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list file records: %w", err)
	}

	report := &ReconcileReport{Scanned: len(records)}
	var stale []string
	for _, rec := range records {
		if !c.fs.Exists(rec.CurrentPath) {
			stale = append(stale, rec.CurrentPath)
		}
	}
	if len(stale) > 0 {
		if err := c.store.SoftDeleteFiles(ctx, stale); err != nil {
			return nil, fmt.Errorf("soft delete stale records: %w", err)
		}
		report.Removed = len(stale)
	}

	c.metrics.SetTrackedFiles(report.Scanned - report.Removed)
	c.metrics.AddReconciledRemoved(report.Removed)
	logger.Info("reconcile completed",
		logger.KeyCount, report.Scanned,
		"removed", report.Removed,
	)
	return report, nil
}
