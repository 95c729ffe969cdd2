// Package fileops orchestrates filesystem mutations together with the
// metadata updates they imply. Physical changes are applied first; a
// metadata failure after them surfaces to the caller but is never rolled
// back, so metadata may lag filesystem truth until the next corrective
// call or a reconcile run.
package fileops

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tagfiler/tagfiler/internal/browse"
	"github.com/tagfiler/tagfiler/internal/logger"
	"github.com/tagfiler/tagfiler/pkg/metastore/models"
	"github.com/tagfiler/tagfiler/pkg/metastore/store"
	"github.com/tagfiler/tagfiler/pkg/metrics"
)

// Operation names used in logs and metrics labels.
const (
	OpMove   = "move"
	OpCopy   = "copy"
	OpRename = "rename"
	OpDelete = "delete"
	OpAttach = "attach_tags"
)

// Coordinator runs batch file operations. Batches process their paths
// strictly sequentially; the first failing item aborts the remainder and
// already-completed items stay applied.
type Coordinator struct {
	fs       browse.FS
	resolver *browse.Resolver
	store    *store.Store
	metrics  *metrics.Metrics
	copyTags bool
}

// NewCoordinator builds a Coordinator. copyTags enables duplication of tag
// links onto copy destinations; it is off by default.
func NewCoordinator(fs browse.FS, resolver *browse.Resolver, st *store.Store, m *metrics.Metrics, copyTags bool) *Coordinator {
	return &Coordinator{
		fs:       fs,
		resolver: resolver,
		store:    st,
		metrics:  m,
		copyTags: copyTags,
	}
}

// Move relocates each path into targetDir and propagates the path change
// to the metadata store per item.
func (c *Coordinator) Move(ctx context.Context, paths []string, targetDir string) error {
	return c.run(OpMove, len(paths), func(log *slogAdapter) error {
		targetDir = c.resolver.Normalize(targetDir)
		if err := c.requireDirectory(targetDir); err != nil {
			return err
		}

		for _, src := range paths {
			src = c.resolver.Normalize(src)
			dst, err := c.destinationFor(src, targetDir)
			if err != nil {
				return err
			}
			if err := c.fs.Move(src, dst); err != nil {
				return err
			}
			log.info("moved", logger.KeyOldPath, src, logger.KeyNewPath, dst)
			if err := c.store.RenameFilePath(ctx, src, dst); err != nil {
				return fmt.Errorf("update metadata for %s: %w", src, err)
			}
		}
		return nil
	})
}

// Copy duplicates each path into targetDir. Directories are copied
// recursively with dot-entries skipped. When tag copying is enabled the
// destination paths are linked to the source rows' tags and the affected
// usage counters recomputed.
func (c *Coordinator) Copy(ctx context.Context, paths []string, targetDir string) error {
	return c.run(OpCopy, len(paths), func(log *slogAdapter) error {
		targetDir = c.resolver.Normalize(targetDir)
		if err := c.requireDirectory(targetDir); err != nil {
			return err
		}

		touched := make(map[uint]struct{})
		for _, src := range paths {
			src = c.resolver.Normalize(src)
			dst, err := c.destinationFor(src, targetDir)
			if err != nil {
				return err
			}
			if c.fs.IsDir(src) {
				err = c.fs.CopyDirRecursive(src, dst)
			} else {
				err = c.fs.CopyFile(src, dst)
			}
			if err != nil {
				return err
			}
			log.info("copied", logger.KeyOldPath, src, logger.KeyNewPath, dst)

			if c.copyTags {
				if err := c.duplicateTags(ctx, src, dst, touched); err != nil {
					return fmt.Errorf("copy tags for %s: %w", src, err)
				}
			}
		}

		for tagID := range touched {
			if err := c.store.RecomputeTagUsage(ctx, tagID); err != nil {
				return err
			}
		}
		return nil
	})
}

// Rename gives the entry at oldPath the new base name. The physical rename
// and the metadata propagation are both attempted; a metadata failure after
// a successful rename surfaces without undoing the rename.
func (c *Coordinator) Rename(ctx context.Context, oldPath, newName string) error {
	return c.run(OpRename, 1, func(log *slogAdapter) error {
		newName = strings.TrimSpace(newName)
		if newName == "" || strings.ContainsAny(newName, `/\`) {
			return fmt.Errorf("%w: %q", ErrInvalidName, newName)
		}

		oldPath = c.resolver.Normalize(oldPath)
		if !c.fs.Exists(oldPath) {
			return fmt.Errorf("%w: %s", ErrNotFound, oldPath)
		}
		newPath := filepath.Join(filepath.Dir(oldPath), newName)
		if c.fs.Exists(newPath) {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, newPath)
		}

		fsErr := c.fs.Move(oldPath, newPath)
		if fsErr == nil {
			log.info("renamed", logger.KeyOldPath, oldPath, logger.KeyNewPath, newPath)
		}
		// Metadata propagation runs regardless of the filesystem outcome.
		metaErr := c.store.RenameFilePath(ctx, oldPath, newPath)
		if fsErr != nil {
			return fsErr
		}
		if metaErr != nil {
			return fmt.Errorf("update metadata for %s: %w", oldPath, metaErr)
		}
		return nil
	})
}

// Delete physically removes each path, then soft-deletes the whole batch's
// file records in one call.
func (c *Coordinator) Delete(ctx context.Context, paths []string) error {
	return c.run(OpDelete, len(paths), func(log *slogAdapter) error {
		normalized := make([]string, 0, len(paths))
		for _, p := range paths {
			p = c.resolver.Normalize(p)
			if !c.fs.Exists(p) {
				return fmt.Errorf("%w: %s", ErrNotFound, p)
			}
			normalized = append(normalized, p)
		}

		for _, p := range normalized {
			var err error
			if c.fs.IsDir(p) {
				err = c.fs.RemoveDirRecursive(p)
			} else {
				err = c.fs.RemoveFile(p)
			}
			if err != nil {
				return err
			}
			log.info("deleted", logger.KeyPath, p)
		}

		if err := c.store.SoftDeleteFiles(ctx, normalized); err != nil {
			return fmt.Errorf("soft delete metadata: %w", err)
		}
		return nil
	})
}

// AttachTags links every path to tagID, creating or resurrecting file
// records as needed, and recomputes the tag's usage counter once.
func (c *Coordinator) AttachTags(ctx context.Context, paths []string, tagID uint) error {
	return c.run(OpAttach, len(paths), func(log *slogAdapter) error {
		if err := c.store.TagExists(ctx, tagID); err != nil {
			return err
		}

		for _, p := range paths {
			p = c.resolver.Normalize(p)
			if !c.fs.Exists(p) {
				return fmt.Errorf("%w: %s", ErrNotFound, p)
			}
			entry, err := c.fs.Stat(p)
			if err != nil {
				return err
			}
			fileType, size := models.FileTypeFile, entry.Size
			if entry.IsDir {
				fileType, size = models.FileTypeFolder, 0
			}
			fileID, err := c.store.GetOrCreateFile(ctx, p, fileType, size)
			if err != nil {
				return err
			}
			if err := c.store.AttachTag(ctx, fileID, tagID); err != nil {
				return err
			}
			log.info("tag attached", logger.KeyPath, p, logger.KeyFileID, fileID, logger.KeyTagID, tagID)
		}

		return c.store.RecomputeTagUsage(ctx, tagID)
	})
}

// destinationFor validates src and computes its destination inside
// targetDir.
func (c *Coordinator) destinationFor(src, targetDir string) (string, error) {
	if !c.fs.Exists(src) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, src)
	}
	dst := filepath.Join(targetDir, filepath.Base(src))
	if c.fs.Exists(dst) {
		return "", fmt.Errorf("%w: %s", ErrAlreadyExists, dst)
	}
	return dst, nil
}

func (c *Coordinator) requireDirectory(path string) error {
	if !c.fs.Exists(path) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if !c.fs.IsDir(path) {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return nil
}

// duplicateTags links dst to every tag of the existing record at src.
// Paths without a record are skipped. Affected tag ids accumulate in
// touched for a single recompute pass after the batch.
func (c *Coordinator) duplicateTags(ctx context.Context, src, dst string, touched map[uint]struct{}) error {
	rec, err := c.store.GetFileByPath(ctx, src)
	if err != nil {
		if errors.Is(err, models.ErrFileRecordNotFound) {
			return nil
		}
		return err
	}
	tagIDs, err := c.store.ListTagIDsForFile(ctx, rec.ID)
	if err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	dstID, err := c.store.GetOrCreateFile(ctx, dst, rec.FileType, rec.FileSize)
	if err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if err := c.store.AttachTag(ctx, dstID, tagID); err != nil {
			return err
		}
		touched[tagID] = struct{}{}
	}
	return nil
}

// run wraps a batch with a batch id, timing, logging and metrics.
func (c *Coordinator) run(op string, count int, fn func(log *slogAdapter) error) error {
	batchID := uuid.NewString()
	log := &slogAdapter{batchID: batchID, op: op}
	start := time.Now()

	log.info("batch started", logger.KeyCount, count)
	err := fn(log)
	duration := time.Since(start)

	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusError
		log.errorf("batch failed", err, logger.KeyDurationMS, logger.Duration(start))
	} else {
		log.info("batch completed", logger.KeyDurationMS, logger.Duration(start))
	}
	c.metrics.ObserveFileOperation(op, status, duration)
	return err
}

// slogAdapter stamps every batch log line with the batch id and operation.
type slogAdapter struct {
	batchID string
	op      string
}

func (l *slogAdapter) info(msg string, args ...any) {
	logger.Info(msg, append([]any{logger.KeyBatchID, l.batchID, logger.KeyOperation, l.op}, args...)...)
}

func (l *slogAdapter) errorf(msg string, err error, args ...any) {
	args = append(args, logger.KeyError, err.Error())
	logger.Error(msg, append([]any{logger.KeyBatchID, l.batchID, logger.KeyOperation, l.op}, args...)...)
}
