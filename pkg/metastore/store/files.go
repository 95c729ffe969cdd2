package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tagfiler/tagfiler/pkg/metastore/models"
)

// ============================================
// FILE RECORD OPERATIONS
// ============================================

// GetFileByPath returns the live file record at the given path.
func (s *Store) GetFileByPath(ctx context.Context, path string) (*models.FileRecord, error) {
	var rec models.FileRecord
	err := live(s.db.WithContext(ctx)).Where("current_path = ?", path).First(&rec).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrFileRecordNotFound)
	}
	return &rec, nil
}

// GetOrCreateFile returns the id of the file record at path, creating the
// record if none exists.
//
// A live record is returned as-is: its stored type and size are not
// refreshed on lookup. When no live record exists the insert may still
// collide with a soft-deleted row at the same path; that row is then
// resurrected in place — type and size refreshed, deleted_at cleared —
// keeping its original id. Both backends render the upsert natively
// (INSERT ... ON CONFLICT DO UPDATE), so the two-path behavior is a single
// statement here.
func (s *Store) GetOrCreateFile(ctx context.Context, path string, fileType models.FileType, fileSize int64) (uint, error) {
	if !fileType.IsValid() {
		return 0, models.ErrInvalidFileType
	}

	if rec, err := s.GetFileByPath(ctx, path); err == nil {
		return rec.ID, nil
	} else if !errors.Is(err, models.ErrFileRecordNotFound) {
		return 0, err
	}

	rec := models.FileRecord{
		CurrentPath: path,
		FileType:    fileType,
		FileSize:    fileSize,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "current_path"}},
			DoUpdates: clause.Assignments(map[string]any{
				"file_type":  fileType,
				"file_size":  fileSize,
				"deleted_at": nil,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&rec).Error
	if err != nil {
		return 0, err
	}

	// The driver-reported id is unreliable on the conflict path, so read
	// the row back by its unique path.
	resolved, err := s.GetFileByPath(ctx, path)
	if err != nil {
		return 0, err
	}
	return resolved.ID, nil
}

// RenameFilePath rewrites the stored path of the live record at oldPath.
// Paths that were never tagged have no record; that case is a silent no-op.
//
// A soft-deleted record may still occupy newPath (the file there was
// deleted earlier); the unique index spans deleted rows, so that occupant
// is purged together with its links before the path is rewritten. Its
// tagging history belongs to a file that no longer exists and is being
// replaced, not resurrected.
func (s *Store) RenameFilePath(ctx context.Context, oldPath, newPath string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dead models.FileRecord
		err := tx.Where("current_path = ? AND deleted_at IS NOT NULL", newPath).
			First(&dead).Error
		switch {
		case err == nil:
			if err := tx.Where("file_id = ?", dead.ID).
				Delete(&models.FileTag{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&dead).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		return live(tx.Model(&models.FileRecord{})).
			Where("current_path = ?", oldPath).
			Updates(map[string]any{
				"current_path": newPath,
				"updated_at":   time.Now().UTC(),
			}).Error
	})
}

// SoftDeleteFiles marks the live records at the given paths as deleted.
// Paths with no live record are skipped silently.
func (s *Store) SoftDeleteFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return live(s.db.WithContext(ctx).Model(&models.FileRecord{})).
		Where("current_path IN ?", paths).
		Updates(map[string]any{
			"deleted_at": now,
			"updated_at": now,
		}).Error
}

// ListLiveFiles returns every live file record. Used by the reconciliation
// scan to detect records whose path no longer exists on disk.
func (s *Store) ListLiveFiles(ctx context.Context) ([]models.FileRecord, error) {
	var recs []models.FileRecord
	if err := live(s.db.WithContext(ctx)).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
