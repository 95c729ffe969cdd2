package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/tagfiler/tagfiler/pkg/metastore/models"
)

// ============================================
// FILE-TAG LINK OPERATIONS
// ============================================

// TagExists verifies that a live tag with the given id exists.
// Returns ErrTagNotFound otherwise.
func (s *Store) TagExists(ctx context.Context, tagID uint) error {
	_, err := s.GetTag(ctx, tagID)
	return err
}

// AttachTag links a file record to a tag. Attaching an already-linked pair
// is a silent no-op; the composite primary key absorbs the duplicate.
func (s *Store) AttachTag(ctx context.Context, fileID, tagID uint) error {
	link := models.FileTag{FileID: fileID, TagID: tagID}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

// RecomputeTagUsage sets the tag's usage counter to the number of distinct
// live file records linked to it. Invoked once per attachment batch rather
// than once per file; the counter is a derived cache, never hand-edited.
func (s *Store) RecomputeTagUsage(ctx context.Context, tagID uint) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.FileTag{}).
		Joins("JOIN files ON files.id = file_tags.file_id").
		Where("file_tags.tag_id = ? AND files.deleted_at IS NULL", tagID).
		Distinct("file_tags.file_id").
		Count(&count).Error
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("id = ?", tagID).
		UpdateColumn("usage_count", count).Error
}

// ListTagIDsForFile returns the ids of all tags linked to a file record.
// Used by copy-time tag duplication.
func (s *Store) ListTagIDsForFile(ctx context.Context, fileID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.FileTag{}).
		Where("file_id = ?", fileID).
		Order("tag_id ASC").
		Pluck("tag_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
