package store

import (
	"context"
	"strings"
	"time"

	"github.com/tagfiler/tagfiler/pkg/metastore/models"
)

// ============================================
// TAG OPERATIONS
// ============================================

// GetTag returns the live tag with the given id.
func (s *Store) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := live(s.db.WithContext(ctx)).Where("id = ?", id).First(&tag).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrTagNotFound)
	}
	return &tag, nil
}

// ListTags returns live tags ordered by the given mode. Ties are broken by
// ascending id so listings are deterministic. A non-positive limit falls
// back to the default.
func (s *Store) ListTags(ctx context.Context, limit int, order models.TagOrder) ([]models.Tag, error) {
	if limit <= 0 {
		limit = models.DefaultTagLimit
	}

	orderClause := "usage_count DESC, id ASC"
	if order == models.OrderRecentlyUsed {
		orderClause = "updated_at DESC, id ASC"
	}

	var tags []models.Tag
	err := live(s.db.WithContext(ctx)).
		Order(orderClause).
		Limit(limit).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// SearchTags returns live tags whose name contains the keyword,
// case-insensitively, ordered like OrderMostUsed.
func (s *Store) SearchTags(ctx context.Context, keyword string, limit int) ([]models.Tag, error) {
	if limit <= 0 {
		limit = models.DefaultTagLimit
	}

	var tags []models.Tag
	// LOWER() on both sides behaves identically on SQLite and PostgreSQL,
	// unlike LIKE whose case sensitivity differs between them.
	err := live(s.db.WithContext(ctx)).
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(keyword)+"%").
		Order("usage_count DESC, id ASC").
		Limit(limit).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag creates a tag with the given name and default appearance.
// The name is trimmed first; an empty result is rejected, and a name
// collision with a live tag returns ErrDuplicateTag.
func (s *Store) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrEmptyTagName
	}

	var count int64
	if err := live(s.db.WithContext(ctx).Model(&models.Tag{})).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.ErrDuplicateTag
	}

	color := models.DefaultTagColor
	fontColor := models.DefaultTagFontColor
	tag := models.Tag{
		Name:      name,
		Color:     &color,
		FontColor: &fontColor,
	}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		// The pre-check races with concurrent creates; the unique index
		// is the real arbiter.
		if isUniqueConstraintError(err) {
			return nil, models.ErrDuplicateTag
		}
		return nil, err
	}
	return &tag, nil
}

// ModifyTag applies a partial update to a live tag. Unset fields are left
// alone, Null fields are cleared, Set fields are written. When the update
// changes nothing the current row is returned without a write, so
// updated_at is not bumped.
func (s *Store) ModifyTag(ctx context.Context, id uint, upd models.TagUpdate) (*models.Tag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, models.ErrEmptyTagName
		}
		if name != tag.Name {
			var count int64
			if err := live(s.db.WithContext(ctx).Model(&models.Tag{})).
				Where("name = ? AND id <> ?", name, id).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, models.ErrDuplicateTag
			}
			changes["name"] = name
		}
	}
	if !upd.Color.IsUnset() && !strPtrEqual(tag.Color, upd.Color.Ptr()) {
		changes["color"] = upd.Color.Ptr()
	}
	if !upd.FontColor.IsUnset() && !strPtrEqual(tag.FontColor, upd.FontColor.Ptr()) {
		changes["font_color"] = upd.FontColor.Ptr()
	}
	if !upd.ParentID.IsUnset() && !uintPtrEqual(tag.ParentID, upd.ParentID.Ptr()) {
		changes["parent_id"] = upd.ParentID.Ptr()
	}

	if len(changes) == 0 {
		return tag, nil
	}

	changes["updated_at"] = time.Now().UTC()
	err = s.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.ErrDuplicateTag
		}
		return nil, err
	}

	return s.GetTag(ctx, id)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
