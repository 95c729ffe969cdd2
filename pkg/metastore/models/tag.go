package models

import "time"

// Default appearance for newly created tags.
const (
	DefaultTagColor     = "#FFFF00"
	DefaultTagFontColor = "#000000"
)

// TagOrder selects the ordering of tag listings.
type TagOrder string

const (
	// OrderMostUsed orders by usage count, most used first.
	OrderMostUsed TagOrder = "most_used"
	// OrderRecentlyUsed orders by update time, most recent first.
	OrderRecentlyUsed TagOrder = "recently_used"
)

// IsValid checks if the order is a known TagOrder.
func (o TagOrder) IsValid() bool {
	return o == OrderMostUsed || o == OrderRecentlyUsed
}

// DefaultTagLimit is the listing/search limit applied when none is given.
const DefaultTagLimit = 10

// Tag is a named, colored label users attach to files and folders.
// Tags form a single-level hierarchy through ParentID.
//
// UsageCount is a derived cache: it always equals the number of distinct
// live file records linked to the tag and is recomputed after every
// link mutation, never edited directly.
type Tag struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Color      *string    `gorm:"size:32" json:"color"`
	FontColor  *string    `gorm:"size:32" json:"font_color"`
	ParentID   *uint      `gorm:"index" json:"parent_id"`
	UsageCount int        `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  *time.Time `gorm:"index" json:"-"`
}

// TableName returns the table name for Tag.
func (Tag) TableName() string {
	return "tags"
}

// FileTag links a file record to a tag. The composite primary key makes the
// pair unique; attaching an existing pair is treated as a no-op upstream.
type FileTag struct {
	FileID uint `gorm:"primaryKey" json:"file_id"`
	TagID  uint `gorm:"primaryKey" json:"tag_id"`
}

// TableName returns the table name for FileTag.
func (FileTag) TableName() string {
	return "file_tags"
}
