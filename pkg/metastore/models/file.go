package models

import "time"

// FileType classifies a file record.
type FileType string

const (
	FileTypeFile   FileType = "file"
	FileTypeFolder FileType = "folder"
)

// IsValid checks if the type is a known FileType.
func (t FileType) IsValid() bool {
	return t == FileTypeFile || t == FileTypeFolder
}

// FileRecord tracks the tagging history of a filesystem path.
//
// A record is created lazily the first time a path is tagged. The row is
// never physically removed: deleting the underlying file sets DeletedAt
// (soft delete), and tagging the same path again resurrects the row with
// its original id. CurrentPath follows filesystem renames.
//
// The record does not own the file's lifetime — it can outlive the physical
// file, and untagged files have no record at all.
type FileRecord struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CurrentPath string     `gorm:"uniqueIndex;not null;size:4096" json:"current_path"`
	FileType    FileType   `gorm:"not null;size:16" json:"file_type"`
	FileSize    int64      `gorm:"not null;default:0" json:"file_size"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   *time.Time `gorm:"index" json:"-"`
}

// TableName returns the table name for FileRecord.
func (FileRecord) TableName() string {
	return "files"
}

// IsDeleted reports whether the record is soft-deleted.
func (f *FileRecord) IsDeleted() bool {
	return f.DeletedAt != nil
}
