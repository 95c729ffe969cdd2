package models

import "errors"

// Domain errors for metadata operations.
var (
	// Tag errors
	ErrTagNotFound  = errors.New("tag not found")
	ErrDuplicateTag = errors.New("tag name already exists")
	ErrEmptyTagName = errors.New("tag name cannot be empty")

	// File record errors
	ErrFileRecordNotFound = errors.New("file record not found")
	ErrInvalidFileType    = errors.New("invalid file type")
)
