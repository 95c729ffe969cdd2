package fileops

import "errors"

var (
	// ErrNotFound means a source path named by the batch does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrNotADirectory means the target of a move or copy is not a directory.
	ErrNotADirectory = errors.New("target is not a directory")

	// ErrAlreadyExists means a computed destination path is already occupied.
	ErrAlreadyExists = errors.New("destination already exists")

	// ErrInvalidName means a rename's new name is empty or contains
	// path-separator characters.
	ErrInvalidName = errors.New("invalid name")
)
