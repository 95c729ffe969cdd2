// Package browse provides filesystem navigation: path classification for
// drive roots, directory listing and the filesystem port the file-operation
// coordinator drives.
package browse

import "errors"

// Browse-layer errors.
var (
	// ErrNotFound means the path does not exist.
	ErrNotFound = errors.New("path does not exist")

	// ErrNotADirectory means the path exists but is not a directory.
	ErrNotADirectory = errors.New("path is not a directory")

	// ErrMetadata means an entry's metadata could not be read. Listings are
	// all-or-nothing: one unreadable entry fails the whole listing.
	ErrMetadata = errors.New("failed to read entry metadata")

	// ErrRootsUnsupported means the platform has no discrete drive roots.
	ErrRootsUnsupported = errors.New("drive roots are not supported on this platform")
)
