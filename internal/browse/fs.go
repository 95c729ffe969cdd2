package browse

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirEntry is the raw per-entry metadata the filesystem port reports.
type DirEntry struct {
	Name       string
	IsDir      bool
	Size       int64
	ModifiedAt time.Time
	CreatedAt  time.Time
}

// FS is the filesystem port: the capability surface the lister and the
// file-operation coordinator need. Implementations wrap the real OS
// filesystem; tests substitute fakes.
type FS interface {
	Exists(path string) bool
	IsDir(path string) bool
	Stat(path string) (DirEntry, error)
	ReadDir(path string) ([]DirEntry, error)

	Move(src, dst string) error
	CopyFile(src, dst string) error
	CopyDirRecursive(src, dst string) error
	RemoveFile(path string) error
	RemoveDirRecursive(path string) error
}

// OSFilesystem implements FS against the local filesystem.
type OSFilesystem struct{}

// NewOSFilesystem returns the OS-backed filesystem port.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

func (OSFilesystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFilesystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (OSFilesystem) Stat(path string) (DirEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DirEntry{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return entryFromInfo(info), nil
}

func (OSFilesystem) ReadDir(path string) ([]DirEntry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}

	entries := make([]DirEntry, 0, len(dirents))
	for _, d := range dirents {
		info, err := d.Info()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMetadata, d.Name(), err)
		}
		entries = append(entries, entryFromInfo(info))
	}
	return entries, nil
}

func (OSFilesystem) Move(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %s to %s: %w", src, dst, err)
	}
	return nil
}

func (fs OSFilesystem) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return nil
}

// CopyDirRecursive copies a directory tree, skipping entries whose name
// starts with a dot at every level.
func (fs OSFilesystem) CopyDirRecursive(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("copy dir %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("copy dir to %s: %w", dst, err)
	}

	dirents, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("copy dir %s: %w", src, err)
	}
	for _, d := range dirents {
		if strings.HasPrefix(d.Name(), ".") {
			continue
		}
		srcChild := filepath.Join(src, d.Name())
		dstChild := filepath.Join(dst, d.Name())
		if d.IsDir() {
			if err := fs.CopyDirRecursive(srcChild, dstChild); err != nil {
				return err
			}
		} else {
			if err := fs.CopyFile(srcChild, dstChild); err != nil {
				return err
			}
		}
	}
	return nil
}

func (OSFilesystem) RemoveFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (OSFilesystem) RemoveDirRecursive(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove dir %s: %w", path, err)
	}
	return nil
}

// entryFromInfo converts an os.FileInfo. Creation time is not portably
// available, so modification time stands in for it, as the original
// listing did.
func entryFromInfo(info os.FileInfo) DirEntry {
	return DirEntry{
		Name:       info.Name(),
		IsDir:      info.IsDir(),
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
		CreatedAt:  info.ModTime(),
	}
}
