package browse

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is a single listed item as exposed to callers.
type Entry struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	IsDir      bool      `json:"is_dir"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
	CreatedAt  time.Time `json:"created_at"`
	Extension  *string   `json:"extension,omitempty"`
}

// DirectoryInfo is the result of listing one directory.
type DirectoryInfo struct {
	Path         string  `json:"path"`
	ParentPath   *string `json:"parent_path"`
	Items        []Entry `json:"items"`
	TotalFiles   int     `json:"total_files"`
	TotalFolders int     `json:"total_folders"`
}

// Lister produces directory listings with hidden entries filtered out
// and folders ordered before files.
type Lister struct {
	fs       FS
	resolver *Resolver
	homePath string
}

// NewLister builds a Lister. homePath, when non-empty, overrides the
// OS-reported home directory.
func NewLister(fs FS, resolver *Resolver, homePath string) *Lister {
	return &Lister{fs: fs, resolver: resolver, homePath: homePath}
}

// List returns the visible contents of path. Dot-prefixed entries are
// excluded. If metadata cannot be read for any surviving entry the
// whole listing fails with ErrMetadata rather than returning a partial
// result.
func (l *Lister) List(path string) (*DirectoryInfo, error) {
	path = l.resolver.Normalize(path)

	if !l.fs.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if !l.fs.IsDir(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}

	raw, err := l.fs.ReadDir(path)
	if err != nil {
		return nil, err
	}

	info := &DirectoryInfo{
		Path:  path,
		Items: make([]Entry, 0, len(raw)),
	}
	if parent := l.resolver.ParentOf(path); parent != "" && parent != path {
		info.ParentPath = &parent
	}

	for _, e := range raw {
		if strings.HasPrefix(e.Name, ".") {
			continue
		}
		size := e.Size
		if e.IsDir {
			size = 0
		}
		info.Items = append(info.Items, Entry{
			Name:       e.Name,
			Path:       filepath.Join(path, e.Name),
			IsDir:      e.IsDir,
			Size:       size,
			ModifiedAt: e.ModifiedAt,
			CreatedAt:  e.CreatedAt,
			Extension:  extensionOf(e.Name, e.IsDir),
		})
		if e.IsDir {
			info.TotalFolders++
		} else {
			info.TotalFiles++
		}
	}

	sortEntries(info.Items)
	return info, nil
}

// ListRoots lists the available drive roots. Off Windows there is a
// single filesystem root, so the operation is unsupported.
func (l *Lister) ListRoots() (*DirectoryInfo, error) {
	if !l.resolver.driveLetters {
		return nil, ErrRootsUnsupported
	}

	info := &DirectoryInfo{
		Path:  DrivesParent,
		Items: make([]Entry, 0, 4),
	}
	for letter := 'A'; letter <= 'Z'; letter++ {
		root := string(letter) + `:\`
		if !l.fs.Exists(root) {
			continue
		}
		info.Items = append(info.Items, Entry{
			Name:  root,
			Path:  root,
			IsDir: true,
		})
		info.TotalFolders++
	}
	return info, nil
}

// ExistsAsDirectory reports whether path names an existing directory.
// It never fails; any error condition reads as false.
func (l *Lister) ExistsAsDirectory(path string) bool {
	path = l.resolver.Normalize(path)
	return l.fs.Exists(path) && l.fs.IsDir(path)
}

// HomeDir returns the configured home override when set, otherwise the
// OS-reported home directory.
func (l *Lister) HomeDir() (string, error) {
	if l.homePath != "" {
		return l.resolver.Normalize(l.homePath), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return home, nil
}

// extensionOf extracts the file extension without the leading dot.
// Folders and extensionless names yield nil.
func extensionOf(name string, isDir bool) *string {
	if isDir {
		return nil
	}
	ext := filepath.Ext(name)
	if len(ext) < 2 {
		return nil
	}
	ext = ext[1:]
	return &ext
}

// sortEntries orders folders before files, each group by byte-wise
// name comparison.
func sortEntries(items []Entry) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsDir != items[j].IsDir {
			return items[i].IsDir
		}
		return items[i].Name < items[j].Name
	})
}
