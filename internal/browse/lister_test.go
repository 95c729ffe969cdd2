package browse

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLister(t *testing.T) (*Lister, string) {
	t.Helper()
	dir := t.TempDir()
	return NewLister(NewOSFilesystem(), newResolverFor(false), ""), dir
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestList(t *testing.T) {
	t.Run("orders folders before files and skips hidden entries", func(t *testing.T) {
		lister, dir := newTestLister(t)

		mustWriteFile(t, filepath.Join(dir, "zebra.txt"), "z")
		mustWriteFile(t, filepath.Join(dir, "alpha.txt"), "a")
		mustWriteFile(t, filepath.Join(dir, ".hidden"), "h")
		if err := os.Mkdir(filepath.Join(dir, "src"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
			t.Fatal(err)
		}

		info, err := lister.List(dir)
		if err != nil {
			t.Fatalf("List: %v", err)
		}

		wantNames := []string{"src", "alpha.txt", "zebra.txt"}
		if len(info.Items) != len(wantNames) {
			t.Fatalf("got %d items, want %d", len(info.Items), len(wantNames))
		}
		for i, want := range wantNames {
			if info.Items[i].Name != want {
				t.Errorf("item %d = %q, want %q", i, info.Items[i].Name, want)
			}
		}
		if info.TotalFolders != 1 || info.TotalFiles != 2 {
			t.Errorf("counts = %d folders, %d files", info.TotalFolders, info.TotalFiles)
		}
		if !info.Items[0].IsDir {
			t.Error("first entry should be the folder")
		}
		if info.Items[0].Extension != nil {
			t.Errorf("folder extension = %q, want nil", *info.Items[0].Extension)
		}
		if info.Items[1].Extension == nil || *info.Items[1].Extension != "txt" {
			t.Errorf("file extension = %v, want txt", info.Items[1].Extension)
		}

		// Hidden entries are excluded outright, so the payload carries no
		// hidden flag.
		raw, err := json.Marshal(info.Items[1])
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(raw), `"hidden"`) {
			t.Errorf("entry payload should not carry a hidden flag: %s", raw)
		}
	})

	t.Run("byte sort puts uppercase before lowercase", func(t *testing.T) {
		lister, dir := newTestLister(t)
		mustWriteFile(t, filepath.Join(dir, "banana"), "")
		mustWriteFile(t, filepath.Join(dir, "Apple"), "")
		mustWriteFile(t, filepath.Join(dir, "apple"), "")

		info, err := lister.List(dir)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		wantNames := []string{"Apple", "apple", "banana"}
		for i, want := range wantNames {
			if info.Items[i].Name != want {
				t.Errorf("item %d = %q, want %q", i, info.Items[i].Name, want)
			}
		}
	})

	t.Run("folder entries report zero size", func(t *testing.T) {
		lister, dir := newTestLister(t)
		if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
			t.Fatal(err)
		}
		info, err := lister.List(dir)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if info.Items[0].Size != 0 {
			t.Errorf("folder size = %d, want 0", info.Items[0].Size)
		}
	})

	t.Run("reports parent path", func(t *testing.T) {
		lister, dir := newTestLister(t)
		info, err := lister.List(dir)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if info.ParentPath == nil || *info.ParentPath != filepath.Dir(dir) {
			t.Errorf("parent = %v, want %q", info.ParentPath, filepath.Dir(dir))
		}
	})

	t.Run("missing path", func(t *testing.T) {
		lister, dir := newTestLister(t)
		_, err := lister.List(filepath.Join(dir, "nope"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		lister, dir := newTestLister(t)
		file := filepath.Join(dir, "plain.txt")
		mustWriteFile(t, file, "x")
		_, err := lister.List(file)
		if !errors.Is(err, ErrNotADirectory) {
			t.Errorf("err = %v, want ErrNotADirectory", err)
		}
	})
}

func TestListRoots(t *testing.T) {
	t.Run("unsupported without drive semantics", func(t *testing.T) {
		lister := NewLister(NewOSFilesystem(), newResolverFor(false), "")
		if _, err := lister.ListRoots(); !errors.Is(err, ErrRootsUnsupported) {
			t.Errorf("err = %v, want ErrRootsUnsupported", err)
		}
	})

	t.Run("probes drive letters", func(t *testing.T) {
		fake := fakeFS{existing: map[string]bool{`C:\`: true, `D:\`: true}}
		lister := NewLister(fake, newResolverFor(true), "")

		info, err := lister.ListRoots()
		if err != nil {
			t.Fatalf("ListRoots: %v", err)
		}
		if info.Path != DrivesParent {
			t.Errorf("path = %q, want %q", info.Path, DrivesParent)
		}
		if info.ParentPath != nil {
			t.Errorf("parent = %v, want nil", *info.ParentPath)
		}
		if len(info.Items) != 2 {
			t.Fatalf("got %d roots, want 2", len(info.Items))
		}
		if info.Items[0].Path != `C:\` || info.Items[1].Path != `D:\` {
			t.Errorf("roots = %q, %q", info.Items[0].Path, info.Items[1].Path)
		}
		if info.TotalFolders != 2 {
			t.Errorf("TotalFolders = %d, want 2", info.TotalFolders)
		}
	})
}

func TestExistsAsDirectory(t *testing.T) {
	lister, dir := newTestLister(t)

	if !lister.ExistsAsDirectory(dir) {
		t.Error("temp dir should exist as directory")
	}
	if lister.ExistsAsDirectory(filepath.Join(dir, "missing")) {
		t.Error("missing path should not exist as directory")
	}
	file := filepath.Join(dir, "f.txt")
	mustWriteFile(t, file, "x")
	if lister.ExistsAsDirectory(file) {
		t.Error("regular file should not exist as directory")
	}
}

func TestHomeDir(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		lister := NewLister(NewOSFilesystem(), newResolverFor(false), "/srv/home")
		home, err := lister.HomeDir()
		if err != nil {
			t.Fatalf("HomeDir: %v", err)
		}
		if home != "/srv/home" {
			t.Errorf("home = %q, want /srv/home", home)
		}
	})

	t.Run("falls back to OS home", func(t *testing.T) {
		lister := NewLister(NewOSFilesystem(), newResolverFor(false), "")
		home, err := lister.HomeDir()
		if err != nil {
			t.Fatalf("HomeDir: %v", err)
		}
		if home == "" {
			t.Error("home should not be empty")
		}
	})
}

// fakeFS serves existence probes from a fixed set. Everything else is
// unused by the tests that rely on it.
type fakeFS struct {
	existing map[string]bool
}

func (f fakeFS) Exists(path string) bool                { return f.existing[path] }
func (f fakeFS) IsDir(path string) bool                 { return f.existing[path] }
func (f fakeFS) Stat(path string) (DirEntry, error)     { return DirEntry{}, os.ErrNotExist }
func (f fakeFS) ReadDir(path string) ([]DirEntry, error) { return nil, os.ErrNotExist }
func (f fakeFS) Move(src, dst string) error             { return nil }
func (f fakeFS) CopyFile(src, dst string) error         { return nil }
func (f fakeFS) CopyDirRecursive(src, dst string) error { return nil }
func (f fakeFS) RemoveFile(path string) error           { return nil }
func (f fakeFS) RemoveDirRecursive(path string) error   { return nil }
