package store

import (
	"context"
	"testing"

	"github.com/tagfiler/tagfiler/pkg/metastore/models"
)

func TestGetOrCreateFile(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	t.Run("creates on first use", func(t *testing.T) {
		id, err := s.GetOrCreateFile(ctx, "/docs/report.pdf", models.FileTypeFile, 2048)
		if err != nil {
			t.Fatalf("get-or-create failed: %v", err)
		}
		if id == 0 {
			t.Error("expected a generated id")
		}
	})

	t.Run("second call returns same id without refreshing metadata", func(t *testing.T) {
		first, err := s.GetOrCreateFile(ctx, "/docs/notes.md", models.FileTypeFile, 100)
		if err != nil {
			t.Fatalf("get-or-create failed: %v", err)
		}
		second, err := s.GetOrCreateFile(ctx, "/docs/notes.md", models.FileTypeFolder, 999)
		if err != nil {
			t.Fatalf("get-or-create failed: %v", err)
		}
		if first != second {
			t.Errorf("expected same id, got %d and %d", first, second)
		}

		rec, err := s.GetFileByPath(ctx, "/docs/notes.md")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if rec.FileType != models.FileTypeFile || rec.FileSize != 100 {
			t.Errorf("live lookup must not refresh metadata, got %s/%d", rec.FileType, rec.FileSize)
		}
	})

	t.Run("resurrects soft-deleted record at same path", func(t *testing.T) {
		id, err := s.GetOrCreateFile(ctx, "/docs/old.txt", models.FileTypeFile, 10)
		if err != nil {
			t.Fatalf("get-or-create failed: %v", err)
		}
		if err := s.SoftDeleteFiles(ctx, []string{"/docs/old.txt"}); err != nil {
			t.Fatalf("soft delete failed: %v", err)
		}
		if _, err := s.GetFileByPath(ctx, "/docs/old.txt"); err != models.ErrFileRecordNotFound {
			t.Fatalf("expected record hidden after soft delete, got %v", err)
		}

		revived, err := s.GetOrCreateFile(ctx, "/docs/old.txt", models.FileTypeFolder, 77)
		if err != nil {
			t.Fatalf("resurrect failed: %v", err)
		}
		if revived != id {
			t.Errorf("resurrect must keep the original id: got %d want %d", revived, id)
		}

		rec, err := s.GetFileByPath(ctx, "/docs/old.txt")
		if err != nil {
			t.Fatalf("lookup after resurrect failed: %v", err)
		}
		if rec.IsDeleted() {
			t.Error("expected deleted_at cleared")
		}
		if rec.FileType != models.FileTypeFolder || rec.FileSize != 77 {
			t.Errorf("resurrect must refresh metadata, got %s/%d", rec.FileType, rec.FileSize)
		}
	})

	t.Run("rejects unknown file type", func(t *testing.T) {
		_, err := s.GetOrCreateFile(ctx, "/x", "symlink", 0)
		if err != models.ErrInvalidFileType {
			t.Errorf("expected ErrInvalidFileType, got %v", err)
		}
	})
}

func TestRenameFilePath(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	t.Run("rewrites path of live record", func(t *testing.T) {
		id, err := s.GetOrCreateFile(ctx, "/tmp/old.txt", models.FileTypeFile, 5)
		if err != nil {
			t.Fatalf("get-or-create failed: %v", err)
		}
		if err := s.RenameFilePath(ctx, "/tmp/old.txt", "/tmp/new.txt"); err != nil {
			t.Fatalf("rename failed: %v", err)
		}

		rec, err := s.GetFileByPath(ctx, "/tmp/new.txt")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if rec.ID != id {
			t.Errorf("rename must keep the id: got %d want %d", rec.ID, id)
		}
		if _, err := s.GetFileByPath(ctx, "/tmp/old.txt"); err != models.ErrFileRecordNotFound {
			t.Errorf("old path should be gone, got %v", err)
		}
	})

	t.Run("untracked path is a silent no-op", func(t *testing.T) {
		if err := s.RenameFilePath(ctx, "/never/tagged", "/elsewhere"); err != nil {
			t.Errorf("expected no-op, got %v", err)
		}
	})

	t.Run("absorbs soft-deleted occupant of new path", func(t *testing.T) {
		tag, err := s.CreateTag(ctx, "archive")
		if err != nil {
			t.Fatalf("tag create failed: %v", err)
		}
		deadID, err := s.GetOrCreateFile(ctx, "/dst/f.txt", models.FileTypeFile, 8)
		if err != nil {
			t.Fatalf("get-or-create failed: %v", err)
		}
		if err := s.AttachTag(ctx, deadID, tag.ID); err != nil {
			t.Fatalf("attach failed: %v", err)
		}
		if err := s.SoftDeleteFiles(ctx, []string{"/dst/f.txt"}); err != nil {
			t.Fatalf("soft delete failed: %v", err)
		}

		liveID, err := s.GetOrCreateFile(ctx, "/src/f.txt", models.FileTypeFile, 3)
		if err != nil {
			t.Fatalf("get-or-create failed: %v", err)
		}

		if err := s.RenameFilePath(ctx, "/src/f.txt", "/dst/f.txt"); err != nil {
			t.Fatalf("rename onto soft-deleted path failed: %v", err)
		}

		rec, err := s.GetFileByPath(ctx, "/dst/f.txt")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if rec.ID != liveID {
			t.Errorf("renamed record must keep its id: got %d want %d", rec.ID, liveID)
		}
		if _, err := s.GetFileByPath(ctx, "/src/f.txt"); err != models.ErrFileRecordNotFound {
			t.Errorf("old path should be gone, got %v", err)
		}

		// The dead occupant's links go with it.
		ids, err := s.ListTagIDsForFile(ctx, deadID)
		if err != nil {
			t.Fatalf("list links failed: %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("expected purged occupant's links removed, got %d", len(ids))
		}
		if err := s.RecomputeTagUsage(ctx, tag.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}
		got, err := s.GetTag(ctx, tag.ID)
		if err != nil {
			t.Fatalf("tag lookup failed: %v", err)
		}
		if got.UsageCount != 0 {
			t.Errorf("usage count = %d, want 0", got.UsageCount)
		}
	})
}

func TestSoftDeleteFiles(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.GetOrCreateFile(ctx, "/a", models.FileTypeFile, 1); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, err := s.GetOrCreateFile(ctx, "/b", models.FileTypeFile, 1); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	t.Run("marks batch deleted, skips unknown paths", func(t *testing.T) {
		err := s.SoftDeleteFiles(ctx, []string{"/a", "/b", "/not-tracked"})
		if err != nil {
			t.Fatalf("soft delete failed: %v", err)
		}
		for _, p := range []string{"/a", "/b"} {
			if _, err := s.GetFileByPath(ctx, p); err != models.ErrFileRecordNotFound {
				t.Errorf("expected %s hidden, got %v", p, err)
			}
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		if err := s.SoftDeleteFiles(ctx, nil); err != nil {
			t.Errorf("expected no-op, got %v", err)
		}
	})

	t.Run("live listing excludes deleted records", func(t *testing.T) {
		recs, err := s.ListLiveFiles(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("expected no live records, got %d", len(recs))
		}
	})
}
