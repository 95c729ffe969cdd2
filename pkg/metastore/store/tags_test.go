package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tagfiler/tagfiler/pkg/metastore/models"
)

func TestCreateTag(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	t.Run("creates with defaults", func(t *testing.T) {
		tag, err := s.CreateTag(ctx, "projects")
		if err != nil {
			t.Fatalf("failed to create tag: %v", err)
		}
		if tag.ID == 0 {
			t.Error("expected a generated id")
		}
		if tag.Color == nil || *tag.Color != models.DefaultTagColor {
			t.Errorf("expected default color %s, got %v", models.DefaultTagColor, tag.Color)
		}
		if tag.FontColor == nil || *tag.FontColor != models.DefaultTagFontColor {
			t.Errorf("expected default font color %s, got %v", models.DefaultTagFontColor, tag.FontColor)
		}
		if tag.UsageCount != 0 {
			t.Errorf("expected usage count 0, got %d", tag.UsageCount)
		}
		if tag.ParentID != nil {
			t.Errorf("expected nil parent, got %v", tag.ParentID)
		}
	})

	t.Run("trims whitespace", func(t *testing.T) {
		tag, err := s.CreateTag(ctx, "  archive  ")
		if err != nil {
			t.Fatalf("failed to create tag: %v", err)
		}
		if tag.Name != "archive" {
			t.Errorf("expected trimmed name, got %q", tag.Name)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := s.CreateTag(ctx, "   ")
		if !errors.Is(err, models.ErrEmptyTagName) {
			t.Errorf("expected ErrEmptyTagName, got %v", err)
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := s.CreateTag(ctx, "projects")
		if !errors.Is(err, models.ErrDuplicateTag) {
			t.Errorf("expected ErrDuplicateTag, got %v", err)
		}
	})

	t.Run("duplicate after trimming conflicts", func(t *testing.T) {
		_, err := s.CreateTag(ctx, " projects ")
		if !errors.Is(err, models.ErrDuplicateTag) {
			t.Errorf("expected ErrDuplicateTag, got %v", err)
		}
	})
}

func TestListTags(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	names := []string{"alpha", "beta", "gamma"}
	ids := make([]uint, len(names))
	for i, n := range names {
		tag, err := s.CreateTag(ctx, n)
		if err != nil {
			t.Fatalf("failed to seed tag %q: %v", n, err)
		}
		ids[i] = tag.ID
	}

	// Give beta two usages and gamma one.
	fileA, _ := s.GetOrCreateFile(ctx, "/tmp/a.txt", models.FileTypeFile, 1)
	fileB, _ := s.GetOrCreateFile(ctx, "/tmp/b.txt", models.FileTypeFile, 1)
	for _, fid := range []uint{fileA, fileB} {
		if err := s.AttachTag(ctx, fid, ids[1]); err != nil {
			t.Fatalf("attach failed: %v", err)
		}
	}
	if err := s.AttachTag(ctx, fileA, ids[2]); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	for _, id := range ids[1:] {
		if err := s.RecomputeTagUsage(ctx, id); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}
	}

	t.Run("most used orders by usage then id", func(t *testing.T) {
		tags, err := s.ListTags(ctx, 0, models.OrderMostUsed)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		got := make([]string, len(tags))
		for i, tag := range tags {
			got[i] = tag.Name
		}
		want := []string{"beta", "gamma", "alpha"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("unexpected order: got %v want %v", got, want)
			}
		}
	})

	t.Run("recently used orders by update time", func(t *testing.T) {
		// Touch alpha so it becomes the most recently updated.
		newName := "alpha2"
		if _, err := s.ModifyTag(ctx, ids[0], models.TagUpdate{Name: &newName}); err != nil {
			t.Fatalf("modify failed: %v", err)
		}
		tags, err := s.ListTags(ctx, 1, models.OrderRecentlyUsed)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tags) != 1 || tags[0].Name != "alpha2" {
			t.Errorf("expected alpha2 first, got %+v", tags)
		}
	})

	t.Run("limit is honored", func(t *testing.T) {
		tags, err := s.ListTags(ctx, 2, models.OrderMostUsed)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tags) != 2 {
			t.Errorf("expected 2 tags, got %d", len(tags))
		}
	})
}

func TestSearchTags(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, n := range []string{"Work", "workout", "homework", "play"} {
		if _, err := s.CreateTag(ctx, n); err != nil {
			t.Fatalf("failed to seed tag %q: %v", n, err)
		}
	}

	t.Run("substring match is case-insensitive", func(t *testing.T) {
		tags, err := s.SearchTags(ctx, "WORK", 0)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(tags) != 3 {
			t.Errorf("expected 3 matches, got %d", len(tags))
		}
	})

	t.Run("no match returns empty", func(t *testing.T) {
		tags, err := s.SearchTags(ctx, "nothing", 0)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(tags) != 0 {
			t.Errorf("expected no matches, got %d", len(tags))
		}
	})

	t.Run("like wildcards are literal", func(t *testing.T) {
		tags, err := s.SearchTags(ctx, "%", 0)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(tags) != 0 {
			t.Errorf("expected %% to match nothing, got %d tags", len(tags))
		}
	})
}

func TestModifyTag(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	tag, err := s.CreateTag(ctx, "inbox")
	if err != nil {
		t.Fatalf("failed to seed tag: %v", err)
	}

	t.Run("not found", func(t *testing.T) {
		_, err := s.ModifyTag(ctx, 9999, models.TagUpdate{})
		if !errors.Is(err, models.ErrTagNotFound) {
			t.Errorf("expected ErrTagNotFound, got %v", err)
		}
	})

	t.Run("empty update returns row untouched", func(t *testing.T) {
		before, _ := s.GetTag(ctx, tag.ID)
		time.Sleep(10 * time.Millisecond)

		got, err := s.ModifyTag(ctx, tag.ID, models.TagUpdate{})
		if err != nil {
			t.Fatalf("modify failed: %v", err)
		}
		if !got.UpdatedAt.Equal(before.UpdatedAt) {
			t.Error("empty update must not bump updated_at")
		}
	})

	t.Run("same values cause no write", func(t *testing.T) {
		before, _ := s.GetTag(ctx, tag.ID)
		time.Sleep(10 * time.Millisecond)

		name := before.Name
		got, err := s.ModifyTag(ctx, tag.ID, models.TagUpdate{
			Name:  &name,
			Color: models.Set(*before.Color),
		})
		if err != nil {
			t.Fatalf("modify failed: %v", err)
		}
		if !got.UpdatedAt.Equal(before.UpdatedAt) {
			t.Error("no-change update must not bump updated_at")
		}
	})

	t.Run("set and clear fields", func(t *testing.T) {
		parent, err := s.CreateTag(ctx, "root")
		if err != nil {
			t.Fatalf("failed to seed parent: %v", err)
		}

		got, err := s.ModifyTag(ctx, tag.ID, models.TagUpdate{
			Color:    models.Set("#FF0000"),
			ParentID: models.Set(parent.ID),
		})
		if err != nil {
			t.Fatalf("modify failed: %v", err)
		}
		if got.Color == nil || *got.Color != "#FF0000" {
			t.Errorf("expected color #FF0000, got %v", got.Color)
		}
		if got.ParentID == nil || *got.ParentID != parent.ID {
			t.Errorf("expected parent %d, got %v", parent.ID, got.ParentID)
		}

		got, err = s.ModifyTag(ctx, tag.ID, models.TagUpdate{
			Color:    models.Null[string](),
			ParentID: models.Null[uint](),
		})
		if err != nil {
			t.Fatalf("modify failed: %v", err)
		}
		if got.Color != nil {
			t.Errorf("expected color cleared, got %v", *got.Color)
		}
		if got.ParentID != nil {
			t.Errorf("expected parent cleared, got %v", *got.ParentID)
		}
	})

	t.Run("rename conflicts with other live tag", func(t *testing.T) {
		other, err := s.CreateTag(ctx, "taken")
		if err != nil {
			t.Fatalf("failed to seed tag: %v", err)
		}
		name := "taken"
		_, err = s.ModifyTag(ctx, tag.ID, models.TagUpdate{Name: &name})
		if !errors.Is(err, models.ErrDuplicateTag) {
			t.Errorf("expected ErrDuplicateTag, got %v", err)
		}
		_ = other
	})

	t.Run("rename to empty is rejected", func(t *testing.T) {
		name := "   "
		_, err := s.ModifyTag(ctx, tag.ID, models.TagUpdate{Name: &name})
		if !errors.Is(err, models.ErrEmptyTagName) {
			t.Errorf("expected ErrEmptyTagName, got %v", err)
		}
	})
}
