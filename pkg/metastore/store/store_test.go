package store

import (
	"context"
	"testing"

	"github.com/tagfiler/tagfiler/pkg/metastore/models"
)

// createTestStore creates an in-memory SQLite store. The embedded driver is
// pure Go, so these tests need no external service; every business rule is
// written against the backend-neutral store surface and runs unchanged
// against PostgreSQL.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(&Config{
		Type:   DatabaseTypeSQLite,
		SQLite: SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew(t *testing.T) {
	t.Run("default config uses sqlite", func(t *testing.T) {
		config := &Config{}
		config.ApplyDefaults()

		if config.Type != DatabaseTypeSQLite {
			t.Errorf("expected sqlite, got %s", config.Type)
		}
		if config.SQLite.Path == "" {
			t.Error("expected a default sqlite path")
		}
	})

	t.Run("invalid type is rejected", func(t *testing.T) {
		_, err := New(&Config{Type: "oracle"})
		if err == nil {
			t.Fatal("expected error for unsupported type")
		}
	})

	t.Run("postgres config requires connection parameters", func(t *testing.T) {
		cfg := &Config{Type: DatabaseTypePostgres}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err == nil {
			t.Error("expected validation error for empty postgres config")
		}
	})

	t.Run("postgres defaults are applied", func(t *testing.T) {
		cfg := &Config{Type: DatabaseTypePostgres}
		cfg.ApplyDefaults()
		if cfg.Postgres.Port != 5432 {
			t.Errorf("expected default port 5432, got %d", cfg.Postgres.Port)
		}
		if cfg.Postgres.SSLMode != "disable" {
			t.Errorf("expected default ssl_mode disable, got %q", cfg.Postgres.SSLMode)
		}
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		s := createTestStore(t)
		// Re-running AutoMigrate against an up-to-date schema is a no-op.
		if err := s.DB().AutoMigrate(models.AllModels()...); err != nil {
			t.Fatalf("second migration failed: %v", err)
		}
	})
}

func TestPostgresDSN(t *testing.T) {
	cfg := &PostgresConfig{
		Host: "db.local", Port: 5433, User: "tagfiler",
		Password: "secret", Database: "tags", SSLMode: "require",
	}
	dsn := cfg.DSN()
	want := "host=db.local port=5433 user=tagfiler password=secret dbname=tags sslmode=require"
	if dsn != want {
		t.Errorf("unexpected DSN:\n got %q\nwant %q", dsn, want)
	}
}

func TestHealthcheck(t *testing.T) {
	s := createTestStore(t)
	if err := s.Healthcheck(context.Background()); err != nil {
		t.Errorf("healthcheck failed: %v", err)
	}
}
