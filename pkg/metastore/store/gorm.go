// Package store implements the tag metadata store on top of GORM.
//
// The same store code runs against two interchangeable backends: an embedded
// SQLite database (the default) and a client-server PostgreSQL database.
// Every dialect difference — placeholder syntax, upsert rendering, timestamp
// binding, constraint-violation wording — is absorbed here; no caller
// branches on backend type.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tagfiler/tagfiler/pkg/metastore/models"
)

// DatabaseType defines the supported database backends.
type DatabaseType string

const (
	// DatabaseTypeSQLite uses the embedded single-file engine (default).
	DatabaseTypeSQLite DatabaseType = "sqlite"

	// DatabaseTypePostgres uses a client-server PostgreSQL engine.
	DatabaseTypePostgres DatabaseType = "postgres"
)

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the path to the SQLite database file.
	// Default: $XDG_CONFIG_HOME/tagfiler/metadata.db
	Path string `mapstructure:"path" yaml:"path"`
}

// PostgresConfig contains PostgreSQL-specific configuration.
type PostgresConfig struct {
	Host           string        `mapstructure:"host" yaml:"host"`
	Port           int           `mapstructure:"port" yaml:"port"`
	Database       string        `mapstructure:"database" yaml:"database"`
	User           string        `mapstructure:"user" yaml:"user"`
	Password       string        `mapstructure:"password" yaml:"password,omitempty"`
	SSLMode        string        `mapstructure:"ssl_mode" yaml:"ssl_mode"` // disable, require, verify-ca, verify-full
	MaxOpenConns   int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns   int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (c *PostgresConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		c.Host, c.Port, c.User, c.Password, c.Database)

	if c.SSLMode != "" {
		dsn += fmt.Sprintf(" sslmode=%s", c.SSLMode)
	}
	if c.ConnectTimeout > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", int(c.ConnectTimeout.Seconds()))
	}
	return dsn
}

// Config contains database configuration.
type Config struct {
	Type     DatabaseType   `mapstructure:"type" yaml:"type"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite" yaml:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
}

// ApplyDefaults fills in missing configuration with default values.
func (c *Config) ApplyDefaults() {
	if c.Type == "" {
		c.Type = DatabaseTypeSQLite
	}

	if c.Type == DatabaseTypeSQLite && c.SQLite.Path == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, ".config")
		}
		c.SQLite.Path = filepath.Join(configDir, "tagfiler", "metadata.db")
	}

	if c.Type == DatabaseTypePostgres {
		if c.Postgres.Port == 0 {
			c.Postgres.Port = 5432
		}
		if c.Postgres.SSLMode == "" {
			c.Postgres.SSLMode = "disable"
		}
		if c.Postgres.MaxOpenConns == 0 {
			c.Postgres.MaxOpenConns = 10
		}
		if c.Postgres.MaxIdleConns == 0 {
			c.Postgres.MaxIdleConns = 5
		}
		if c.Postgres.ConnectTimeout == 0 {
			c.Postgres.ConnectTimeout = 5 * time.Second
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("%w: sqlite path is required", ErrConfig)
		}
	case DatabaseTypePostgres:
		if c.Postgres.Host == "" {
			return fmt.Errorf("%w: postgres host is required", ErrConfig)
		}
		if c.Postgres.Database == "" {
			return fmt.Errorf("%w: postgres database is required", ErrConfig)
		}
		if c.Postgres.User == "" {
			return fmt.Errorf("%w: postgres user is required", ErrConfig)
		}
		if c.Postgres.Password == "" {
			return fmt.Errorf("%w: postgres password is required", ErrConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported database type %q", ErrConfig, c.Type)
	}
	return nil
}

// Store-layer error categories. Individual failures wrap one of these so
// callers can classify without inspecting driver errors.
var (
	ErrConfig     = errors.New("storage config error")
	ErrConnection = errors.New("storage connection error")
	ErrMigration  = errors.New("storage migration error")
)

// Store implements the metadata store using GORM over either backend.
type Store struct {
	db     *gorm.DB
	config *Config
}

// New opens the configured database, establishes the connection pool and
// applies pending schema migrations. Migration is idempotent: running New
// against an up-to-date schema changes nothing.
func New(config *Config) (*Store, error) {
	if config == nil {
		config = &Config{}
	}
	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch config.Type {
	case DatabaseTypeSQLite:
		if config.SQLite.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(config.SQLite.Path), 0o755); err != nil {
				return nil, fmt.Errorf("%w: creating database directory: %v", ErrConnection, err)
			}
		}
		// WAL allows concurrent readers with a single writer; busy_timeout
		// makes lock contention wait instead of failing immediately.
		dsn := config.SQLite.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		dialector = sqlite.Open(dsn)

	case DatabaseTypePostgres:
		dialector = postgres.Open(config.Postgres.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	switch config.Type {
	case DatabaseTypeSQLite:
		// SQLite supports a single writer.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	case DatabaseTypePostgres:
		sqlDB.SetMaxOpenConns(config.Postgres.MaxOpenConns)
		sqlDB.SetMaxIdleConns(config.Postgres.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMigration, err)
	}

	return &Store{db: db, config: config}, nil
}

// DB returns the underlying GORM database connection. Useful for advanced
// queries and testing.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Type returns the configured backend type.
func (s *Store) Type() DatabaseType {
	return s.config.Type
}

// isUniqueConstraintError checks if the error is a unique constraint
// violation, in either backend's wording.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// convertNotFoundError converts gorm.ErrRecordNotFound to the given domain error.
func convertNotFoundError(err error, notFoundErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr
	}
	return err
}
