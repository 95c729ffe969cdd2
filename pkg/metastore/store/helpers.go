package store

import (
	"strings"

	"gorm.io/gorm"
)

// live scopes a query to rows that are not soft-deleted. All read paths go
// through this scope; soft-deleted rows are only ever reached by the
// resurrect upsert in GetOrCreateFile.
func live(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// escapeLike escapes LIKE wildcards in user-supplied search keywords so a
// literal "%" or "_" matches itself on both backends.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
