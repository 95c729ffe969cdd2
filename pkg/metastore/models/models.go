// Package models defines the persisted entities of the tag metadata store
// and the domain errors shared by its consumers.
package models

// AllModels returns every model registered for schema migration,
// in dependency order.
func AllModels() []any {
	return []any{
		&Tag{},
		&FileRecord{},
		&FileTag{},
	}
}
