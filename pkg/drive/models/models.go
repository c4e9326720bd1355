// Package models defines the persisted entities of the Skydrive drive core
// and the domain errors shared by the store and API layers.
package models

// AllModels returns all models for database auto-migration.
// Order matters: referenced tables must be created before referencing ones.
func AllModels() []any {
	return []any{
		&User{},
		&Folder{},
		&File{},
	}
}
