package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================================
// Generic GORM Helpers
// ============================================================================
//
// These helpers reduce repetitive CRUD boilerplate across store implementation
// files. They are unexported (package-internal) and operate on the raw *gorm.DB
// to avoid coupling to GORMStore.

// getByField retrieves a single record of type T by matching field=value.
// gorm.ErrRecordNotFound is converted to the provided notFoundErr for
// consistent domain error mapping.
func getByField[T any](db *gorm.DB, ctx context.Context, field string, value any, notFoundErr error) (*T, error) {
	var result T
	if err := db.WithContext(ctx).Where(field+" = ?", value).First(&result).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// getOwned retrieves a single record of type T by id, scoped to the owning
// user. This is the ownership guard: a row that exists but belongs to another
// user is reported with the same notFoundErr as a row that does not exist,
// so callers cannot probe for foreign entities.
func getOwned[T any](db *gorm.DB, ctx context.Context, id, ownerID string, notFoundErr error) (*T, error) {
	var result T
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&result).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// createWithID generates a UUID for the entity if it has no ID, then creates
// it in the database. The idSetter callback sets the generated ID on the
// entity. Unique constraint violations are converted to dupErr when one is
// provided; entities without unique columns pass nil.
func createWithID[T any](db *gorm.DB, ctx context.Context, entity *T, idSetter func(*T, string), currentID string, dupErr error) (string, error) {
	id := currentID
	if id == "" {
		id = uuid.New().String()
		idSetter(entity, id)
	}
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		if dupErr != nil && isUniqueConstraintError(err) {
			return "", dupErr
		}
		return "", err
	}
	return id, nil
}
