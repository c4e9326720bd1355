package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/skydrive/skydrive/pkg/drive/models"
)

// ============================================
// LISTING AND SEARCH
// ============================================

// ListDrive returns the folders and files visible in the given scope.
//
// Scopes behave as follows:
//   - root / folder: non-trashed direct children of the given parent
//   - starred: starred, non-trashed items across all folders
//   - trashed: trashed items across all folders
//
// One ordering rule applies everywhere: folders by name ascending, files by
// creation time descending.
func (s *GORMStore) ListDrive(ctx context.Context, ownerID string, scope Scope) (*Listing, error) {
	folders := []*models.Folder{}
	files := []*models.File{}

	fq := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("name asc")
	flq := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at desc")

	switch {
	case scope.Trashed:
		fq = fq.Where("trashed = ?", true)
		flq = flq.Where("trashed = ?", true)
	case scope.Starred:
		fq = fq.Where("starred = ? AND trashed = ?", true, false)
		flq = flq.Where("starred = ? AND trashed = ?", true, false)
	default:
		fq = scopeParent(fq, "parent_id", scope.FolderID).Where("trashed = ?", false)
		flq = scopeParent(flq, "folder_id", scope.FolderID).Where("trashed = ?", false)
	}

	if err := fq.Find(&folders).Error; err != nil {
		return nil, err
	}
	if err := flq.Find(&files).Error; err != nil {
		return nil, err
	}

	return &Listing{Folders: folders, Files: files}, nil
}

// scopeParent applies the parent filter for root/folder scopes.
func scopeParent(q *gorm.DB, column string, folderID *string) *gorm.DB {
	if folderID == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *folderID)
}

// SearchDrive returns non-trashed folders and files whose names contain the
// query, case-insensitively. An empty query returns an empty listing rather
// than everything.
func (s *GORMStore) SearchDrive(ctx context.Context, ownerID, query string) (*Listing, error) {
	if query == "" {
		return &Listing{Folders: []*models.Folder{}, Files: []*models.File{}}, nil
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	folders := []*models.Folder{}
	if err := s.db.WithContext(ctx).
		Where(`user_id = ? AND trashed = ? AND lower(name) LIKE ? ESCAPE '\'`, ownerID, false, pattern).
		Order("name asc").
		Find(&folders).Error; err != nil {
		return nil, err
	}

	files := []*models.File{}
	if err := s.db.WithContext(ctx).
		Where(`user_id = ? AND trashed = ? AND lower(name) LIKE ? ESCAPE '\'`, ownerID, false, pattern).
		Order("created_at desc").
		Find(&files).Error; err != nil {
		return nil, err
	}

	return &Listing{Folders: folders, Files: files}, nil
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
