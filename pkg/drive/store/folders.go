package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/skydrive/skydrive/pkg/drive/models"
)

// maxPathDepth bounds the ancestor walk in ResolveFolderPath. The parent
// graph is acyclic by construction (there is no move-folder operation), so
// this is a safety net against corrupted data, not a feature limit.
const maxPathDepth = 100

// ============================================
// FOLDER OPERATIONS
// ============================================

// CreateFolder creates a folder. A blank name falls back to the default
// "Untitled folder". A ParentID, when set, must reference a folder owned by
// the same user; a foreign parent is reported as ErrFolderNotFound.
func (s *GORMStore) CreateFolder(ctx context.Context, folder *models.Folder) (string, error) {
	if folder.Name == "" {
		folder.Name = models.DefaultFolderName
	}

	if err := folder.Validate(); err != nil {
		return "", err
	}

	if folder.ParentID != nil {
		if _, err := s.GetFolder(ctx, folder.UserID, *folder.ParentID); err != nil {
			return "", err
		}
	}

	return createWithID(s.db, ctx, folder, func(f *models.Folder, id string) { f.ID = id }, folder.ID, nil)
}

func (s *GORMStore) GetFolder(ctx context.Context, ownerID, folderID string) (*models.Folder, error) {
	return getOwned[models.Folder](s.db, ctx, folderID, ownerID, models.ErrFolderNotFound)
}

// RenameFolder renames a folder verbatim. An empty name is a no-op
// returning the current row.
func (s *GORMStore) RenameFolder(ctx context.Context, ownerID, folderID, newName string) (*models.Folder, error) {
	folder, err := s.GetFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, err
	}

	if newName == "" {
		return folder, nil
	}

	if err := s.db.WithContext(ctx).Model(folder).Update("name", newName).Error; err != nil {
		return nil, err
	}

	return folder, nil
}

func (s *GORMStore) SetFolderStarred(ctx context.Context, ownerID, folderID string, starred bool) (*models.Folder, error) {
	folder, err := s.GetFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(folder).Update("starred", starred).Error; err != nil {
		return nil, err
	}

	return folder, nil
}

// SetFolderTrashed moves a folder and its entire subtree in or out of the
// trash, clearing starred on every touched row for both directions. The
// sweep keeps the starred view from ever pointing into a trashed folder,
// and a restored subtree always comes back unstarred.
func (s *GORMStore) SetFolderTrashed(ctx context.Context, ownerID, folderID string, trashed bool) (*models.Folder, error) {
	var folder models.Folder

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", folderID, ownerID).First(&folder).Error; err != nil {
			return convertNotFoundError(err, models.ErrFolderNotFound)
		}

		subtree, err := collectSubtree(tx, ownerID, folderID)
		if err != nil {
			return err
		}

		updates := map[string]any{
			"trashed": trashed,
			"starred": false,
		}
		if err := tx.Model(&models.File{}).
			Where("user_id = ? AND folder_id IN ?", ownerID, subtree).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.Model(&models.Folder{}).
			Where("user_id = ? AND id IN ?", ownerID, subtree).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	folder.Trashed = trashed
	folder.Starred = false
	return &folder, nil
}

// DeleteFolderForever removes a folder and its entire subtree in a single
// transaction: either the whole subtree disappears or nothing does.
//
// The sweep is explicit rather than relying on the driver honoring the
// ON DELETE CASCADE constraints, so behavior is identical on SQLite and
// PostgreSQL. The breadth-first walk tracks visited ids, so it terminates
// even on a corrupted cyclic parent graph.
func (s *GORMStore) DeleteFolderForever(ctx context.Context, ownerID, folderID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var folder models.Folder
		if err := tx.Where("id = ? AND user_id = ?", folderID, ownerID).First(&folder).Error; err != nil {
			return convertNotFoundError(err, models.ErrFolderNotFound)
		}

		subtree, err := collectSubtree(tx, ownerID, folderID)
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ? AND folder_id IN ?", ownerID, subtree).Delete(&models.File{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND id IN ?", ownerID, subtree).Delete(&models.Folder{}).Error
	})
}

// collectSubtree returns the ids of a folder and all its descendant folders,
// breadth first.
func collectSubtree(tx *gorm.DB, ownerID, rootID string) ([]string, error) {
	visited := map[string]bool{rootID: true}
	all := []string{rootID}
	frontier := []string{rootID}

	for len(frontier) > 0 {
		var childIDs []string
		if err := tx.Model(&models.Folder{}).
			Where("user_id = ? AND parent_id IN ?", ownerID, frontier).
			Pluck("id", &childIDs).Error; err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, id := range childIDs {
			if visited[id] {
				continue
			}
			visited[id] = true
			all = append(all, id)
			frontier = append(frontier, id)
		}
	}

	return all, nil
}

// ResolveFolderPath walks from the folder up to the root, re-verifying
// ownership at every hop, and returns the chain root-first prefixed with
// the synthetic "Home" entry. A chain deeper than maxPathDepth is treated
// as corruption and fails closed with ErrFolderTreeCorrupt.
func (s *GORMStore) ResolveFolderPath(ctx context.Context, ownerID, folderID string) ([]models.PathEntry, error) {
	var chain []models.PathEntry

	currentID := &folderID
	for hops := 0; currentID != nil; hops++ {
		if hops >= maxPathDepth {
			return nil, models.ErrFolderTreeCorrupt
		}

		folder, err := s.GetFolder(ctx, ownerID, *currentID)
		if err != nil {
			return nil, err
		}

		chain = append(chain, models.PathEntry{
			ID:       folder.ID,
			Name:     folder.Name,
			ParentID: folder.ParentID,
		})
		currentID = folder.ParentID
	}

	path := make([]models.PathEntry, 0, len(chain)+1)
	path = append(path, models.PathEntry{Name: "Home"})
	for i := len(chain) - 1; i >= 0; i-- {
		path = append(path, chain[i])
	}

	return path, nil
}
