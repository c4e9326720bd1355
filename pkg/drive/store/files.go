package store

import (
	"context"

	"github.com/skydrive/skydrive/pkg/drive/models"
)

// ============================================
// FILE OPERATIONS
// ============================================

// CreateFile registers a file metadata record. The bytes are already in the
// blob store by the time this is called; the record only carries the link.
// A FolderID, when set, must reference a folder owned by the same user.
func (s *GORMStore) CreateFile(ctx context.Context, file *models.File) (string, error) {
	if file.Extension == "" {
		file.Extension = models.ExtensionFromName(file.Name)
	} else {
		file.Extension = models.NormalizeExtension(file.Extension)
	}

	if err := file.Validate(); err != nil {
		return "", err
	}

	// Cross-user parenting is forbidden. The guard reports a foreign
	// folder the same way as a missing one.
	if file.FolderID != nil {
		if _, err := s.GetFolder(ctx, file.UserID, *file.FolderID); err != nil {
			return "", err
		}
	}

	return createWithID(s.db, ctx, file, func(f *models.File, id string) { f.ID = id }, file.ID, nil)
}

func (s *GORMStore) GetFile(ctx context.Context, ownerID, fileID string) (*models.File, error) {
	return getOwned[models.File](s.db, ctx, fileID, ownerID, models.ErrFileNotFound)
}

// RenameFile renames a file. An empty name is a no-op returning the current
// row. A new name without a dot keeps the file's stored extension, so
// renaming "report.pdf" to "summary" yields "summary.pdf".
func (s *GORMStore) RenameFile(ctx context.Context, ownerID, fileID, newName string) (*models.File, error) {
	file, err := s.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}

	if newName == "" {
		return file, nil
	}

	name := models.RenamedFileName(newName, file.Extension)
	if err := s.db.WithContext(ctx).Model(file).Update("name", name).Error; err != nil {
		return nil, err
	}

	return file, nil
}

// SetFileStarred sets the starred flag verbatim. Starring a starred file is
// a no-op, not an error.
func (s *GORMStore) SetFileStarred(ctx context.Context, ownerID, fileID string, starred bool) (*models.File, error) {
	file, err := s.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(file).Update("starred", starred).Error; err != nil {
		return nil, err
	}

	return file, nil
}

// SetFileTrashed moves a file in or out of the trash. Starred is cleared in
// the same update for both directions: a restored file always lands
// unstarred.
func (s *GORMStore) SetFileTrashed(ctx context.Context, ownerID, fileID string, trashed bool) (*models.File, error) {
	file, err := s.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(file).Updates(map[string]any{
		"trashed": trashed,
		"starred": false,
	}).Error; err != nil {
		return nil, err
	}

	return file, nil
}

// DeleteFileForever removes the file record. Only the record: deleting the
// stored bytes is the blob store's concern.
func (s *GORMStore) DeleteFileForever(ctx context.Context, ownerID, fileID string) error {
	file, err := s.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Delete(file).Error
}
