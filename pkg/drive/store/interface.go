// Package store persists drive entities with GORM and implements the drive
// core: ownership-guarded reads, star/trash/restore/rename transitions,
// cascading delete, folder path resolution, and scoped listings.
package store

import (
	"context"

	"github.com/skydrive/skydrive/pkg/drive/models"
)

// UserStore manages user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, email string) error

	// ValidateCredentials checks email/password and returns the user on
	// success. Unknown emails and wrong passwords both yield
	// models.ErrInvalidCredentials.
	ValidateCredentials(ctx context.Context, email, password string) (*models.User, error)
}

// FileStore manages file metadata records. Every operation that targets a
// single file passes through the ownership guard: absence and foreign
// ownership are both reported as models.ErrFileNotFound.
type FileStore interface {
	CreateFile(ctx context.Context, file *models.File) (string, error)
	GetFile(ctx context.Context, ownerID, fileID string) (*models.File, error)

	// RenameFile renames a file. An empty newName is a no-op returning the
	// unchanged file. A newName without a dot keeps the file's extension.
	RenameFile(ctx context.Context, ownerID, fileID, newName string) (*models.File, error)

	// SetFileStarred sets the starred flag verbatim. Idempotent.
	SetFileStarred(ctx context.Context, ownerID, fileID string, starred bool) (*models.File, error)

	// SetFileTrashed sets the trashed flag and unconditionally clears
	// starred in the same update, for both trash and restore.
	SetFileTrashed(ctx context.Context, ownerID, fileID string, trashed bool) (*models.File, error)

	// DeleteFileForever removes the file record. Irreversible; valid even
	// for files that were never trashed.
	DeleteFileForever(ctx context.Context, ownerID, fileID string) error
}

// FolderStore manages folder records. Single-folder operations share the
// ownership guard semantics of FileStore.
type FolderStore interface {
	CreateFolder(ctx context.Context, folder *models.Folder) (string, error)
	GetFolder(ctx context.Context, ownerID, folderID string) (*models.Folder, error)
	RenameFolder(ctx context.Context, ownerID, folderID, newName string) (*models.Folder, error)
	SetFolderStarred(ctx context.Context, ownerID, folderID string, starred bool) (*models.Folder, error)
	SetFolderTrashed(ctx context.Context, ownerID, folderID string, trashed bool) (*models.Folder, error)

	// DeleteFolderForever removes the folder and its entire subtree
	// (descendant folders and files) in a single transaction.
	DeleteFolderForever(ctx context.Context, ownerID, folderID string) error

	// ResolveFolderPath walks the ancestor chain of a folder and returns
	// it root-first, prefixed with the synthetic "Home" entry. Ownership is
	// re-verified at every hop. The walk is bounded; exceeding the bound
	// yields models.ErrFolderTreeCorrupt.
	ResolveFolderPath(ctx context.Context, ownerID, folderID string) ([]models.PathEntry, error)
}

// DriveStore produces the filtered, ordered views for directory display.
type DriveStore interface {
	// ListDrive returns the folders and files visible in the given scope.
	// Folders are ordered by name ascending, files by creation time
	// descending, in every scope.
	ListDrive(ctx context.Context, ownerID string, scope Scope) (*Listing, error)

	// SearchDrive returns non-trashed folders and files whose names
	// contain the query, case-insensitively. Ordering matches ListDrive.
	SearchDrive(ctx context.Context, ownerID, query string) (*Listing, error)
}

// Store is the full drive store interface.
type Store interface {
	UserStore
	FileStore
	FolderStore
	DriveStore

	Ping(ctx context.Context) error
	Close() error
}

// Scope selects one of the four listing views: root (zero value), a folder's
// contents, starred-only, or trashed-only. Starred and Trashed are mutually
// exclusive with each other and with FolderID.
type Scope struct {
	// FolderID scopes the listing to a folder's direct children.
	// Nil means root level.
	FolderID *string

	// Starred selects starred, non-trashed items across all folders.
	Starred bool

	// Trashed selects trashed items across all folders.
	Trashed bool
}

// ScopeFolder returns a scope for a folder's direct children.
func ScopeFolder(folderID string) Scope {
	return Scope{FolderID: &folderID}
}

// ScopeRoot returns the root-level scope.
func ScopeRoot() Scope {
	return Scope{}
}

// ScopeStarred returns the starred-only scope.
func ScopeStarred() Scope {
	return Scope{Starred: true}
}

// ScopeTrashed returns the trashed-only scope.
func ScopeTrashed() Scope {
	return Scope{Trashed: true}
}

// Listing is the ordered result of a drive listing or search.
type Listing struct {
	Folders []*models.Folder `json:"folders"`
	Files   []*models.File   `json:"files"`
}

// Compile-time interface check.
var _ Store = (*GORMStore)(nil)
