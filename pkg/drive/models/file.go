package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// File is a leaf node in a user's drive.
//
// Link is an opaque pointer to the stored bytes (a local path or object
// URL); the drive core only registers and serves metadata. FolderID is nil
// for files at the root level. The starred/trashed coupling matches Folder:
// a trashed file is never starred.
type File struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Extension string    `gorm:"size:32" json:"extension"`
	Link      string    `gorm:"not null;size:512" json:"link"`
	Size      int64     `gorm:"not null;default:0" json:"size"`
	UserID    string    `gorm:"not null;size:36;index" json:"user_id"`
	FolderID  *string   `gorm:"size:36;index" json:"folder_id,omitempty"`
	Starred   bool      `gorm:"not null;default:false" json:"starred"`
	Trashed   bool      `gorm:"not null;default:false" json:"trashed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User   User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Folder *Folder `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for File.
func (File) TableName() string {
	return "files"
}

// Validate checks if the file has valid configuration.
func (f *File) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: name", ErrFieldRequired)
	}
	if f.Link == "" {
		return fmt.Errorf("%w: link", ErrFieldRequired)
	}
	if f.UserID == "" {
		return fmt.Errorf("%w: user_id", ErrFieldRequired)
	}
	if f.Size < 0 {
		return fmt.Errorf("file size must not be negative, got %d", f.Size)
	}
	if f.Trashed && f.Starred {
		return fmt.Errorf("file %q cannot be both starred and trashed", f.ID)
	}
	return nil
}

// NormalizeExtension lowercases an extension and strips a leading dot.
// "PDF" and ".pdf" both normalize to "pdf".
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ExtensionFromName derives the storage extension from a file name.
// Returns "" when the name has no extension.
func ExtensionFromName(name string) string {
	return NormalizeExtension(filepath.Ext(name))
}

// RenamedFileName applies the drive's rename rule: when the new name
// contains no dot, the file keeps its extension.
func RenamedFileName(newName, extension string) string {
	if !strings.Contains(newName, ".") && extension != "" {
		return newName + "." + extension
	}
	return newName
}
