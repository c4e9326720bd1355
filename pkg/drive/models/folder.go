package models

import (
	"fmt"
	"time"
)

// DefaultFolderName is used when a folder is created with a blank name.
const DefaultFolderName = "Untitled folder"

// Folder is a node in a per-user tree.
//
// ParentID is nil for root-level folders. Ownership is denormalized onto
// every row so that ownership checks are a single-row lookup rather than a
// tree walk. A trashed folder is retained (soft delete) and hidden from
// normal listings until it is restored or deleted forever.
type Folder struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	UserID    string    `gorm:"not null;size:36;index" json:"user_id"`
	ParentID  *string   `gorm:"size:36;index" json:"parent_id,omitempty"`
	Starred   bool      `gorm:"not null;default:false" json:"starred"`
	Trashed   bool      `gorm:"not null;default:false" json:"trashed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Parent   *Folder  `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	Children []Folder `gorm:"foreignKey:ParentID" json:"-"`
	Files    []File   `gorm:"foreignKey:FolderID" json:"-"`
}

// TableName returns the table name for Folder.
func (Folder) TableName() string {
	return "folders"
}

// IsRoot reports whether the folder lives at the root level.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

// Validate checks if the folder has valid configuration.
func (f *Folder) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: name", ErrFieldRequired)
	}
	if f.UserID == "" {
		return fmt.Errorf("%w: user_id", ErrFieldRequired)
	}
	if f.Trashed && f.Starred {
		return fmt.Errorf("folder %q cannot be both starred and trashed", f.ID)
	}
	return nil
}

// PathEntry is one hop of a resolved folder path, root first.
// The synthetic "Home" entry has an empty ID and a nil ParentID.
type PathEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}
