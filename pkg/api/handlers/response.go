package handlers

import (
	"time"

	"github.com/skydrive/skydrive/pkg/drive/models"
)

// UserResponse is a sanitized user representation for API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FileResponse is the file representation for API responses.
type FileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Extension string    `json:"extension,omitempty"`
	Link      string    `json:"link"`
	Size      int64     `json:"size"`
	FolderID  *string   `json:"folder_id,omitempty"`
	Starred   bool      `json:"starred"`
	Trashed   bool      `json:"trashed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FolderResponse is the folder representation for API responses.
type FolderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Starred   bool      `json:"starred"`
	Trashed   bool      `json:"trashed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListingResponse is the combined folder/file listing for drive views.
type ListingResponse struct {
	Folders []FolderResponse `json:"folders"`
	Files   []FileResponse   `json:"files"`
}

// PathEntryResponse is one breadcrumb hop, root first.
type PathEntryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func userToResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

func fileToResponse(file *models.File) FileResponse {
	return FileResponse{
		ID:        file.ID,
		Name:      file.Name,
		Extension: file.Extension,
		Link:      file.Link,
		Size:      file.Size,
		FolderID:  file.FolderID,
		Starred:   file.Starred,
		Trashed:   file.Trashed,
		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
	}
}

func folderToResponse(folder *models.Folder) FolderResponse {
	return FolderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		ParentID:  folder.ParentID,
		Starred:   folder.Starred,
		Trashed:   folder.Trashed,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}
}

func listingToResponse(folders []*models.Folder, files []*models.File) ListingResponse {
	response := ListingResponse{
		Folders: make([]FolderResponse, len(folders)),
		Files:   make([]FileResponse, len(files)),
	}
	for i, f := range folders {
		response.Folders[i] = folderToResponse(f)
	}
	for i, f := range files {
		response.Files[i] = fileToResponse(f)
	}
	return response
}

func pathToResponse(path []models.PathEntry) []PathEntryResponse {
	response := make([]PathEntryResponse, len(path))
	for i, entry := range path {
		response[i] = PathEntryResponse{ID: entry.ID, Name: entry.Name}
	}
	return response
}
