package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skydrive/skydrive/internal/logger"
	"github.com/skydrive/skydrive/pkg/drive/models"
	"github.com/skydrive/skydrive/pkg/drive/store"
	"github.com/skydrive/skydrive/pkg/storage"
)

// FileHandler manages file metadata records.
type FileHandler struct {
	store store.FileStore
	blobs storage.BlobStore
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(s store.FileStore, blobs storage.BlobStore) *FileHandler {
	return &FileHandler{
		store: s,
		blobs: blobs,
	}
}

// CreateFileRequest is the request body for POST /api/v1/files.
// It registers metadata for already-stored bytes; uploads go through
// POST /api/v1/uploads instead.
type CreateFileRequest struct {
	Name     string  `json:"name"`
	Link     string  `json:"link"`
	Size     int64   `json:"size"`
	FolderID *string `json:"folder_id,omitempty"`
}

// RenameRequest is the request body for the rename endpoints.
type RenameRequest struct {
	Name string `json:"name"`
}

// FlagRequest is the request body for the star and trash endpoints.
type FlagRequest struct {
	Value bool `json:"value"`
}

// Create handles POST /api/v1/files.
func (h *FileHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	var req CreateFileRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	file := &models.File{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Extension: models.ExtensionFromName(req.Name),
		Link:      req.Link,
		Size:      req.Size,
		UserID:    owner,
		FolderID:  req.FolderID,
	}

	if _, err := h.store.CreateFile(r.Context(), file); err != nil {
		writeDriveError(w, err)
		return
	}

	logger.InfoCtx(r.Context(), "File registered",
		logger.KeyFileID, file.ID,
		logger.KeyFileName, file.Name,
		logger.KeySize, file.Size)

	WriteJSONCreated(w, fileToResponse(file))
}

// Get handles GET /api/v1/files/{id}.
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	file, err := h.store.GetFile(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, fileToResponse(file))
}

// Rename handles PATCH /api/v1/files/{id}/name.
func (h *FileHandler) Rename(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	var req RenameRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	file, err := h.store.RenameFile(r.Context(), owner, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, fileToResponse(file))
}

// SetStarred handles PATCH /api/v1/files/{id}/starred.
func (h *FileHandler) SetStarred(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	var req FlagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	file, err := h.store.SetFileStarred(r.Context(), owner, chi.URLParam(r, "id"), req.Value)
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, fileToResponse(file))
}

// SetTrashed handles PATCH /api/v1/files/{id}/trashed.
// Trashing and restoring both clear the starred flag.
func (h *FileHandler) SetTrashed(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	var req FlagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	file, err := h.store.SetFileTrashed(r.Context(), owner, chi.URLParam(r, "id"), req.Value)
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, fileToResponse(file))
}

// DeleteForever handles DELETE /api/v1/files/{id}.
// Removes the metadata record and best-effort deletes the stored bytes.
func (h *FileHandler) DeleteForever(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	fileID := chi.URLParam(r, "id")

	file, err := h.store.GetFile(r.Context(), owner, fileID)
	if err != nil {
		writeDriveError(w, err)
		return
	}

	if err := h.store.DeleteFileForever(r.Context(), owner, fileID); err != nil {
		writeDriveError(w, err)
		return
	}

	// The record is gone either way; a stranded blob is logged, not surfaced
	if h.blobs != nil {
		if err := h.blobs.Delete(r.Context(), file.Link); err != nil {
			logger.WarnCtx(r.Context(), "Failed to delete file content",
				logger.KeyFileID, fileID,
				logger.KeyError, err)
		}
	}

	logger.InfoCtx(r.Context(), "File deleted forever",
		logger.KeyFileID, fileID,
		logger.KeyFileName, file.Name)

	WriteNoContent(w)
}
