package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skydrive/skydrive/internal/logger"
	"github.com/skydrive/skydrive/pkg/drive/models"
	"github.com/skydrive/skydrive/pkg/drive/store"
)

// FolderHandler manages folder records, including path resolution for
// breadcrumb display.
type FolderHandler struct {
	store store.FolderStore
}

// NewFolderHandler creates a new FolderHandler.
func NewFolderHandler(s store.FolderStore) *FolderHandler {
	return &FolderHandler{store: s}
}

// CreateFolderRequest is the request body for POST /api/v1/folders.
// An empty name gets the default "Untitled folder".
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}

// Create handles POST /api/v1/folders.
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	var req CreateFolderRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	folder := &models.Folder{
		ID:       uuid.New().String(),
		Name:     req.Name,
		UserID:   owner,
		ParentID: req.ParentID,
	}

	if _, err := h.store.CreateFolder(r.Context(), folder); err != nil {
		writeDriveError(w, err)
		return
	}

	logger.InfoCtx(r.Context(), "Folder created",
		logger.KeyFolderID, folder.ID,
		logger.KeyFileName, folder.Name)

	WriteJSONCreated(w, folderToResponse(folder))
}

// Get handles GET /api/v1/folders/{id}.
func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	folder, err := h.store.GetFolder(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, folderToResponse(folder))
}

// Rename handles PATCH /api/v1/folders/{id}/name.
// An empty name leaves the folder unchanged.
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	var req RenameRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	folder, err := h.store.RenameFolder(r.Context(), owner, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, folderToResponse(folder))
}

// SetStarred handles PATCH /api/v1/folders/{id}/starred.
func (h *FolderHandler) SetStarred(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	var req FlagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	folder, err := h.store.SetFolderStarred(r.Context(), owner, chi.URLParam(r, "id"), req.Value)
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, folderToResponse(folder))
}

// SetTrashed handles PATCH /api/v1/folders/{id}/trashed.
// The flag sweeps the whole subtree, and both directions clear starred.
func (h *FolderHandler) SetTrashed(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	var req FlagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	folder, err := h.store.SetFolderTrashed(r.Context(), owner, chi.URLParam(r, "id"), req.Value)
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, folderToResponse(folder))
}

// DeleteForever handles DELETE /api/v1/folders/{id}.
// Removes the folder and its entire subtree.
func (h *FolderHandler) DeleteForever(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	folderID := chi.URLParam(r, "id")

	if err := h.store.DeleteFolderForever(r.Context(), owner, folderID); err != nil {
		writeDriveError(w, err)
		return
	}

	logger.InfoCtx(r.Context(), "Folder deleted forever", logger.KeyFolderID, folderID)

	WriteNoContent(w)
}

// Path handles GET /api/v1/folders/{id}/path.
// Returns the breadcrumb chain root-first, starting with the synthetic
// "Home" entry.
func (h *FolderHandler) Path(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	path, err := h.store.ResolveFolderPath(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, pathToResponse(path))
}
