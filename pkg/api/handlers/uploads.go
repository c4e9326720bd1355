package handlers

import (
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skydrive/skydrive/internal/logger"
	"github.com/skydrive/skydrive/pkg/drive/models"
	"github.com/skydrive/skydrive/pkg/drive/store"
	"github.com/skydrive/skydrive/pkg/storage"
)

// maxUploadMemory caps the multipart form memory buffer; larger parts
// spill to temporary files.
const maxUploadMemory = 32 << 20

// UploadHandler stores uploaded bytes through the blob store and registers
// the resulting file metadata.
type UploadHandler struct {
	store store.FileStore
	blobs storage.BlobStore
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(s store.FileStore, blobs storage.BlobStore) *UploadHandler {
	return &UploadHandler{
		store: s,
		blobs: blobs,
	}
}

// Upload handles POST /api/v1/uploads.
//
// Expects a multipart form with a "file" part and an optional "folder_id"
// value. The bytes go to the blob store first; the metadata record points
// at the resulting link.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		BadRequest(w, "Invalid multipart form")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		BadRequest(w, "Missing file part")
		return
	}
	defer part.Close()

	var folderID *string
	if v := r.FormValue("folder_id"); v != "" {
		folderID = &v
	}

	blob, err := h.blobs.Save(r.Context(), header.Filename, part)
	if err != nil {
		logger.ErrorCtx(r.Context(), "Failed to store upload",
			logger.KeyFileName, header.Filename,
			logger.KeyError, err)
		InternalServerError(w, "Failed to store file")
		return
	}

	file := &models.File{
		ID:        uuid.New().String(),
		Name:      header.Filename,
		Extension: models.ExtensionFromName(header.Filename),
		Link:      blob.Link,
		Size:      blob.Size,
		UserID:    owner,
		FolderID:  folderID,
	}

	if _, err := h.store.CreateFile(r.Context(), file); err != nil {
		// Roll the orphaned blob back so storage does not leak
		if delErr := h.blobs.Delete(r.Context(), blob.Link); delErr != nil {
			logger.WarnCtx(r.Context(), "Failed to clean up orphaned upload",
				logger.KeyError, delErr)
		}
		writeDriveError(w, err)
		return
	}

	logger.InfoCtx(r.Context(), "File uploaded",
		logger.KeyFileID, file.ID,
		logger.KeyFileName, file.Name,
		logger.KeySize, file.Size)

	WriteJSONCreated(w, fileToResponse(file))
}

// Download handles GET /uploads/{key}, streaming stored bytes back for the
// local blob backend. S3-backed deployments serve content from the bucket
// directly.
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	link := "/uploads/" + key

	rc, err := h.blobs.Open(r.Context(), link)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) || errors.Is(err, storage.ErrInvalidLink) {
			NotFound(w, "File not found")
			return
		}
		InternalServerError(w, "Failed to read file")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
	if _, err := io.Copy(w, rc); err != nil {
		logger.WarnCtx(r.Context(), "Download interrupted", logger.KeyError, err)
	}
}
