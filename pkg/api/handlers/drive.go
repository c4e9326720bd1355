package handlers

import (
	"net/http"

	"github.com/skydrive/skydrive/pkg/drive/store"
)

// DriveHandler serves the listing and search views of a user's drive.
type DriveHandler struct {
	store store.DriveStore
}

// NewDriveHandler creates a new DriveHandler.
func NewDriveHandler(s store.DriveStore) *DriveHandler {
	return &DriveHandler{store: s}
}

// List handles GET /api/v1/drive.
//
// Query parameters select the scope:
//   - folder=<id>    contents of a folder
//   - scope=starred  starred items across the drive
//   - scope=trashed  trashed items across the drive
//   - (none)         root level
func (h *DriveHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	scope, ok := parseScope(w, r)
	if !ok {
		return
	}

	listing, err := h.store.ListDrive(r.Context(), owner, scope)
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, listingToResponse(listing.Folders, listing.Files))
}

// Search handles GET /api/v1/drive/search.
func (h *DriveHandler) Search(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	query := r.URL.Query().Get("q")

	listing, err := h.store.SearchDrive(r.Context(), owner, query)
	if err != nil {
		writeDriveError(w, err)
		return
	}

	WriteJSONOK(w, listingToResponse(listing.Folders, listing.Files))
}

func parseScope(w http.ResponseWriter, r *http.Request) (store.Scope, bool) {
	q := r.URL.Query()
	folderID := q.Get("folder")
	named := q.Get("scope")

	if folderID != "" && named != "" {
		BadRequest(w, "The folder and scope parameters are mutually exclusive")
		return store.Scope{}, false
	}

	if folderID != "" {
		return store.ScopeFolder(folderID), true
	}

	switch named {
	case "":
		return store.ScopeRoot(), true
	case "starred":
		return store.ScopeStarred(), true
	case "trashed":
		return store.ScopeTrashed(), true
	default:
		BadRequest(w, "Unknown scope: "+named)
		return store.Scope{}, false
	}
}
