package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skydrive/skydrive/pkg/api/middleware"
	"github.com/skydrive/skydrive/pkg/drive/models"
)

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// ownerID extracts the authenticated user's id from the request context.
// Returns "" and writes 401 when the request carries no claims.
func ownerID(w http.ResponseWriter, r *http.Request) string {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return ""
	}
	return claims.UserID
}

// writeDriveError maps drive store errors onto problem responses. Ownership
// failures surface as 404 like true absence, so callers cannot probe for
// other users' entity ids.
func writeDriveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, models.ErrFolderNotFound):
		NotFound(w, "Folder not found")
	case errors.Is(err, models.ErrFieldRequired):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, models.ErrFolderTreeCorrupt):
		InternalServerError(w, "Folder tree is corrupted")
	default:
		InternalServerError(w, "Operation failed")
	}
}
