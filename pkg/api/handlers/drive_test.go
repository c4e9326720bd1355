//go:build integration

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/skydrive/skydrive/pkg/api/auth"
	"github.com/skydrive/skydrive/pkg/api/middleware"
	"github.com/skydrive/skydrive/pkg/drive/models"
	"github.com/skydrive/skydrive/pkg/drive/store"
)

func setupDriveTest(t *testing.T) (store.Store, *models.User) {
	t.Helper()

	dbConfig := store.Config{
		Type: "sqlite",
		SQLite: store.SQLiteConfig{
			Path: ":memory:",
		},
	}
	driveStore, err := store.New(&dbConfig)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { driveStore.Close() })

	user := createHandlerTestUser(t, driveStore, "owner@example.com", "password123")
	return driveStore, user
}

// authedRequest builds a request carrying the user's access claims and an
// optional chi route parameter.
func authedRequest(method, target string, body []byte, user *models.User, paramKey, paramValue string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	claims := &auth.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: auth.TokenTypeAccess,
	}
	ctx := middleware.WithClaims(req.Context(), claims)

	if paramKey != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(paramKey, paramValue)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}

	return req.WithContext(ctx)
}

func seedFolder(t *testing.T, s store.Store, user *models.User, name string, parentID *string) *models.Folder {
	t.Helper()
	folder := &models.Folder{
		Name:     name,
		UserID:   user.ID,
		ParentID: parentID,
	}
	if _, err := s.CreateFolder(context.Background(), folder); err != nil {
		t.Fatalf("Failed to seed folder %q: %v", name, err)
	}
	return folder
}

func seedFile(t *testing.T, s store.Store, user *models.User, name string, folderID *string) *models.File {
	t.Helper()
	file := &models.File{
		Name:      name,
		Extension: models.ExtensionFromName(name),
		Link:      "/uploads/" + name,
		Size:      64,
		UserID:    user.ID,
		FolderID:  folderID,
	}
	if _, err := s.CreateFile(context.Background(), file); err != nil {
		t.Fatalf("Failed to seed file %q: %v", name, err)
	}
	return file
}

func TestDriveHandler_List(t *testing.T) {
	driveStore, user := setupDriveTest(t)
	handler := NewDriveHandler(driveStore)
	ctx := context.Background()

	docs := seedFolder(t, driveStore, user, "Docs", nil)
	seedFolder(t, driveStore, user, "Archive", nil)
	seedFile(t, driveStore, user, "notes.txt", nil)
	nested := seedFile(t, driveStore, user, "plan.pdf", &docs.ID)

	starred, err := driveStore.SetFileStarred(ctx, user.ID, nested.ID, true)
	if err != nil {
		t.Fatalf("Failed to star file: %v", err)
	}

	trashedFile := seedFile(t, driveStore, user, "old.txt", nil)
	if _, err := driveStore.SetFileTrashed(ctx, user.ID, trashedFile.ID, true); err != nil {
		t.Fatalf("Failed to trash file: %v", err)
	}

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantFolders int
		wantFiles   int
	}{
		{
			name:        "root listing",
			target:      "/api/v1/drive",
			wantStatus:  http.StatusOK,
			wantFolders: 2,
			wantFiles:   1,
		},
		{
			name:        "folder listing",
			target:      "/api/v1/drive?folder=" + docs.ID,
			wantStatus:  http.StatusOK,
			wantFolders: 0,
			wantFiles:   1,
		},
		{
			name:        "starred listing",
			target:      "/api/v1/drive?scope=starred",
			wantStatus:  http.StatusOK,
			wantFolders: 0,
			wantFiles:   1,
		},
		{
			name:        "trashed listing",
			target:      "/api/v1/drive?scope=trashed",
			wantStatus:  http.StatusOK,
			wantFolders: 0,
			wantFiles:   1,
		},
		{
			name:       "folder and scope are exclusive",
			target:     "/api/v1/drive?folder=" + docs.ID + "&scope=starred",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown scope",
			target:     "/api/v1/drive?scope=recent",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodGet, tt.target, nil, user, "", "")
			w := httptest.NewRecorder()

			handler.List(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("List() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp ListingResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if len(resp.Folders) != tt.wantFolders {
				t.Errorf("List() folders = %d, want %d", len(resp.Folders), tt.wantFolders)
			}
			if len(resp.Files) != tt.wantFiles {
				t.Errorf("List() files = %d, want %d", len(resp.Files), tt.wantFiles)
			}
		})
	}

	t.Run("folders ordered by name", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/api/v1/drive", nil, user, "", "")
		w := httptest.NewRecorder()

		handler.List(w, req)

		var resp ListingResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if resp.Folders[0].Name != "Archive" || resp.Folders[1].Name != "Docs" {
			t.Errorf("List() folder order = [%s %s], want [Archive Docs]",
				resp.Folders[0].Name, resp.Folders[1].Name)
		}
	})

	t.Run("starred file matches", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/api/v1/drive?scope=starred", nil, user, "", "")
		w := httptest.NewRecorder()

		handler.List(w, req)

		var resp ListingResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if resp.Files[0].ID != starred.ID {
			t.Errorf("List() starred file = %s, want %s", resp.Files[0].ID, starred.ID)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/drive", nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("List() status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestDriveHandler_Search(t *testing.T) {
	driveStore, user := setupDriveTest(t)
	handler := NewDriveHandler(driveStore)
	ctx := context.Background()

	seedFolder(t, driveStore, user, "Tax Documents", nil)
	seedFile(t, driveStore, user, "tax-return-2025.pdf", nil)
	hidden := seedFile(t, driveStore, user, "tax-draft.pdf", nil)
	if _, err := driveStore.SetFileTrashed(ctx, user.ID, hidden.ID, true); err != nil {
		t.Fatalf("Failed to trash file: %v", err)
	}

	tests := []struct {
		name        string
		query       string
		wantFolders int
		wantFiles   int
	}{
		{
			name:        "case-insensitive substring",
			query:       "TAX",
			wantFolders: 1,
			wantFiles:   1,
		},
		{
			name:        "no matches",
			query:       "vacation",
			wantFolders: 0,
			wantFiles:   0,
		},
		{
			name:        "empty query",
			query:       "",
			wantFolders: 0,
			wantFiles:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodGet, "/api/v1/drive/search?q="+tt.query, nil, user, "", "")
			w := httptest.NewRecorder()

			handler.Search(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Search() status = %d, body = %s", w.Code, w.Body.String())
			}

			var resp ListingResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if len(resp.Folders) != tt.wantFolders {
				t.Errorf("Search() folders = %d, want %d", len(resp.Folders), tt.wantFolders)
			}
			if len(resp.Files) != tt.wantFiles {
				t.Errorf("Search() files = %d, want %d", len(resp.Files), tt.wantFiles)
			}
		})
	}
}
