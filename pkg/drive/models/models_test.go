package models

import (
	"errors"
	"testing"
)

func TestUser_GetDisplayName(t *testing.T) {
	tests := []struct {
		name        string
		user        User
		wantDisplay string
	}{
		{"with name", User{Email: "alice@example.com", Name: "Alice"}, "Alice"},
		{"without name", User{Email: "alice@example.com"}, "alice"},
		{"empty email", User{Email: ""}, ""},
		{"malformed email", User{Email: "@example.com"}, "@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.GetDisplayName(); got != tt.wantDisplay {
				t.Errorf("GetDisplayName() = %q, want %q", got, tt.wantDisplay)
			}
		})
	}
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"valid", User{Email: "alice@example.com"}, false},
		{"missing email", User{}, true},
		{"email without at sign", User{Email: "not-an-email"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := HashPassword("secret123")
		if err != nil {
			t.Fatalf("HashPassword() error = %v", err)
		}
		if hash == "secret123" {
			t.Error("hash must not equal the plaintext")
		}
		if !VerifyPassword("secret123", hash) {
			t.Error("correct password should verify")
		}
		if VerifyPassword("wrong", hash) {
			t.Error("wrong password should not verify")
		}
	})
}

func TestFolder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		folder  Folder
		wantErr error
	}{
		{"valid root", Folder{Name: "Docs", UserID: "u1"}, nil},
		{"missing name", Folder{UserID: "u1"}, ErrFieldRequired},
		{"missing user", Folder{Name: "Docs"}, ErrFieldRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.folder.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("starred and trashed together", func(t *testing.T) {
		folder := Folder{ID: "f1", Name: "Docs", UserID: "u1", Starred: true, Trashed: true}
		if folder.Validate() == nil {
			t.Error("a folder must not be starred and trashed at once")
		}
	})
}

func TestFolder_IsRoot(t *testing.T) {
	parentID := "p1"

	if root := (&Folder{}).IsRoot(); !root {
		t.Error("folder without parent should be root")
	}
	if root := (&Folder{ParentID: &parentID}).IsRoot(); root {
		t.Error("folder with parent should not be root")
	}
}

func TestFile_Validate(t *testing.T) {
	valid := File{Name: "a.txt", Link: "/blobs/a", UserID: "u1"}

	tests := []struct {
		name    string
		mutate  func(f *File)
		wantErr bool
	}{
		{"valid", func(f *File) {}, false},
		{"missing name", func(f *File) { f.Name = "" }, true},
		{"missing link", func(f *File) { f.Link = "" }, true},
		{"missing user", func(f *File) { f.UserID = "" }, true},
		{"negative size", func(f *File) { f.Size = -1 }, true},
		{"starred and trashed", func(f *File) { f.Starred = true; f.Trashed = true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := valid
			tt.mutate(&file)
			err := file.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pdf", "pdf"},
		{".pdf", "pdf"},
		{"PDF", "pdf"},
		{".TAR", "tar"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeExtension(tt.in); got != tt.want {
				t.Errorf("NormalizeExtension(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtensionFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"report.pdf", "pdf"},
		{"Report.PDF", "pdf"},
		{"archive.tar.gz", "gz"},
		{"README", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtensionFromName(tt.name); got != tt.want {
				t.Errorf("ExtensionFromName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestRenamedFileName(t *testing.T) {
	tests := []struct {
		newName   string
		extension string
		want      string
	}{
		{"summary", "pdf", "summary.pdf"},
		{"summary.txt", "pdf", "summary.txt"},
		{"archive.2024", "pdf", "archive.2024"},
		{"summary", "", "summary"},
	}

	for _, tt := range tests {
		t.Run(tt.newName, func(t *testing.T) {
			if got := RenamedFileName(tt.newName, tt.extension); got != tt.want {
				t.Errorf("RenamedFileName(%q, %q) = %q, want %q",
					tt.newName, tt.extension, got, tt.want)
			}
		})
	}
}
