package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skydrive/skydrive/pkg/storage"
)

// yamlSafePath converts a filesystem path to a YAML-safe representation.
// On Windows, backslashes in double-quoted YAML strings are interpreted as
// escape sequences (e.g. \U -> Unicode escape), causing parse errors.
func yamlSafePath(p string) string {
	return filepath.ToSlash(p)
}

func TestLoad_DefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "INFO"

database:
  type: sqlite

storage:
  type: local
  local:
    dir: "` + yamlSafePath(tmpDir) + `/uploads"

api:
  port: 8080
  jwt:
    secret: "test-secret-key-for-testing-minimum-32-chars"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify defaults were applied
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown_timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("Expected API port 8080, got %d", cfg.API.Port)
	}
	if cfg.Bootstrap.Email != "demo@example.com" {
		t.Errorf("Expected default bootstrap email, got %q", cfg.Bootstrap.Email)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Loading with no config file returns a valid default config.
	// This allows users to run the server without a config file for quick testing.
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error when loading default config, got: %v", err)
	}

	if cfg == nil {
		t.Fatal("Expected default config to be returned")
	}
	if cfg.API.Port != 8080 {
		t.Errorf("Expected default API port 8080, got %d", cfg.API.Port)
	}
	if cfg.Storage.Type != storage.BackendLocal {
		t.Errorf("Expected default storage type local, got %q", cfg.Storage.Type)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	configContent := `
logging:
  level: INFO
  invalid yaml here [[[
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected error with invalid YAML, got nil")
	}
}

func TestLoad_DurationParsing(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: DEBUG

shutdown_timeout: 45s

storage:
  local:
    dir: "` + yamlSafePath(tmpDir) + `/uploads"

api:
  read_timeout: 5s
  jwt:
    access_token_duration: 30m
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ShutdownTimeout != 45*time.Second {
		t.Errorf("Expected shutdown_timeout 45s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.ReadTimeout != 5*time.Second {
		t.Errorf("Expected read_timeout 5s, got %v", cfg.API.ReadTimeout)
	}
	if cfg.API.JWT.AccessTokenDuration != 30*time.Minute {
		t.Errorf("Expected access_token_duration 30m, got %v", cfg.API.JWT.AccessTokenDuration)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Logging.Level = "DEBUG"
	cfg.API.Port = 9999
	cfg.Bootstrap.Email = "saved@example.com"

	if err := SaveConfig(cfg, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	// Saved file has owner-only permissions
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected file mode 0600, got %o", info.Mode().Perm())
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if loaded.Logging.Level != "DEBUG" {
		t.Errorf("Expected level DEBUG, got %q", loaded.Logging.Level)
	}
	if loaded.API.Port != 9999 {
		t.Errorf("Expected port 9999, got %d", loaded.API.Port)
	}
	if loaded.Bootstrap.Email != "saved@example.com" {
		t.Errorf("Expected bootstrap email saved@example.com, got %q", loaded.Bootstrap.Email)
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format text, got %q", cfg.Logging.Format)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Storage.Local.Dir == "" {
		t.Error("Expected default storage directory to be set")
	}
}
