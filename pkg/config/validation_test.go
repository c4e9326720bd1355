package config

import (
	"strings"
	"testing"

	"github.com/skydrive/skydrive/pkg/storage"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("Expected 'must be one of' validation error, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_InvalidAPIPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.API.Port = 70000 // Out of range

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "at most") {
		t.Errorf("Expected 'at most' validation error, got: %v", err)
	}
}

func TestValidate_NegativePort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.API.Port = -1

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for negative port")
	}
}

func TestValidate_InvalidBootstrapEmail(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Bootstrap.Email = "not-an-email"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid bootstrap email")
	}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("Expected email validation error, got: %v", err)
	}
}

func TestValidate_InvalidStorageType(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Storage.Type = "ftp"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for unsupported storage type")
	}
	if !strings.Contains(err.Error(), "storage") {
		t.Errorf("Expected storage validation error, got: %v", err)
	}
}

func TestValidate_S3WithoutBucket(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Storage.Type = storage.BackendS3
	cfg.Storage.S3.Bucket = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for s3 storage without bucket")
	}
}

func TestValidate_LogLevelNormalization(t *testing.T) {
	// Validation accepts both uppercase and lowercase log levels
	testCases := []string{"info", "INFO", "debug", "DEBUG", "warn", "WARN", "error", "ERROR"}

	for _, level := range testCases {
		cfg := GetDefaultConfig()
		cfg.Logging.Level = level

		err := Validate(cfg)
		if err != nil {
			t.Errorf("Validation failed for level %q: %v", level, err)
		}

		// Validation should NOT normalize - level should remain as-is
		if cfg.Logging.Level != level {
			t.Errorf("Expected level to remain %q after validation, got %q", level, cfg.Logging.Level)
		}
	}

	// Normalization happens in ApplyDefaults
	cfg := &Config{Logging: LoggingConfig{Level: "info"}}
	ApplyDefaults(cfg)
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected ApplyDefaults to normalize 'info' to 'INFO', got %q", cfg.Logging.Level)
	}
}
