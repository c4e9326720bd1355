package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// InitConfig creates a sample configuration file at the default location
// ($XDG_CONFIG_HOME/skydrive/config.yaml).
//
// Returns the path the file was written to. Fails if the file already exists
// unless force is true.
func InitConfig(force bool) (string, error) {
	configPath := GetDefaultConfigPath()
	if err := InitConfigToPath(configPath, force); err != nil {
		return "", err
	}
	return configPath, nil
}

// InitConfigToPath creates a sample configuration file at the given path.
// Fails if the file already exists unless force is true.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	secret, err := generateJWTSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	// The file contains a secret, so keep it owner-readable only.
	if err := os.WriteFile(path, []byte(sampleConfig(secret)), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateJWTSecret returns 32 bytes of entropy as a 64-character hex string.
func generateJWTSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func sampleConfig(jwtSecret string) string {
	return fmt.Sprintf(`# SkyDrive Configuration File
#
# Created by 'skydrive init'. Any value can be overridden with an environment
# variable of the form SKYDRIVE_<SECTION>_<KEY>, for example:
#   SKYDRIVE_LOGGING_LEVEL=DEBUG
#   SKYDRIVE_API_PORT=9090

logging:
  level: INFO    # DEBUG, INFO, WARN, ERROR
  format: text   # text or json
  output: stdout # stdout, stderr, or a file path

# Maximum time to wait for in-flight requests during shutdown.
shutdown_timeout: 30s

database:
  type: sqlite # sqlite or postgres
  sqlite:
    # Defaults to $XDG_DATA_HOME/skydrive/drive.db when empty.
    path: ""
  # postgres:
  #   host: localhost
  #   port: 5432
  #   user: skydrive
  #   password: ""
  #   database: skydrive
  #   ssl_mode: disable

storage:
  type: local # local or s3
  local:
    # Defaults to $XDG_DATA_HOME/skydrive/uploads when empty.
    dir: ""
  # s3:
  #   bucket: my-skydrive-uploads
  #   region: us-east-1
  #   key_prefix: uploads/

metrics:
  enabled: false

api:
  port: 8080
  jwt:
    # Random development secret generated by 'skydrive init'.
    # For production, generate your own and use an environment variable:
    #   export SKYDRIVE_API_JWT_SECRET=$(openssl rand -hex 32)
    secret: "%s"
    access_token_duration: 15m
    refresh_token_duration: 168h

bootstrap:
  # Account seeded by 'skydrive init'.
  email: demo@example.com
  name: Demo
`, jwtSecret)
}
