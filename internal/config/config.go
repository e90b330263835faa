// Package config loads the client configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds everything the CLI needs to reach the service and keep a
// session.
type Config struct {
	// ServerURL is the base URL of the task service.
	ServerURL string `yaml:"server_url"`
	// SessionPath is the SQLite file holding the login session.
	SessionPath string `yaml:"session_path"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		ServerURL:   "http://localhost:8080",
		SessionPath: filepath.Join(home, ".taskdeck", "session.db"),
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// TASKDECK_SERVER_URL and TASKDECK_SESSION_PATH overrides. A missing file
// is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to env overrides
		case err != nil:
			return Config{}, err
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, err
			}
		}
	}

	if v := os.Getenv("TASKDECK_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("TASKDECK_SESSION_PATH"); v != "" {
		cfg.SessionPath = v
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".taskdeck", "config.yaml")
}
