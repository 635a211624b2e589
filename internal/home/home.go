package home

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the pokedex home directory.
	DefaultDirName = ".pokedex"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// EnvFileName is the optional dotenv file loaded next to the config.
	EnvFileName = ".env"
)

// Dir represents the pokedex home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.pokedex).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnvPath returns the path to the optional dotenv file.
func (d *Dir) EnvPath() string {
	return filepath.Join(d.path, EnvFileName)
}

// HasConfig reports whether the default config file exists.
func (d *Dir) HasConfig() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// EnsureExists creates the home directory if it doesn't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("failed to create home directory: %w", err)
	}
	return nil
}

// ConfigFile picks the config file to load: an explicit path wins, then the
// home directory's config.yaml when present. Empty means "search defaults".
func (d *Dir) ConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if d.HasConfig() {
		return d.ConfigPath()
	}
	return ""
}

// ErrConfigExists is returned by callers refusing to overwrite a config.
var ErrConfigExists = errors.New("config file already exists")
