package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for limgen.
type Paths struct {
	// ConfigFile is the path to the config file (~/.limgen/config.yaml).
	ConfigFile string

	// HomeDir is the limgen home directory (~/.limgen).
	HomeDir string
}

// DefaultPaths returns the default paths for limgen.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".limgen")
	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		HomeDir:    home,
	}, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
