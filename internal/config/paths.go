package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for uamc.
type Paths struct {
	// ConfigFile is the path to the config file (~/.uamc/config.yaml).
	ConfigFile string

	// HomeDir is the uamc home directory (~/.uamc).
	HomeDir string
}

// DefaultPaths returns the default paths for uamc.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	uamcHome := filepath.Join(homeDir, ".uamc")

	return &Paths{
		ConfigFile: filepath.Join(uamcHome, "config.yaml"),
		HomeDir:    uamcHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If UAMC_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
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
