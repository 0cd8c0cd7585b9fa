package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	oerrors "github.com/joelklabo/markdowntown/internal/errors"
)

const (
	// envPrefix is the environment variable prefix for uamc configuration.
	envPrefix = "UAMC"

	// EnvConfig overrides the config file path.
	EnvConfig = "UAMC_CONFIG"
)

// Configuration keys.
const (
	KeyTargets                    = "targets"
	KeyScanMaxFiles               = "scan.maxFiles"
	KeyScanIgnoreDirs             = "scan.ignoreDirs"
	KeyScanIncludeOnly            = "scan.includeOnly"
	KeySimulateLargeTreeThreshold = "simulate.largeTreeThreshold"
	KeyLogTimestamps              = "log.timestamps"
)

// Keys lists every configuration key in display order.
var Keys = []string{
	KeyTargets,
	KeyScanMaxFiles,
	KeyScanIgnoreDirs,
	KeyScanIncludeOnly,
	KeySimulateLargeTreeThreshold,
	KeyLogTimestamps,
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v        *viper.Viper
	file     *viper.Viper
	defaults map[string]any
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	defaults := map[string]any{
		KeyScanMaxFiles:               def.Scan.MaxFiles,
		KeyScanIgnoreDirs:             def.Scan.IgnoreDirs,
		KeySimulateLargeTreeThreshold: def.Simulate.LargeTreeThreshold,
		KeyLogTimestamps:              true,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Keys without a default are only visible to Unmarshal once bound.
	_ = v.BindEnv(KeyTargets)
	_ = v.BindEnv(KeyScanIncludeOnly)

	return &Loader{v: v, file: viper.New(), defaults: defaults}
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// LoadDotEnv loads a .env file from dir into the process environment.
// Variables that are already set are left untouched. A missing file is not
// an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// Environment variables take precedence over file values; a missing file
// yields defaults plus environment.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	for _, v := range []*viper.Viper{l.v, l.file} {
		v.SetConfigFile(expandedPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				break
			}
			if errors.Is(err, fs.ErrPermission) {
				return nil, oerrors.NewPermissionError("cannot read config file",
					map[string]string{"Path": expandedPath}, "Check the file permissions.")
			}
			return nil, &oerrors.DetailError{
				Type:     "validation failed",
				Message:  fmt.Sprintf("reading config file: %v", err),
				Location: expandedPath,
				Hint:     "Run 'uamc config vet' for details.",
				Cause:    oerrors.ErrValidation,
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  fmt.Sprintf("decoding config: %v", err),
			Location: expandedPath,
			Cause:    oerrors.ErrValidation,
		}
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
