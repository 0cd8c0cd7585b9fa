// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"regexp"

	"github.com/joelklabo/markdowntown/internal/scan"
	"github.com/joelklabo/markdowntown/internal/simulate"
)

// ScanConfig contains repo tree scanner settings.
type ScanConfig struct {
	// MaxFiles caps the number of considered files.
	// Env: UAMC_SCAN_MAXFILES, Default: 5000
	MaxFiles int `json:"maxFiles,omitempty" mapstructure:"maxFiles"`

	// IgnoreDirs are directory names skipped at any depth.
	// Env: UAMC_SCAN_IGNOREDIRS (comma separated)
	IgnoreDirs []string `json:"ignoreDirs,omitempty" mapstructure:"ignoreDirs"`

	// IncludeOnly are regular expressions; when set, only matching paths are kept.
	IncludeOnly []string `json:"includeOnly,omitempty" mapstructure:"includeOnly"`
}

// SimulateConfig contains context simulator settings.
type SimulateConfig struct {
	// LargeTreeThreshold is the file count above which a scan-risk warning is raised.
	// Env: UAMC_SIMULATE_LARGETREETHRESHOLD, Default: 200
	LargeTreeThreshold int `json:"largeTreeThreshold,omitempty" mapstructure:"largeTreeThreshold"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the uamc CLI configuration.
// Loaded from ~/.uamc/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// Targets are the compile targets used when neither the command line nor
	// the document names any.
	// Env: UAMC_TARGETS (comma separated)
	Targets []string `json:"targets,omitempty" mapstructure:"targets"`

	Scan     ScanConfig     `json:"scan,omitempty" mapstructure:"scan"`
	Simulate SimulateConfig `json:"simulate,omitempty" mapstructure:"simulate"`
	Log      LogConfig      `json:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `uamc config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			MaxFiles:   scan.DefaultMaxFiles,
			IgnoreDirs: scan.DefaultIgnoreDirs(),
		},
		Simulate: SimulateConfig{
			LargeTreeThreshold: simulate.DefaultLargeTreeThreshold,
		},
	}
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.Scan.MaxFiles <= 0 {
		out.Scan.MaxFiles = def.Scan.MaxFiles
	}
	if out.Scan.IgnoreDirs == nil {
		out.Scan.IgnoreDirs = def.Scan.IgnoreDirs
	}
	if out.Simulate.LargeTreeThreshold <= 0 {
		out.Simulate.LargeTreeThreshold = def.Simulate.LargeTreeThreshold
	}
	return &out
}

// ScanOptions converts the scan settings into scanner options.
func (c *Config) ScanOptions() (scan.Options, error) {
	include, err := scan.CompileIncludePatterns(c.Scan.IncludeOnly)
	if err != nil {
		return scan.Options{}, fmt.Errorf("scan.includeOnly: %w", err)
	}
	return scan.Options{
		IgnoreDirs:  c.Scan.IgnoreDirs,
		IncludeOnly: include,
		MaxFiles:    c.Scan.MaxFiles,
	}, nil
}

// checkPatterns reports the first includeOnly entry that is not a valid regexp.
func (c *Config) checkPatterns() (string, error) {
	for _, p := range c.Scan.IncludeOnly {
		if _, err := regexp.Compile(p); err != nil {
			return p, err
		}
	}
	return "", nil
}
