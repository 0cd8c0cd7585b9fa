package config

import (
	"os"

	"github.com/joelklabo/markdowntown/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// precedence lists sources from highest to lowest.
var precedence = []ConfigSource{SourceFlag, SourceEnv, SourceConfig, SourceDefault}

// ResolvedValue is a configuration value together with where it came from.
type ResolvedValue struct {
	Key    string
	Value  any
	Source ConfigSource

	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]any
}

// FlagValue carries a command-line flag into resolution. Set is false when
// the user did not pass the flag.
type FlagValue struct {
	Value any
	Set   bool
}

// Resolve resolves key using precedence flag > env > config file > default.
// Load must have been called first for the config file layer to count.
func (l *Loader) Resolve(key string, flag FlagValue) ResolvedValue {
	candidates := make(map[ConfigSource]any, len(precedence))
	if flag.Set {
		candidates[SourceFlag] = flag.Value
	}
	if env, ok := os.LookupEnv(EnvName(key)); ok && env != "" {
		candidates[SourceEnv] = env
	}
	if l.file.IsSet(key) {
		candidates[SourceConfig] = l.file.Get(key)
	}
	if def, ok := l.defaults[key]; ok {
		candidates[SourceDefault] = def
	}

	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]any)}
	for _, src := range precedence {
		value, ok := candidates[src]
		if !ok {
			continue
		}
		if result.Source == "" {
			result.Value = value
			result.Source = src
			continue
		}
		result.Shadowed[src] = value
	}
	return result
}

// ResolveAll resolves every known key. flags maps keys to their flag values.
func (l *Loader) ResolveAll(flags map[string]FlagValue) []ResolvedValue {
	out := make([]ResolvedValue, 0, len(Keys))
	for _, key := range Keys {
		out = append(out, l.Resolve(key, flags[key]))
	}
	return out
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) UAMC_CONFIG env, (3) ~/.uamc/config.yaml default.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvConfig)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		if v.Source == "" {
			continue
		}
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for _, src := range precedence {
			shadowed, ok := v.Shadowed[src]
			if !ok {
				continue
			}
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", src,
				"shadowed_value", shadowed,
			)
		}
	}
}
