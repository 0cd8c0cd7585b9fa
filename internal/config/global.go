package config

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration with defaults applied.
	Config *Config

	// Loader is the loader that produced Config. Commands use it to resolve
	// their own flags against env, file and defaults.
	Loader *Loader

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ConfigSource says where ConfigPath came from.
	ConfigSource ConfigSource

	// Verbose is the --verbose flag.
	Verbose bool
}

// Effective returns g.Config, or the defaults when no config was loaded.
func (g *GlobalConfig) Effective() *Config {
	if g == nil || g.Config == nil {
		return DefaultConfig()
	}
	return g.Config
}

// ResolveFlag resolves key against the loader, returning a default-sourced
// value when no loader is present.
func (g *GlobalConfig) ResolveFlag(key string, flag FlagValue) ResolvedValue {
	if g == nil || g.Loader == nil {
		l := NewLoader()
		return l.Resolve(key, flag)
	}
	return g.Loader.Resolve(key, flag)
}
