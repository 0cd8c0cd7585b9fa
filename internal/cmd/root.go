// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joelklabo/markdowntown/internal/config"
	"github.com/joelklabo/markdowntown/internal/output"
)

// NewRootCmd creates the root command for the uamc CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)

	// Populated in PersistentPreRunE and shared by every subcommand.
	cfg := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "uamc",
		Short: "Universal Agent Model compiler",
		Long: `uamc compiles Universal Agent Model (UAM) documents into the native
instruction files of coding tools (AGENTS.md, Cursor rules, Windsurf rules,
GitHub Copilot instructions, CLAUDE.md, GEMINI.md), and simulates which of
those files a tool loads from a repository.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, cfg, globalFlags{
				config:     configFlag,
				verbose:    verboseFlag,
				timestamps: timestampsFlag,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: UAMC_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewCompileCmd(cfg),
		NewTargetsCmd(cfg),
		NewScanCmd(cfg),
		NewSimulateCmd(cfg),
		NewDiffCmd(cfg),
		NewServeCmd(cfg),
		NewConfigCmd(cfg),
		NewVersionCmd(cfg),
	)

	return rootCmd
}

type globalFlags struct {
	config     string
	verbose    bool
	timestamps bool
}

// initializeGlobals loads .env and configuration, then sets up logging.
func initializeGlobals(cmd *cobra.Command, cfg *config.GlobalConfig, flags globalFlags) error {
	dotenvErr := config.LoadDotEnv(".")

	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: flags.config})
	if err != nil {
		return err
	}

	loader := config.NewLoader()
	loaded, loadErr := loader.LoadWithDefaults(pathResult.ConfigPath)
	if loadErr != nil {
		// Commands that do not need configuration keep working on defaults.
		loaded = config.DefaultConfig()
	}

	cfg.Config = loaded
	cfg.Loader = loader
	cfg.ConfigPath = pathResult.ConfigPath
	cfg.ConfigSource = pathResult.Source
	cfg.Verbose = flags.verbose

	// Resolve timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if dotenvErr != nil {
		output.Warn("ignoring .env file", "error", dotenvErr)
	}
	if loadErr != nil {
		output.Warn("config not loaded, using defaults", "path", pathResult.ConfigPath, "error", loadErr)
	}

	if flags.verbose {
		output.Debug("initializing CLI",
			"config", pathResult.ConfigPath,
			"config_source", pathResult.Source,
		)
		config.LogResolvedValues(loader.ResolveAll(map[string]config.FlagValue{
			config.KeyLogTimestamps: {Value: flags.timestamps, Set: cmd.Flags().Changed("timestamps")},
		}))
	}

	return nil
}
