package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coe-tools/idremap/internal/config"
	"github.com/coe-tools/idremap/internal/output"
	"github.com/coe-tools/idremap/internal/version"
)

// GlobalConfig holds CLI-wide state resolved during PersistentPreRunE. It is
// passed explicitly into every sub-command constructor.
type GlobalConfig struct {
	Loader *config.Loader

	// File is the config file layer, nil when it failed to load.
	File *config.Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	Verbose bool

	loadErr error
}

// Resolve layers flags over environment, config file and defaults.
func (g *GlobalConfig) Resolve(flags config.Flags) (*config.Config, error) {
	if g.loadErr != nil {
		return nil, &ExitError{Code: ExitValidationError, Err: fmt.Errorf("loading %s: %w", g.ConfigPath, g.loadErr)}
	}
	if g.Loader == nil {
		g.Loader = config.NewLoader()
	}
	cfg, values, err := g.Loader.Resolve(flags)
	if g.Verbose {
		config.LogResolvedValues(values)
	}
	if err != nil {
		return nil, exitError(err)
	}
	return cfg, nil
}

// NewRootCmd creates the root command for the idremap CLI.
func NewRootCmd() *cobra.Command {
	cfg := &GlobalConfig{}

	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)

	rootCmd := &cobra.Command{
		Use:   "idremap",
		Short: "Remap item and block IDs in NBT documents",
		Long: `idremap rewrites the numeric item and block IDs stored in NBT documents
such as player saves, translating them from one ID scheme to another.

Each scheme is described by a catalog directory holding item.csv and
block.csv exports. IDs are matched by namespace, symbolic name and display
name; IDs that cannot be matched are left unchanged and reported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, configFlag, verboseFlag, timestampsFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: IDREMAP_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewRemapCmd(cfg),
		NewCatalogCmd(cfg),
		NewConfigCmd(cfg),
		NewVersionCmd(),
	)

	return rootCmd
}

// initializeGlobals loads the config file and sets up logging.
func initializeGlobals(c *cobra.Command, cfg *GlobalConfig, configFlag string, verbose, timestamps bool) error {
	cfg.Verbose = verbose

	pathResult, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: fmt.Errorf("resolving config path: %w", err)}
	}
	cfg.ConfigPath = pathResult.ConfigPath

	cfg.Loader = config.NewLoader()
	file, err := cfg.Loader.Load(cfg.ConfigPath)
	if err != nil {
		// Commands that need configuration report it from Resolve.
		cfg.loadErr = err
	}
	cfg.File = file

	// Timestamps: flag (if explicitly set) > config file > default (nil = true)
	logCfg := output.LogConfig{Verbose: verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestamps)
	} else if file != nil && file.Log.Timestamps != nil {
		logCfg.Timestamps = file.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.Get()
	output.Debug("idremap started",
		"version", info.Version,
		"config", cfg.ConfigPath,
		"config_source", pathResult.Source,
		"config_used", cfg.Loader.ConfigFileUsed(),
	)
	if cfg.loadErr != nil {
		output.Debug("config load error", "error", cfg.loadErr)
	}

	return nil
}
