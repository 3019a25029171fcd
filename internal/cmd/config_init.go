package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/coe-tools/idremap/internal/config"
	oerrors "github.com/coe-tools/idremap/internal/errors"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var forceFlag bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the idremap configuration.

Creates ~/.idremap/config.yaml holding the default values. Set oldCatalog
and newCatalog there to avoid passing --old and --new on every run.

Examples:
  # Initialize configuration
  idremap config init

  # Overwrite existing configuration
  idremap config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, forceFlag)
		},
	}

	c.Flags().BoolVarP(&forceFlag, "force", "f", false,
		"Overwrite existing configuration")

	return c
}

func runConfigInit(c *cobra.Command, force bool) error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return exitError(oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory"))
	}

	if _, err := os.Stat(paths.ConfigFile); err == nil && !force {
		return exitError(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: paths.ConfigFile,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		})
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: fmt.Errorf("rendering default config: %w", err)}
	}

	if err := os.MkdirAll(paths.HomeDir, 0o700); err != nil {
		return exitError(fmt.Errorf("could not create %s: %w: %w", paths.HomeDir, oerrors.ErrIoUnavailable, err))
	}
	if err := os.WriteFile(paths.ConfigFile, data, 0o600); err != nil {
		return exitError(fmt.Errorf("could not write %s: %w: %w", paths.ConfigFile, oerrors.ErrIoUnavailable, err))
	}

	out := c.OutOrStdout()
	fmt.Fprintln(out, "Configuration initialized at "+paths.ConfigFile)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Next: set oldCatalog and newCatalog, then run 'idremap config show'")
	return nil
}
