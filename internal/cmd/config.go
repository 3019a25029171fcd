package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/coe-tools/idremap/internal/cmdutil"
	"github.com/coe-tools/idremap/internal/config"
	"github.com/coe-tools/idremap/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration operations",
		Long: `Commands for managing the idremap configuration.

Values are resolved with the precedence flag > environment > config file >
default. Environment variables are named IDREMAP_<KEY>, for example
IDREMAP_OLD_CATALOG or IDREMAP_LOG_TIMESTAMPS.`,
	}

	c.AddCommand(
		NewConfigInitCmd(),
		NewConfigShowCmd(cfg),
	)

	return c
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *GlobalConfig) *cobra.Command {
	var of cmdutil.OutputFlag

	c := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Long: `Show every configuration value, where it came from and the values it
overrides.

Examples:
  # Show the configuration
  idremap config show

  # Show it as YAML
  IDREMAP_JOBS=8 idremap config show -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			flags := config.Flags{}
			of.Collect(c, flags)
			return runConfigShow(c, cfg, flags)
		},
	}

	of.AddTo(c)

	return c
}

func runConfigShow(c *cobra.Command, cfg *GlobalConfig, flags config.Flags) error {
	if cfg.loadErr != nil {
		return &ExitError{Code: ExitValidationError, Err: fmt.Errorf("loading %s: %w", cfg.ConfigPath, cfg.loadErr)}
	}
	if cfg.Loader == nil {
		cfg.Loader = config.NewLoader()
	}
	resolved, values, err := cfg.Loader.Resolve(flags)
	if err != nil {
		return exitError(err)
	}
	format, err := output.ParseFormat(resolved.Report)
	if err != nil {
		return &ExitError{Code: ExitValidationError, Err: err}
	}

	switch format {
	case output.FormatYAML:
		return output.WriteYAML(c.OutOrStdout(), resolved)
	case output.FormatJSON:
		return output.WriteJSON(c.OutOrStdout(), resolved)
	}

	tbl := output.NewTable("KEY", "VALUE", "SOURCE", "OVERRIDES")
	for _, v := range values {
		tbl.Row(v.Key, fmt.Sprint(v.Value), string(v.Source), shadowed(v))
	}
	fmt.Fprintln(c.OutOrStdout(), tbl.String())
	fmt.Fprintln(c.OutOrStdout(), output.StyleDim.Render("config file: "+cfg.ConfigPath))
	return nil
}

func shadowed(v config.ResolvedValue) string {
	sources := make([]string, 0, len(v.Shadowed))
	for s := range v.Shadowed {
		sources = append(sources, string(s))
	}
	sort.Strings(sources)

	out := ""
	for i, s := range sources {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%v", s, v.Shadowed[config.ConfigSource(s)])
	}
	return out
}
