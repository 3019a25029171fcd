package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coe-tools/idremap/internal/cmdutil"
	"github.com/coe-tools/idremap/internal/config"
	"github.com/coe-tools/idremap/internal/migrate"
	"github.com/coe-tools/idremap/internal/output"
)

// NewRemapCmd creates the remap command.
func NewRemapCmd(cfg *GlobalConfig) *cobra.Command {
	var (
		cf cmdutil.CatalogFlags
		df cmdutil.DocumentFlags
		of cmdutil.OutputFlag

		dryRunFlag bool
		diffFlag   bool
	)

	c := &cobra.Command{
		Use:   "remap [documents...]",
		Short: "Remap IDs in documents",
		Long: `Remap the item IDs of NBT documents from the old catalog's scheme to the
new catalog's scheme.

Documents are named as arguments or discovered as *.dat files in --data-dir.
Without --out-dir documents are rewritten in place, after a backup named
<name>-backup--<timestamp>.dat is written beside them. A backup identical to
an existing one is not written again.

IDs that cannot be matched are left unchanged and listed in the report.

Examples:
  # Remap two player saves in place
  idremap remap --old ./catalogs/1.6 --new ./catalogs/1.7 players/steve.dat players/alex.dat

  # Remap every save in a directory into a new one
  idremap remap --old ./old --new ./new --data-dir ./players --out-dir ./converted

  # Show what would change without writing anything
  idremap remap --old ./old --new ./new --data-dir ./players --dry-run --diff

  # Report as JSON
  idremap remap --old ./old --new ./new players/steve.dat -o json`,
		RunE: func(c *cobra.Command, args []string) error {
			flags := config.Flags{}
			cf.Collect(c, flags)
			df.Collect(c, flags)
			of.Collect(c, flags)
			return runRemap(c, args, cfg, flags, dryRunFlag, diffFlag)
		},
	}

	cf.AddTo(c)
	df.AddTo(c)
	of.AddTo(c)
	c.Flags().BoolVar(&dryRunFlag, "dry-run", false,
		"Remap without writing documents or backups")
	c.Flags().BoolVar(&diffFlag, "diff", false,
		"Show a diff of every changed inventory")

	return c
}

func runRemap(c *cobra.Command, args []string, cfg *GlobalConfig, flags config.Flags, dryRun, diff bool) error {
	ctx := c.Context()

	resolved, err := cfg.Resolve(flags)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(resolved.Report)
	if err != nil {
		return &ExitError{Code: ExitValidationError, Err: err}
	}

	var cats *migrate.Catalogs
	err = output.RunWithSpinner(ctx, func() error {
		var (
			record migrate.PhaseRecord
			err    error
		)
		cats, record, err = migrate.LoadCatalogs(ctx, resolved.OldCatalog, resolved.NewCatalog, catalogProgress)
		if err == nil {
			output.Debug("catalogs built", "duration", record.Duration, "details", record.Details)
		}
		return err
	}, output.WithTitle("Building catalogs"))
	if err != nil {
		cmdutil.PrintError("could not build catalogs", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	report, err := migrate.Run(ctx, migrate.Options{
		Catalogs:     cats,
		Documents:    args,
		DataDir:      resolved.DataDir,
		OutDir:       resolved.OutDir,
		InventoryKey: resolved.InventoryKey,
		IDKey:        resolved.IDKey,
		Backup:       resolved.Backup,
		DryRun:       dryRun,
		Diff:         diff,
		Jobs:         resolved.Jobs,
	})
	if report == nil {
		cmdutil.PrintError("remap failed", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	if werr := migrate.WriteReport(c.OutOrStdout(), report, format); werr != nil {
		return &ExitError{Code: ExitGeneralError, Err: fmt.Errorf("writing report: %w", werr)}
	}

	if err != nil {
		cmdutil.PrintRunErrors(report)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}
	return nil
}

func catalogProgress(source string, percent int) {
	output.Debug("reading catalog", "source", source, "percent", percent)
}
