// Package cmdutil provides shared command utilities for idremap subcommands.
// It centralizes flag group management and error reporting helpers.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/coe-tools/idremap/internal/config"
)

// CatalogFlags holds the catalog directory flags (remap, catalog lookup).
type CatalogFlags struct {
	Old string
	New string
}

// AddTo registers the catalog flags on the given cobra command.
func (f *CatalogFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Old, "old", "",
		"Catalog directory of the current ID scheme (env: IDREMAP_OLD_CATALOG)")
	cmd.Flags().StringVar(&f.New, "new", "",
		"Catalog directory of the target ID scheme (env: IDREMAP_NEW_CATALOG)")
}

// Collect adds the flags the user set to flags.
func (f *CatalogFlags) Collect(cmd *cobra.Command, flags config.Flags) {
	set(cmd, flags, "old", "oldCatalog", f.Old)
	set(cmd, flags, "new", "newCatalog", f.New)
}

// DocumentFlags holds flags controlling where documents are read and
// written and how they are rewritten.
type DocumentFlags struct {
	DataDir      string
	OutDir       string
	InventoryKey string
	IDKey        string
	Backup       bool
	Jobs         int
}

// AddTo registers the document flags on the given cobra command.
func (f *DocumentFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.DataDir, "data-dir", "",
		"Directory scanned for *.dat documents when none are given")
	cmd.Flags().StringVar(&f.OutDir, "out-dir", "",
		"Write rewritten documents here instead of in place")
	cmd.Flags().StringVar(&f.InventoryKey, "inventory-key", config.DefaultInventoryKey,
		"Root entry holding the items to remap")
	cmd.Flags().StringVar(&f.IDKey, "id-key", config.DefaultIDKey,
		"Name of the short tags holding IDs")
	cmd.Flags().BoolVar(&f.Backup, "backup", true,
		"Back up documents before rewriting them in place")
	cmd.Flags().IntVarP(&f.Jobs, "jobs", "j", config.DefaultJobs,
		"Number of documents processed at once")
}

// Collect adds the flags the user set to flags.
func (f *DocumentFlags) Collect(cmd *cobra.Command, flags config.Flags) {
	set(cmd, flags, "data-dir", "dataDir", f.DataDir)
	set(cmd, flags, "out-dir", "outDir", f.OutDir)
	set(cmd, flags, "inventory-key", "inventoryKey", f.InventoryKey)
	set(cmd, flags, "id-key", "idKey", f.IDKey)
	set(cmd, flags, "backup", "backup", f.Backup)
	set(cmd, flags, "jobs", "jobs", f.Jobs)
}

// OutputFlag holds the report format flag.
type OutputFlag struct {
	Format string
}

// AddTo registers the output flag on the given cobra command.
func (f *OutputFlag) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", config.DefaultReport,
		"Output format: table, yaml, json")
}

// Collect adds the flag to flags when the user set it.
func (f *OutputFlag) Collect(cmd *cobra.Command, flags config.Flags) {
	set(cmd, flags, "output", "report", f.Format)
}

func set(cmd *cobra.Command, flags config.Flags, name, key string, value any) {
	if cmd.Flags().Changed(name) {
		flags[key] = value
	}
}
