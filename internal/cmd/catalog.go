package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coe-tools/idremap/internal/catalog"
	"github.com/coe-tools/idremap/internal/cmdutil"
	"github.com/coe-tools/idremap/internal/config"
	oerrors "github.com/coe-tools/idremap/internal/errors"
	"github.com/coe-tools/idremap/internal/identity"
	"github.com/coe-tools/idremap/internal/migrate"
	"github.com/coe-tools/idremap/internal/output"
	"github.com/coe-tools/idremap/internal/remap"
)

// NewCatalogCmd creates the catalog command group.
func NewCatalogCmd(cfg *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog operations",
		Long:  `Commands for inspecting catalogs and looking up IDs.`,
	}

	c.AddCommand(
		NewCatalogShowCmd(cfg),
		NewCatalogLookupCmd(cfg),
	)

	return c
}

// catalogEntry is one record as shown by catalog show.
type catalogEntry struct {
	catalog.Record `json:",inline" yaml:",inline"`
	Key            string `json:"key" yaml:"key"`
}

// NewCatalogShowCmd creates the catalog show command.
func NewCatalogShowCmd(cfg *GlobalConfig) *cobra.Command {
	var (
		of            cmdutil.OutputFlag
		namespaceFlag string
	)

	c := &cobra.Command{
		Use:   "show <dir>",
		Short: "List the records of a catalog",
		Long: `Build the catalog in a directory and list its records by namespace.

Each record carries its identity key, a UUID derived from namespace,
symbolic name and display name that is stable across ID schemes.

Examples:
  # List a catalog
  idremap catalog show ./catalogs/1.7

  # List one namespace as YAML
  idremap catalog show ./catalogs/1.7 --namespace modA -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			flags := config.Flags{}
			of.Collect(c, flags)
			return runCatalogShow(c, args[0], cfg, flags, namespaceFlag)
		},
	}

	of.AddTo(c)
	c.Flags().StringVar(&namespaceFlag, "namespace", "", "Only list this namespace")

	return c
}

func runCatalogShow(c *cobra.Command, dir string, cfg *GlobalConfig, flags config.Flags, namespace string) error {
	resolved, err := cfg.Resolve(flags)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(resolved.Report)
	if err != nil {
		return &ExitError{Code: ExitValidationError, Err: err}
	}

	var cat *catalog.Catalog
	err = output.RunWithSpinner(c.Context(), func() error {
		var err error
		cat, err = catalog.Build(c.Context(), catalog.BuildOptions{Progress: catalogProgress}, catalog.DirSources(dir)...)
		return err
	}, output.WithTitle("Building catalog"))
	if err != nil {
		return exitError(oerrors.NewCatalogError(err.Error(), dir, "", err))
	}

	namespaces := cat.Namespaces()
	if namespace != "" {
		if !cat.Has(namespace) {
			return exitError(oerrors.NewNotFoundError(
				fmt.Sprintf("namespace %q not in catalog", namespace), dir,
				suggestionHint(remap.Suggest(namespace, namespaces))))
		}
		namespaces = []string{namespace}
	}

	var entries []catalogEntry
	for _, ns := range namespaces {
		for _, r := range cat.Records(ns) {
			entries = append(entries, catalogEntry{
				Record: r,
				Key:    identity.Key(r.Namespace, r.SymbolicName, r.DisplayName).String(),
			})
		}
	}

	return writeFormatted(c.OutOrStdout(), format, entries, func(w io.Writer) error {
		tbl := output.NewTable("NAMESPACE", "ID", "SYMBOLIC NAME", "DISPLAY NAME", "KEY")
		for _, e := range entries {
			tbl.Row(e.Namespace, strconv.Itoa(int(e.ID)), e.SymbolicName, e.DisplayName, e.Key)
		}
		_, err := fmt.Fprintf(w, "%s\n\n%s\n", tbl.String(),
			output.StyleSummary.Render(fmt.Sprintf("%d records in %d namespaces", len(entries), len(namespaces))))
		return err
	})
}

// lookupResult is what catalog lookup reports for one ID.
type lookupResult struct {
	ID          int16             `json:"id" yaml:"id"`
	NewID       int16             `json:"newId" yaml:"newId"`
	Outcome     remap.Outcome     `json:"outcome" yaml:"outcome"`
	Identity    *catalog.Identity `json:"identity,omitempty" yaml:"identity,omitempty"`
	Key         string            `json:"key,omitempty" yaml:"key,omitempty"`
	Collisions  []catalog.Record  `json:"collisions,omitempty" yaml:"collisions,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// NewCatalogLookupCmd creates the catalog lookup command.
func NewCatalogLookupCmd(cfg *GlobalConfig) *cobra.Command {
	var (
		cf cmdutil.CatalogFlags
		of cmdutil.OutputFlag
	)

	c := &cobra.Command{
		Use:   "lookup <id>...",
		Short: "Show how IDs would be remapped",
		Long: `Resolve IDs of the old scheme against the new one without touching any
document.

For each ID the outcome is one of Remapped, Unchanged, UnresolvedSource,
NamespaceDropped or MissingInTarget. IDs claimed by several namespaces of the
old catalog are listed with every claimant; the lexically first namespace is
the one used.

Examples:
  # Look up two IDs
  idremap catalog lookup --old ./old --new ./new 100 50`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			flags := config.Flags{}
			cf.Collect(c, flags)
			of.Collect(c, flags)
			return runCatalogLookup(c, args, cfg, flags)
		},
	}

	cf.AddTo(c)
	of.AddTo(c)

	return c
}

func runCatalogLookup(c *cobra.Command, args []string, cfg *GlobalConfig, flags config.Flags) error {
	ids := make([]int16, len(args))
	for i, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 16)
		if err != nil {
			return &ExitError{Code: ExitValidationError, Err: fmt.Errorf("invalid id %q: must be a 16-bit integer", arg)}
		}
		ids[i] = int16(v)
	}

	resolved, err := cfg.Resolve(flags)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(resolved.Report)
	if err != nil {
		return &ExitError{Code: ExitValidationError, Err: err}
	}

	var cats *migrate.Catalogs
	err = output.RunWithSpinner(c.Context(), func() error {
		var err error
		cats, _, err = migrate.LoadCatalogs(c.Context(), resolved.OldCatalog, resolved.NewCatalog, catalogProgress)
		return err
	}, output.WithTitle("Building catalogs"))
	if err != nil {
		return exitError(err)
	}

	collisions := cats.Old.Collisions()
	results := make([]lookupResult, len(ids))
	for i, id := range ids {
		res := remap.Resolve(cats.Old, cats.New, id)
		results[i] = lookupResult{
			ID:         id,
			NewID:      res.NewID,
			Outcome:    res.Outcome,
			Collisions: collisions[id],
		}
		if res.Outcome != remap.UnresolvedSource {
			ident := res.Identity
			results[i].Identity = &ident
			results[i].Key = identity.Key(ident.Namespace, ident.SymbolicName, ident.DisplayName).String()
		}
		if res.Outcome == remap.NamespaceDropped {
			results[i].Suggestions = remap.Suggest(res.Identity.Namespace, cats.New.Namespaces())
		}
	}

	return writeFormatted(c.OutOrStdout(), format, results, func(w io.Writer) error {
		tbl := output.NewTable("ID", "NEW ID", "OUTCOME", "IDENTITY", "KEY")
		for _, r := range results {
			ident := ""
			if r.Identity != nil {
				ident = r.Identity.String()
			}
			tbl.Row(strconv.Itoa(int(r.ID)), strconv.Itoa(int(r.NewID)), r.Outcome.String(), ident, r.Key)
		}
		if _, err := fmt.Fprintln(w, tbl.String()); err != nil {
			return err
		}
		for _, r := range results {
			if len(r.Collisions) > 1 {
				fmt.Fprintf(w, "\nid %d is claimed by %d namespaces, %s wins:\n", r.ID, len(r.Collisions), r.Collisions[0].Namespace)
				for _, rec := range r.Collisions {
					fmt.Fprintf(w, "  %s\n", rec.Identity())
				}
			}
			if len(r.Suggestions) > 0 {
				fmt.Fprintf(w, "\nnamespace %s is missing from the new catalog, %s\n",
					output.StyleNoun.Render(r.Identity.Namespace), suggestionHint(r.Suggestions))
			}
		}
		return nil
	})
}

func suggestionHint(s []string) string {
	if len(s) == 0 {
		return ""
	}
	hint := "did you mean " + s[0]
	for _, v := range s[1:] {
		hint += ", " + v
	}
	return hint + "?"
}

// writeFormatted writes v as YAML or JSON, or calls table for the table format.
func writeFormatted(w io.Writer, format output.Format, v any, table func(io.Writer) error) error {
	switch format {
	case output.FormatYAML:
		return output.WriteYAML(w, v)
	case output.FormatJSON:
		return output.WriteJSON(w, v)
	default:
		return table(w)
	}
}
