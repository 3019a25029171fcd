package migrate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/coe-tools/idremap/internal/catalog"
	"github.com/coe-tools/idremap/internal/document"
	oerrors "github.com/coe-tools/idremap/internal/errors"
	"github.com/coe-tools/idremap/internal/identity"
	"github.com/coe-tools/idremap/internal/output"
	"github.com/coe-tools/idremap/internal/remap"
	"github.com/coe-tools/idremap/internal/tree"
)

// LoadCatalogs builds the old and new catalogs concurrently. Any catalog
// error aborts: a partial catalog would remap against the wrong IDs.
func LoadCatalogs(ctx context.Context, oldDir, newDir string, progress func(string, int)) (*Catalogs, PhaseRecord, error) {
	if oldDir == "" || newDir == "" {
		return nil, PhaseRecord{}, oerrors.NewValidationError(
			"both an old and a new catalog are required", "set oldCatalog and newCatalog or pass --old and --new")
	}

	start := time.Now()
	opts := catalog.BuildOptions{Progress: progress}

	var oldCat, newCat *catalog.Catalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := catalog.Build(gctx, opts, catalog.DirSources(oldDir)...)
		if err != nil {
			return oerrors.NewCatalogError("building old catalog: "+err.Error(), oldDir, catalogHint, err)
		}
		oldCat = c
		return nil
	})
	g.Go(func() error {
		c, err := catalog.Build(gctx, opts, catalog.DirSources(newDir)...)
		if err != nil {
			return oerrors.NewCatalogError("building new catalog: "+err.Error(), newDir, catalogHint, err)
		}
		newCat = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, PhaseRecord{}, err
	}

	cats := &Catalogs{Old: catalog.NewIndex(oldCat), New: catalog.NewIndex(newCat)}
	record := PhaseRecord{
		Name:     "Catalogs",
		Duration: time.Since(start),
		Details: fmt.Sprintf("old: %d records in %d namespaces, new: %d records in %d namespaces",
			oldCat.Len(), len(oldCat.Namespaces()), newCat.Len(), len(newCat.Namespaces())),
	}
	return cats, record, nil
}

const catalogHint = "each catalog directory needs item.csv and block.csv with Name, ID, Has Item/Has Block, Mod and Class columns"

// Run remaps every document and returns the report. Documents fail
// independently: Run processes all of them and returns a *RunError
// alongside the report when any failed. Catalog and discovery errors
// abort before any document is touched.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts = withDefaults(opts)
	report := &Report{
		RunID:     identity.NewRunID(),
		StartedAt: opts.Now(),
		DryRun:    opts.DryRun,
	}

	cats := opts.Catalogs
	if cats == nil {
		var (
			record PhaseRecord
			err    error
		)
		cats, record, err = LoadCatalogs(ctx, opts.OldCatalog, opts.NewCatalog, opts.Progress)
		if err != nil {
			return nil, err
		}
		report.Phases = append(report.Phases, record)
	}
	report.Collisions = len(cats.Old.Collisions())
	if report.Collisions > 0 {
		output.Debug("old catalog has ids shared across namespaces, the lexically first namespace wins",
			"ids", report.Collisions)
	}

	store := document.NewStore()
	docs, record, err := discover(ctx, store, opts)
	if err != nil {
		return nil, err
	}
	report.Phases = append(report.Phases, record)

	rec := remap.NewRecorder()
	report.Documents, record = processAll(ctx, store, cats, rec, docs, opts)
	report.Phases = append(report.Phases, record)

	report.Summary = rec.Summary()
	report.Events = rec.Events(remap.UnresolvedSource, remap.NamespaceDropped, remap.MissingInTarget)
	report.Suggestions = suggestions(report.Events, cats.New)

	for _, p := range report.Phases {
		output.Debug("phase complete", "phase", p.Name, "duration", p.Duration, "details", p.Details)
	}
	return report, newRunError(report)
}

func withDefaults(opts Options) Options {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.InventoryKey == "" {
		opts.InventoryKey = "Inventory"
	}
	if opts.IDKey == "" {
		opts.IDKey = "id"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

func discover(ctx context.Context, store *document.Store, opts Options) ([]string, PhaseRecord, error) {
	start := time.Now()
	docs := opts.Documents
	source := "arguments"
	if len(docs) == 0 {
		if opts.DataDir == "" {
			return nil, PhaseRecord{}, oerrors.NewValidationError(
				"no documents given", "pass document paths or set dataDir")
		}
		var err error
		docs, err = store.Discover(ctx, opts.DataDir)
		if err != nil {
			return nil, PhaseRecord{}, err
		}
		source = opts.DataDir
	}
	if len(docs) == 0 {
		return nil, PhaseRecord{}, oerrors.NewNotFoundError(
			"no documents found", opts.DataDir, "documents are *"+document.Ext+" files directly inside the data directory")
	}

	return docs, PhaseRecord{
		Name:     "Discovery",
		Duration: time.Since(start),
		Details:  fmt.Sprintf("%d documents from %s", len(docs), source),
	}, nil
}

// processAll runs one worker per document, at most opts.Jobs at a time.
// Results keep the order of docs. Only documents that complete add their
// events to rec.
func processAll(ctx context.Context, store *document.Store, cats *Catalogs, rec *remap.Recorder, docs []string, opts Options) ([]DocumentResult, PhaseRecord) {
	start := time.Now()
	results := make([]DocumentResult, len(docs))

	var g errgroup.Group
	g.SetLimit(opts.Jobs)
	for i, doc := range docs {
		g.Go(func() error {
			docRec := remap.NewRecorder()
			results[i] = process(ctx, store, remap.New(cats.Old, cats.New, docRec), docRec, doc, opts)
			if results[i].err == nil {
				rec.Absorb(docRec)
			}
			return nil
		})
	}
	_ = g.Wait()

	var slowest time.Duration
	failed := 0
	for _, res := range results {
		slowest = max(slowest, res.Duration)
		if res.err != nil {
			failed++
		}
	}

	return results, PhaseRecord{
		Name:     "Remap",
		Duration: time.Since(start),
		Details:  fmt.Sprintf("%d documents, %d failed, %d jobs (max: %v)", len(docs), failed, opts.Jobs, slowest),
	}
}

func process(ctx context.Context, store *document.Store, r *remap.Remapper, rec *remap.Recorder, loc string, opts Options) DocumentResult {
	start := time.Now()
	res := DocumentResult{URL: loc}
	log := output.DocumentLogger(loc)

	fail := func(err error) DocumentResult {
		log.Error("document failed", "err", err)
		res.Status = output.StatusFailed
		res.Error = err.Error()
		res.err = err
		res.Duration = time.Since(start)
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	doc, err := store.Load(ctx, loc)
	if err != nil {
		return fail(err)
	}
	inv, key, err := document.Subtree(doc, opts.InventoryKey)
	if err != nil {
		return fail(err)
	}

	rebuilt, err := tree.Rebuild(inv, remap.IDTransform(r, loc, remap.MatchKey(opts.IDKey)))
	if err != nil {
		return fail(err)
	}
	res.Summary = rec.DocumentSummary(loc)
	res.Status = status(res.Summary)

	if opts.Diff && res.Summary.Remapped > 0 {
		if res.Diff, err = diff(inv, rebuilt); err != nil {
			return fail(err)
		}
	}

	if opts.DryRun {
		log.Debug("dry run, not writing", "ids", res.Summary.Total())
		res.Duration = time.Since(start)
		return res
	}

	dest := destination(loc, opts.OutDir)
	inPlace := opts.OutDir == ""
	if inPlace && res.Summary.Remapped == 0 {
		log.Debug("nothing remapped, leaving document untouched")
		res.Duration = time.Since(start)
		return res
	}

	next, err := document.Replace(doc, key, rebuilt)
	if err != nil {
		return fail(err)
	}
	if inPlace && opts.Backup {
		res.Backup, res.BackupWritten, err = store.Backup(ctx, doc, opts.Now())
		if err != nil {
			return fail(err)
		}
		if res.BackupWritten {
			log.Info("backup written", "path", res.Backup)
		} else {
			log.Debug("identical backup exists", "path", res.Backup)
		}
	}
	if err := store.Save(ctx, next, dest); err != nil {
		return fail(err)
	}
	res.Output = dest
	log.Info("document written", "path", dest, "remapped", res.Summary.Remapped)

	res.Duration = time.Since(start)
	return res
}

func status(s remap.Summary) string {
	switch {
	case s.Warnings() > 0:
		return output.StatusWarning
	case s.Remapped > 0:
		return output.StatusRemapped
	default:
		return output.StatusUnchanged
	}
}

func destination(loc, outDir string) string {
	if outDir == "" {
		return loc
	}
	_, name := url.Split(loc, file.Scheme)
	return url.Join(outDir, name)
}

func diff(before, after any) (string, error) {
	from, err := yaml.Marshal(before)
	if err != nil {
		return "", fmt.Errorf("rendering inventory: %w", err)
	}
	to, err := yaml.Marshal(after)
	if err != nil {
		return "", fmt.Errorf("rendering inventory: %w", err)
	}
	return output.DiffYAML(from, to, false)
}

func suggestions(events []remap.Event, target *catalog.Index) map[string][]string {
	out := make(map[string][]string)
	for _, e := range events {
		if e.Outcome != remap.NamespaceDropped {
			continue
		}
		if _, done := out[e.Namespace]; done {
			continue
		}
		out[e.Namespace] = remap.Suggest(e.Namespace, target.Namespaces())
	}
	for ns, s := range out {
		if len(s) == 0 {
			delete(out, ns)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
