// Package migrate runs a remap over a set of documents: it builds both
// catalogs, rewrites every document's inventory and reports what happened.
package migrate

import (
	"time"

	"github.com/coe-tools/idremap/internal/catalog"
	"github.com/coe-tools/idremap/internal/remap"
)

// Options configures a run.
type Options struct {
	// OldCatalog and NewCatalog are catalog directories holding item.csv
	// and block.csv. Ignored when Catalogs is set.
	OldCatalog string
	NewCatalog string

	// Catalogs are prebuilt catalogs. When nil, Run builds them.
	Catalogs *Catalogs

	// Documents lists document locations. When empty, DataDir is scanned.
	Documents []string
	DataDir   string

	// OutDir receives rewritten documents. Empty rewrites in place.
	OutDir string

	InventoryKey string
	IDKey        string

	// Backup writes a backup before an in-place rewrite.
	Backup bool

	// DryRun remaps without writing anything.
	DryRun bool

	// Diff renders a YAML diff of every changed inventory.
	Diff bool

	// Jobs bounds concurrent documents. Values below 1 mean 1.
	Jobs int

	// Progress observes catalog construction.
	Progress func(source string, percent int)

	// Now stamps backups. Defaults to time.Now.
	Now func() time.Time
}

// Catalogs holds the indexes of both schemes.
type Catalogs struct {
	Old *catalog.Index
	New *catalog.Index
}

// PhaseRecord captures timing for one phase of a run.
type PhaseRecord struct {
	Name     string        `json:"name" yaml:"name"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Details  string        `json:"details,omitempty" yaml:"details,omitempty"`
}

// DocumentResult describes what happened to one document.
type DocumentResult struct {
	URL           string        `json:"url" yaml:"url"`
	Output        string        `json:"output,omitempty" yaml:"output,omitempty"`
	Status        string        `json:"status" yaml:"status"`
	Summary       remap.Summary `json:"summary" yaml:"summary"`
	Backup        string        `json:"backup,omitempty" yaml:"backup,omitempty"`
	BackupWritten bool          `json:"backupWritten,omitempty" yaml:"backupWritten,omitempty"`
	Diff          string        `json:"diff,omitempty" yaml:"diff,omitempty"`
	Error         string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration      time.Duration `json:"duration" yaml:"duration"`

	err error
}

// Err returns the error that failed the document, if any.
func (d DocumentResult) Err() error {
	return d.err
}

// Report is the outcome of a run.
type Report struct {
	RunID     string           `json:"runId" yaml:"runId"`
	StartedAt time.Time        `json:"startedAt" yaml:"startedAt"`
	DryRun    bool             `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Phases    []PhaseRecord    `json:"phases" yaml:"phases"`
	Documents []DocumentResult `json:"documents" yaml:"documents"`
	Summary   remap.Summary    `json:"summary" yaml:"summary"`

	// Events lists every ID left unchanged for lack of a match.
	Events []remap.Event `json:"events,omitempty" yaml:"events,omitempty"`

	// Suggestions maps each dropped namespace to similarly named
	// namespaces of the new catalog.
	Suggestions map[string][]string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`

	// Collisions counts old-catalog IDs claimed by more than one namespace.
	Collisions int `json:"collisions,omitempty" yaml:"collisions,omitempty"`
}

// Failed returns the documents that failed.
func (r *Report) Failed() []DocumentResult {
	var out []DocumentResult
	for _, d := range r.Documents {
		if d.err != nil {
			out = append(out, d)
		}
	}
	return out
}
