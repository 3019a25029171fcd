// Package remap translates numeric IDs from one catalog's scheme to
// another's through their shared identity.
package remap

import (
	"strconv"

	"github.com/coe-tools/idremap/internal/catalog"
)

// Outcome classifies how one ID was resolved.
type Outcome int

const (
	// Remapped means the identity was found in the new catalog under a
	// different ID.
	Remapped Outcome = iota

	// Unchanged means the identity has the same ID in both catalogs.
	Unchanged

	// UnresolvedSource means the old catalog has no record with the ID.
	UnresolvedSource

	// NamespaceDropped means the identity's namespace is absent from the
	// new catalog.
	NamespaceDropped

	// MissingInTarget means the namespace exists in the new catalog but the
	// identity does not.
	MissingInTarget
)

var outcomeNames = [...]string{
	Remapped:         "Remapped",
	Unchanged:        "Unchanged",
	UnresolvedSource: "UnresolvedSource",
	NamespaceDropped: "NamespaceDropped",
	MissingInTarget:  "MissingInTarget",
}

// Outcomes lists every outcome in declaration order.
func Outcomes() []Outcome {
	return []Outcome{Remapped, Unchanged, UnresolvedSource, NamespaceDropped, MissingInTarget}
}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "Outcome(" + strconv.Itoa(int(o)) + ")"
}

// MarshalText renders the outcome name in reports.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Recoverable reports whether the outcome is a resolution failure that
// left the ID unchanged and deserves a warning.
func (o Outcome) Recoverable() bool {
	return o == UnresolvedSource || o == NamespaceDropped
}

// Result is the resolution of one old ID.
type Result struct {
	OldID    int16
	NewID    int16
	Outcome  Outcome
	Identity catalog.Identity
}

// Changed reports whether the ID differs after resolution.
func (r Result) Changed() bool {
	return r.NewID != r.OldID
}

// Resolve maps id from the scheme of from to the scheme of to. It never
// fails: every outcome other than Remapped and Unchanged returns id as is.
// Resolve keeps no state between calls.
func Resolve(from, to *catalog.Index, id int16) Result {
	res := Result{OldID: id, NewID: id}

	ident, ok := from.IdentityOf(id)
	if !ok {
		res.Outcome = UnresolvedSource
		return res
	}
	res.Identity = ident

	if !to.HasNamespace(ident.Namespace) {
		res.Outcome = NamespaceDropped
		return res
	}

	// An identity may own several IDs; an ID the target gives the same
	// identity is kept rather than moved to the identity's lowest ID.
	if same, ok := to.IdentityIn(ident.Namespace, id); ok && same == ident {
		res.Outcome = Unchanged
		return res
	}

	target, ok := to.IDOf(ident)
	if !ok {
		res.Outcome = MissingInTarget
		return res
	}

	res.NewID = target
	if target == id {
		res.Outcome = Unchanged
	} else {
		res.Outcome = Remapped
	}
	return res
}
