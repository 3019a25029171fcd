// Package catalog builds per-namespace item catalogs from tabular exports
// and answers identity lookups against them.
package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// Identity names an item or block independently of its numeric ID.
type Identity struct {
	Namespace    string `json:"namespace" yaml:"namespace"`
	SymbolicName string `json:"symbolicName" yaml:"symbolicName"`
	DisplayName  string `json:"displayName" yaml:"displayName"`
}

// String renders the identity as namespace:[display,symbolic].
func (id Identity) String() string {
	return id.Namespace + ":[" + id.DisplayName + "," + id.SymbolicName + "]"
}

// Record is one catalog entry.
type Record struct {
	Namespace    string `json:"namespace" yaml:"namespace"`
	SymbolicName string `json:"symbolicName" yaml:"symbolicName"`
	DisplayName  string `json:"displayName" yaml:"displayName"`
	ID           int16  `json:"id" yaml:"id"`
}

// Identity returns the record's identity tuple.
func (r Record) Identity() Identity {
	return Identity{Namespace: r.Namespace, SymbolicName: r.SymbolicName, DisplayName: r.DisplayName}
}

// key is the uniqueness key inside a catalog.
type key struct {
	symbolic string
	id       int16
}

func (r Record) key() key {
	return key{symbolic: r.SymbolicName, id: r.ID}
}

// compareRecords orders by ID, then symbolic name, then display name.
// It is a total order; sorting with slices.SortStableFunc keeps insertion
// order for records that compare equal.
func compareRecords(a, b Record) int {
	if c := cmp.Compare(a.ID, b.ID); c != 0 {
		return c
	}
	if c := strings.Compare(a.SymbolicName, b.SymbolicName); c != 0 {
		return c
	}
	return strings.Compare(a.DisplayName, b.DisplayName)
}

// normalize sorts records and collapses duplicates of (symbolic name, ID).
// The later record wins; the number of dropped records is returned.
func normalize(records []Record) ([]Record, int) {
	last := make(map[key]int, len(records))
	for i, r := range records {
		last[r.key()] = i
	}

	kept := make([]Record, 0, len(last))
	for i, r := range records {
		if last[r.key()] == i {
			kept = append(kept, r)
		}
	}
	slices.SortStableFunc(kept, compareRecords)
	return kept, len(records) - len(kept)
}

// splitName splits a compound "namespace:display" field at its last colon.
// A field without a colon is all namespace with an empty display name.
func splitName(field string) (namespace, display string) {
	i := strings.LastIndex(field, ":")
	if i < 0 {
		return field, ""
	}
	return field[:i], field[i+1:]
}
