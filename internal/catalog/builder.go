package catalog

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/coe-tools/idremap/internal/output"
)

// Fragment holds the records of one tabular source grouped by namespace.
type Fragment struct {
	// Source names the tabular source the fragment came from.
	Source string

	// Rows is the number of data rows read.
	Rows int

	records map[string][]Record
}

// Namespaces returns the fragment's namespaces in lexical order.
func (f *Fragment) Namespaces() []string {
	return sortedKeys(f.records)
}

// Records returns a copy of the records of one namespace, in catalog order.
func (f *Fragment) Records(namespace string) []Record {
	return slices.Clone(f.records[namespace])
}

// BuildOptions tunes fragment construction.
type BuildOptions struct {
	// Progress, when set, is called as rows are consumed with percentages
	// 25, 50, 75 and 100.
	Progress func(source string, percent int)
}

// BuildFragment turns a parsed table into records grouped by namespace.
//
// The Name column is split at its last colon into namespace and display
// name, and the Class column supplies the symbolic name. Missing schema
// columns fail with *SchemaMismatchError; values that do not parse as their
// column type fail with *MalformedRecordError.
func BuildFragment(source string, table *Table, schema Schema, opts BuildOptions) (*Fragment, error) {
	if missing := schema.Missing(table.Header); len(missing) > 0 {
		return nil, &SchemaMismatchError{Source: source, Missing: missing}
	}

	grouped := make(map[string][]Record)
	reported := 0
	for i, row := range table.Rows {
		rec, err := parseRow(source, i+1, row, schema)
		if err != nil {
			return nil, err
		}
		grouped[rec.Namespace] = append(grouped[rec.Namespace], rec)

		if opts.Progress != nil {
			pct := (i + 1) * 100 / len(table.Rows)
			if pct >= reported+25 {
				reported = pct - pct%25
				opts.Progress(source, reported)
			}
		}
	}

	frag := &Fragment{Source: source, Rows: len(table.Rows), records: grouped}
	for ns, records := range grouped {
		kept, dropped := normalize(records)
		if dropped > 0 {
			output.Debug("collapsed duplicate catalog records",
				"source", source, "namespace", ns, "dropped", dropped)
		}
		frag.records[ns] = kept
	}
	return frag, nil
}

func parseRow(source string, n int, row Row, schema Schema) (Record, error) {
	for _, col := range schema.Columns {
		v := strings.TrimSpace(row[col.Name])
		if col.Name == ColumnID {
			continue
		}
		if v == "" {
			continue
		}
		var err error
		switch col.Type {
		case TypeInteger:
			_, err = strconv.ParseInt(v, 10, 64)
		case TypeBoolean:
			_, err = strconv.ParseBool(v)
		}
		if err != nil {
			return Record{}, &MalformedRecordError{Source: source, Row: n, Column: col.Name, Value: v, Cause: err}
		}
	}

	raw := strings.TrimSpace(row[ColumnID])
	id, err := strconv.ParseInt(raw, 10, 16)
	if err != nil {
		return Record{}, &MalformedRecordError{Source: source, Row: n, Column: ColumnID, Value: raw, Cause: err}
	}

	namespace, display := splitName(strings.TrimSpace(row[ColumnName]))
	return Record{
		Namespace:    namespace,
		SymbolicName: strings.TrimSpace(row[ColumnClass]),
		DisplayName:  display,
		ID:           int16(id),
	}, nil
}

// Catalog is the immutable, namespace-partitioned record set of one ID scheme.
type Catalog struct {
	namespaces map[string][]Record
}

// Merge unions fragments by namespace. Fragments are applied in argument
// order, so for duplicate (namespace, symbolic name, ID) keys the record from
// the later fragment wins.
func Merge(fragments ...*Fragment) *Catalog {
	combined := make(map[string][]Record)
	for _, f := range fragments {
		if f == nil {
			continue
		}
		for _, ns := range f.Namespaces() {
			combined[ns] = append(combined[ns], f.records[ns]...)
		}
	}

	c := &Catalog{namespaces: make(map[string][]Record, len(combined))}
	for ns, records := range combined {
		c.namespaces[ns], _ = normalize(records)
	}
	return c
}

// Namespaces returns the catalog's namespaces in lexical order.
func (c *Catalog) Namespaces() []string {
	return sortedKeys(c.namespaces)
}

// Has reports whether the namespace exists in the catalog.
func (c *Catalog) Has(namespace string) bool {
	_, ok := c.namespaces[namespace]
	return ok
}

// Records returns a copy of the records of one namespace in ID order.
func (c *Catalog) Records(namespace string) []Record {
	return slices.Clone(c.namespaces[namespace])
}

// Len returns the total number of records.
func (c *Catalog) Len() int {
	n := 0
	for _, records := range c.namespaces {
		n += len(records)
	}
	return n
}

func sortedKeys(m map[string][]Record) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
