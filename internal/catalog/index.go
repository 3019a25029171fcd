package catalog

import "slices"

// Index answers identity lookups against one catalog. It is read-only after
// construction and safe for concurrent use.
type Index struct {
	catalog *Catalog

	// byID holds the first record for each ID, scanning namespaces in
	// lexical order and records in ID order.
	byID map[int16]Record

	// byIdentity holds the lowest-ordered ID for each identity.
	byIdentity map[Identity]int16
}

// NewIndex precomputes the lookup tables of c.
func NewIndex(c *Catalog) *Index {
	idx := &Index{
		catalog:    c,
		byID:       make(map[int16]Record),
		byIdentity: make(map[Identity]int16),
	}
	for _, ns := range c.Namespaces() {
		for _, r := range c.namespaces[ns] {
			if _, ok := idx.byID[r.ID]; !ok {
				idx.byID[r.ID] = r
			}
			if _, ok := idx.byIdentity[r.Identity()]; !ok {
				idx.byIdentity[r.Identity()] = r.ID
			}
		}
	}
	return idx
}

// Catalog returns the indexed catalog.
func (x *Index) Catalog() *Catalog {
	return x.catalog
}

// IdentityOf returns the identity that owns id.
//
// IDs are not globally unique in practice: when several namespaces carry the
// same ID, the namespace that sorts first lexically wins. Use IdentityIn when
// the namespace is known.
func (x *Index) IdentityOf(id int16) (Identity, bool) {
	r, ok := x.byID[id]
	if !ok {
		return Identity{}, false
	}
	return r.Identity(), true
}

// IdentityIn returns the identity owning id inside one namespace.
func (x *Index) IdentityIn(namespace string, id int16) (Identity, bool) {
	records := x.catalog.namespaces[namespace]
	i, found := slices.BinarySearchFunc(records, id, func(r Record, id int16) int {
		return int(r.ID) - int(id)
	})
	if !found {
		return Identity{}, false
	}
	return records[i].Identity(), true
}

// IDOf returns the ID of an exact identity match within its namespace.
func (x *Index) IDOf(id Identity) (int16, bool) {
	v, ok := x.byIdentity[id]
	return v, ok
}

// HasNamespace reports whether the namespace exists.
func (x *Index) HasNamespace(namespace string) bool {
	return x.catalog.Has(namespace)
}

// Namespaces returns the indexed namespaces in lexical order.
func (x *Index) Namespaces() []string {
	return x.catalog.Namespaces()
}

// Collisions returns, for every ID claimed by records in more than one
// namespace, all of those records in lookup order. The first record of each
// slice is the one IdentityOf resolves to.
func (x *Index) Collisions() map[int16][]Record {
	seen := make(map[int16][]Record)
	for _, ns := range x.catalog.Namespaces() {
		for _, r := range x.catalog.namespaces[ns] {
			seen[r.ID] = append(seen[r.ID], r)
		}
	}

	out := make(map[int16][]Record)
	for id, records := range seen {
		for _, r := range records[1:] {
			if r.Namespace != records[0].Namespace {
				out[id] = records
				break
			}
		}
	}
	return out
}
