package remap

import (
	"github.com/coe-tools/idremap/internal/catalog"
	"github.com/coe-tools/idremap/internal/nbt"
	"github.com/coe-tools/idremap/internal/output"
	"github.com/coe-tools/idremap/internal/tree"
)

// Remapper resolves IDs between two catalogs, logging and reporting every
// resolution.
type Remapper struct {
	Old      *catalog.Index
	New      *catalog.Index
	Observer Observer
}

// New returns a Remapper. obs may be nil.
func New(old, next *catalog.Index, obs Observer) *Remapper {
	return &Remapper{Old: old, New: next, Observer: obs}
}

// Remap returns the ID to store in place of id inside doc.
func (r *Remapper) Remap(doc string, id int16) int16 {
	res := Resolve(r.Old, r.New, id)
	logResult(doc, res)
	if r.Observer != nil {
		r.Observer.Observe(newEvent(doc, res))
	}
	return res.NewID
}

func logResult(doc string, res Result) {
	switch res.Outcome {
	case UnresolvedSource:
		output.Warn("id not found in old catalog, leaving unchanged",
			"document", doc, "id", res.OldID)
	case NamespaceDropped:
		output.Warn("namespace missing from new catalog, leaving unchanged",
			"document", doc, "id", res.OldID,
			"namespace", res.Identity.Namespace, "symbolic", res.Identity.SymbolicName)
	case MissingInTarget:
		output.Info("identity not present in new catalog, leaving unchanged",
			"document", doc, "id", res.OldID, "identity", res.Identity)
	case Unchanged:
		output.Debug("id is the same in both catalogs",
			"document", doc, "id", res.OldID, "identity", res.Identity)
	case Remapped:
		output.Debug("remapped id",
			"document", doc, "from", res.OldID, "to", res.NewID, "identity", res.Identity)
	}
}

// Matcher selects the tags that hold IDs.
type Matcher func(t *nbt.Tag) bool

// MatchKey matches Short tags with the given name.
func MatchKey(name string) Matcher {
	return func(t *nbt.Tag) bool {
		return t.Kind() == nbt.KindShort && t.Name() == name
	}
}

// IDTransform returns a single-stage transform that replaces every tag
// selected by match with its remapped value. A nil match selects Short
// tags named "id".
func IDTransform(r *Remapper, doc string, match Matcher) tree.Transform {
	if match == nil {
		match = MatchKey("id")
	}
	return tree.Once(func(t *nbt.Tag) *nbt.Tag {
		if !match(t) {
			return nil
		}
		id, ok := t.ShortValue()
		if !ok {
			return nil
		}
		next := r.Remap(doc, id)
		if next == id {
			return nil
		}
		return nbt.Short(t.Name(), next)
	})
}
