package nbt

import (
	"fmt"
	"slices"
)

// Tag is one node of a tree: a named scalar, list, or compound.
type Tag struct {
	kind  Kind
	name  string
	value any

	// elem is the element kind of a list.
	elem Kind

	// items holds list elements, or compound values parallel to keys.
	items []*Tag
	keys  []string
}

// Entry is one key/value pair of a compound.
// Key is structural; Tag.Name() is metadata and may differ from Key.
type Entry struct {
	Key string
	Tag *Tag
}

// Byte creates a Byte tag.
func Byte(name string, v int8) *Tag { return &Tag{kind: KindByte, name: name, value: v} }

// Short creates a Short tag.
func Short(name string, v int16) *Tag { return &Tag{kind: KindShort, name: name, value: v} }

// Int creates an Int tag.
func Int(name string, v int32) *Tag { return &Tag{kind: KindInt, name: name, value: v} }

// Long creates a Long tag.
func Long(name string, v int64) *Tag { return &Tag{kind: KindLong, name: name, value: v} }

// Float creates a Float tag.
func Float(name string, v float32) *Tag { return &Tag{kind: KindFloat, name: name, value: v} }

// Double creates a Double tag.
func Double(name string, v float64) *Tag { return &Tag{kind: KindDouble, name: name, value: v} }

// String creates a String tag.
func String(name, v string) *Tag { return &Tag{kind: KindString, name: name, value: v} }

// ByteArray creates a ByteArray tag holding a copy of v.
func ByteArray(name string, v []byte) *Tag {
	return &Tag{kind: KindByteArray, name: name, value: slices.Clone(v)}
}

// IntArray creates an IntArray tag holding a copy of v.
func IntArray(name string, v []int32) *Tag {
	return &Tag{kind: KindIntArray, name: name, value: slices.Clone(v)}
}

// LongArray creates a LongArray tag holding a copy of v.
func LongArray(name string, v []int64) *Tag {
	return &Tag{kind: KindLongArray, name: name, value: slices.Clone(v)}
}

// NewScalar creates a tag of an arbitrary kind carrying value as-is.
// It performs no validation, which lets callers represent nodes of kinds
// this package does not know; the encoder and rebuilder reject those.
func NewScalar(kind Kind, name string, value any) *Tag {
	return &Tag{kind: kind, name: name, value: value}
}

// NewList creates a List tag with the given element kind.
// Items are not checked against elem here; Encode rejects mismatches.
func NewList(name string, elem Kind, items ...*Tag) *Tag {
	t := &Tag{kind: KindList, name: name, elem: elem}
	if len(items) > 0 {
		t.items = slices.Clone(items)
	}
	return t
}

// NewCompound creates a Compound tag from entries in order.
// A repeated key replaces the earlier value and keeps the earlier position.
func NewCompound(name string, entries ...Entry) *Tag {
	t := &Tag{kind: KindCompound, name: name}
	if len(entries) == 0 {
		return t
	}

	t.keys = make([]string, 0, len(entries))
	t.items = make([]*Tag, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Key]; ok {
			t.items[i] = e.Tag
			continue
		}
		index[e.Key] = len(t.keys)
		t.keys = append(t.keys, e.Key)
		t.items = append(t.items, e.Tag)
	}
	return t
}

// Kind returns the tag kind.
func (t *Tag) Kind() Kind { return t.kind }

// Name returns the tag name. List elements have empty names.
func (t *Tag) Name() string { return t.name }

// Elem returns the element kind of a list, or KindEnd for other tags.
func (t *Tag) Elem() Kind { return t.elem }

// Value returns the scalar payload. Array payloads are copied.
// Containers return nil.
func (t *Tag) Value() any {
	switch v := t.value.(type) {
	case []byte:
		return slices.Clone(v)
	case []int32:
		return slices.Clone(v)
	case []int64:
		return slices.Clone(v)
	default:
		return v
	}
}

// ShortValue returns the payload of a Short tag.
func (t *Tag) ShortValue() (int16, bool) {
	if t.kind != KindShort {
		return 0, false
	}
	v, ok := t.value.(int16)
	return v, ok
}

// StringValue returns the payload of a String tag.
func (t *Tag) StringValue() (string, bool) {
	if t.kind != KindString {
		return "", false
	}
	v, ok := t.value.(string)
	return v, ok
}

// Len returns the number of children of a container, or zero.
func (t *Tag) Len() int { return len(t.items) }

// Item returns the i-th child of a container.
func (t *Tag) Item(i int) *Tag { return t.items[i] }

// Key returns the i-th key of a compound.
func (t *Tag) Key(i int) string { return t.keys[i] }

// Items returns a copy of the child list of a container.
func (t *Tag) Items() []*Tag { return slices.Clone(t.items) }

// Entries returns the entries of a compound in insertion order.
func (t *Tag) Entries() []Entry {
	if t.kind != KindCompound {
		return nil
	}
	entries := make([]Entry, len(t.keys))
	for i, k := range t.keys {
		entries[i] = Entry{Key: k, Tag: t.items[i]}
	}
	return entries
}

// Get returns the compound value stored under key.
func (t *Tag) Get(key string) (*Tag, bool) {
	if t.kind != KindCompound {
		return nil, false
	}
	i := slices.Index(t.keys, key)
	if i < 0 {
		return nil, false
	}
	return t.items[i], true
}

// WithName returns a copy of t carrying a different name.
func (t *Tag) WithName(name string) *Tag {
	c := *t
	c.name = name
	return &c
}

// With returns a copy of compound t with key set to v.
// An existing key keeps its position; a new key is appended.
func (t *Tag) With(key string, v *Tag) *Tag {
	if t.kind != KindCompound {
		return t
	}
	return NewCompound(t.name, append(t.Entries(), Entry{Key: key, Tag: v})...)
}

// Without returns a copy of compound t with key removed.
func (t *Tag) Without(key string) *Tag {
	if t.kind != KindCompound {
		return t
	}
	entries := slices.DeleteFunc(t.Entries(), func(e Entry) bool { return e.Key == key })
	return NewCompound(t.name, entries...)
}

// String returns a short description such as `Short("id")=100`.
func (t *Tag) String() string {
	switch {
	case t == nil:
		return "<nil>"
	case t.kind == KindList:
		return fmt.Sprintf("List(%q)<%s>[%d]", t.name, t.elem, len(t.items))
	case t.kind == KindCompound:
		return fmt.Sprintf("Compound(%q){%d}", t.name, len(t.items))
	default:
		return fmt.Sprintf("%s(%q)=%v", t.kind, t.name, t.value)
	}
}
