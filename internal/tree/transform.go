// Package tree rebuilds tag trees bottom-up under a transform, without
// recursion, so document depth never turns into call-stack depth.
package tree

import "github.com/coe-tools/idremap/internal/nbt"

// MaxPasses bounds how many times a transform is re-applied to one node.
const MaxPasses = 1024

// Transform computes a node's replacement.
//
// Rebuild calls it with pass 0 on the rebuilt node, then with pass 1 on that
// result, and so on, until it returns nil to signal that nothing more
// changes. Transforms must not mutate their input.
type Transform func(t *nbt.Tag, pass int) *nbt.Tag

// Identity leaves every node unchanged.
func Identity(*nbt.Tag, int) *nbt.Tag { return nil }

// Once adapts a single-stage function. fn returns nil to keep the node.
func Once(fn func(*nbt.Tag) *nbt.Tag) Transform {
	return func(t *nbt.Tag, pass int) *nbt.Tag {
		if pass > 0 {
			return nil
		}
		return fn(t)
	}
}

// Chain runs fns as successive stages, one per pass. A stage that returns
// nil keeps its input for the next stage.
func Chain(fns ...func(*nbt.Tag) *nbt.Tag) Transform {
	return func(t *nbt.Tag, pass int) *nbt.Tag {
		if pass >= len(fns) {
			return nil
		}
		if next := fns[pass](t); next != nil {
			return next
		}
		return t
	}
}

// settle applies fn until it reports no further change. It reports false
// when fn is still changing t after MaxPasses passes.
func settle(t *nbt.Tag, fn Transform) (*nbt.Tag, bool) {
	for pass := 0; pass < MaxPasses; pass++ {
		next := fn(t, pass)
		if next == nil {
			return t, true
		}
		t = next
	}
	return nil, false
}
