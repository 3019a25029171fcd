package nbt

import (
	"math"
	"reflect"
	"slices"
)

// Equal reports whether a and b are structurally equal: same kinds, names,
// keys, element kinds and values, in the same order. Floats compare by bit
// pattern so NaN payloads survive a round trip.
//
// The walk uses an explicit stack, so arbitrarily deep trees are fine.
func Equal(a, b *Tag) bool {
	type pair struct{ a, b *Tag }
	stack := []pair{{a, b}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.a == p.b {
			continue
		}
		if p.a == nil || p.b == nil {
			return false
		}
		if p.a.kind != p.b.kind || p.a.name != p.b.name || p.a.elem != p.b.elem {
			return false
		}
		if !slices.Equal(p.a.keys, p.b.keys) || len(p.a.items) != len(p.b.items) {
			return false
		}
		if !scalarEqual(p.a.value, p.b.value) {
			return false
		}
		for i := range p.a.items {
			stack = append(stack, pair{p.a.items[i], p.b.items[i]})
		}
	}
	return true
}

func scalarEqual(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case float32:
		y, ok := b.(float32)
		return ok && math.Float32bits(x) == math.Float32bits(y)
	case float64:
		y, ok := b.(float64)
		return ok && math.Float64bits(x) == math.Float64bits(y)
	case []byte:
		y, ok := b.([]byte)
		return ok && slices.Equal(x, y)
	case []int32:
		y, ok := b.([]int32)
		return ok && slices.Equal(x, y)
	case []int64:
		y, ok := b.([]int64)
		return ok && slices.Equal(x, y)
	default:
		return reflect.DeepEqual(a, b)
	}
}
