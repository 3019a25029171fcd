package tree

import (
	"strconv"
	"strings"

	"github.com/coe-tools/idremap/internal/nbt"
)

// frame is one node under reconstruction. Each frame's parent sits directly
// below it on the stack; slot is the node's position in that parent.
type frame struct {
	src  *nbt.Tag
	slot int

	next  int
	built []*nbt.Tag
}

// Rebuild reconstructs root bottom-up and returns the new tree.
//
// Children are rebuilt and run through fn before their container is
// assembled, so a container is always built from transformed children. Lists
// keep their element kind and order; compounds keep their key order, and a
// transform that renames a value does not change the key it is stored under.
// The root itself is run through fn last.
//
// Memory is linear in the depth of the tree: node paths are only built when
// an error is reported. The input tree is never modified. Unknown kinds and
// nil nodes fail with *UnsupportedKindError.
func Rebuild(root *nbt.Tag, fn Transform) (*nbt.Tag, error) {
	if fn == nil {
		fn = Identity
	}

	stack := []*frame{{src: root}}
	for {
		top := stack[len(stack)-1]
		src := top.src

		if src == nil {
			return nil, &UnsupportedKindError{Kind: nbt.KindEnd, Path: pathOf(stack)}
		}
		if !src.Kind().Valid() || src.Kind() == nbt.KindEnd {
			return nil, &UnsupportedKindError{Kind: src.Kind(), Path: pathOf(stack)}
		}

		if src.Kind().IsContainer() && top.next < src.Len() {
			i := top.next
			top.next++
			stack = append(stack, &frame{src: src.Item(i), slot: i})
			continue
		}

		node, err := assemble(stack)
		if err != nil {
			return nil, err
		}
		node, ok := settle(node, fn)
		if !ok {
			return nil, &DivergedError{Path: pathOf(stack), Passes: MaxPasses}
		}

		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return node, nil
		}
		parent := stack[len(stack)-1]
		if parent.built == nil {
			parent.built = make([]*nbt.Tag, parent.src.Len())
		}
		parent.built[top.slot] = node
	}
}

// assemble builds the node of the top frame from its rebuilt children.
func assemble(stack []*frame) (*nbt.Tag, error) {
	f := stack[len(stack)-1]
	src := f.src
	switch src.Kind() {
	case nbt.KindList:
		for i, item := range f.built {
			if item.Kind() != src.Elem() {
				return nil, &ElementKindError{
					Path: pathOf(stack) + segment(src, i),
					Want: src.Elem(),
					Got:  item.Kind(),
				}
			}
		}
		return nbt.NewList(src.Name(), src.Elem(), f.built...), nil
	case nbt.KindCompound:
		entries := make([]nbt.Entry, len(f.built))
		for i, item := range f.built {
			entries[i] = nbt.Entry{Key: src.Key(i), Tag: item}
		}
		return nbt.NewCompound(src.Name(), entries...), nil
	default:
		return src, nil
	}
}

// pathOf renders the path of the top frame: the root name followed by a
// "[i]" or ".key" segment per level.
func pathOf(stack []*frame) string {
	var b strings.Builder
	if root := stack[0].src; root != nil {
		b.WriteString(root.Name())
	}
	for j := 1; j < len(stack); j++ {
		b.WriteString(segment(stack[j-1].src, stack[j].slot))
	}
	return b.String()
}

func segment(container *nbt.Tag, i int) string {
	if container.Kind() == nbt.KindList {
		return "[" + strconv.Itoa(i) + "]"
	}
	return "." + container.Key(i)
}
