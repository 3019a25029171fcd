package nbt

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the tree as an order-preserving YAML document.
// Compounds become mappings keyed by compound key, lists and arrays become
// sequences. Kinds are not encoded; the rendering is meant for reading and
// diffing, not for round trips.
func (t *Tag) MarshalYAML() (interface{}, error) {
	return t.node(0)
}

func (t *Tag) node(depth int) (*yaml.Node, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}

	switch t.kind {
	case KindCompound:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i, key := range t.keys {
			child, err := t.items[i].node(depth + 1)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, scalarNode("!!str", key), child)
		}
		return n, nil
	case KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t.items {
			child, err := item.node(depth + 1)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case KindByte, KindShort, KindInt, KindLong:
		return scalarNode("!!int", fmt.Sprint(t.value)), nil
	case KindFloat:
		v, _ := t.value.(float32)
		return scalarNode("!!float", formatFloat(float64(v), 32)), nil
	case KindDouble:
		v, _ := t.value.(float64)
		return scalarNode("!!float", formatFloat(v, 64)), nil
	case KindString:
		return scalarNode("!!str", fmt.Sprint(t.value)), nil
	case KindByteArray:
		v, _ := t.value.([]byte)
		return flowInts(len(v), func(i int) int64 { return int64(int8(v[i])) }), nil
	case KindIntArray:
		v, _ := t.value.([]int32)
		return flowInts(len(v), func(i int) int64 { return int64(v[i]) }), nil
	case KindLongArray:
		v, _ := t.value.([]int64)
		return flowInts(len(v), func(i int) int64 { return v[i] }), nil
	default:
		return nil, &KindError{Kind: t.kind, Path: t.name}
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func flowInts(n int, at func(int) int64) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for i := range n {
		node.Content = append(node.Content, scalarNode("!!int", strconv.FormatInt(at(i), 10)))
	}
	return node
}

func formatFloat(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return ".nan"
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, bits)
	}
}
