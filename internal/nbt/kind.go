// Package nbt models the tagged binary tree used by game-world saves and
// reads and writes its classic big-endian encoding.
//
// Tags are immutable. Constructors copy their inputs and the With* helpers
// return new tags, so a tree can be shared between goroutines once built.
package nbt

import "fmt"

// Kind is the one-byte type tag that precedes every node in the encoding.
type Kind byte

// Known kinds, in wire order.
const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

var kindNames = [...]string{
	KindEnd:       "End",
	KindByte:      "Byte",
	KindShort:     "Short",
	KindInt:       "Int",
	KindLong:      "Long",
	KindFloat:     "Float",
	KindDouble:    "Double",
	KindByteArray: "ByteArray",
	KindString:    "String",
	KindList:      "List",
	KindCompound:  "Compound",
	KindIntArray:  "IntArray",
	KindLongArray: "LongArray",
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k <= KindLongArray
}

// IsContainer reports whether tags of this kind hold child tags.
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindCompound
}

// String returns the conventional name of the kind.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}
