package nbt

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "Compound", KindCompound.String())
	assert.Equal(t, "Kind(13)", Kind(13).String())
	assert.True(t, KindLongArray.Valid())
	assert.False(t, Kind(13).Valid())
	assert.True(t, KindList.IsContainer())
	assert.False(t, KindShort.IsContainer())
}

func TestConstructorsCopyInputs(t *testing.T) {
	raw := []byte{1, 2, 3}
	tag := ByteArray("b", raw)
	raw[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, tag.Value())

	got := tag.Value().([]byte)
	got[1] = 9
	assert.Equal(t, []byte{1, 2, 3}, tag.Value())

	items := []*Tag{Short("", 1)}
	list := NewList("l", KindShort, items...)
	items[0] = Short("", 2)
	v, _ := list.Item(0).ShortValue()
	assert.Equal(t, int16(1), v)
}

func TestCompoundEntries(t *testing.T) {
	c := NewCompound("root",
		Entry{Key: "b", Tag: Int("b", 1)},
		Entry{Key: "a", Tag: Int("a", 2)},
		Entry{Key: "b", Tag: Int("b", 3)},
	)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, "b", c.Key(0))
	assert.Equal(t, "a", c.Key(1))
	b, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, int32(3), b.Value())

	_, ok = c.Get("missing")
	assert.False(t, ok)
	_, ok = Int("x", 1).Get("x")
	assert.False(t, ok)
}

func TestWideCompound(t *testing.T) {
	const width = 200_000

	entries := make([]Entry, 0, width+1)
	for i := range width {
		key := "k" + strconv.Itoa(i)
		entries = append(entries, Entry{Key: key, Tag: Int(key, int32(i))})
	}
	entries = append(entries, Entry{Key: "k7", Tag: Int("k7", -1)})

	c := NewCompound("", entries...)
	require.Equal(t, width, c.Len())
	assert.Equal(t, "k7", c.Key(7))
	assert.Equal(t, int32(-1), c.Item(7).Value())
	assert.Equal(t, "k199999", c.Key(width-1))
}

func TestWithAndWithout(t *testing.T) {
	c := NewCompound("",
		Entry{Key: "a", Tag: Int("a", 1)},
		Entry{Key: "b", Tag: Int("b", 2)},
	)

	replaced := c.With("a", String("a", "x"))
	assert.Equal(t, []string{"a", "b"}, keysOf(replaced))
	v, _ := replaced.Get("a")
	assert.Equal(t, KindString, v.Kind())

	orig, _ := c.Get("a")
	assert.Equal(t, KindInt, orig.Kind(), "With must not mutate the receiver")

	appended := c.With("c", Int("c", 3))
	assert.Equal(t, []string{"a", "b", "c"}, keysOf(appended))

	removed := c.Without("a")
	assert.Equal(t, []string{"b"}, keysOf(removed))
	assert.Equal(t, 2, c.Len())

	renamed := Short("id", 5).WithName("other")
	assert.Equal(t, "other", renamed.Name())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(playerFixture(), playerFixture()))
	assert.True(t, Equal(Float("", float32(math.NaN())), Float("", float32(math.NaN()))))

	tests := []struct {
		name string
		a, b *Tag
	}{
		{"different value", Short("id", 1), Short("id", 2)},
		{"different kind", Short("id", 1), Int("id", 1)},
		{"different name", Short("id", 1), Short("Id", 1)},
		{"different key order", NewCompound("", Entry{Key: "a", Tag: Byte("a", 1)}, Entry{Key: "b", Tag: Byte("b", 1)}),
			NewCompound("", Entry{Key: "b", Tag: Byte("b", 1)}, Entry{Key: "a", Tag: Byte("a", 1)})},
		{"different elem", NewList("", KindInt), NewList("", KindShort)},
		{"different length", NewList("", KindInt, Int("", 1)), NewList("", KindInt)},
		{"nil", Short("id", 1), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Equal(tt.a, tt.b))
		})
	}
}

func TestMarshalYAMLKeepsOrder(t *testing.T) {
	out, err := yaml.Marshal(playerFixture())
	require.NoError(t, err)

	text := string(out)
	assert.Less(t, strings.Index(text, "Inventory:"), strings.Index(text, "Health:"))
	assert.Less(t, strings.Index(text, "Health:"), strings.Index(text, "Pos:"))
	assert.Contains(t, text, "id: 100")
	assert.Contains(t, text, "Ints: [-1, 2]")
}

func TestString(t *testing.T) {
	assert.Equal(t, `Short("id")=100`, Short("id", 100).String())
	assert.Equal(t, `List("Inventory")<Compound>[0]`, NewList("Inventory", KindCompound).String())
}

func keysOf(c *Tag) []string {
	var keys []string
	for _, e := range c.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}
