package nbt

import (
	"bytes"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/coe-tools/idremap/internal/errors"
)

// playerFixture builds a small player document covering every kind.
func playerFixture() *Tag {
	return NewCompound("",
		Entry{Key: "Inventory", Tag: NewList("Inventory", KindCompound,
			NewCompound("",
				Entry{Key: "id", Tag: Short("id", 100)},
				Entry{Key: "Count", Tag: Byte("Count", 3)},
				Entry{Key: "Damage", Tag: Short("Damage", 0)},
				Entry{Key: "Slot", Tag: Byte("Slot", 0)},
			),
			NewCompound("",
				Entry{Key: "id", Tag: Short("id", 999)},
				Entry{Key: "Count", Tag: Byte("Count", 1)},
				Entry{Key: "Slot", Tag: Byte("Slot", 1)},
			),
		)},
		Entry{Key: "Health", Tag: Float("Health", 20)},
		Entry{Key: "Pos", Tag: NewList("Pos", KindDouble, Double("", 1.5), Double("", 64), Double("", -3.25))},
		Entry{Key: "UUIDMost", Tag: Long("UUIDMost", math.MinInt64)},
		Entry{Key: "XpTotal", Tag: Int("XpTotal", 1234)},
		Entry{Key: "Name", Tag: String("Name", "Steve")},
		Entry{Key: "Blob", Tag: ByteArray("Blob", []byte{0, 1, 0xff})},
		Entry{Key: "Ints", Tag: IntArray("Ints", []int32{-1, 2})},
		Entry{Key: "Longs", Tag: LongArray("Longs", []int64{math.MaxInt64})},
		Entry{Key: "Empty", Tag: NewList("Empty", KindEnd)},
	)
}

func TestEncodeShortLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Short("id", 100)))
	assert.Equal(t, []byte{0x02, 0x00, 0x02, 'i', 'd', 0x00, 0x64}, buf.Bytes())
}

func TestRoundTrip(t *testing.T) {
	original := playerFixture()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, original))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.True(t, Equal(original, decoded), spew.Sdump(decoded))

	inv, ok := decoded.Get("Inventory")
	require.True(t, ok)
	assert.Equal(t, KindCompound, inv.Elem())
	assert.Equal(t, 2, inv.Len())
	id, ok := inv.Item(1).Entries()[0].Tag.ShortValue()
	require.True(t, ok)
	assert.Equal(t, int16(999), id)
}

func TestMarshalCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionZlib} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Marshal(playerFixture(), c)
			require.NoError(t, err)
			assert.Equal(t, c, Detect(data))

			decoded, got, err := Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, c, got)
			assert.True(t, Equal(playerFixture(), decoded))
		})
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	data := []byte{0x0a, 0x00, 0x00, 0x63, 0x00, 0x01, 'x', 0x00}

	_, err := Decode(bytes.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrUnsupportedTagKind)

	var kindErr *KindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, Kind(0x63), kindErr.Kind)
	assert.Equal(t, ".x", kindErr.Path)
}

func TestDecodeTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, playerFixture()))
	data := buf.Bytes()

	_, err := Decode(bytes.NewReader(data[:len(data)/2]))
	assert.Error(t, err)
}

func TestDecodeEmptyDocument(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0x00}))
	assert.Error(t, err)
}

func TestDecodeTooDeep(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x0a, 0x00, 0x00})
	for range MaxDepth + 10 {
		buf.Write([]byte{0x0a, 0x00, 0x01, 'a'})
	}
	for range MaxDepth + 11 {
		buf.WriteByte(0x00)
	}

	_, err := Decode(&buf)
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestEncodeRejectsMismatchedList(t *testing.T) {
	list := NewList("l", KindShort, Short("", 1), Int("", 2))

	err := Encode(&bytes.Buffer{}, NewCompound("", Entry{Key: "l", Tag: list}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holds Int")
}

func TestEncodeRejectsUnknownKind(t *testing.T) {
	root := NewCompound("", Entry{Key: "odd", Tag: NewScalar(Kind(42), "odd", 1)})

	err := Encode(&bytes.Buffer{}, root)
	assert.ErrorIs(t, err, oerrors.ErrUnsupportedTagKind)
}

func TestEncodeRejectsWrongPayload(t *testing.T) {
	err := Encode(&bytes.Buffer{}, NewScalar(KindShort, "id", int32(5)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "int32")
}
