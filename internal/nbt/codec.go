package nbt

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	oerrors "github.com/coe-tools/idremap/internal/errors"
)

// MaxDepth bounds container nesting accepted by Decode and Encode.
const MaxDepth = 512

// ErrTooDeep is returned when a tree nests deeper than MaxDepth.
var ErrTooDeep = errors.New("nbt: tree exceeds maximum depth")

// KindError reports a node whose kind is unknown or misplaced.
type KindError struct {
	Kind Kind
	Path string
}

func (e *KindError) Error() string {
	return fmt.Sprintf("nbt: unsupported tag kind %s at %q", e.Kind, e.Path)
}

// Unwrap lets errors.Is match ErrUnsupportedTagKind.
func (e *KindError) Unwrap() error {
	return oerrors.ErrUnsupportedTagKind
}

// Decode reads one named root tag from r.
func Decode(r io.Reader) (*Tag, error) {
	d := &decoder{r: bufio.NewReader(r)}

	kind, err := d.kind()
	if err != nil {
		return nil, err
	}
	if kind == KindEnd {
		return nil, fmt.Errorf("nbt: empty document")
	}
	name, err := d.string()
	if err != nil {
		return nil, err
	}
	return d.payload(kind, name, name, 0)
}

type decoder struct {
	r   *bufio.Reader
	buf [8]byte
}

func (d *decoder) read(n int) ([]byte, error) {
	if _, err := io.ReadFull(d.r, d.buf[:n]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("nbt: %w", err)
	}
	return d.buf[:n], nil
}

func (d *decoder) kind() (Kind, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return Kind(b[0]), nil
}

func (d *decoder) string() (string, error) {
	b, err := d.read(2)
	if err != nil {
		return "", err
	}
	n := int(binary.BigEndian.Uint16(b))
	s := make([]byte, n)
	if _, err := io.ReadFull(d.r, s); err != nil {
		return "", fmt.Errorf("nbt: reading string: %w", err)
	}
	return string(s), nil
}

func (d *decoder) length() (int, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	n := int32(binary.BigEndian.Uint32(b))
	if n < 0 {
		return 0, fmt.Errorf("nbt: negative length %d", n)
	}
	return int(n), nil
}

func (d *decoder) payload(kind Kind, name, path string, depth int) (*Tag, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}

	switch kind {
	case KindByte:
		b, err := d.read(1)
		if err != nil {
			return nil, err
		}
		return Byte(name, int8(b[0])), nil
	case KindShort:
		b, err := d.read(2)
		if err != nil {
			return nil, err
		}
		return Short(name, int16(binary.BigEndian.Uint16(b))), nil
	case KindInt:
		b, err := d.read(4)
		if err != nil {
			return nil, err
		}
		return Int(name, int32(binary.BigEndian.Uint32(b))), nil
	case KindLong:
		b, err := d.read(8)
		if err != nil {
			return nil, err
		}
		return Long(name, int64(binary.BigEndian.Uint64(b))), nil
	case KindFloat:
		b, err := d.read(4)
		if err != nil {
			return nil, err
		}
		return Float(name, math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case KindDouble:
		b, err := d.read(8)
		if err != nil {
			return nil, err
		}
		return Double(name, math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	case KindString:
		s, err := d.string()
		if err != nil {
			return nil, err
		}
		return String(name, s), nil
	case KindByteArray:
		n, err := d.length()
		if err != nil {
			return nil, err
		}
		v := make([]byte, 0, min(n, 1<<16))
		for len(v) < n {
			start := len(v)
			v = append(v, make([]byte, min(n-start, 1<<16))...)
			if _, err := io.ReadFull(d.r, v[start:]); err != nil {
				return nil, fmt.Errorf("nbt: reading byte array: %w", err)
			}
		}
		return &Tag{kind: KindByteArray, name: name, value: v}, nil
	case KindIntArray:
		n, err := d.length()
		if err != nil {
			return nil, err
		}
		v := make([]int32, 0, min(n, 1<<14))
		for range n {
			b, err := d.read(4)
			if err != nil {
				return nil, err
			}
			v = append(v, int32(binary.BigEndian.Uint32(b)))
		}
		return &Tag{kind: KindIntArray, name: name, value: v}, nil
	case KindLongArray:
		n, err := d.length()
		if err != nil {
			return nil, err
		}
		v := make([]int64, 0, min(n, 1<<13))
		for range n {
			b, err := d.read(8)
			if err != nil {
				return nil, err
			}
			v = append(v, int64(binary.BigEndian.Uint64(b)))
		}
		return &Tag{kind: KindLongArray, name: name, value: v}, nil
	case KindList:
		elem, err := d.kind()
		if err != nil {
			return nil, err
		}
		n, err := d.length()
		if err != nil {
			return nil, err
		}
		if !elem.Valid() || (elem == KindEnd && n > 0) {
			return nil, &KindError{Kind: elem, Path: path}
		}
		items := make([]*Tag, 0, min(n, 1<<12))
		for i := range n {
			item, err := d.payload(elem, "", fmt.Sprintf("%s[%d]", path, i), depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return NewList(name, elem, items...), nil
	case KindCompound:
		var entries []Entry
		for {
			k, err := d.kind()
			if err != nil {
				return nil, err
			}
			if k == KindEnd {
				break
			}
			key, err := d.string()
			if err != nil {
				return nil, err
			}
			child, err := d.payload(k, key, path+"."+key, depth+1)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Key: key, Tag: child})
		}
		return NewCompound(name, entries...), nil
	default:
		return nil, &KindError{Kind: kind, Path: path}
	}
}

// Encode writes t to w as a named root tag.
// Compound children are written under their compound key.
func Encode(w io.Writer, t *Tag) error {
	e := &encoder{w: bufio.NewWriter(w)}
	e.kind(t.kind)
	e.string(t.name)
	if err := e.payload(t, t.name, 0); err != nil {
		return err
	}
	if e.err != nil {
		return fmt.Errorf("nbt: %w", e.err)
	}
	return e.w.Flush()
}

type encoder struct {
	w   *bufio.Writer
	buf [8]byte
	err error
}

func (e *encoder) write(b []byte) {
	if e.err == nil {
		_, e.err = e.w.Write(b)
	}
}

func (e *encoder) kind(k Kind) {
	e.write([]byte{byte(k)})
}

func (e *encoder) string(s string) {
	binary.BigEndian.PutUint16(e.buf[:2], uint16(len(s)))
	e.write(e.buf[:2])
	e.write([]byte(s))
}

func (e *encoder) u16(v uint16) {
	binary.BigEndian.PutUint16(e.buf[:2], v)
	e.write(e.buf[:2])
}

func (e *encoder) u32(v uint32) {
	binary.BigEndian.PutUint32(e.buf[:4], v)
	e.write(e.buf[:4])
}

func (e *encoder) u64(v uint64) {
	binary.BigEndian.PutUint64(e.buf[:8], v)
	e.write(e.buf[:8])
}

func (e *encoder) payload(t *Tag, path string, depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}
	bad := func() error {
		return fmt.Errorf("nbt: %s tag at %q holds %T", t.kind, path, t.value)
	}

	switch t.kind {
	case KindByte:
		v, ok := t.value.(int8)
		if !ok {
			return bad()
		}
		e.write([]byte{byte(v)})
	case KindShort:
		v, ok := t.value.(int16)
		if !ok {
			return bad()
		}
		e.u16(uint16(v))
	case KindInt:
		v, ok := t.value.(int32)
		if !ok {
			return bad()
		}
		e.u32(uint32(v))
	case KindLong:
		v, ok := t.value.(int64)
		if !ok {
			return bad()
		}
		e.u64(uint64(v))
	case KindFloat:
		v, ok := t.value.(float32)
		if !ok {
			return bad()
		}
		e.u32(math.Float32bits(v))
	case KindDouble:
		v, ok := t.value.(float64)
		if !ok {
			return bad()
		}
		e.u64(math.Float64bits(v))
	case KindString:
		v, ok := t.value.(string)
		if !ok {
			return bad()
		}
		if len(v) > math.MaxUint16 {
			return fmt.Errorf("nbt: string at %q too long (%d bytes)", path, len(v))
		}
		e.string(v)
	case KindByteArray:
		v, ok := t.value.([]byte)
		if !ok {
			return bad()
		}
		e.u32(uint32(len(v)))
		e.write(v)
	case KindIntArray:
		v, ok := t.value.([]int32)
		if !ok {
			return bad()
		}
		e.u32(uint32(len(v)))
		for _, x := range v {
			e.u32(uint32(x))
		}
	case KindLongArray:
		v, ok := t.value.([]int64)
		if !ok {
			return bad()
		}
		e.u32(uint32(len(v)))
		for _, x := range v {
			e.u64(uint64(x))
		}
	case KindList:
		if !t.elem.Valid() || (t.elem == KindEnd && len(t.items) > 0) {
			return &KindError{Kind: t.elem, Path: path}
		}
		e.kind(t.elem)
		e.u32(uint32(len(t.items)))
		for i, item := range t.items {
			p := fmt.Sprintf("%s[%d]", path, i)
			if item.kind != t.elem {
				return fmt.Errorf("nbt: list %q of %s holds %s at %q", t.name, t.elem, item.kind, p)
			}
			if err := e.payload(item, p, depth+1); err != nil {
				return err
			}
		}
	case KindCompound:
		for i, key := range t.keys {
			child := t.items[i]
			if child.kind == KindEnd {
				return &KindError{Kind: KindEnd, Path: path + "." + key}
			}
			e.kind(child.kind)
			e.string(key)
			if err := e.payload(child, path+"."+key, depth+1); err != nil {
				return err
			}
		}
		e.kind(KindEnd)
	default:
		return &KindError{Kind: t.kind, Path: path}
	}
	return nil
}
