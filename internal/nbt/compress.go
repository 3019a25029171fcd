package nbt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Compression identifies the container a document was stored in.
type Compression int

const (
	// CompressionNone is a bare encoded tree.
	CompressionNone Compression = iota
	// CompressionGzip is the player/level file container.
	CompressionGzip
	// CompressionZlib is the region chunk container.
	CompressionZlib
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	default:
		return "none"
	}
}

// Detect guesses the compression from the leading bytes of data.
// 0x78 is not a valid tag kind, so a zlib header is unambiguous.
func Detect(data []byte) Compression {
	switch {
	case len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b:
		return CompressionGzip
	case len(data) >= 2 && data[0] == 0x78:
		return CompressionZlib
	default:
		return CompressionNone
	}
}

// Unmarshal decodes a document, transparently decompressing it.
// The detected compression is returned so the document can be written back
// in the same container.
func Unmarshal(data []byte) (*Tag, Compression, error) {
	c := Detect(data)

	var r io.Reader = bytes.NewReader(data)
	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, c, fmt.Errorf("nbt: opening gzip stream: %w", err)
		}
		defer zr.Close()
		r = zr
	case CompressionZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, c, fmt.Errorf("nbt: opening zlib stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	t, err := Decode(r)
	return t, c, err
}

// Marshal encodes t inside the given container.
func Marshal(t *Tag, c Compression) ([]byte, error) {
	var buf bytes.Buffer

	var w io.WriteCloser
	switch c {
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZlib:
		w = zlib.NewWriter(&buf)
	default:
		if err := Encode(&buf, t); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if err := Encode(w, t); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("nbt: closing %s stream: %w", c, err)
	}
	return buf.Bytes(), nil
}
