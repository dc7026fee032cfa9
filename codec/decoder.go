package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/carbyne/bvdf/debug"
	"github.com/carbyne/bvdf/ir"
)

// DefaultMaxDepth bounds collection nesting while decoding.
const DefaultMaxDepth = 512

type byteReader interface {
	io.Reader
	io.ByteReader
}

// DecodeOption configures a Decoder.
type DecodeOption func(*Decoder)

// WithMaxDepth sets the maximum collection nesting depth.
func WithMaxDepth(n int) DecodeOption {
	return func(d *Decoder) { d.maxDepth = n }
}

// WithOffset sets the offset of the first byte read, so that offsets in
// errors are relative to an enclosing file rather than to r.
func WithOffset(n int64) DecodeOption {
	return func(d *Decoder) { d.offset = n }
}

// Decoder reads BVDF trees from a byte stream. It keeps track of the
// number of bytes it consumed so callers can check framing.
type Decoder struct {
	r        byteReader
	offset   int64
	maxDepth int
	tag      int
	buf      []byte
}

// NewDecoder returns a decoder reading from r. Readers that do not
// implement io.ByteReader are buffered, in which case the decoder may read
// ahead of what it consumed.
func NewDecoder(r io.Reader, opts ...DecodeOption) *Decoder {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	d := &Decoder{r: br, maxDepth: DefaultMaxDepth, tag: NoTag}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads the properties of a collection up to and including its
// terminating TagEnd. At the top level, the end of input at a tag boundary
// also ends the collection.
func (d *Decoder) Decode() (*ir.Collection, error) {
	return d.decode(0)
}

// DecodeEmbedded is like Decode but requires the terminating TagEnd.
func (d *Decoder) DecodeEmbedded() (*ir.Collection, error) {
	return d.decode(1)
}

// Offset returns the offset of the next unread byte.
func (d *Decoder) Offset() int64 {
	return d.offset
}

func (d *Decoder) decode(depth int) (*ir.Collection, error) {
	if depth > d.maxDepth {
		return nil, d.errorf(ErrTooDeep, "limit %d", d.maxDepth)
	}
	res := ir.NewCollection()
	for {
		tagOffset := d.offset
		d.tag = NoTag
		tag, err := d.r.ReadByte()
		if err != nil {
			if err == io.EOF && depth == 0 {
				return res, nil
			}
			return nil, d.truncated(err, "reading tag")
		}
		d.offset++
		if tag == TagEnd {
			return res, nil
		}
		d.tag = int(tag)
		if !supported(tag) {
			return nil, &Error{Offset: tagOffset, Tag: d.tag, Err: ErrMalformedToken, Msg: "unsupported tag"}
		}
		key, err := d.readString()
		if err != nil {
			return nil, err
		}
		if debug.Decode() {
			debug.Logf("bvdf: %#06x %s %q\n", tagOffset, tagName(tag), key)
		}
		val, err := d.readValue(tag, depth)
		if err != nil {
			return nil, err
		}
		res.Add(key, val)
	}
}

func supported(tag byte) bool {
	switch tag {
	case TagCollection, TagString, TagInt32, TagFloat32, TagUint64:
		return true
	}
	return false
}

func (d *Decoder) readValue(tag byte, depth int) (*ir.Token, error) {
	switch tag {
	case TagCollection:
		c, err := d.decode(depth + 1)
		if err != nil {
			return nil, err
		}
		return ir.FromCollection(c), nil
	case TagString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	case TagInt32:
		b, err := d.readFixed(4)
		if err != nil {
			return nil, err
		}
		return ir.FromInt32(int32(binary.LittleEndian.Uint32(b))), nil
	case TagFloat32:
		b, err := d.readFixed(4)
		if err != nil {
			return nil, err
		}
		return ir.FromFloat32(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	case TagUint64:
		b, err := d.readFixed(8)
		if err != nil {
			return nil, err
		}
		return ir.FromUint64(binary.LittleEndian.Uint64(b)), nil
	}
	return nil, d.errorf(ErrMalformedToken, "unsupported tag %s", tagName(tag))
}

// readString reads a NUL terminated string, consuming the NUL.
func (d *Decoder) readString() (string, error) {
	d.buf = d.buf[:0]
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return "", d.truncated(err, "reading string")
		}
		d.offset++
		if b == 0 {
			return string(d.buf), nil
		}
		d.buf = append(d.buf, b)
	}
}

func (d *Decoder) readFixed(n int) ([]byte, error) {
	if cap(d.buf) < n {
		d.buf = make([]byte, n)
	}
	b := d.buf[:n]
	m, err := io.ReadFull(d.r, b)
	d.offset += int64(m)
	if err != nil {
		return nil, d.truncated(err, fmt.Sprintf("reading %d byte value", n))
	}
	return b, nil
}

func (d *Decoder) truncated(err error, msg string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &Error{Offset: d.offset, Tag: d.tag, Err: ErrTruncatedStream, Msg: msg}
	}
	return fmt.Errorf("bvdf: offset %d: %s: %w", d.offset, msg, err)
}

func (d *Decoder) errorf(err error, format string, args ...any) error {
	return &Error{Offset: d.offset, Tag: d.tag, Err: err, Msg: fmt.Sprintf(format, args...)}
}

// Decode reads one top-level collection from r.
func Decode(r io.Reader) (*ir.Collection, error) {
	return NewDecoder(r).Decode()
}

// Unmarshal decodes a top-level collection from data. Bytes following the
// collection's terminator are ignored.
func Unmarshal(data []byte) (*ir.Collection, error) {
	return Decode(bytes.NewReader(data))
}

// IsDecodeError reports whether err came from malformed or truncated
// input rather than from the underlying reader.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrMalformedToken) || errors.Is(err, ErrTruncatedStream) || errors.Is(err, ErrTooDeep)
}
