package datafile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/carbyne/bvdf/codec"
	"github.com/carbyne/bvdf/ir"
)

const (
	headerSize   = 8
	checksumSize = 20
)

// Header is the fixed prefix of app-info and package-info files.
type Header struct {
	Version1 uint8
	Type     uint16
	Version2 uint8
	Version3 uint32
}

const (
	AppInfoType     uint16 = 'D' | 'V'<<8
	PackageInfoType uint16 = 'U' | 'V'<<8
)

// binReader reads little-endian fields from an in-memory file, keeping
// absolute offsets for error reports.
type binReader struct {
	r   *bytes.Reader
	opt *options
	buf [8]byte
}

func newBinReader(data []byte, opt *options) *binReader {
	return &binReader{r: bytes.NewReader(data), opt: opt}
}

func (br *binReader) offset() int64 {
	return br.r.Size() - int64(br.r.Len())
}

func (br *binReader) fixed(n int, what string) ([]byte, error) {
	off := br.offset()
	b := br.buf[:n]
	if _, err := io.ReadFull(br.r, b); err != nil {
		return nil, &codec.Error{Offset: off, Tag: codec.NoTag, Err: codec.ErrTruncatedStream, Msg: "reading " + what}
	}
	return b, nil
}

func (br *binReader) u8(what string) (uint8, error) {
	b, err := br.fixed(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (br *binReader) u16(what string) (uint16, error) {
	b, err := br.fixed(2, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (br *binReader) u32(what string) (uint32, error) {
	b, err := br.fixed(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (br *binReader) u64(what string) (uint64, error) {
	b, err := br.fixed(8, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (br *binReader) checksum() ([checksumSize]byte, error) {
	var sum [checksumSize]byte
	off := br.offset()
	if _, err := io.ReadFull(br.r, sum[:]); err != nil {
		return sum, &codec.Error{Offset: off, Tag: codec.NoTag, Err: codec.ErrTruncatedStream, Msg: "reading checksum"}
	}
	return sum, nil
}

func (br *binReader) header() (Header, error) {
	var (
		h   Header
		err error
	)
	if h.Version1, err = br.u8("header"); err != nil {
		return h, err
	}
	if h.Type, err = br.u16("header"); err != nil {
		return h, err
	}
	if h.Version2, err = br.u8("header"); err != nil {
		return h, err
	}
	if h.Version3, err = br.u32("header"); err != nil {
		return h, err
	}
	return h, nil
}

// tree decodes one embedded collection, which must carry its terminator.
func (br *binReader) tree() (*ir.Collection, error) {
	dec := codec.NewDecoder(br.r,
		codec.WithOffset(br.offset()),
		codec.WithMaxDepth(br.opt.maxDepth))
	return dec.DecodeEmbedded()
}

func (br *binReader) seek(off int64) error {
	if _, err := br.r.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to %d: %w", off, err)
	}
	return nil
}

func putHeader(buf *bytes.Buffer, h Header) {
	var b [headerSize]byte
	b[0] = h.Version1
	binary.LittleEndian.PutUint16(b[1:3], h.Type)
	b[3] = h.Version2
	binary.LittleEndian.PutUint32(b[4:8], h.Version3)
	buf.Write(b[:])
}

func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

// putTree writes c followed by its terminator.
func putTree(buf *bytes.Buffer, c *ir.Collection) error {
	if c == nil {
		c = ir.NewCollection()
	}
	if err := codec.Encode(c, buf); err != nil {
		return err
	}
	return buf.WriteByte(codec.TagEnd)
}
