package datafile

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/carbyne/bvdf/debug"
	"github.com/carbyne/bvdf/ir"
)

// PackageSentinel ends the chunk list of a package-info file.
const PackageSentinel uint32 = 0xFFFFFFFF

// PackageInfoChunk is one record of a package-info cache.
type PackageInfoChunk struct {
	PackageID        uint32
	Checksum         [checksumSize]byte
	LastChangeNumber uint32
	Data             *ir.Collection
}

type PackageInfo struct {
	Header Header
	Chunks []PackageInfoChunk
}

// PackageInfoReader reads package-info chunks one at a time. Chunks carry
// no size, so a bad embedded tree cannot be skipped.
type PackageInfoReader struct {
	br     *binReader
	header Header
	done   bool
	n      int
}

func NewPackageInfoReader(data []byte, opts ...Option) (*PackageInfoReader, error) {
	br := newBinReader(data, makeOptions(opts))
	h, err := br.header()
	if err != nil {
		return nil, err
	}
	return &PackageInfoReader{br: br, header: h}, nil
}

func (r *PackageInfoReader) Header() Header {
	return r.header
}

// Next returns the next chunk, or io.EOF once the sentinel has been read.
func (r *PackageInfoReader) Next() (*PackageInfoChunk, error) {
	if r.done {
		return nil, io.EOF
	}
	br := r.br
	var (
		ch  PackageInfoChunk
		err error
	)
	at := br.offset()
	if ch.PackageID, err = br.u32("package id"); err != nil {
		return nil, err
	}
	if ch.PackageID == PackageSentinel {
		r.done = true
		return nil, io.EOF
	}
	if ch.Checksum, err = br.checksum(); err != nil {
		return nil, err
	}
	if ch.LastChangeNumber, err = br.u32("change number"); err != nil {
		return nil, err
	}
	if ch.Data, err = br.tree(); err != nil {
		return nil, fmt.Errorf("package %d: %w", ch.PackageID, err)
	}
	if debug.Chunks() {
		debug.Logf("packageinfo: chunk %d package %d at %#x\n", r.n, ch.PackageID, at)
	}
	r.n++
	return &ch, nil
}

func ReadPackageInfo(r io.Reader, opts ...Option) (*PackageInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodePackageInfo(data, opts...)
}

func LoadPackageInfo(path string, opts ...Option) (*PackageInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := DecodePackageInfo(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func DecodePackageInfo(data []byte, opts ...Option) (*PackageInfo, error) {
	r, err := NewPackageInfoReader(data, opts...)
	if err != nil {
		return nil, err
	}
	res := &PackageInfo{Header: r.Header()}
	for {
		ch, err := r.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res.Chunks = append(res.Chunks, *ch)
	}
}

// Encode returns the file encoding of p followed by the sentinel.
func (p *PackageInfo) Encode() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	putHeader(buf, p.Header)
	for i := range p.Chunks {
		ch := &p.Chunks[i]
		if ch.PackageID == PackageSentinel {
			return nil, fmt.Errorf("chunk %d: package id %#x is reserved", i, PackageSentinel)
		}
		putU32(buf, ch.PackageID)
		buf.Write(ch.Checksum[:])
		putU32(buf, ch.LastChangeNumber)
		if err := putTree(buf, ch.Data); err != nil {
			return nil, fmt.Errorf("package %d: %w", ch.PackageID, err)
		}
	}
	putU32(buf, PackageSentinel)
	return buf.Bytes(), nil
}

func (p *PackageInfo) Save(path string) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

func (p *PackageInfo) Find(packageID uint32) *PackageInfoChunk {
	for i := range p.Chunks {
		if p.Chunks[i].PackageID == packageID {
			return &p.Chunks[i]
		}
	}
	return nil
}

// Collection presents p as a single tree keyed by package id.
func (p *PackageInfo) Collection() *ir.Collection {
	res := ir.NewCollection()
	for i := range p.Chunks {
		ch := &p.Chunks[i]
		c := ir.NewCollection()
		c.Set("packageid", ir.FromUint64(uint64(ch.PackageID)))
		c.Set("checksum", ir.FromString(hex.EncodeToString(ch.Checksum[:])))
		c.Set("changenumber", ir.FromUint64(uint64(ch.LastChangeNumber)))
		c.Set("data", ir.FromCollection(ch.Data))
		res.Add(strconv.FormatUint(uint64(ch.PackageID), 10), ir.FromCollection(c))
	}
	return res
}

func DefaultPackageInfoHeader() Header {
	return Header{Version1: 0x28, Type: PackageInfoType, Version2: 0x06, Version3: 1}
}
