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

// appInfoFixedSize is the size of the chunk fields between DataSize and
// the embedded tree.
const appInfoFixedSize = 4 + 4 + 8 + checksumSize + 4

// AppInfoChunk is one record of an app-info cache.
type AppInfoChunk struct {
	AppID uint32
	// DataSize is the size recorded in the file. It is recomputed when
	// writing.
	DataSize         uint32
	State            uint32
	LastUpdate       uint32
	AccessToken      uint64
	Checksum         [checksumSize]byte
	LastChangeNumber uint32
	Data             *ir.Collection
}

type AppInfo struct {
	Header Header
	Chunks []AppInfoChunk
}

// AppInfoReader reads app-info chunks one at a time.
type AppInfoReader struct {
	br     *binReader
	header Header
	done   bool
	n      int
}

// NewAppInfoReader reads the header of an app-info file held in data.
func NewAppInfoReader(data []byte, opts ...Option) (*AppInfoReader, error) {
	br := newBinReader(data, makeOptions(opts))
	h, err := br.header()
	if err != nil {
		return nil, err
	}
	return &AppInfoReader{br: br, header: h}, nil
}

func (r *AppInfoReader) Header() Header {
	return r.header
}

// Next returns the next chunk, or io.EOF once the sentinel (AppID 0) has
// been read.
//
// A chunk whose embedded tree does not end exactly DataSize bytes after
// the fixed fields began is not an error: the reader logs a warning and
// continues from the position DataSize designates.
func (r *AppInfoReader) Next() (*AppInfoChunk, error) {
	if r.done {
		return nil, io.EOF
	}
	br := r.br
	var (
		ch  AppInfoChunk
		err error
	)
	at := br.offset()
	if ch.AppID, err = br.u32("app id"); err != nil {
		return nil, err
	}
	if ch.AppID == 0 {
		r.done = true
		return nil, io.EOF
	}
	if ch.DataSize, err = br.u32("data size"); err != nil {
		return nil, err
	}
	chunkStart := br.offset()
	if ch.State, err = br.u32("state"); err != nil {
		return nil, err
	}
	if ch.LastUpdate, err = br.u32("last update"); err != nil {
		return nil, err
	}
	if ch.AccessToken, err = br.u64("access token"); err != nil {
		return nil, err
	}
	if ch.Checksum, err = br.checksum(); err != nil {
		return nil, err
	}
	if ch.LastChangeNumber, err = br.u32("change number"); err != nil {
		return nil, err
	}
	if ch.Data, err = br.tree(); err != nil {
		return nil, fmt.Errorf("app %d: %w", ch.AppID, err)
	}
	if debug.Chunks() {
		debug.Logf("appinfo: chunk %d app %d at %#x size %d\n", r.n, ch.AppID, at, ch.DataSize)
	}
	end := chunkStart + int64(ch.DataSize)
	if got := br.offset(); got != end {
		br.opt.logger.Warn("app-info chunk size mismatch, resynchronizing",
			"appid", ch.AppID,
			"expected", end,
			"actual", got)
		if err := br.seek(end); err != nil {
			return nil, err
		}
	}
	r.n++
	return &ch, nil
}

// ReadAppInfo reads a whole app-info file from r.
func ReadAppInfo(r io.Reader, opts ...Option) (*AppInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeAppInfo(data, opts...)
}

func LoadAppInfo(path string, opts ...Option) (*AppInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := DecodeAppInfo(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// DecodeAppInfo decodes an app-info file held in data. Nothing is returned
// if any chunk fails to decode.
func DecodeAppInfo(data []byte, opts ...Option) (*AppInfo, error) {
	r, err := NewAppInfoReader(data, opts...)
	if err != nil {
		return nil, err
	}
	res := &AppInfo{Header: r.Header()}
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

// Encode returns the file encoding of a, with DataSize computed for every
// chunk and the AppID 0 sentinel appended.
func (a *AppInfo) Encode() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	putHeader(buf, a.Header)
	body := bytes.NewBuffer(nil)
	for i := range a.Chunks {
		ch := &a.Chunks[i]
		if ch.AppID == 0 {
			return nil, fmt.Errorf("chunk %d: app id 0 is reserved", i)
		}
		body.Reset()
		putU32(body, ch.State)
		putU32(body, ch.LastUpdate)
		putU64(body, ch.AccessToken)
		body.Write(ch.Checksum[:])
		putU32(body, ch.LastChangeNumber)
		if err := putTree(body, ch.Data); err != nil {
			return nil, fmt.Errorf("app %d: %w", ch.AppID, err)
		}
		putU32(buf, ch.AppID)
		putU32(buf, uint32(body.Len()))
		buf.Write(body.Bytes())
	}
	putU32(buf, 0)
	return buf.Bytes(), nil
}

// Save atomically replaces the file at path with the encoding of a.
func (a *AppInfo) Save(path string) error {
	data, err := a.Encode()
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// Find returns the chunk for appID, or nil.
func (a *AppInfo) Find(appID uint32) *AppInfoChunk {
	for i := range a.Chunks {
		if a.Chunks[i].AppID == appID {
			return &a.Chunks[i]
		}
	}
	return nil
}

// Collection presents a as a single tree keyed by app id, for display and
// comparison.
func (a *AppInfo) Collection() *ir.Collection {
	res := ir.NewCollection()
	for i := range a.Chunks {
		ch := &a.Chunks[i]
		c := ir.NewCollection()
		c.Set("appid", ir.FromUint64(uint64(ch.AppID)))
		c.Set("state", ir.FromUint64(uint64(ch.State)))
		c.Set("lastupdate", ir.FromUint64(uint64(ch.LastUpdate)))
		c.Set("accesstoken", ir.FromUint64(ch.AccessToken))
		c.Set("checksum", ir.FromString(hex.EncodeToString(ch.Checksum[:])))
		c.Set("changenumber", ir.FromUint64(uint64(ch.LastChangeNumber)))
		c.Set("data", ir.FromCollection(ch.Data))
		res.Add(strconv.FormatUint(uint64(ch.AppID), 10), ir.FromCollection(c))
	}
	return res
}

// DefaultAppInfoHeader is the header written by current clients.
func DefaultAppInfoHeader() Header {
	return Header{Version1: 0x27, Type: AppInfoType, Version2: 0x07, Version3: 1}
}
