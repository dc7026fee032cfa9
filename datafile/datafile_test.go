package datafile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbyne/bvdf/codec"
	"github.com/carbyne/bvdf/ir"

	"github.com/google/go-cmp/cmp"
)

var collCmp = cmp.Comparer(func(a, b *ir.Collection) bool { return a.Equal(b) })

func u32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func treeBytes(t *testing.T, c *ir.Collection) []byte {
	t.Helper()
	d, err := codec.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	return append(d, codec.TagEnd)
}

func named(name string) *ir.Collection {
	c := ir.NewCollection()
	c.Set("name", ir.FromString(name))
	return c
}

func appHeader() []byte {
	buf := bytes.NewBuffer(nil)
	putHeader(buf, DefaultAppInfoHeader())
	return buf.Bytes()
}

// rawAppChunk builds an app-info chunk with zeroed fixed fields and the
// given recorded size.
func rawAppChunk(appID, dataSize uint32, tree []byte) []byte {
	var res []byte
	res = append(res, u32(appID)...)
	res = append(res, u32(dataSize)...)
	res = append(res, make([]byte, appInfoFixedSize)...)
	return append(res, tree...)
}

func warnLogger() (*slog.Logger, *bytes.Buffer) {
	buf := bytes.NewBuffer(nil)
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestPackageInfoSingleChunk(t *testing.T) {
	var data []byte
	buf := bytes.NewBuffer(nil)
	putHeader(buf, DefaultPackageInfoHeader())
	data = append(data, buf.Bytes()...)
	data = append(data, u32(5)...)
	data = append(data, make([]byte, 20)...)
	data = append(data, u32(1)...)
	data = append(data, codec.TagEnd)
	data = append(data, u32(0xFFFFFFFF)...)

	p, err := DecodePackageInfo(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(p.Chunks))
	}
	ch := p.Chunks[0]
	if ch.PackageID != 5 || ch.LastChangeNumber != 1 {
		t.Errorf("unexpected chunk %+v", ch)
	}
	if ch.Data.Len() != 0 {
		t.Errorf("expected empty tree, got %v", ch.Data.Keys())
	}
	if p.Header.Type != PackageInfoType {
		t.Errorf("header type %#x", p.Header.Type)
	}
}

func TestAppInfoRoundTrip(t *testing.T) {
	in := &AppInfo{
		Header: DefaultAppInfoHeader(),
		Chunks: []AppInfoChunk{
			{AppID: 10, State: 2, LastUpdate: 1700000000, AccessToken: 1 << 40, LastChangeNumber: 7, Data: named("one")},
			{AppID: 20, Checksum: [20]byte{1, 2, 3}, Data: ir.NewCollection()},
		},
	}
	data, err := in.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if Detect(data) != AppInfoKind {
		t.Errorf("detected %s", Detect(data))
	}
	logger, logs := warnLogger()
	out, err := DecodeAppInfo(data, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected log output: %s", logs)
	}
	// DataSize is filled in by the writer
	for i := range in.Chunks {
		in.Chunks[i].DataSize = out.Chunks[i].DataSize
	}
	if diff := cmp.Diff(in, out, collCmp); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	wantSize := uint32(appInfoFixedSize + len(treeBytes(t, named("one"))))
	if out.Chunks[0].DataSize != wantSize {
		t.Errorf("data size %d, want %d", out.Chunks[0].DataSize, wantSize)
	}
	if out.Find(20) == nil || out.Find(30) != nil {
		t.Errorf("Find")
	}
}

func TestAppInfoResyncForward(t *testing.T) {
	tree1 := treeBytes(t, named("one"))
	data := appHeader()
	// a recorded size larger than the tree leaves padding to skip
	data = append(data, rawAppChunk(1, uint32(appInfoFixedSize+len(tree1)+3), tree1)...)
	data = append(data, 0xAA, 0xBB, 0xCC)
	tree2 := treeBytes(t, named("two"))
	data = append(data, rawAppChunk(2, uint32(appInfoFixedSize+len(tree2)), tree2)...)
	data = append(data, u32(0)...)

	logger, logs := warnLogger()
	a, err := DecodeAppInfo(data, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Chunks) != 2 || a.Chunks[1].AppID != 2 {
		t.Fatalf("unexpected chunks %+v", a.Chunks)
	}
	if !a.Chunks[1].Data.Equal(named("two")) {
		t.Errorf("second chunk data mismatch")
	}
	if !strings.Contains(logs.String(), "resynchronizing") || !strings.Contains(logs.String(), "appid=1") {
		t.Errorf("expected resync warning, got %q", logs)
	}
}

func TestAppInfoResyncBackward(t *testing.T) {
	// The first chunk records a size 9 bytes short of its tree, so the
	// reader rewinds into the tree: the uint64 payload there is read as
	// the next chunk's AppID and DataSize, and the tree's terminator
	// becomes the first byte of that chunk's State.
	tree2 := treeBytes(t, named("two"))
	size2 := uint32(appInfoFixedSize + len(tree2))
	pad := ir.NewCollection()
	pad.Set("pad", ir.FromUint64(uint64(size2)<<32|77))
	tree1 := treeBytes(t, pad)

	data := appHeader()
	data = append(data, rawAppChunk(1, uint32(appInfoFixedSize+len(tree1)-9), tree1)...)
	data = append(data, make([]byte, appInfoFixedSize-1)...)
	data = append(data, tree2...)
	data = append(data, u32(0)...)

	logger, logs := warnLogger()
	a, err := DecodeAppInfo(data, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(a.Chunks))
	}
	ch := a.Chunks[1]
	if ch.AppID != 77 || ch.DataSize != size2 || ch.State != uint32(codec.TagEnd) {
		t.Errorf("unexpected second chunk %+v", ch)
	}
	if !ch.Data.Equal(named("two")) {
		t.Errorf("second chunk data mismatch")
	}
	if strings.Count(logs.String(), "resynchronizing") != 1 {
		t.Errorf("expected one resync warning, got %q", logs)
	}
}

func TestAppInfoErrors(t *testing.T) {
	tree := treeBytes(t, named("one"))
	good := append(appHeader(), rawAppChunk(1, uint32(appInfoFixedSize+len(tree)), tree)...)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{0x27, 'D'}, codec.ErrTruncatedStream},
		{"no sentinel", good, codec.ErrTruncatedStream},
		{"cut tree", good[:len(good)-2], codec.ErrTruncatedStream},
		{"bad tag", append(appHeader(), rawAppChunk(1, 41, []byte{codec.TagWideString, 'k', 0, codec.TagEnd})...), codec.ErrMalformedToken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := DecodeAppInfo(tc.data)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if a != nil {
				t.Errorf("expected no result on error")
			}
		})
	}
}

func TestAppInfoReader(t *testing.T) {
	in := &AppInfo{Header: DefaultAppInfoHeader(), Chunks: []AppInfoChunk{{AppID: 3, Data: named("x")}}}
	data, err := in.Encode()
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewAppInfoReader(data)
	if err != nil {
		t.Fatal(err)
	}
	ch, err := r.Next()
	if err != nil || ch.AppID != 3 {
		t.Fatalf("first: %v %v", ch, err)
	}
	for i := 0; i < 2; i++ {
		if _, err := r.Next(); err != io.EOF {
			t.Fatalf("expected io.EOF, got %v", err)
		}
	}
	bad := &AppInfo{Chunks: []AppInfoChunk{{AppID: 0}}}
	if _, err := bad.Encode(); err == nil {
		t.Errorf("expected error encoding reserved app id")
	}
}

func TestPackageInfoRoundTrip(t *testing.T) {
	apps := ir.FromSlice(ir.FromInt32(10), ir.FromInt32(20))
	data := ir.NewCollection()
	data.Set("packageid", ir.FromInt32(5))
	data.Set("appids", ir.FromCollection(apps))
	in := &PackageInfo{
		Header: DefaultPackageInfoHeader(),
		Chunks: []PackageInfoChunk{
			{PackageID: 5, LastChangeNumber: 1, Data: data},
			{PackageID: 0, Data: ir.NewCollection()},
		},
	}
	enc, err := in.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if Detect(enc) != PackageInfoKind {
		t.Errorf("detected %s", Detect(enc))
	}
	out, err := DecodePackageInfo(enc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out, collCmp); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	bad := &PackageInfo{Chunks: []PackageInfoChunk{{PackageID: PackageSentinel}}}
	if _, err := bad.Encode(); err == nil {
		t.Errorf("expected error encoding reserved package id")
	}
}

func TestShortcutsTerminator(t *testing.T) {
	root := ir.NewCollection()
	root.Set("shortcuts", ir.FromCollection(ir.FromSlice(ir.FromCollection(named("game")))))
	buf := bytes.NewBuffer(nil)
	if err := EncodeShortcuts(buf, root); err != nil {
		t.Fatal(err)
	}
	body, err := codec.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	want := append(body, codec.TagEnd)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("expected codec output plus one terminator\n got %x\nwant %x", buf.Bytes(), want)
	}
	back, err := DecodeShortcuts(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(root) {
		t.Errorf("round trip mismatch")
	}
	// without the terminator the root still ends cleanly
	back, err = DecodeShortcuts(body)
	if err != nil || !back.Equal(root) {
		t.Errorf("unterminated root: %v", err)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		data []byte
		want Kind
	}{
		{nil, ShortcutKind},
		{[]byte{0x00, 's', 'h', 0}, ShortcutKind},
		{[]byte{0x29, 'D', 'V', 0x07, 1, 0, 0, 0}, AppInfoKind},
		{[]byte{0x28, 'U', 'V', 0x06, 1, 0, 0, 0}, PackageInfoKind},
		{[]byte{codec.TagCollection, 'D', 'V', 'D', 's', 0, codec.TagEnd, codec.TagEnd}, ShortcutKind},
		{[]byte{codec.TagString, 'U', 'V', 0, 'x', 0, codec.TagEnd, 0}, ShortcutKind},
	}
	for _, tc := range tests {
		if got := Detect(tc.data); got != tc.want {
			t.Errorf("Detect(%x) = %s, want %s", tc.data, got, tc.want)
		}
	}
	if _, err := ParseKind("zip"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	var k Kind
	if err := k.UnmarshalText([]byte("appinfo")); err != nil || k != AppInfoKind {
		t.Errorf("UnmarshalText: %s %v", k, err)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "appinfo.vdf")
	in := &AppInfo{Header: DefaultAppInfoHeader(), Chunks: []AppInfoChunk{{AppID: 440, Data: named("tf")}}}
	if err := in.Save(path); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Kind != AppInfoKind || f.AppInfo.Find(440) == nil {
		t.Fatalf("unexpected file %+v", f)
	}
	got, err := f.Collection().GetPath("440/data/name")
	if err != nil || got == nil {
		t.Fatalf("lookup: %v %v", got, err)
	}
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0600 {
		t.Errorf("mode not kept: %v", fi.Mode())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
	if _, err := LoadKind(path, ShortcutKind); err == nil {
		t.Errorf("expected error loading app-info as a shortcut file")
	}
}

func TestLoadShortcutLookalike(t *testing.T) {
	root := ir.NewCollection()
	root.Set("DVDs", ir.FromCollection(nil))
	root.Set("shortcuts", ir.FromCollection(nil))
	path := filepath.Join(t.TempDir(), "shortcuts.vdf")
	if err := SaveShortcuts(path, root); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Kind != ShortcutKind || !f.Shortcuts.Equal(root) {
		t.Errorf("got kind %s keys %v", f.Kind, f.Collection().Keys())
	}
}
