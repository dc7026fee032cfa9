package codec

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/carbyne/bvdf/ir"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() *ir.Collection {
	tags := ir.FromSlice(ir.FromString("favorite"), ir.FromString("rpg"))
	sc := ir.FromProperties(
		ir.Property{Key: "appid", Value: ir.FromInt32(-1234)},
		ir.Property{Key: "appname", Value: ir.FromString("Some Game")},
		ir.Property{Key: "LastPlayTime", Value: ir.FromInt32(0)},
		ir.Property{Key: "tags", Value: ir.FromCollection(tags)},
	)
	root := ir.NewCollection()
	root.Set("shortcuts", ir.FromCollection(ir.FromSlice(ir.FromCollection(sc))))
	root.Set("ratio", ir.FromFloat32(1.5))
	root.Set("id", ir.FromUint64(math.MaxUint64))
	root.Add("id", ir.FromUint64(7))
	root.Set("empty", ir.FromCollection(nil))
	root.Set("", ir.FromString(""))
	return root
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tree *ir.Collection
	}{
		{"empty", ir.NewCollection()},
		{"sample", sampleTree()},
		{"nan", ir.FromProperties(ir.Property{Key: "x", Value: ir.FromFloat32(float32(math.NaN()))})},
		{"raw bytes", ir.FromProperties(ir.Property{Key: "k\xff", Value: ir.FromString("\xfe\x01")})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := Marshal(tc.tree)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Unmarshal(data)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tc.tree) {
				t.Errorf("round trip mismatch: got %v want %v", got.Keys(), tc.tree.Keys())
			}
		})
	}
}

func TestEncodeBytes(t *testing.T) {
	inner := ir.NewCollection()
	inner.Set("n", ir.FromInt32(1))
	root := ir.NewCollection()
	root.Set("s", ir.FromString("ab"))
	root.Set("c", ir.FromCollection(inner))
	root.Set("f", ir.FromFloat32(1))
	root.Set("u", ir.FromUint64(2))

	got, err := Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		TagString, 's', 0, 'a', 'b', 0,
		TagCollection, 'c', 0,
		TagInt32, 'n', 0, 1, 0, 0, 0,
		TagEnd,
		TagFloat32, 'f', 0, 0, 0, 0x80, 0x3f,
		TagUint64, 'u', 0, 2, 0, 0, 0, 0, 0, 0, 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTerminated(t *testing.T) {
	data := []byte{TagInt32, 'a', 0, 5, 0, 0, 0, TagEnd, 0xff, 0xff}
	dec := NewDecoder(bytes.NewReader(data))
	got, err := dec.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 {
		t.Fatalf("expected 1 property, got %d", got.Len())
	}
	if dec.Offset() != 8 {
		t.Errorf("offset %d, want 8", dec.Offset())
	}
	v, err := got.Get("a").Int32()
	if err != nil || v != 5 {
		t.Errorf("got %d %v", v, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		want   error
		offset int64
	}{
		{"wide string", []byte{TagWideString, 'k', 0}, ErrMalformedToken, 0},
		{"pointer", []byte{TagPointer, 'k', 0, 0, 0, 0, 0}, ErrMalformedToken, 0},
		{"color", []byte{TagColor, 'k', 0, 0, 0, 0, 0}, ErrMalformedToken, 0},
		{"unknown nested", []byte{TagCollection, 'c', 0, TagInt32, 'a', 0, 1, 0, 0, 0, 0x42}, ErrMalformedToken, 10},
		{"key", []byte{TagInt32, 'a'}, ErrTruncatedStream, 2},
		{"int32", []byte{TagInt32, 'a', 0, 1, 0}, ErrTruncatedStream, 5},
		{"uint64", []byte{TagUint64, 'a', 0, 1, 2, 3, 4}, ErrTruncatedStream, 7},
		{"string", []byte{TagString, 'a', 0, 'x'}, ErrTruncatedStream, 4},
		{"nested end", []byte{TagCollection, 'c', 0}, ErrTruncatedStream, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Unmarshal(tc.data)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if got != nil {
				t.Errorf("expected no partial tree")
			}
			if !IsDecodeError(err) {
				t.Errorf("IsDecodeError(%v) = false", err)
			}
			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if cerr.Offset != tc.offset {
				t.Errorf("offset %d, want %d", cerr.Offset, tc.offset)
			}
		})
	}
}

func TestDecodeEmbeddedRequiresEnd(t *testing.T) {
	data := []byte{TagString, 'a', 0, 'b', 0}
	if _, err := NewDecoder(bytes.NewReader(data)).DecodeEmbedded(); !errors.Is(err, ErrTruncatedStream) {
		t.Errorf("expected ErrTruncatedStream, got %v", err)
	}
	got, err := NewDecoder(bytes.NewReader(append(data, TagEnd))).DecodeEmbedded()
	if err != nil || got.Len() != 1 {
		t.Errorf("got %v %v", got, err)
	}
}

func TestMaxDepth(t *testing.T) {
	var data []byte
	for i := 0; i < 5; i++ {
		data = append(data, TagCollection, 'c', 0)
	}
	for i := 0; i < 5; i++ {
		data = append(data, TagEnd)
	}
	if _, err := NewDecoder(bytes.NewReader(data), WithMaxDepth(3)).Decode(); !errors.Is(err, ErrTooDeep) {
		t.Errorf("expected ErrTooDeep, got %v", err)
	}
	if _, err := NewDecoder(bytes.NewReader(data), WithMaxDepth(5)).Decode(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestWithOffset(t *testing.T) {
	_, err := NewDecoder(bytes.NewReader([]byte{0x42}), WithOffset(100)).Decode()
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Offset != 100 {
		t.Errorf("expected error at offset 100, got %v", err)
	}
	if !strings.Contains(err.Error(), "offset 100") {
		t.Errorf("error text %q", err)
	}
}

func TestEncodeRejects(t *testing.T) {
	nul := ir.NewCollection()
	nul.Set("a", ir.FromString("x\x00y"))
	if _, err := Marshal(nul); !errors.Is(err, ErrInvalidString) {
		t.Errorf("expected ErrInvalidString for value, got %v", err)
	}
	key := ir.NewCollection()
	key.Set("a\x00", ir.FromInt32(1))
	if _, err := Marshal(key); !errors.Is(err, ErrInvalidString) {
		t.Errorf("expected ErrInvalidString for key, got %v", err)
	}
	nested := ir.NewCollection()
	nested.Set("c", ir.FromCollection(nul))
	if _, err := Marshal(nested); !errors.Is(err, ErrInvalidString) {
		t.Errorf("expected ErrInvalidString for nested value, got %v", err)
	}
	missing := ir.NewCollection()
	missing.Add("a", nil)
	if _, err := Marshal(missing); !errors.Is(err, ir.ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestDecodeErrorTag(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		tag  int
		text string
	}{
		{"int32 value", []byte{TagInt32, 'a', 0, 1, 0}, int(TagInt32), "offset 5: int32: truncated stream"},
		{"string key", []byte{TagString, 'a'}, int(TagString), "string: truncated stream"},
		{"unknown nested", []byte{TagCollection, 'c', 0, 0x42}, 0x42, "unknown 0x42: malformed token"},
		{"nested end", []byte{TagCollection, 'c', 0}, NoTag, "offset 3: truncated stream"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal(tc.data)
			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if cerr.Tag != tc.tag {
				t.Errorf("tag %d, want %d", cerr.Tag, tc.tag)
			}
			if !strings.Contains(err.Error(), tc.text) {
				t.Errorf("error text %q does not contain %q", err, tc.text)
			}
		})
	}
}
