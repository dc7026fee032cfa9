package encode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/carbyne/bvdf/format"
	"github.com/carbyne/bvdf/ir"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
)

func sample() *ir.Collection {
	tags := ir.FromSlice(ir.FromString("fav"), ir.FromString("rpg"))
	sc := ir.FromProperties(
		ir.Property{Key: "appname", Value: ir.FromString("Game")},
		ir.Property{Key: "IsHidden", Value: ir.FromInt32(0)},
		ir.Property{Key: "tags", Value: ir.FromCollection(tags)},
	)
	root := ir.NewCollection()
	root.Set("shortcuts", ir.FromCollection(ir.FromSlice(ir.FromCollection(sc))))
	root.Set("size", ir.FromUint64(1<<40))
	root.Set("ratio", ir.FromFloat32(0.5))
	return root
}

func encodeString(t *testing.T, c *ir.Collection, opts ...EncodeOption) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := Encode(c, buf, opts...); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.String()
}

func TestEncodeText(t *testing.T) {
	got := encodeString(t, sample())
	want := strings.Join([]string{
		"shortcuts:",
		"  0:",
		"    appname: \"Game\"",
		"    IsHidden: 0",
		"    tags:",
		"      0: \"fav\"",
		"      1: \"rpg\"",
		"size: 1099511627776",
		"ratio: 0.5",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTextArrays(t *testing.T) {
	got := encodeString(t, sample(), EncodeArrays(true), EncodeTypes(true))
	for _, want := range []string{
		"shortcuts:\n  -\n    appname: \"Game\" !string",
		"    tags:\n      - \"fav\" !string\n      - \"rpg\" !string",
		"size: 1099511627776 !uint64",
		"ratio: 0.5 !float32",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}

func TestEncodeTextEmpty(t *testing.T) {
	if got := encodeString(t, ir.NewCollection()); got != "" {
		t.Errorf("got %q", got)
	}
	c := ir.NewCollection()
	c.Set("shortcuts", ir.FromCollection(nil))
	if got := encodeString(t, c); got != "shortcuts: {}\n" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeJSON(t *testing.T) {
	got := encodeString(t, sample(), EncodeFormat(format.JSONFormat), EncodeArrays(true), EncodeIndent(0))
	want := `{"shortcuts":[{"appname":"Game","IsHidden":0,"tags":["fav","rpg"]}],"size":1099511627776,"ratio":0.5}` + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	got = encodeString(t, ir.NewCollection(), EncodeFormat(format.JSONFormat))
	if got != "{}\n" {
		t.Errorf("empty: %q", got)
	}
}

func TestEncodeJSONIndent(t *testing.T) {
	c := ir.NewCollection()
	c.Set("a", ir.FromInt32(-1))
	got := encodeString(t, c, EncodeFormat(format.JSONFormat))
	want := "{\n  \"a\": -1\n}\n"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestEncodeJSONNaN(t *testing.T) {
	c := ir.NewCollection()
	c.Set("x", ir.FromFloat32(float32(math.NaN())))
	err := Encode(c, bytes.NewBuffer(nil), EncodeFormat(format.JSONFormat))
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}
}

func TestEncodeYAML(t *testing.T) {
	got := encodeString(t, sample(), EncodeFormat(format.YAMLFormat), EncodeArrays(true))
	// keys keep tree order rather than being sorted
	iShort := strings.Index(got, "shortcuts:")
	iSize := strings.Index(got, "size:")
	iRatio := strings.Index(got, "ratio:")
	if iShort < 0 || iSize < iShort || iRatio < iSize {
		t.Errorf("unexpected key order:\n%s", got)
	}
	if !strings.Contains(got, "appname: Game") {
		t.Errorf("missing appname in\n%s", got)
	}
}

func TestEncodeCBOR(t *testing.T) {
	data := encodeString(t, sample(), EncodeFormat(format.CBORFormat), EncodeArrays(true))
	var got map[string]any
	if err := cbor.Unmarshal([]byte(data), &got); err != nil {
		t.Fatal(err)
	}
	if got["size"] != uint64(1<<40) {
		t.Errorf("size: %#v", got["size"])
	}
	scs, ok := got["shortcuts"].([]any)
	if !ok || len(scs) != 1 {
		t.Fatalf("shortcuts: %#v", got["shortcuts"])
	}
}

func TestToAny(t *testing.T) {
	got := ToAny(sample(), true)
	want := map[string]any{
		"shortcuts": []any{map[string]any{
			"appname":  "Game",
			"IsHidden": int32(0),
			"tags":     []any{"fav", "rpg"},
		}},
		"size":  uint64(1 << 40),
		"ratio": float32(0.5),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	flat := ToAny(sample(), false).(map[string]any)
	if _, ok := flat["shortcuts"].(map[string]any)["0"]; !ok {
		t.Errorf("expected index keyed map without arrays: %#v", flat["shortcuts"])
	}
}

func TestColors(t *testing.T) {
	colors := NewColors()
	if f := colors.Get(ir.StringType, ValueColor); f == nil {
		t.Fatal("no string color")
	}
	if got := colors.Get(ir.Type(99), ValueColor)("x"); got != "x" {
		t.Errorf("default color changed text: %q", got)
	}
	// colored output still carries the values
	got := encodeString(t, sample(), EncodeColors(colors))
	if !strings.Contains(got, "Game") {
		t.Errorf("missing value in %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := ir.NewCollection()
	c.Set("k", ir.FromString("v"))
	if got := MustString(c); got != `k: "v"` {
		t.Errorf("got %q", got)
	}
}
