package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(f.String())
		if err != nil {
			t.Fatalf("parse %s: %v", f, err)
		}
		if got != f {
			t.Errorf("parse %s: got %s", f, got)
		}
	}
	for in, want := range map[string]Format{"t": TextFormat, "y": YAMLFormat, "j": JSONFormat, "c": CBORFormat} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestUnmarshalText(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("cbor")); err != nil {
		t.Fatal(err)
	}
	if !f.IsCBOR() || !f.IsBinary() {
		t.Errorf("expected binary cbor, got %s", f)
	}
	if f.Suffix() != ".cbor" {
		t.Errorf("suffix %q", f.Suffix())
	}
	if Format(42).String() == "" {
		t.Errorf("expected error text for unknown format")
	}
}
