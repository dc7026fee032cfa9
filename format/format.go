package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	TextFormat Format = iota
	YAMLFormat
	JSONFormat
	CBORFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"t":    TextFormat,
		"text": TextFormat,
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
		"j":    JSONFormat,
		"json": JSONFormat,
		"c":    CBORFormat,
		"cbor": CBORFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case TextFormat:
		return []byte("text"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case JSONFormat:
		return []byte("json"), nil
	case CBORFormat:
		return []byte("cbor"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsText() bool { return f == TextFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }
func (f Format) IsCBOR() bool { return f == CBORFormat }

// IsBinary reports whether output in this format should not be written to
// a terminal.
func (f Format) IsBinary() bool { return f == CBORFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case TextFormat:
		return ".txt"
	case YAMLFormat:
		return ".yaml"
	case JSONFormat:
		return ".json"
	case CBORFormat:
		return ".cbor"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{TextFormat, YAMLFormat, JSONFormat, CBORFormat}
}
