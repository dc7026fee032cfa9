package ir

import "fmt"

// Type identifies the variant held by a Token.
type Type int

const (
	Int32Type Type = iota
	Float32Type
	Uint64Type
	StringType
	CollectionType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		Int32Type:      "Int32",
		Float32Type:    "Float32",
		Uint64Type:     "UInt64",
		StringType:     "String",
		CollectionType: "Collection",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Int32":      Int32Type,
		"Float32":    Float32Type,
		"UInt64":     Uint64Type,
		"String":     StringType,
		"Collection": CollectionType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		Int32Type,
		Float32Type,
		Uint64Type,
		StringType,
		CollectionType,
	}
}

func (t Type) IsLeaf() bool {
	return t != CollectionType
}

func (t Type) IsNumber() bool {
	switch t {
	case Int32Type, Float32Type, Uint64Type:
		return true
	default:
		return false
	}
}
