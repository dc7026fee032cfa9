package ir

import (
	"fmt"
	"math"
	"strconv"
)

// Token is a single typed value in a tree. Tokens are immutable once
// constructed; a Collection token refers to a Collection which is mutated
// only through its own methods.
type Token struct {
	typ  Type
	i32  int32
	f32  float32
	u64  uint64
	str  string
	coll *Collection
}

func FromInt32(v int32) *Token {
	return &Token{typ: Int32Type, i32: v}
}

func FromFloat32(v float32) *Token {
	return &Token{typ: Float32Type, f32: v}
}

func FromUint64(v uint64) *Token {
	return &Token{typ: Uint64Type, u64: v}
}

func FromString(v string) *Token {
	return &Token{typ: StringType, str: v}
}

// FromCollection wraps c as a token. A nil c is replaced by an empty
// collection.
func FromCollection(c *Collection) *Token {
	if c == nil {
		c = NewCollection()
	}
	return &Token{typ: CollectionType, coll: c}
}

func (t *Token) Type() Type {
	return t.typ
}

func (t *Token) mismatch(want Type) error {
	return fmt.Errorf("%w: %s token read as %s", ErrTypeMismatch, t.typ, want)
}

func (t *Token) Int32() (int32, error) {
	if t.typ != Int32Type {
		return 0, t.mismatch(Int32Type)
	}
	return t.i32, nil
}

func (t *Token) Float32() (float32, error) {
	if t.typ != Float32Type {
		return 0, t.mismatch(Float32Type)
	}
	return t.f32, nil
}

func (t *Token) Uint64() (uint64, error) {
	if t.typ != Uint64Type {
		return 0, t.mismatch(Uint64Type)
	}
	return t.u64, nil
}

// Text returns the payload of a String token.
func (t *Token) Text() (string, error) {
	if t.typ != StringType {
		return "", t.mismatch(StringType)
	}
	return t.str, nil
}

func (t *Token) Collection() (*Collection, error) {
	if t.typ != CollectionType {
		return nil, t.mismatch(CollectionType)
	}
	return t.coll, nil
}

// Value returns the payload as a Go value: int32, float32, uint64, string
// or *Collection.
func (t *Token) Value() any {
	switch t.typ {
	case Int32Type:
		return t.i32
	case Float32Type:
		return t.f32
	case Uint64Type:
		return t.u64
	case StringType:
		return t.str
	case CollectionType:
		return t.coll
	}
	return nil
}

// Equal reports value equality. Tokens of different types are never
// equal. Floats compare by bit pattern so that NaN payloads survive
// round trips.
func (t *Token) Equal(o *Token) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.typ != o.typ {
		return false
	}
	switch t.typ {
	case Int32Type:
		return t.i32 == o.i32
	case Float32Type:
		return math.Float32bits(t.f32) == math.Float32bits(o.f32)
	case Uint64Type:
		return t.u64 == o.u64
	case StringType:
		return t.str == o.str
	case CollectionType:
		return t.coll.Equal(o.coll)
	}
	return false
}

// Clone returns a deep copy; only collection tokens are actually copied.
func (t *Token) Clone() *Token {
	if t == nil || t.typ != CollectionType {
		return t
	}
	return FromCollection(t.coll.Clone())
}

func (t *Token) String() string {
	switch t.typ {
	case Int32Type:
		return strconv.FormatInt(int64(t.i32), 10)
	case Float32Type:
		return strconv.FormatFloat(float64(t.f32), 'g', -1, 32)
	case Uint64Type:
		return strconv.FormatUint(t.u64, 10)
	case StringType:
		return strconv.Quote(t.str)
	case CollectionType:
		return fmt.Sprintf("<collection len=%d>", t.coll.Len())
	}
	return "<invalid token>"
}
