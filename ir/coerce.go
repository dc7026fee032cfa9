package ir

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scalar lists the Go types a token can be read as with As.
type Scalar interface {
	bool | int | int32 | int64 | uint32 | uint64 | float32 | float64 | string
}

// As reads t as T.
//
// An exact variant match is returned directly. Booleans are strict: a
// String, Int32 or UInt64 token must hold exactly 0 or 1, otherwise
// ErrInvalidBooleanCoercion is returned. Every other conversion is a
// best-effort numeric or string conversion which yields the zero value of
// T, with a nil error, when it cannot be performed. Use the typed
// accessors (Int32, Text, ...) for strict reads.
func As[T Scalar](t *Token) (T, error) {
	var res T
	if t == nil {
		return res, fmt.Errorf("%w: absent token", ErrTypeMismatch)
	}
	switch p := any(&res).(type) {
	case *bool:
		b, err := t.asBool()
		if err != nil {
			return res, err
		}
		*p = b
	case *string:
		*p = t.asString()
	case *int:
		if v, ok := t.asInt(math.MinInt, math.MaxInt); ok {
			*p = int(v)
		}
	case *int32:
		if v, ok := t.asInt(math.MinInt32, math.MaxInt32); ok {
			*p = int32(v)
		}
	case *int64:
		if v, ok := t.asInt(math.MinInt64, math.MaxInt64); ok {
			*p = v
		}
	case *uint32:
		if v, ok := t.asUint(math.MaxUint32); ok {
			*p = uint32(v)
		}
	case *uint64:
		if v, ok := t.asUint(math.MaxUint64); ok {
			*p = v
		}
	case *float32:
		if v, ok := t.asFloat(); ok {
			*p = float32(v)
		}
	case *float64:
		if v, ok := t.asFloat(); ok {
			*p = v
		}
	}
	return res, nil
}

func (t *Token) asBool() (bool, error) {
	var v int64
	switch t.typ {
	case StringType:
		i, err := strconv.ParseInt(strings.TrimSpace(t.str), 10, 64)
		if err != nil {
			return false, fmt.Errorf("%w: %q", ErrInvalidBooleanCoercion, t.str)
		}
		v = i
	case Int32Type:
		v = int64(t.i32)
	case Uint64Type:
		if t.u64 > 1 {
			return false, fmt.Errorf("%w: %d", ErrInvalidBooleanCoercion, t.u64)
		}
		v = int64(t.u64)
	case Float32Type:
		return t.f32 != 0, nil
	default:
		return false, nil
	}
	if v != 0 && v != 1 {
		return false, fmt.Errorf("%w: %d", ErrInvalidBooleanCoercion, v)
	}
	return v == 1, nil
}

func (t *Token) asString() string {
	switch t.typ {
	case StringType:
		return t.str
	case CollectionType:
		return ""
	}
	return t.String()
}

func (t *Token) asInt(lo, hi int64) (int64, bool) {
	var v int64
	switch t.typ {
	case Int32Type:
		v = int64(t.i32)
	case Uint64Type:
		if t.u64 > math.MaxInt64 {
			return 0, false
		}
		v = int64(t.u64)
	case Float32Type:
		f := math.RoundToEven(float64(t.f32))
		if math.IsNaN(f) || f < float64(lo) || f >= float64(hi)+1 {
			return 0, false
		}
		return int64(f), true
	case StringType:
		i, err := strconv.ParseInt(strings.TrimSpace(t.str), 10, 64)
		if err != nil {
			return 0, false
		}
		v = i
	default:
		return 0, false
	}
	if v < lo || v > hi {
		return 0, false
	}
	return v, true
}

func (t *Token) asUint(hi uint64) (uint64, bool) {
	var v uint64
	switch t.typ {
	case Int32Type:
		if t.i32 < 0 {
			return 0, false
		}
		v = uint64(t.i32)
	case Uint64Type:
		v = t.u64
	case Float32Type:
		f := math.RoundToEven(float64(t.f32))
		if math.IsNaN(f) || f < 0 || f >= float64(hi)+1 {
			return 0, false
		}
		return uint64(f), true
	case StringType:
		u, err := strconv.ParseUint(strings.TrimSpace(t.str), 10, 64)
		if err != nil {
			return 0, false
		}
		v = u
	default:
		return 0, false
	}
	if v > hi {
		return 0, false
	}
	return v, true
}

func (t *Token) asFloat() (float64, bool) {
	switch t.typ {
	case Int32Type:
		return float64(t.i32), true
	case Uint64Type:
		return float64(t.u64), true
	case Float32Type:
		return float64(t.f32), true
	case StringType:
		f, err := strconv.ParseFloat(strings.TrimSpace(t.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
