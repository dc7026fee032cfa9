package ir

import (
	"strconv"
	"strings"
)

// Truth reports whether t holds a true-ish value: a non-empty collection,
// a non-zero number, or a string holding a non-zero integer. An absent
// token is false.
func Truth(t *Token) bool {
	if t == nil {
		return false
	}
	switch t.typ {
	case CollectionType:
		return t.coll.Len() != 0
	case StringType:
		n, err := strconv.ParseInt(strings.TrimSpace(t.str), 10, 64)
		return err == nil && n != 0
	case Int32Type:
		return t.i32 != 0
	case Uint64Type:
		return t.u64 != 0
	case Float32Type:
		return t.f32 != 0
	default:
		panic("type")
	}
}
