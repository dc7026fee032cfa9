package codec

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedToken  = errors.New("malformed token")
	ErrTruncatedStream = errors.New("truncated stream")
	ErrInvalidString   = errors.New("string contains NUL byte")
	ErrTooDeep         = errors.New("collection nesting too deep")
)

// NoTag marks an Error raised outside of any property.
const NoTag = -1

// Error is a decode failure at a byte offset of the input. Tag is the tag
// byte of the property being read, or NoTag.
type Error struct {
	Offset int64
	Tag    int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	res := fmt.Sprintf("bvdf: offset %d: ", e.Offset)
	if e.Tag != NoTag {
		res += tagName(byte(e.Tag)) + ": "
	}
	res += e.Err.Error()
	if e.Msg != "" {
		res += ": " + e.Msg
	}
	return res
}

func (e *Error) Unwrap() error {
	return e.Err
}
