package ir

import "errors"

var (
	ErrTypeMismatch           = errors.New("type mismatch")
	ErrNotAnArray             = errors.New("collection is not an array")
	ErrInvalidBooleanCoercion = errors.New("invalid boolean coercion")
)
