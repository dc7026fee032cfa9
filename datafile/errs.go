package datafile

import "errors"

var (
	ErrUnknownKind = errors.New("unknown data file kind")
	ErrBadHeader   = errors.New("bad data file header")
)
