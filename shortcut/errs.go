package shortcut

import "errors"

var (
	ErrNoShortcuts = errors.New("no shortcuts collection")
	ErrBadShortcut = errors.New("malformed shortcut entry")
)
