package datafile

import (
	"fmt"
	"strings"

	"github.com/carbyne/bvdf/codec"
)

// Kind identifies one of the supported data file shapes.
type Kind int

const (
	ShortcutKind Kind = iota
	AppInfoKind
	PackageInfoKind
)

func (k Kind) String() string {
	switch k {
	case ShortcutKind:
		return "shortcuts"
	case AppInfoKind:
		return "appinfo"
	case PackageInfoKind:
		return "packageinfo"
	default:
		return fmt.Sprintf("<kind %d>", int(k))
	}
}

func ParseKind(v string) (Kind, error) {
	k, ok := map[string]Kind{
		"s":           ShortcutKind,
		"shortcut":    ShortcutKind,
		"shortcuts":   ShortcutKind,
		"a":           AppInfoKind,
		"app":         AppInfoKind,
		"appinfo":     AppInfoKind,
		"p":           PackageInfoKind,
		"package":     PackageInfoKind,
		"packageinfo": PackageInfoKind,
	}[strings.ToLower(v)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, v)
	}
	return k, nil
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

// Detect guesses the kind of a data file from its first bytes. App-info
// and package-info caches start with a version byte above every wire tag
// followed by a type marker; anything else is taken to be a shortcut
// file, whose first byte is a tag.
func Detect(data []byte) Kind {
	if len(data) < headerSize || data[0] <= codec.TagEnd {
		return ShortcutKind
	}
	switch string(data[1:3]) {
	case "DV":
		return AppInfoKind
	case "UV":
		return PackageInfoKind
	}
	return ShortcutKind
}
