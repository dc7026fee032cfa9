package datafile

import (
	"fmt"
	"os"

	"github.com/carbyne/bvdf/ir"
)

// File is a decoded data file of any kind. Exactly one of Shortcuts,
// AppInfo and PackageInfo is set, according to Kind.
type File struct {
	Kind        Kind
	Shortcuts   *ir.Collection
	AppInfo     *AppInfo
	PackageInfo *PackageInfo
}

// Decode decodes data as a file of the given kind.
func Decode(data []byte, kind Kind, opts ...Option) (*File, error) {
	res := &File{Kind: kind}
	var err error
	switch kind {
	case ShortcutKind:
		res.Shortcuts, err = DecodeShortcuts(data, opts...)
	case AppInfoKind:
		res.AppInfo, err = DecodeAppInfo(data, opts...)
	case PackageInfoKind:
		res.PackageInfo, err = DecodePackageInfo(data, opts...)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Load reads the file at path, detecting its kind from its contents.
func Load(path string, opts ...Option) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := Decode(data, Detect(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// LoadKind reads the file at path as a file of the given kind.
func LoadKind(path string, kind Kind, opts ...Option) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := Decode(data, kind, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Collection returns the file's contents as one tree.
func (f *File) Collection() *ir.Collection {
	switch f.Kind {
	case AppInfoKind:
		return f.AppInfo.Collection()
	case PackageInfoKind:
		return f.PackageInfo.Collection()
	default:
		return f.Shortcuts
	}
}

// Save atomically writes f to path in its own format.
func (f *File) Save(path string) error {
	switch f.Kind {
	case AppInfoKind:
		return f.AppInfo.Save(path)
	case PackageInfoKind:
		return f.PackageInfo.Save(path)
	default:
		return SaveShortcuts(path, f.Shortcuts)
	}
}
