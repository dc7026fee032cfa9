package datafile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/carbyne/bvdf/codec"
	"github.com/carbyne/bvdf/ir"
)

// DecodeShortcuts decodes a shortcut file: a single root tree with no
// header. The root may end either with its terminator or with the data.
func DecodeShortcuts(data []byte, opts ...Option) (*ir.Collection, error) {
	o := makeOptions(opts)
	return codec.NewDecoder(bytes.NewReader(data), codec.WithMaxDepth(o.maxDepth)).Decode()
}

func ReadShortcuts(r io.Reader, opts ...Option) (*ir.Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeShortcuts(data, opts...)
}

func LoadShortcuts(path string, opts ...Option) (*ir.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := DecodeShortcuts(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// EncodeShortcuts writes root followed by the single terminator closing
// the top level.
func EncodeShortcuts(w io.Writer, root *ir.Collection) error {
	buf := bytes.NewBuffer(nil)
	if err := putTree(buf, root); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// SaveShortcuts atomically replaces the file at path with root.
func SaveShortcuts(path string, root *ir.Collection) error {
	buf := bytes.NewBuffer(nil)
	if err := EncodeShortcuts(buf, root); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}
