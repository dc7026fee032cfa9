package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/carbyne/bvdf/ir"
)

// Encode writes the properties of c to w. Nested collections are closed
// with TagEnd but c itself is not: terminating the top level is up to the
// caller.
func Encode(c *ir.Collection, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := encodeProperties(bw, c); err != nil {
		return err
	}
	return bw.Flush()
}

// Marshal returns the encoding of c, without a top-level terminator.
func Marshal(c *ir.Collection) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(c, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeProperties(w *bufio.Writer, c *ir.Collection) error {
	for key, val := range c.All() {
		if err := encodeProperty(w, key, val); err != nil {
			return err
		}
	}
	return nil
}

func encodeProperty(w *bufio.Writer, key string, val *ir.Token) error {
	if val == nil {
		return fmt.Errorf("%w: nil value for key %q", ir.ErrTypeMismatch, key)
	}
	var scratch [8]byte
	switch val.Type() {
	case ir.CollectionType:
		c, _ := val.Collection()
		if err := writeHead(w, TagCollection, key); err != nil {
			return err
		}
		if err := encodeProperties(w, c); err != nil {
			return err
		}
		return w.WriteByte(TagEnd)
	case ir.StringType:
		s, _ := val.Text()
		if err := writeHead(w, TagString, key); err != nil {
			return err
		}
		return writeString(w, s)
	case ir.Int32Type:
		v, _ := val.Int32()
		if err := writeHead(w, TagInt32, key); err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(scratch[:4], uint32(v))
		_, err := w.Write(scratch[:4])
		return err
	case ir.Float32Type:
		v, _ := val.Float32()
		if err := writeHead(w, TagFloat32, key); err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(scratch[:4], math.Float32bits(v))
		_, err := w.Write(scratch[:4])
		return err
	case ir.Uint64Type:
		v, _ := val.Uint64()
		if err := writeHead(w, TagUint64, key); err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(scratch[:], v)
		_, err := w.Write(scratch[:])
		return err
	}
	return fmt.Errorf("%w: cannot encode %s for key %q", ir.ErrTypeMismatch, val.Type(), key)
}

func writeHead(w *bufio.Writer, tag byte, key string) error {
	if err := w.WriteByte(tag); err != nil {
		return err
	}
	return writeString(w, key)
}

func writeString(w *bufio.Writer, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidString, s)
	}
	if _, err := w.WriteString(s); err != nil {
		return err
	}
	return w.WriteByte(0)
}
