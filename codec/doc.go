// Package codec implements the binary BVDF encoding of ir trees.
//
// Each property is written as a tag byte, a NUL terminated key and a
// payload. All integers are little-endian.
//
//	tag   payload
//	0x00  nested properties followed by 0x08
//	0x01  NUL terminated UTF-8 string
//	0x02  int32
//	0x03  float32
//	0x07  uint64
//	0x08  end of the enclosing collection (no key, no payload)
//
// Tags 0x04 (pointer), 0x05 (wide string) and 0x06 (color) are not
// supported and, like any other byte, fail decoding with ErrMalformedToken.
// No partial tree is returned on failure.
//
// Encode does not terminate the top-level collection: file formats
// differ in how the root ends, so the caller writes the final TagEnd when
// one is needed. Correspondingly Decode accepts the end of input in place
// of the root's terminator.
//
// # Example
//
//	root := ir.NewCollection()
//	root.Set("name", ir.FromString("value"))
//	data, err := codec.Marshal(root)
//	if err != nil {
//	    return err
//	}
//	back, err := codec.Unmarshal(data)
package codec
