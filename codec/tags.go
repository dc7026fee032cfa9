package codec

import "fmt"

// Tag bytes prefixing each property on the wire.
const (
	TagCollection byte = 0x00
	TagString     byte = 0x01
	TagInt32      byte = 0x02
	TagFloat32    byte = 0x03
	TagPointer    byte = 0x04
	TagWideString byte = 0x05
	TagColor      byte = 0x06
	TagUint64     byte = 0x07
	TagEnd        byte = 0x08
)

func tagName(tag byte) string {
	switch tag {
	case TagCollection:
		return "collection"
	case TagString:
		return "string"
	case TagInt32:
		return "int32"
	case TagFloat32:
		return "float32"
	case TagPointer:
		return "pointer"
	case TagWideString:
		return "wide string"
	case TagColor:
		return "color"
	case TagUint64:
		return "uint64"
	case TagEnd:
		return "end"
	}
	return fmt.Sprintf("unknown %#02x", tag)
}
