// Package encode renders ir trees for people and other tools.
//
// # Usage
//
//	root := ir.NewCollection()
//	root.Set("name", ir.FromString("alice"))
//	err := encode.Encode(root, os.Stdout)
//
//	// Encode with options
//	err = encode.Encode(root, os.Stdout,
//	    encode.EncodeFormat(format.JSONFormat),
//	    encode.EncodeArrays(true),
//	    encode.EncodeColors(encode.NewColors()))
//
// The text format is an indented "key: value" listing. JSON and YAML keep
// property order and repeated keys. CBOR output uses core deterministic
// encoding, so map keys are sorted and a repeated key keeps its last value.
//
// With EncodeArrays, collections whose keys are exactly 0..n-1 are written
// as sequences.
//
// # Related Packages
//
//   - github.com/carbyne/bvdf/ir - Tree representation
//   - github.com/carbyne/bvdf/format - Output formats
//   - github.com/carbyne/bvdf/codec - Binary encoding
package encode
