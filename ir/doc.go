// Package ir provides the in-memory tree for BVDF documents.
//
// # Overview
//
// A BVDF document is a tree of Collections. A Collection is an ordered
// list of Properties and each Property pairs a string key with a Token.
// A Token holds exactly one of:
//
//   - Int32Type: signed 32-bit integer
//   - Float32Type: IEEE-754 single precision float
//   - Uint64Type: unsigned 64-bit integer
//   - StringType: string without embedded NUL bytes
//   - CollectionType: a nested Collection
//
// # Creating Tokens
//
// There is one constructor per variant and no implicit conversion:
//
//	name := ir.FromString("Half-Life")
//	hidden := ir.FromInt32(0)
//	tags := ir.FromCollection(ir.FromSlice(ir.FromString("favorite")))
//
// # Reading Tokens
//
// The typed accessors (Int32, Float32, Uint64, Text, Collection) fail with
// ErrTypeMismatch unless the token holds that exact variant.
//
// As converts between variants. Booleans are strict and only accept 0 or
// 1 from String, Int32 and UInt64 tokens, failing with
// ErrInvalidBooleanCoercion otherwise. Other conversions that cannot be
// performed silently yield the zero value:
//
//	b, err := ir.As[bool](ir.FromString("1"))  // true, nil
//	_, err = ir.As[bool](ir.FromInt32(5))      // ErrInvalidBooleanCoercion
//	n, err := ir.As[int32](ir.FromString("x")) // 0, nil
//
// # Arrays
//
// There is no separate array type. A Collection is an array when its keys
// are exactly "0" through "n-1" in any order, see Collection.IsArray.
// AppendArrayItem, RemoveByKey and RemoveByValue keep array-shaped
// collections contiguous.
//
// Keys need not be unique on the wire, so Add appends unconditionally
// whereas Set replaces the first match in place.
//
// # Thread Safety
//
// Collections are not thread-safe. Synchronize access yourself or Clone
// the tree for each goroutine.
package ir
