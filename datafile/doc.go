// Package datafile reads and writes the three file shapes built on the
// binary tree encoding.
//
// A shortcut file is a single root tree closed by one terminator byte.
//
// App-info and package-info caches start with an 8 byte Header
// (version u8, type u16, version u8, version u32) followed by chunks, each
// a few fixed little-endian fields and one embedded tree:
//
//	app-info:      AppID u32, DataSize u32, State u32, LastUpdate u32,
//	               AccessToken u64, Checksum [20]byte,
//	               LastChangeNumber u32, tree
//	package-info:  PackageID u32, Checksum [20]byte,
//	               LastChangeNumber u32, tree
//
// App-info chunks end at AppID 0; package-info chunks end at PackageID
// 0xFFFFFFFF. DataSize counts the bytes from State to the end of the
// tree. When it disagrees with the decoded tree the reader logs a warning
// and moves to the position DataSize designates. Package-info chunks have
// no size, so there is nothing to resynchronize on.
//
// Writers compute sizes, append sentinels and replace files atomically.
package datafile
