// Package format enumerates the output formats trees can be rendered in.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(f.Suffix()) // .yaml
//
// Format implements encoding.TextMarshaler and encoding.TextUnmarshaler so
// it can be used directly in configuration files.
//
// # Related Packages
//
//   - github.com/carbyne/bvdf/encode - Render trees in a Format
package format
