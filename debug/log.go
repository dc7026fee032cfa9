package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/carbyne/bvdf/encode"
	"github.com/carbyne/bvdf/ir"
)

type Tree struct{ *ir.Collection }

func (t Tree) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(t.Collection, buf); err != nil {
		return fmt.Sprintf("[raw *ir.Collection] %v", t.Collection.Keys())
	}
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Collection:
			args[i] = Tree{x}.String()
		case *ir.Token:
			if c, err := x.Collection(); err == nil {
				args[i] = Tree{c}.String()
			}
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
