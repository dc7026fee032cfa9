package libdiff

import (
	"encoding/json"
	"fmt"

	"github.com/carbyne/bvdf/encode"
	"github.com/carbyne/bvdf/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

// MergePatch returns the JSON merge patch (RFC 7386) turning the JSON
// rendering of from into that of to. Array shaped collections are
// rendered as objects keyed by index, so single entries can be patched.
func MergePatch(from, to *ir.Collection) ([]byte, error) {
	fd, err := marshalJSON(from)
	if err != nil {
		return nil, err
	}
	td, err := marshalJSON(to)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(fd, td)
}

// ApplyMergePatch applies a merge patch to the JSON rendering of c and
// returns the resulting JSON document.
func ApplyMergePatch(c *ir.Collection, patch []byte) ([]byte, error) {
	d, err := marshalJSON(c)
	if err != nil {
		return nil, err
	}
	return jsonpatch.MergePatch(d, patch)
}

func marshalJSON(c *ir.Collection) ([]byte, error) {
	d, err := json.Marshal(encode.ToAny(c, false))
	if err != nil {
		return nil, fmt.Errorf("rendering tree as json: %w", err)
	}
	return d, nil
}
