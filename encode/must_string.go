package encode

import (
	"bytes"
	"strings"

	"github.com/carbyne/bvdf/ir"
)

func MustString(c *ir.Collection, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(c, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
