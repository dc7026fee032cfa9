package catalog

import (
	"math"
	"strconv"

	"github.com/carbyne/bvdf/ir"
)

// Record is an entry built from one chunk of a cache file.
type Record interface {
	// Tree returns the chunk's embedded tree.
	Tree() *ir.Collection
}

// sub returns the collection at path below c, or an empty one.
func sub(c *ir.Collection, path ...string) *ir.Collection {
	v := c.Lookup(path...)
	if v == nil {
		return ir.NewCollection()
	}
	res, err := v.Collection()
	if err != nil {
		return ir.NewCollection()
	}
	return res
}

func text(c *ir.Collection, key string) string {
	v := c.Get(key)
	if v == nil {
		return ""
	}
	s, _ := ir.As[string](v)
	return s
}

func flag(c *ir.Collection, key string) bool {
	return ir.Truth(c.Get(key))
}

// ids reads the numeric entries of c. Entries that are neither numbers
// nor decimal strings are skipped.
func ids(c *ir.Collection) []uint32 {
	var res []uint32
	for _, v := range c.All() {
		switch v.Type() {
		case ir.Int32Type:
			if i, _ := v.Int32(); i >= 0 {
				res = append(res, uint32(i))
			}
		case ir.Uint64Type:
			if u, _ := v.Uint64(); u <= math.MaxUint32 {
				res = append(res, uint32(u))
			}
		case ir.StringType:
			s, _ := v.Text()
			n, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				continue
			}
			res = append(res, uint32(n))
		}
	}
	return res
}
