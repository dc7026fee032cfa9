package libdiff

import (
	"fmt"

	"github.com/carbyne/bvdf/ir"
)

type Op int

const (
	Insert Op = iota
	Delete
	Replace
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("<op %d>", int(o))
	}
}

// Change is one difference between two trees. From is nil for inserts and
// To is nil for deletes.
type Change struct {
	Op   Op
	Path ir.Path
	From *ir.Token
	To   *ir.Token
}

func (c Change) String() string {
	switch c.Op {
	case Insert:
		return fmt.Sprintf("+ %s: %s", c.Path, c.To)
	case Delete:
		return fmt.Sprintf("- %s: %s", c.Path, c.From)
	default:
		if c.From.Type() == ir.StringType && c.To.Type() == ir.StringType {
			from, _ := c.From.Text()
			to, _ := c.To.Text()
			return fmt.Sprintf("~ %s: %s", c.Path, DiffString(from, to))
		}
		return fmt.Sprintf("~ %s: %s -> %s", c.Path, c.From, c.To)
	}
}
