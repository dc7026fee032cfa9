package libdiff

// Reverse returns the changes leading back from the target of changes to
// its source.
func Reverse(changes []Change) []Change {
	res := make([]Change, len(changes))
	for i, c := range changes {
		switch c.Op {
		case Insert:
			c.Op = Delete
		case Delete:
			c.Op = Insert
		}
		c.From, c.To = c.To, c.From
		res[i] = c
	}
	return res
}
