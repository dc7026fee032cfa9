package libdiff

import (
	"strconv"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffString renders the character level difference between two strings
// as the quoted text with deletions in [-...-] and insertions in {+...+}.
func DiffString(from, to string) string {
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := diffCfg.DiffMain(from, to, doMultiLine)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	var b strings.Builder
	for i := range diffs {
		diff := &diffs[i]
		text := quoteInner(diff.Text)
		switch diff.Type {
		case diffpatch.DiffInsert:
			b.WriteString("{+" + text + "+}")
		case diffpatch.DiffDelete:
			b.WriteString("[-" + text + "-]")
		case diffpatch.DiffEqual:
			b.WriteString(text)
		}
	}
	return `"` + b.String() + `"`
}

func quoteInner(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}
