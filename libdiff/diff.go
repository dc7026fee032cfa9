package libdiff

import (
	"github.com/carbyne/bvdf/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns the changes turning from into to, in tree order.
//
// Keys of each pair of collections are aligned as sequences, so a
// property inserted in the middle shows as one insert rather than as a
// run of replacements. Values under aligned keys are compared, recursing
// into collections on both sides.
func Diff(from, to *ir.Collection) []Change {
	return diffCollection(nil, ir.Path{}, from, to)
}

func diffCollection(dst []Change, at ir.Path, from, to *ir.Collection) []Change {
	keyMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapKeysTo(keyMap, runeMap, from)
	toRunes := mapKeysTo(keyMap, runeMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for _, r := range diff.Text {
				dst = append(dst, Change{Op: Delete, Path: at.Append(runeMap[r]), From: from.At(fi).Value})
				fi++
			}
		case diffpatch.DiffEqual:
			for _, r := range diff.Text {
				dst = diffValue(dst, at.Append(runeMap[r]), from.At(fi).Value, to.At(ti).Value)
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for _, r := range diff.Text {
				dst = append(dst, Change{Op: Insert, Path: at.Append(runeMap[r]), To: to.At(ti).Value})
				ti++
			}
		}
	}
	return dst
}

func diffValue(dst []Change, at ir.Path, from, to *ir.Token) []Change {
	fc, ferr := from.Collection()
	tc, terr := to.Collection()
	if ferr == nil && terr == nil {
		return diffCollection(dst, at, fc, tc)
	}
	if from.Equal(to) {
		return dst
	}
	return append(dst, Change{Op: Replace, Path: at, From: from, To: to})
}

func mapKeysTo(m map[string]rune, im map[rune]string, c *ir.Collection) []rune {
	rs := make([]rune, c.Len())
	for i := range rs {
		k := c.At(i).Key
		r, ok := m[k]
		if !ok {
			r = rune(len(m))
			m[k] = r
			im[r] = k
		}
		rs[i] = r
	}
	return rs
}
