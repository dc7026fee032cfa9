package encode

import (
	"strings"

	"github.com/carbyne/bvdf/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
	TypeColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		able := Colorable{Type: t, Attr: FieldColor}
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = TypeColor
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Type = ir.Int32Type
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = ir.Uint64Type
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Type = ir.Float32Type
	colors.Map[able] = color.CyanString

	able.Type = ir.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Type = ir.CollectionType
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
