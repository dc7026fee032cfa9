package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbyne/bvdf/format"
	"github.com/carbyne/bvdf/ir"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
)

type EncState struct {
	line, col     int
	depth, indent int
	arrays        bool
	types         bool

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("encode: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode renders c to w in the format selected by opts, text by default.
func Encode(c *ir.Collection, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if c == nil {
		c = ir.NewCollection()
	}
	switch es.format {
	case format.TextFormat:
		if err := encodeText(c, w, es); err != nil {
			return err
		}
		if es.col == 0 {
			return nil
		}
		return writeString(w, "\n")
	case format.JSONFormat:
		if err := encodeJSON(c, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	case format.YAMLFormat:
		return encodeYAML(c, w, es)
	case format.CBORFormat:
		d, err := cborMode.Marshal(ToAny(c, es.arrays))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		_, err = w.Write(d)
		return err
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, es.format)
	}
}

func writeNL(w io.Writer, es *EncState) error {
	if es.indent == 0 && es.format.IsJSON() {
		return nil
	}
	indentString := strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
	if err := writeString(w, "\n"+indentString); err != nil {
		return err
	}
	es.line++
	es.col = len(indentString)
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

func (es *EncState) isArray(c *ir.Collection) bool {
	return es.arrays && c.Len() != 0 && c.IsArray()
}

// text

func encodeText(c *ir.Collection, w io.Writer, es *EncState) error {
	array := es.isArray(c)
	for i := 0; i < c.Len(); i++ {
		p := c.At(i)
		if i > 0 || es.depth > 0 {
			if err := writeNL(w, es); err != nil {
				return err
			}
		}
		var field string
		if array {
			field = applyColor(es, ir.CollectionType, SepColor, "-")
		} else {
			field = applyColor(es, typeOf(p.Value), FieldColor, textKey(p.Key)) +
				applyColor(es, ir.CollectionType, SepColor, ":")
		}
		es.col += len(field)
		if err := writeString(w, field); err != nil {
			return err
		}
		if err := encodeTextValue(p.Value, w, es); err != nil {
			return err
		}
	}
	return nil
}

func encodeTextValue(v *ir.Token, w io.Writer, es *EncState) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrEncoding)
	}
	if v.Type() != ir.CollectionType {
		s, err := leafText(v, es)
		if err != nil {
			return err
		}
		s = " " + applyColor(es, v.Type(), ValueColor, s)
		if es.types {
			s += " " + applyColor(es, v.Type(), TypeColor, "!"+strings.ToLower(v.Type().String()))
		}
		es.col += len(s)
		return writeString(w, s)
	}
	sub, _ := v.Collection()
	if sub.Len() == 0 {
		es.col += 3
		return writeString(w, " "+applyColor(es, ir.CollectionType, SepColor, "{}"))
	}
	es.depth++
	defer func() { es.depth-- }()
	return encodeText(sub, w, es)
}

func textKey(k string) string {
	if k == "" || strings.ContainsAny(k, ": \t\n\"#-") {
		return strconv.Quote(k)
	}
	return k
}

func leafText(v *ir.Token, es *EncState) (string, error) {
	switch v.Type() {
	case ir.StringType:
		s, _ := v.Text()
		return strconv.Quote(s), nil
	case ir.Int32Type:
		n, _ := v.Int32()
		return strconv.FormatInt(int64(n), 10), nil
	case ir.Uint64Type:
		n, _ := v.Uint64()
		return strconv.FormatUint(n, 10), nil
	case ir.Float32Type:
		f, _ := v.Float32()
		if es.format.IsJSON() && (math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)) {
			return "", fmt.Errorf("%w: %v unsupported in %s", ErrEncoding, f, es.format)
		}
		return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
	}
	return "", fmt.Errorf("%w: %s is not a leaf", ErrEncoding, v.Type())
}

func typeOf(v *ir.Token) ir.Type {
	if v == nil {
		return ir.CollectionType
	}
	return v.Type()
}

// json

func encodeJSON(c *ir.Collection, w io.Writer, es *EncState) error {
	array := es.isArray(c)
	open, closer := "{", "}"
	if array {
		open, closer = "[", "]"
	}
	if err := writeString(w, applyColor(es, ir.CollectionType, SepColor, open)); err != nil {
		return err
	}
	if c.Len() == 0 {
		return writeString(w, applyColor(es, ir.CollectionType, SepColor, closer))
	}
	es.depth++
	for i := 0; i < c.Len(); i++ {
		p := c.At(i)
		if i > 0 {
			if err := writeString(w, applyColor(es, ir.CollectionType, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if !array {
			k, err := json.Marshal(p.Key)
			if err != nil {
				return err
			}
			sep := ":"
			if es.indent > 0 {
				sep = ": "
			}
			field := applyColor(es, typeOf(p.Value), FieldColor, string(k)) +
				applyColor(es, ir.CollectionType, SepColor, sep)
			if err := writeString(w, field); err != nil {
				return err
			}
		}
		if err := encodeJSONValue(p.Value, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, applyColor(es, ir.CollectionType, SepColor, closer))
}

func encodeJSONValue(v *ir.Token, w io.Writer, es *EncState) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrEncoding)
	}
	switch v.Type() {
	case ir.CollectionType:
		sub, _ := v.Collection()
		return encodeJSON(sub, w, es)
	case ir.StringType:
		s, _ := v.Text()
		d, err := json.Marshal(s)
		if err != nil {
			return err
		}
		return writeString(w, applyColor(es, ir.StringType, ValueColor, string(d)))
	default:
		s, err := leafText(v, es)
		if err != nil {
			return err
		}
		return writeString(w, applyColor(es, v.Type(), ValueColor, s))
	}
}

// yaml

func encodeYAML(c *ir.Collection, w io.Writer, es *EncState) error {
	indent := es.indent
	if indent <= 0 {
		indent = 2
	}
	d, err := yaml.MarshalWithOptions(ToMapSlice(c, es.arrays), yaml.Indent(indent))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// ToMapSlice converts c to a yaml.MapSlice keeping property order. With
// arrays set, array shaped collections become []any.
func ToMapSlice(c *ir.Collection, arrays bool) any {
	if arrays && c.Len() != 0 && c.IsArray() {
		res := make([]any, c.Len())
		for k, v := range c.All() {
			i, _ := strconv.Atoi(k)
			res[i] = mapSliceValue(v, arrays)
		}
		return res
	}
	res := make(yaml.MapSlice, 0, c.Len())
	for k, v := range c.All() {
		res = append(res, yaml.MapItem{Key: k, Value: mapSliceValue(v, arrays)})
	}
	return res
}

func mapSliceValue(v *ir.Token, arrays bool) any {
	if v == nil {
		return nil
	}
	if sub, err := v.Collection(); err == nil {
		return ToMapSlice(sub, arrays)
	}
	return v.Value()
}

// ToAny converts c to map[string]any, or []any for array shaped
// collections when arrays is set. Leaves keep their Go types (int32,
// float32, uint64, string). When keys repeat, the last value wins.
func ToAny(c *ir.Collection, arrays bool) any {
	if arrays && c.Len() != 0 && c.IsArray() {
		res := make([]any, c.Len())
		for k, v := range c.All() {
			i, _ := strconv.Atoi(k)
			res[i] = anyValue(v, arrays)
		}
		return res
	}
	res := make(map[string]any, c.Len())
	for k, v := range c.All() {
		res[k] = anyValue(v, arrays)
	}
	return res
}

func anyValue(v *ir.Token, arrays bool) any {
	if v == nil {
		return nil
	}
	if sub, err := v.Collection(); err == nil {
		return ToAny(sub, arrays)
	}
	return v.Value()
}
