package catalog

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/carbyne/bvdf/encode"
	"github.com/carbyne/bvdf/ir"

	"github.com/expr-lang/expr"
)

// Filter returns the items for which the boolean expression holds. The
// expression sees the record's exported fields by name, plus
//
//	getpath(path)   value at a '/' separated path of the record's tree
//	listpath(path)  values matching a path, '*' matching any key
//	getenv(name)    environment variable
//
// An empty expression keeps every item.
func Filter[T Record](items []T, expression string) ([]T, error) {
	if strings.TrimSpace(expression) == "" {
		return items, nil
	}
	var cur T
	opts := append([]expr.Option{expr.Env(envOf[T]()), expr.AsBool()},
		exprOpts(func() *ir.Collection { return cur.Tree() })...)
	prg, err := expr.Compile(expression, opts...)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", expression, err)
	}
	var res []T
	for _, it := range items {
		cur = it
		out, err := expr.Run(prg, it)
		if err != nil {
			return nil, fmt.Errorf("evaluating %q: %w", expression, err)
		}
		if ok, _ := out.(bool); ok {
			res = append(res, it)
		}
	}
	return res, nil
}

// envOf returns a non-nil value of T for type checking expressions; for
// pointer types it points to a zero element.
func envOf[T any]() any {
	var zero T
	rt := reflect.TypeOf(zero)
	if rt != nil && rt.Kind() == reflect.Pointer {
		return reflect.New(rt.Elem()).Interface()
	}
	return zero
}

func exprOpts(tree func() *ir.Collection) []expr.Option {
	return []expr.Option{
		expr.Function("getpath", func(params ...any) (any, error) {
			path := params[0].(string)
			res, err := tree().GetPath(path)
			if err != nil {
				return nil, err
			}
			return tokenValue(res), nil
		},
			new(func(string) any)),
		expr.Function("listpath", func(params ...any) (any, error) {
			path := params[0].(string)
			ms, err := tree().ListPath(nil, path)
			if err != nil {
				return nil, err
			}
			res := make([]any, len(ms))
			for i := range ms {
				res[i] = tokenValue(ms[i].Value)
			}
			return res, nil
		},
			new(func(string) []any)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func tokenValue(t *ir.Token) any {
	if t == nil {
		return nil
	}
	if c, err := t.Collection(); err == nil {
		return encode.ToAny(c, true)
	}
	return t.Value()
}
