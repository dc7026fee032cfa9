package encode

import "github.com/carbyne/bvdf/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// EncodeColors enables colored text and JSON output.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// EncodeArrays renders array shaped collections as sequences instead of
// maps keyed by index.
func EncodeArrays(v bool) EncodeOption {
	return func(es *EncState) { es.arrays = v }
}

func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeTypes annotates text output leaves with their token type.
func EncodeTypes(v bool) EncodeOption {
	return func(es *EncState) { es.types = v }
}
