package store

import "go.mongodb.org/mongo-driver/v2/bson"

// Shape controls how documents returned by read operations decode.
type Shape string

const (
	// ShapeMap decodes every level of a returned document - the root,
	// embedded documents and arrays - into plain map[string]any / []any
	// values. This is the default.
	ShapeMap Shape = "map"

	// ShapeRaw leaves embedded values as the driver's order-preserving
	// bson.D / bson.A types.
	ShapeRaw Shape = "raw"
)

// shapeKey is the option entry read operations consult.
const shapeKey = "shape"

// ApplyDefaultShape returns a copy of opts with the result-shape option
// defaulted to ShapeMap. A shape the caller already set - whatever its
// value - wins. Applying twice yields the same mapping as applying once.
func ApplyDefaultShape(opts bson.M) bson.M {
	out := make(bson.M, len(opts)+1)
	for k, v := range opts {
		out[k] = v
	}
	if _, ok := out[shapeKey]; !ok {
		out[shapeKey] = ShapeMap
	}
	return out
}

func shapeOf(opts bson.M) Shape {
	switch v := opts[shapeKey].(type) {
	case Shape:
		return v
	case string:
		return Shape(v)
	default:
		return ShapeMap
	}
}

// plainValue recursively converts driver-decoded BSON containers into
// plain Go values. Scalars pass through unchanged.
func plainValue(v any) any {
	switch t := v.(type) {
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plainValue(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plainValue(e)
		}
		return m
	case bson.A:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = plainValue(e)
		}
		return s
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = plainValue(e)
		}
		return s
	default:
		return v
	}
}

// shapeDoc applies the requested shape to one decoded document.
func shapeDoc(doc bson.M, shape Shape) map[string]any {
	if shape == ShapeRaw {
		return map[string]any(doc)
	}
	return plainValue(doc).(map[string]any)
}
