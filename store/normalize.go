package store

import (
	"bytes"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Normalize coerces a filter/update/options argument into its canonical
// bson.M form. The argument may be absent (nil), a JSON document in text
// form, or an already-structured mapping.
//
// Nil and empty text normalize to an empty (non-nil) bson.M. Text that
// fails to parse returns ErrMalformedInput rather than degrading to a
// nil value. Structured input is copied at the top level so the caller's
// map is never aliased or mutated.
func Normalize(data any) (bson.M, error) {
	switch v := data.(type) {
	case nil:
		return bson.M{}, nil
	case string:
		return parseDocText([]byte(v))
	case []byte:
		return parseDocText(v)
	case bson.M:
		return copyM(v), nil
	case map[string]any:
		return copyM(v), nil
	case bson.D:
		m := make(bson.M, len(v))
		for _, e := range v {
			m[e.Key] = e.Value
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unsupported parameter type %T", ErrMalformedInput, data)
	}
}

// parseDocText deserializes a JSON document, tolerating extended JSON
// (so {"_id": {"$oid": "..."}} round-trips into a real object id).
func parseDocText(b []byte) (bson.M, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return bson.M{}, nil
	}
	var m bson.M
	if err := bson.UnmarshalExtJSON(b, false, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return m, nil
}

func copyM(src map[string]any) bson.M {
	dst := make(bson.M, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// normalizeDocument prepares a document for insertion. Unlike Normalize,
// an absent or empty document is an error here - inserting nothing is
// never what the caller meant. Structured values (maps, bson.D, structs)
// pass through untouched for the driver to encode.
func normalizeDocument(doc any) (any, error) {
	switch v := doc.(type) {
	case nil:
		return nil, fmt.Errorf("%w: empty document", ErrMalformedInput)
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("%w: empty document", ErrMalformedInput)
		}
		return parseDocText([]byte(v))
	case []byte:
		if len(bytes.TrimSpace(v)) == 0 {
			return nil, fmt.Errorf("%w: empty document", ErrMalformedInput)
		}
		return parseDocText(v)
	default:
		return doc, nil
	}
}
