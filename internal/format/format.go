// Package format rewrites documents read from the store into a stable JSON
// wire shape. Storage-native identifiers become {"$oid": "..."} and date
// values become {"$date": "<RFC 3339>"}; everything else passes through.
package format

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document recursively converts a decoded document, array or scalar. It makes
// no assumption about shape or depth; unknown scalar types are returned as-is.
func Document(value interface{}) interface{} {
	switch v := value.(type) {
	case primitive.ObjectID:
		return map[string]interface{}{"$oid": v.Hex()}
	case primitive.DateTime:
		return map[string]interface{}{"$date": v.Time().UTC().Format(time.RFC3339Nano)}
	case time.Time:
		return map[string]interface{}{"$date": v.UTC().Format(time.RFC3339Nano)}
	case bson.M:
		return convertMap(v)
	case map[string]interface{}:
		return convertMap(v)
	case bson.D:
		out := make(map[string]interface{}, len(v))
		for _, e := range v {
			out[e.Key] = Document(e.Value)
		}
		return out
	case bson.A:
		return convertSlice(v)
	case []interface{}:
		return convertSlice(v)
	default:
		return value
	}
}

func convertMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, val := range m {
		out[k] = Document(val)
	}
	return out
}

func convertSlice(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, val := range s {
		out[i] = Document(val)
	}
	return out
}
