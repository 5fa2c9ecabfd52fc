package scalar

// json.go implements a free-form JSON object scalar.  Documents stored in
// Mongo keep their key order (bson.D) so we use an ordered map for the
// GraphQL encoding as well, which means clients see keys in the order they
// were written.

import (
	"encoding/json"
	"fmt"

	"github.com/dolmen-go/jsonmap"
	"go.mongodb.org/mongo-driver/bson"
)

// JSON is an arbitrary JSON object
type JSON struct {
	obj jsonmap.Ordered
}

// JSONFromDoc converts a (possibly nil) BSON document
func JSONFromDoc(doc bson.D) JSON {
	return JSON{obj: orderedFromDoc(doc)}
}

// UnmarshalEGGQL decodes a JSON object from its string encoding
func (j *JSON) UnmarshalEGGQL(in string) error {
	var obj jsonmap.Ordered
	if err := json.Unmarshal([]byte(in), &obj); err != nil {
		return fmt.Errorf("%w error in UnmarshalEGGQL for custom scalar JSON", err)
	}
	j.obj = obj
	return nil
}

// MarshalEGGQL encodes the object as a JSON string
func (j JSON) MarshalEGGQL() (string, error) {
	if j.obj.Data == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(j.obj)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// IsZero is true if nothing was decoded
func (j JSON) IsZero() bool {
	return len(j.obj.Order) == 0
}

// Doc converts back to a BSON document, preserving key order
func (j JSON) Doc() bson.D {
	if j.obj.Data == nil {
		return nil
	}
	doc := make(bson.D, 0, len(j.obj.Order))
	for _, k := range j.obj.Order {
		doc = append(doc, bson.E{Key: k, Value: toBSON(j.obj.Data[k])})
	}
	return doc
}

func toBSON(v interface{}) interface{} {
	switch v := v.(type) {
	case jsonmap.Ordered:
		return JSON{obj: v}.Doc()
	case map[string]interface{}:
		m := make(bson.M, len(v))
		for k, vv := range v {
			m[k] = toBSON(vv)
		}
		return m
	case []interface{}:
		list := make(bson.A, len(v))
		for i := range v {
			list[i] = toBSON(v[i])
		}
		return list
	default:
		return v
	}
}

func orderedFromDoc(doc bson.D) jsonmap.Ordered {
	r := jsonmap.Ordered{
		Data:  make(map[string]interface{}, len(doc)),
		Order: make([]string, 0, len(doc)),
	}
	for _, e := range doc {
		if _, ok := r.Data[e.Key]; !ok {
			r.Order = append(r.Order, e.Key)
		}
		r.Data[e.Key] = fromBSON(e.Value)
	}
	return r
}

func fromBSON(v interface{}) interface{} {
	switch v := v.(type) {
	case bson.D:
		return orderedFromDoc(v)
	case bson.A:
		list := make([]interface{}, len(v))
		for i := range v {
			list[i] = fromBSON(v[i])
		}
		return list
	default:
		return v
	}
}
