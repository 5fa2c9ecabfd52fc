package scalar

// any.go implements the AnyValue scalar used for filter values, which may be
// a string, number, boolean, date or a list of those.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// AnyValue holds a decoded filter value.  The encoded form is tried as a
// JSON literal first (so 42, true, [1,2] and "\"42\"" behave as expected)
// and anything that is not valid JSON is taken as a raw string.  Strings in
// RFC3339 format are converted to time.Time so date comparisons work.
type AnyValue struct {
	v interface{}
}

// NewAnyValue wraps an already decoded Go value
func NewAnyValue(v interface{}) AnyValue {
	return AnyValue{v: v}
}

// UnmarshalEGGQL decodes the value
func (a *AnyValue) UnmarshalEGGQL(in string) error {
	v, err := decodeAny(in)
	if err != nil {
		return fmt.Errorf("%w error in UnmarshalEGGQL for custom scalar AnyValue", err)
	}
	a.v = v
	return nil
}

// MarshalEGGQL encodes the value as JSON text
func (a AnyValue) MarshalEGGQL() (string, error) {
	if s, ok := a.v.(string); ok {
		return s, nil
	}
	buf, err := json.Marshal(a.v)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Value returns the decoded value
func (a AnyValue) Value() interface{} {
	return a.v
}

func decodeAny(in string) (interface{}, error) {
	if !json.Valid([]byte(in)) {
		return coerceString(in), nil
	}
	decoder := json.NewDecoder(bytes.NewReader([]byte(in)))
	decoder.UseNumber()
	var raw interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return normalise(raw)
}

// normalise converts json.Number to int64/float64 and nested lists likewise
func normalise(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return v.Float64()
	case string:
		return coerceString(v), nil
	case []interface{}:
		list := make([]interface{}, len(v))
		for i := range v {
			var err error
			if list[i], err = normalise(v[i]); err != nil {
				return nil, err
			}
		}
		return list, nil
	case map[string]interface{}:
		return nil, fmt.Errorf("objects are not supported as filter values")
	default:
		return v, nil // bool or nil
	}
}

func coerceString(s string) interface{} {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return s
}
