package scalar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/andrewwphillips/ntlango/internal/scalar"
)

func TestAnyValue(t *testing.T) {
	date := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)
	tests := map[string]struct {
		in       string
		expected interface{}
	}{
		"RawString":     {"PUBLISHED", "PUBLISHED"},
		"QuotedString":  {`"42"`, "42"},
		"Int":           {"42", int64(42)},
		"DigitsString":  {"10001", int64(10001)},
		"EscapedDigits": {`"10001"`, "10001"},
		"Float":         {"1.5", 1.5},
		"Bool":          {"true", true},
		"Null":          {"null", nil},
		"Date":          {"2024-05-01T18:30:00Z", date},
		"QuotedDate":    {`"2024-05-01T18:30:00Z"`, date},
		"List":          {`[1, "a", false]`, []interface{}{int64(1), "a", false}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var v scalar.AnyValue
			require.NoError(t, v.UnmarshalEGGQL(test.in))
			assert.Equal(t, test.expected, v.Value())
		})
	}
}

func TestAnyValueRejectsObjects(t *testing.T) {
	var v scalar.AnyValue
	assert.Error(t, v.UnmarshalEGGQL(`{"a": 1}`))
}

func TestTime(t *testing.T) {
	var tm scalar.Time
	require.NoError(t, tm.UnmarshalEGGQL("2024-05-01T20:30:00+02:00"))

	s, err := tm.MarshalEGGQL()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T18:30:00Z", s)

	assert.Error(t, tm.UnmarshalEGGQL("yesterday"))
}

func TestJSONKeepsOrder(t *testing.T) {
	doc := bson.D{{Key: "z", Value: 1}, {Key: "a", Value: bson.D{{Key: "y", Value: "b"}, {Key: "x", Value: "c"}}}}

	s, err := scalar.JSONFromDoc(doc).MarshalEGGQL()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"y":"b","x":"c"}}`, s)

	var j scalar.JSON
	require.NoError(t, j.UnmarshalEGGQL(`{"b": 2, "a": 1}`))
	back := j.Doc()
	require.Len(t, back, 2)
	assert.Equal(t, "b", back[0].Key)
	assert.Equal(t, "a", back[1].Key)

	empty, err := scalar.JSON{}.MarshalEGGQL()
	require.NoError(t, err)
	assert.Equal(t, "{}", empty)
}
