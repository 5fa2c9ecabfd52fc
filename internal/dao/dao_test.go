package dao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProjection(t *testing.T) {
	tests := map[string]struct {
		fields   []string
		hidden   []string
		expected bson.D
	}{
		"Default":       {nil, []string{"password"}, bson.D{{Key: "password", Value: 0}}},
		"Include":       {[]string{"email", "username"}, []string{"password"}, bson.D{{Key: "email", Value: 1}, {Key: "username", Value: 1}}},
		"HiddenDropped": {[]string{"password"}, []string{"password"}, bson.D{{Key: "password", Value: 0}}},
		"NothingHidden": {nil, nil, bson.D{}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, projection(test.fields, test.hidden...))
		})
	}
}

func TestSetter(t *testing.T) {
	name := "Jazz"
	id := primitive.NewObjectID()
	s := setter{}
	s.str("name", &name)
	s.str("skipped", nil)
	s.ids("eventCategoryList", []primitive.ObjectID{id})
	s.ids("organizerList", nil)
	s.doc("tags", bson.D{{Key: "a", Value: 1}})
	s.doc("additionalDetails", nil)
	s.set("capacity", 10)

	assert.Equal(t, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: "Jazz"},
		{Key: "eventCategoryList", Value: []primitive.ObjectID{id}},
		{Key: "tags", Value: bson.D{{Key: "a", Value: 1}}},
		{Key: "capacity", Value: 10},
	}}}, s.update())
}

func TestHexes(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, []primitive.ObjectID{id}, hexes([]string{"cat1", id.Hex(), ""}))
	assert.Empty(t, hexes(nil))
	assert.NotNil(t, nonNil(nil))
}

func TestIndexesCoverUniqueKeys(t *testing.T) {
	for collection, models := range indexes {
		assert.NotEmpty(t, models, collection)
	}
	assert.Len(t, indexes, 7)
}

func TestNewestFirst(t *testing.T) {
	newest := bson.D{{Key: "eventAt", Value: -1}, {Key: "_id", Value: -1}}
	tests := map[string]struct {
		limit    int
		expected int64
	}{
		"Default":  {0, DefaultActivityLimit},
		"Negative": {-3, DefaultActivityLimit},
		"Given":    {5, 5},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			o := newestFirst(test.limit)
			assert.Equal(t, newest, o.Sort)
			if assert.NotNil(t, o.Limit) {
				assert.Equal(t, test.expected, *o.Limit)
			}
		})
	}
}
