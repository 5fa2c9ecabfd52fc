package graph

import (
	"reflect"
	"testing"

	"github.com/andrewwphillips/eggql"
	"github.com/stretchr/testify/assert"

	"github.com/andrewwphillips/ntlango/internal/query"
	"github.com/andrewwphillips/ntlango/internal/scalar"
)

func TestQueryOptions(t *testing.T) {
	assert.Nil(t, queryOptions(nil))
	assert.Equal(t, &query.Options{}, queryOptions(&QueryOptionsInput{}))

	got := queryOptions(&QueryOptionsInput{
		Filters: []FilterInput{
			{Field: "capacity", Operator: int(query.Gte), Value: scalar.NewAnyValue(int64(10))},
			{Field: "status", Value: scalar.NewAnyValue([]interface{}{"DRAFT"})},
		},
		Sort:       []SortInput{{Field: "title", Order: int(query.Desc)}},
		Pagination: &PaginationInput{Skip: 0, Limit: 20},
		Search:     &SearchInput{Fields: []string{"title"}, Value: "jazz"},
	})
	assert.Equal(t, []query.Filter{
		{Field: "capacity", Operator: query.Gte, Value: int64(10)},
		{Field: "status", Operator: query.Eq, Value: []interface{}{"DRAFT"}},
	}, got.Filters)
	assert.Equal(t, []query.Sort{{Field: "title", Order: query.Desc}}, got.Sort)
	assert.Nil(t, got.Pagination.Skip)
	if assert.NotNil(t, got.Pagination.Limit) {
		assert.Equal(t, 20, *got.Pagination.Limit)
	}
	assert.Equal(t, &query.Search{Fields: []string{"title"}, Value: "jazz"}, got.Search)
}

func TestEnumHelpers(t *testing.T) {
	names := []string{"Male", "Female", "Other"}
	assert.Equal(t, 1, enumIndex(names, "Female", 2))
	assert.Equal(t, 2, enumIndex(names, "unknown", 2))
	assert.Equal(t, "Male", enumName(names, 0, 2))
	assert.Equal(t, "Other", enumName(names, 7, 2))
	assert.Equal(t, "Other", enumName(names, -1, 2))
}

func TestGraphName(t *testing.T) {
	typ := reflect.TypeOf(struct {
		EventID   string `egg:"eventId" validate:"objectid"`
		Status    int    `egg:"status:EventStatus,nullable"`
		GivenName string
		Summary   string `egg:",nullable"`
	}{})
	var got []string
	for i := 0; i < typ.NumField(); i++ {
		got = append(got, graphName(typ.Field(i)))
	}
	assert.Equal(t, []string{"eventId", "status", "givenName", "summary"}, got)
}

func TestCheck(t *testing.T) {
	r := &Resolver{validate: newValidator()}
	assert.NoError(t, r.check(RsvpInput{EventID: "64b7f0c2a1b2c3d4e5f60718"}))

	err := r.check(RsvpInput{EventID: "64b7f0c2a1b2c3d4e5f60718", UserIDList: []eggql.ID{"x"}})
	assert.EqualError(t, err, "InvalidArgumentException: userIdList[0] is not a valid ID")

	err = r.check(CreateEventCategoryInput{Name: "Music", IconName: "music", Description: "Gigs", Color: "red"})
	assert.EqualError(t, err, "InvalidArgumentException: color failed the hexcolor check")
}
