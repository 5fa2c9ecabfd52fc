package graph

import (
	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/query"
)

// Enums are the GraphQL enums.  Go fields of an enum type are ints that
// index these lists.
var Enums = map[string][]string{
	"FilterOperatorInput": query.OperatorNames,
	"SortOrderInput":      query.SortOrderNames,
	"UserRole":            model.UserRoleNames,
	"Gender":              model.GenderNames,
	"EventStatus":         model.EventStatusNames,
	"ParticipantStatus":   model.ParticipantStatusNames,
	"ActivityVerb":        model.ActivityVerbNames,
	"ActivityObjectType":  model.ActivityObjectTypeNames,
	"ActivityVisibility":  model.ActivityVisibilityNames,
}

// enumIndex returns the position of s in names, or def if it is not there
func enumIndex(names []string, s string, def int) int {
	for i, n := range names {
		if n == s {
			return i
		}
	}
	return def
}

// enumName returns the name at position i, or names[def] if i is out of range
func enumName(names []string, i int, def int) string {
	if i < 0 || i >= len(names) {
		return names[def]
	}
	return names[i]
}
