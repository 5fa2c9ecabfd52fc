// Package query translates the generic filter/sort/pagination options sent by
// API clients into MongoDB queries.  There are two targets: a plain find
// (filter document plus find options) for queries on a single collection,
// and an aggregation pipeline for when referenced collections have to be
// joined ($lookup) before filtering on their fields.
//
// Field paths are not checked against any schema.  A path that does not
// exist simply matches nothing, so validating what clients may filter on is
// left to the caller.
package query

// Operator is a comparison used by a Filter.  The zero value is Eq.
type Operator int

const (
	Eq Operator = iota
	Ne
	Gt
	Lt
	Gte
	Lte
)

// OperatorNames are the names of the operators, in Operator order.  They are
// also used as the values of the GraphQL enum.
var OperatorNames = []string{"eq", "ne", "gt", "lt", "gte", "lte"}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(OperatorNames) {
		return OperatorNames[Eq]
	}
	return OperatorNames[op]
}

// mongo returns the comparison operator, unknown operators behave like Eq
func (op Operator) mongo() string {
	return "$" + op.String()
}

// SortOrder is the direction of a Sort.  The zero value is Asc.
type SortOrder int

const (
	Asc SortOrder = iota
	Desc
)

// SortOrderNames are the names of the sort orders, in SortOrder order
var SortOrderNames = []string{"asc", "desc"}

func (o SortOrder) String() string {
	if o == Desc {
		return SortOrderNames[Desc]
	}
	return SortOrderNames[Asc]
}

type (
	// Filter restricts results to documents where Field compares to Value.
	// A dotted Field ("eventCategoryList.name") names an array field and a
	// field within its elements; it matches if any element matches.
	Filter struct {
		Field    string
		Operator Operator
		Value    interface{}
	}

	// Sort orders results by one field
	Sort struct {
		Field string
		Order SortOrder
	}

	// Pagination skips then limits results.  Nil or zero values are ignored.
	Pagination struct {
		Skip  *int
		Limit *int
	}

	// Search is a substring match of Value against any of Fields
	Search struct {
		Fields        []string
		Value         string
		CaseSensitive bool
	}

	// Options is everything a client can ask for when reading a list
	Options struct {
		Filters    []Filter
		Sort       []Sort
		Pagination *Pagination
		Search     *Search
	}
)

// IsZero is true if o is nil or asks for nothing
func (o *Options) IsZero() bool {
	return o == nil || len(o.Filters) == 0 && len(o.Sort) == 0 && o.Pagination == nil && o.Search == nil
}

func (p *Pagination) skip() int64 {
	if p == nil || p.Skip == nil || *p.Skip <= 0 {
		return 0
	}
	return int64(*p.Skip)
}

func (p *Pagination) limit() int64 {
	if p == nil || p.Limit == nil || *p.Limit <= 0 {
		return 0
	}
	return int64(*p.Limit)
}
