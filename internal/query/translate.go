package query

// translate.go builds filter, sort and pagination for a plain find

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Translator converts Options into queries for one collection.  It is not
// modified after NewTranslator so can be shared between goroutines.
type Translator struct {
	opt translatorOptions
}

// NewTranslator creates a Translator, see options.go for the options
func NewTranslator(opts ...func(*translatorOptions)) *Translator {
	t := &Translator{}
	for _, o := range opts {
		o(&t.opt)
	}
	return t
}

// Find is a translated query ready to pass to Collection.Find
type Find struct {
	Filter bson.D
	Sort   bson.D
	Skip   int64
	Limit  int64
}

// Options returns the driver options for sort, skip and limit
func (f *Find) Options() *options.FindOptions {
	o := options.Find()
	if len(f.Sort) > 0 {
		o.SetSort(f.Sort)
	}
	if f.Skip > 0 {
		o.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		o.SetLimit(f.Limit)
	}
	return o
}

// Find translates opts (which may be nil) into a find query.  The scope is
// an extra condition that all results must satisfy, such as the owner of
// the documents, and may be nil.
func (t *Translator) Find(scope bson.D, opts *Options) *Find {
	f := &Find{Filter: t.Match(scope, opts)}
	if opts != nil {
		f.Sort = t.sort(opts.Sort)
		f.Skip = opts.Pagination.skip()
		f.Limit = opts.Pagination.limit()
	}
	return f
}

// Match returns a filter document combining the scope, the filters and the
// search of opts.  All must be satisfied.
func (t *Translator) Match(scope bson.D, opts *Options) bson.D {
	var clauses []bson.D
	if len(scope) > 0 {
		clauses = append(clauses, scope)
	}
	if opts != nil {
		for _, f := range opts.Filters {
			if c := t.clause(f); c != nil {
				clauses = append(clauses, c)
			}
		}
		if c := t.search(opts.Search); c != nil {
			clauses = append(clauses, c)
		}
	}

	switch len(clauses) {
	case 0:
		return bson.D{}
	case 1:
		return clauses[0]
	}
	all := make(bson.A, len(clauses))
	for i := range clauses {
		all[i] = clauses[i]
	}
	return bson.D{{Key: "$and", Value: all}}
}

// clause translates one filter, or returns nil if it has no field
func (t *Translator) clause(f Filter) bson.D {
	field := t.alias(f.Field)
	if field == "" {
		return nil
	}
	cmp := comparison(f.Operator, t.coerce(field, f.Value))

	// A dotted path is an array field and a field of its elements
	if root, nested, found := strings.Cut(field, "."); found && root != "" && nested != "" {
		return bson.D{{Key: root, Value: bson.D{{Key: "$elemMatch", Value: bson.D{{Key: nested, Value: cmp}}}}}}
	}
	return bson.D{{Key: field, Value: cmp}}
}

// comparison returns eg. {$gt: 5}.  A list value with eq/ne means any/none of the list.
func comparison(op Operator, value interface{}) bson.D {
	if list, ok := asList(value); ok {
		switch op {
		case Eq:
			return bson.D{{Key: "$in", Value: list}}
		case Ne:
			return bson.D{{Key: "$nin", Value: list}}
		}
	}
	return bson.D{{Key: op.mongo(), Value: value}}
}

func (t *Translator) sort(sorts []Sort) bson.D {
	if len(sorts) == 0 {
		return nil
	}
	// All keys go in one document so that later keys break ties of earlier
	// ones, rather than each key re-sorting the whole result.
	doc := make(bson.D, 0, len(sorts))
	for _, s := range sorts {
		field := t.alias(s.Field)
		if field == "" {
			continue
		}
		dir := 1
		if s.Order == Desc {
			dir = -1
		}
		doc = append(doc, bson.E{Key: field, Value: dir})
	}
	return doc
}

func (t *Translator) search(s *Search) bson.D {
	if s == nil || s.Value == "" || len(s.Fields) == 0 {
		return nil
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(s.Value)}
	if !s.CaseSensitive {
		re.Options = "i"
	}
	or := make(bson.A, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f = t.alias(f); f != "" {
			or = append(or, bson.D{{Key: f, Value: re}})
		}
	}
	if len(or) == 0 {
		return nil
	}
	return bson.D{{Key: "$or", Value: or}}
}

func (t *Translator) alias(field string) string {
	field = strings.TrimSpace(field)
	if to, ok := t.opt.aliases[field]; ok {
		return to
	}
	return field
}

// coerce converts hex strings to ObjectIDs for ID fields
func (t *Translator) coerce(field string, value interface{}) interface{} {
	if !t.opt.idFields[field] {
		return value
	}
	if list, ok := asList(value); ok {
		r := make(bson.A, len(list))
		for i := range list {
			r[i] = toObjectID(list[i])
		}
		return r
	}
	return toObjectID(value)
}

func toObjectID(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		if id, err := primitive.ObjectIDFromHex(s); err == nil {
			return id
		}
	}
	return v
}

func asList(v interface{}) (bson.A, bool) {
	switch list := v.(type) {
	case bson.A:
		return list, true
	case []interface{}:
		return bson.A(list), true
	case []string:
		r := make(bson.A, len(list))
		for i := range list {
			r[i] = list[i]
		}
		return r, true
	}
	return nil, false
}
