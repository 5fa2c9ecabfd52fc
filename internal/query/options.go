package query

// options.go handles options that control how a Translator builds queries.
// As in eggql, options are closures that set fields of an unexported struct.

import (
	"go.mongodb.org/mongo-driver/bson"
)

type translatorOptions struct {
	stages   []bson.D          // stages that always start a pipeline (after any caller supplied stages)
	idFields map[string]bool   // paths whose hex string values are converted to ObjectIDs
	aliases  map[string]string // API field name -> stored field name
}

// WithLookup adds a $lookup stage that replaces the references in localField
// with the matching documents from the "from" collection.  Lookups always
// come before filtering so that filters can use the joined fields.
func WithLookup(from, localField, foreignField, as string) func(*translatorOptions) {
	return func(opt *translatorOptions) {
		opt.stages = append(opt.stages, bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: foreignField},
			{Key: "as", Value: as},
		}}})
	}
}

// WithUnset removes fields after the lookups, eg. password hashes of joined users
func WithUnset(fields ...string) func(*translatorOptions) {
	return func(opt *translatorOptions) {
		list := make(bson.A, len(fields))
		for i, f := range fields {
			list[i] = f
		}
		opt.stages = append(opt.stages, bson.D{{Key: "$unset", Value: list}})
	}
}

// WithIDFields names field paths holding ObjectIDs.  A filter on one of
// these paths with a valid hex string value (or list of them) compares
// against the ObjectID instead of the string.
func WithIDFields(paths ...string) func(*translatorOptions) {
	return func(opt *translatorOptions) {
		if opt.idFields == nil {
			opt.idFields = make(map[string]bool)
		}
		for _, p := range paths {
			opt.idFields[p] = true
		}
	}
}

// WithAlias maps a field path used by clients to the stored path, eg. "eventId" to "_id"
func WithAlias(from, to string) func(*translatorOptions) {
	return func(opt *translatorOptions) {
		if opt.aliases == nil {
			opt.aliases = make(map[string]string)
		}
		opt.aliases[from] = to
	}
}
