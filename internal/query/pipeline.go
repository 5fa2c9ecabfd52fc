package query

// pipeline.go builds aggregation pipelines for queries that need $lookup

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Pipeline translates opts (which may be nil) into aggregation stages in
// this order:
//
//	pre stages (eg. a $match on _id), lookups and other fixed stages,
//	$match, $sort, $skip, $limit
//
// Filtering comes before pagination so that skip and limit count matching
// documents only.  All sort keys are put in a single $sort stage.
func (t *Translator) Pipeline(opts *Options, pre ...bson.D) mongo.Pipeline {
	pipeline := make(mongo.Pipeline, 0, len(pre)+len(t.opt.stages)+4)
	pipeline = append(pipeline, pre...)
	pipeline = append(pipeline, t.opt.stages...)
	if opts == nil {
		return pipeline
	}

	if match := t.Match(nil, opts); len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	if sort := t.sort(opts.Sort); len(sort) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	if skip := opts.Pagination.skip(); skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: skip}})
	}
	if limit := opts.Pagination.limit(); limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	return pipeline
}
