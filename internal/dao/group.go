package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/query"
	"github.com/andrewwphillips/ntlango/internal/slug"
)

// EventCategoryGroupDAO reads and writes category groups, which are always
// returned with their categories looked up
type EventCategoryGroupDAO struct {
	base
	translator *query.Translator
}

func newEventCategoryGroupDAO(b base) *EventCategoryGroupDAO {
	return &EventCategoryGroupDAO{
		base: b,
		translator: query.NewTranslator(
			query.WithLookup(model.EventCategoryCollection, "eventCategoryList", "_id", "eventCategoryList"),
			query.WithAlias("eventCategoryGroupId", "_id"),
			query.WithAlias("eventCategoryList.eventCategoryId", "eventCategoryList._id"),
			query.WithIDFields("_id", "eventCategoryList._id"),
		),
	}
}

// Create adds a group with a slug made from its name
func (d *EventCategoryGroupDAO) Create(ctx context.Context, g model.EventCategoryGroup) (*model.EventCategoryGroupView, error) {
	g.ID = primitive.NilObjectID
	g.Slug = slug.Make(g.Name)
	g.EventCategoryList = nonNil(g.EventCategoryList)
	g.CreatedAt = d.now()
	g.UpdatedAt = g.CreatedAt

	start := time.Now()
	res, err := d.coll.InsertOne(ctx, g)
	if err = d.done(ctx, "insert", start, err); err != nil {
		return nil, err
	}
	return d.readOne(ctx, "_id", res.InsertedID, res.InsertedID.(primitive.ObjectID).Hex())
}

func (d *EventCategoryGroupDAO) readOne(ctx context.Context, by string, value interface{}, display string) (*model.EventCategoryGroupView, error) {
	match := bson.D{{Key: "$match", Value: bson.D{{Key: by, Value: value}}}}
	views, err := aggregateAll[model.EventCategoryGroupView](ctx, &d.base, "aggregateOne", d.translator.Pipeline(nil, match))
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperror.NewNotFound(d.entity, by, display)
	}
	return &views[0], nil
}

// ReadEventCategoryGroupBySlug returns one group
func (d *EventCategoryGroupDAO) ReadEventCategoryGroupBySlug(ctx context.Context, groupSlug string) (*model.EventCategoryGroupView, error) {
	return d.readOne(ctx, "slug", groupSlug, groupSlug)
}

// ReadEventCategoryGroups lists groups matching opts (which may be nil)
func (d *EventCategoryGroupDAO) ReadEventCategoryGroups(ctx context.Context, opts *query.Options) ([]model.EventCategoryGroupView, error) {
	return aggregateAll[model.EventCategoryGroupView](ctx, &d.base, "aggregate", d.translator.Pipeline(opts))
}

// UpdateEventCategoryGroup changes the non-nil fields of u.  A new name also
// changes the slug.
func (d *EventCategoryGroupDAO) UpdateEventCategoryGroup(ctx context.Context, u model.EventCategoryGroupUpdate) (*model.EventCategoryGroupView, error) {
	s := setter{}
	s.str("name", u.Name)
	if u.Name != nil {
		s.set("slug", slug.Make(*u.Name))
	}
	s.ids("eventCategoryList", u.EventCategoryList)
	s.set("updatedAt", d.now())

	start := time.Now()
	res, err := d.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: u.ID}}, s.update())
	if err = d.done(ctx, "update", start, err); err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, apperror.NewNotFound(d.entity, "id", u.ID.Hex())
	}
	return d.readOne(ctx, "_id", u.ID, u.ID.Hex())
}

// DeleteEventCategoryGroupBySlug removes a group and returns what it was
func (d *EventCategoryGroupDAO) DeleteEventCategoryGroupBySlug(ctx context.Context, groupSlug string) (*model.EventCategoryGroupView, error) {
	view, err := d.ReadEventCategoryGroupBySlug(ctx, groupSlug)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := d.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: view.ID}}, options.Delete())
	if err = d.done(ctx, "delete", start, err); err != nil {
		return nil, err
	}
	if res.DeletedCount == 0 {
		return nil, apperror.NewNotFound(d.entity, "slug", groupSlug)
	}
	return view, nil
}

// Count returns the number of groups
func (d *EventCategoryGroupDAO) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := d.coll.CountDocuments(ctx, bson.D{})
	return n, d.done(ctx, "count", start, err)
}
