package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/query"
	"github.com/andrewwphillips/ntlango/internal/slug"
)

// EventCategoryDAO reads and writes event categories
type EventCategoryDAO struct {
	base
	translator *query.Translator
}

func newEventCategoryDAO(b base) *EventCategoryDAO {
	return &EventCategoryDAO{
		base: b,
		translator: query.NewTranslator(
			query.WithAlias("eventCategoryId", "_id"),
			query.WithIDFields("_id"),
		),
	}
}

// Create adds a category with a slug made from its name
func (d *EventCategoryDAO) Create(ctx context.Context, c model.EventCategory) (*model.EventCategory, error) {
	c.ID = primitive.NilObjectID
	c.Slug = slug.Make(c.Name)
	c.CreatedAt = d.now()
	c.UpdatedAt = c.CreatedAt

	start := time.Now()
	res, err := d.coll.InsertOne(ctx, c)
	if err = d.done(ctx, "insert", start, err); err != nil {
		return nil, err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return &c, nil
}

func (d *EventCategoryDAO) readOne(ctx context.Context, by string, value interface{}, display string, projections []string) (*model.EventCategory, error) {
	opts := options.FindOne()
	if p := projection(projections); len(p) > 0 {
		opts.SetProjection(p)
	}
	start := time.Now()
	var c model.EventCategory
	err := d.coll.FindOne(ctx, bson.D{{Key: by, Value: value}}, opts).Decode(&c)
	if err = d.notFound(ctx, "findOne", start, err, by, display); err != nil {
		return nil, err
	}
	return &c, nil
}

// ReadEventCategoryByID returns one category, optionally with only the given
// fields
func (d *EventCategoryDAO) ReadEventCategoryByID(ctx context.Context, id primitive.ObjectID, projections ...string) (*model.EventCategory, error) {
	return d.readOne(ctx, "_id", id, id.Hex(), projections)
}

// ReadEventCategoryBySlug returns one category
func (d *EventCategoryDAO) ReadEventCategoryBySlug(ctx context.Context, categorySlug string) (*model.EventCategory, error) {
	return d.readOne(ctx, "slug", categorySlug, categorySlug, nil)
}

// ReadEventCategories lists categories matching opts (which may be nil)
func (d *EventCategoryDAO) ReadEventCategories(ctx context.Context, opts *query.Options) ([]model.EventCategory, error) {
	f := d.translator.Find(nil, opts)
	return findAll[model.EventCategory](ctx, &d.base, "find", f.Filter, f.Options())
}

// UpdateEventCategory changes the non-nil fields of u.  A new name also
// changes the slug.
func (d *EventCategoryDAO) UpdateEventCategory(ctx context.Context, u model.EventCategoryUpdate) (*model.EventCategory, error) {
	s := setter{}
	s.str("name", u.Name)
	if u.Name != nil {
		s.set("slug", slug.Make(*u.Name))
	}
	s.str("iconName", u.IconName)
	s.str("description", u.Description)
	s.str("color", u.Color)
	s.set("updatedAt", d.now())

	start := time.Now()
	var c model.EventCategory
	err := d.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: u.ID}}, s.update(),
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&c)
	if err = d.notFound(ctx, "update", start, err, "id", u.ID.Hex()); err != nil {
		return nil, err
	}
	return &c, nil
}

func (d *EventCategoryDAO) deleteOne(ctx context.Context, by string, value interface{}, display string) (*model.EventCategory, error) {
	start := time.Now()
	var c model.EventCategory
	err := d.coll.FindOneAndDelete(ctx, bson.D{{Key: by, Value: value}}).Decode(&c)
	if err = d.notFound(ctx, "delete", start, err, by, display); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteEventCategoryByID removes and returns a category
func (d *EventCategoryDAO) DeleteEventCategoryByID(ctx context.Context, id primitive.ObjectID) (*model.EventCategory, error) {
	return d.deleteOne(ctx, "_id", id, id.Hex())
}

// DeleteEventCategoryBySlug removes and returns a category
func (d *EventCategoryDAO) DeleteEventCategoryBySlug(ctx context.Context, categorySlug string) (*model.EventCategory, error) {
	return d.deleteOne(ctx, "slug", categorySlug, categorySlug)
}

// Count returns the number of categories
func (d *EventCategoryDAO) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := d.coll.CountDocuments(ctx, bson.D{})
	return n, d.done(ctx, "count", start, err)
}
