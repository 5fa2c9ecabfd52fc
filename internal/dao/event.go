package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/query"
	"github.com/andrewwphillips/ntlango/internal/slug"
)

// EventDAO reads and writes events.  Reads go through an aggregation
// pipeline so that clients can filter on category and organizer fields.
type EventDAO struct {
	base
	translator *query.Translator
}

func newEventDAO(b base) *EventDAO {
	return &EventDAO{
		base: b,
		translator: query.NewTranslator(
			query.WithLookup(model.EventCategoryCollection, "eventCategoryList", "_id", "eventCategoryList"),
			query.WithLookup(model.UserCollection, "organizerList", "_id", "organizerList"),
			query.WithUnset("organizerList.password"),
			query.WithAlias("eventId", "_id"),
			query.WithAlias("eventCategoryList.eventCategoryId", "eventCategoryList._id"),
			query.WithAlias("organizerList.userId", "organizerList._id"),
			query.WithIDFields("_id", "eventCategoryList._id", "organizerList._id", "rsvpList"),
		),
	}
}

// Create adds an event, making its slug from the title, and returns it with
// its categories and organizers
func (d *EventDAO) Create(ctx context.Context, e model.Event) (*model.EventView, error) {
	if e.Slug == "" {
		e.Slug = slug.Make(e.Title)
	}
	if e.Status == "" {
		e.Status = model.EventStatusNames[0]
	}
	e.ID = primitive.NilObjectID
	e.EventCategoryList = nonNil(e.EventCategoryList)
	e.OrganizerList = nonNil(e.OrganizerList)
	e.RSVPList = nonNil(e.RSVPList)
	e.StartDateTime = e.StartDateTime.UTC()
	e.EndDateTime = e.EndDateTime.UTC()
	e.CreatedAt = d.now()
	e.UpdatedAt = e.CreatedAt

	start := time.Now()
	res, err := d.coll.InsertOne(ctx, e)
	if err = d.done(ctx, "insert", start, err); err != nil {
		return nil, err
	}
	return d.ReadEventByID(ctx, res.InsertedID.(primitive.ObjectID))
}

func (d *EventDAO) readOne(ctx context.Context, by string, value interface{}, display string, projections []string) (*model.EventView, error) {
	match := bson.D{{Key: "$match", Value: bson.D{{Key: by, Value: value}}}}
	pipeline := d.translator.Pipeline(nil, match)
	if p := projection(projections); len(p) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: p}})
	}
	views, err := aggregateAll[model.EventView](ctx, &d.base, "aggregateOne", pipeline)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperror.NewNotFound(d.entity, by, display)
	}
	return &views[0], nil
}

// ReadEventByID returns one event with its categories and organizers.  Given
// projections, only those fields of the joined view are returned.
func (d *EventDAO) ReadEventByID(ctx context.Context, id primitive.ObjectID, projections ...string) (*model.EventView, error) {
	return d.readOne(ctx, "_id", id, id.Hex(), projections)
}

// ReadEventBySlug returns one event with its categories and organizers
func (d *EventDAO) ReadEventBySlug(ctx context.Context, eventSlug string) (*model.EventView, error) {
	return d.readOne(ctx, "slug", eventSlug, eventSlug, nil)
}

// ReadEvents lists events matching opts (which may be nil).  Filters may use
// looked-up fields such as "eventCategoryList.name".
func (d *EventDAO) ReadEvents(ctx context.Context, opts *query.Options) ([]model.EventView, error) {
	return aggregateAll[model.EventView](ctx, &d.base, "aggregate", d.translator.Pipeline(opts))
}

// UpdateEvent changes the non-nil fields of u.  The slug does not change so
// that links to the event keep working.
func (d *EventDAO) UpdateEvent(ctx context.Context, u model.EventUpdate) (*model.EventView, error) {
	s := setter{}
	s.str("title", u.Title)
	s.str("summary", u.Summary)
	s.str("description", u.Description)
	if u.StartDateTime != nil {
		s.set("startDateTime", u.StartDateTime.UTC())
	}
	if u.EndDateTime != nil {
		s.set("endDateTime", u.EndDateTime.UTC())
	}
	s.str("recurrenceRule", u.RecurrenceRule)
	s.str("location", u.Location)
	if u.Capacity != nil {
		s.set("capacity", *u.Capacity)
	}
	s.str("status", u.Status)
	s.doc("tags", u.Tags)
	if u.Media != nil {
		s.set("media", *u.Media)
	}
	s.doc("additionalDetails", u.AdditionalDetails)
	s.str("privacySetting", u.PrivacySetting)
	s.str("eventLink", u.EventLink)
	s.ids("eventCategoryList", u.EventCategoryList)
	s.ids("organizerList", u.OrganizerList)
	s.set("updatedAt", d.now())

	if err := d.updateByID(ctx, "update", u.ID, s.update()); err != nil {
		return nil, err
	}
	return d.ReadEventByID(ctx, u.ID)
}

func (d *EventDAO) updateByID(ctx context.Context, op string, id primitive.ObjectID, update bson.D) error {
	start := time.Now()
	res, err := d.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err = d.done(ctx, op, start, err); err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound(d.entity, "id", id.Hex())
	}
	return nil
}

// DeleteEventByID removes an event and returns what it was
func (d *EventDAO) DeleteEventByID(ctx context.Context, id primitive.ObjectID) (*model.EventView, error) {
	view, err := d.ReadEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := d.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err = d.done(ctx, "delete", start, err); err != nil {
		return nil, err
	}
	if res.DeletedCount == 0 {
		return nil, apperror.NewNotFound(d.entity, "id", id.Hex()) // deleted by someone else
	}
	return view, nil
}

// RSVP adds users to the RSVP list.  Users already in the list are not added again.
func (d *EventDAO) RSVP(ctx context.Context, eventID primitive.ObjectID, userIDs []primitive.ObjectID) (*model.EventView, error) {
	update := bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "rsvpList", Value: bson.D{{Key: "$each", Value: nonNil(userIDs)}}}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: d.now()}}},
	}
	if err := d.updateByID(ctx, "rsvp", eventID, update); err != nil {
		return nil, err
	}
	return d.ReadEventByID(ctx, eventID)
}

// CancelRSVP removes users from the RSVP list.  Users not in the list are ignored.
func (d *EventDAO) CancelRSVP(ctx context.Context, eventID primitive.ObjectID, userIDs []primitive.ObjectID) (*model.EventView, error) {
	update := bson.D{
		{Key: "$pull", Value: bson.D{{Key: "rsvpList", Value: bson.D{{Key: "$in", Value: nonNil(userIDs)}}}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: d.now()}}},
	}
	if err := d.updateByID(ctx, "cancelRsvp", eventID, update); err != nil {
		return nil, err
	}
	return d.ReadEventByID(ctx, eventID)
}

// CountByStatus returns the number of events with each status
func (d *EventDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.D{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	type count struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	counts, err := aggregateAll[count](ctx, &d.base, "countByStatus", pipeline)
	if err != nil {
		return nil, err
	}
	r := make(map[string]int64, len(model.EventStatusNames))
	for _, s := range model.EventStatusNames {
		r[s] = 0
	}
	for _, c := range counts {
		r[c.Status] = c.Count
	}
	return r, nil
}
