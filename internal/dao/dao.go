// Package dao holds the data access objects, the only code that talks to
// MongoDB.  Each method is a single best-effort round trip (or two for
// writes that return a populated view) with no retries or transactions.
// Driver errors are mapped to the apperror taxonomy, and unexpected ones are
// logged here since the client only sees a generic message.
package dao

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/metrics"
	"github.com/andrewwphillips/ntlango/internal/model"
)

type daoOptions struct {
	log     *slog.Logger
	metrics *metrics.Collection
	now     func() time.Time
}

// WithLogger sets the logger for store errors
func WithLogger(log *slog.Logger) func(*daoOptions) {
	return func(opt *daoOptions) {
		opt.log = log
	}
}

// WithMetrics records the duration of every operation
func WithMetrics(m *metrics.Collection) func(*daoOptions) {
	return func(opt *daoOptions) {
		opt.metrics = m
	}
}

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) func(*daoOptions) {
	return func(opt *daoOptions) {
		opt.now = now
	}
}

// DAOs is the set of data access objects sharing one database
type DAOs struct {
	Users        *UserDAO
	Events       *EventDAO
	Categories   *EventCategoryDAO
	Groups       *EventCategoryGroupDAO
	Participants *EventParticipantDAO
	Follows      *FollowDAO
	Activities   *ActivityDAO
	Stats        *StatsDAO
}

// New creates all the DAOs for db
func New(db *mongo.Database, opts ...func(*daoOptions)) *DAOs {
	opt := daoOptions{log: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(&opt)
	}
	r := &DAOs{
		Users:        newUserDAO(newBase(db, model.UserCollection, "User", opt)),
		Events:       newEventDAO(newBase(db, model.EventCollection, "Event", opt)),
		Categories:   newEventCategoryDAO(newBase(db, model.EventCategoryCollection, "Event Category", opt)),
		Groups:       newEventCategoryGroupDAO(newBase(db, model.EventCategoryGroupCollection, "Event Category Group", opt)),
		Participants: &EventParticipantDAO{base: newBase(db, model.EventParticipantCollection, "Event Participant", opt)},
		Follows:      &FollowDAO{base: newBase(db, model.FollowCollection, "Follow", opt)},
		Activities:   &ActivityDAO{base: newBase(db, model.ActivityCollection, "Activity", opt)},
	}
	r.Stats = &StatsDAO{daos: r}
	return r
}

// base has what every DAO needs
type base struct {
	coll   *mongo.Collection
	entity string // used in error messages
	opt    daoOptions
}

func newBase(db *mongo.Database, collection, entity string, opt daoOptions) base {
	return base{coll: db.Collection(collection), entity: entity, opt: opt}
}

func (b *base) now() time.Time {
	return b.opt.now().UTC().Truncate(time.Millisecond) // BSON dates have ms precision
}

// done records the operation and maps err for the client
func (b *base) done(ctx context.Context, op string, start time.Time, err error) error {
	b.opt.metrics.ObserveStore(b.coll.Name(), op, start, err)
	if err == nil {
		return nil
	}
	mapped := apperror.FromStore(b.entity, err)
	if apperror.KindOf(mapped) == apperror.Internal {
		b.opt.log.ErrorContext(ctx, "store operation failed",
			"collection", b.coll.Name(), "operation", op, "error", err)
	}
	return mapped
}

// notFound gives a more helpful message than done for a missing document
func (b *base) notFound(ctx context.Context, op string, start time.Time, err error, by, value string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		b.opt.metrics.ObserveStore(b.coll.Name(), op, start, nil)
		return apperror.NewNotFound(b.entity, by, value)
	}
	return b.done(ctx, op, start, err)
}

// findAll runs a find and decodes every result into a slice of T
func findAll[T any](ctx context.Context, b *base, op string, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	start := time.Now()
	cursor, err := b.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, b.done(ctx, op, start, err)
	}
	r := []T{}
	err = cursor.All(ctx, &r)
	return r, b.done(ctx, op, start, err)
}

// aggregateAll runs a pipeline and decodes every result into a slice of T
func aggregateAll[T any](ctx context.Context, b *base, op string, pipeline mongo.Pipeline) ([]T, error) {
	start := time.Now()
	cursor, err := b.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, b.done(ctx, op, start, err)
	}
	r := []T{}
	err = cursor.All(ctx, &r)
	return r, b.done(ctx, op, start, err)
}

// projection makes an inclusion projection, or one that excludes the
// hidden fields when no fields are asked for
func projection(fields []string, hidden ...string) bson.D {
	doc := bson.D{}
	for _, f := range fields {
		if f == "" || contains(hidden, f) {
			continue
		}
		doc = append(doc, bson.E{Key: f, Value: 1})
	}
	if len(doc) > 0 {
		return doc
	}
	for _, h := range hidden {
		doc = append(doc, bson.E{Key: h, Value: 0})
	}
	return doc
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// setter builds the $set document of a partial update
type setter bson.D

func (s *setter) str(key string, v *string) {
	if v != nil {
		*s = append(*s, bson.E{Key: key, Value: *v})
	}
}

func (s *setter) set(key string, v interface{}) {
	*s = append(*s, bson.E{Key: key, Value: v})
}

func (s *setter) ids(key string, v []primitive.ObjectID) {
	if v != nil {
		*s = append(*s, bson.E{Key: key, Value: v})
	}
}

func (s *setter) doc(key string, v bson.D) {
	if v != nil {
		*s = append(*s, bson.E{Key: key, Value: v})
	}
}

func (s setter) update() bson.D {
	return bson.D{{Key: "$set", Value: bson.D(s)}}
}

func nonNil(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return []primitive.ObjectID{}
	}
	return ids
}

// hexes converts valid hex strings to ObjectIDs, skipping others
func hexes(list []string) []primitive.ObjectID {
	r := make([]primitive.ObjectID, 0, len(list))
	for _, s := range list {
		if id, err := primitive.ObjectIDFromHex(s); err == nil {
			r = append(r, id)
		}
	}
	return r
}
