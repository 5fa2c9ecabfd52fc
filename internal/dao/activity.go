package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andrewwphillips/ntlango/internal/model"
)

// DefaultActivityLimit is used when a read of activities gives no limit
const DefaultActivityLimit = 25

// ActivityDAO records what users do, for activity streams and feeds
type ActivityDAO struct {
	base
}

// Create records an activity.  EventAt defaults to now and visibility to PUBLIC.
func (d *ActivityDAO) Create(ctx context.Context, a model.Activity) (*model.Activity, error) {
	a.ID = primitive.NilObjectID
	a.CreatedAt = d.now()
	if a.EventAt.IsZero() {
		a.EventAt = a.CreatedAt
	}
	a.EventAt = a.EventAt.UTC()
	if a.Visibility == "" {
		a.Visibility = model.VisibilityPublic
	}

	start := time.Now()
	res, err := d.coll.InsertOne(ctx, a)
	if err = d.done(ctx, "insert", start, err); err != nil {
		return nil, err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return &a, nil
}

func newestFirst(limit int) *options.FindOptions {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return options.Find().
		SetSort(bson.D{{Key: "eventAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
}

// ReadByActor returns the latest activities of one user, newest first
func (d *ActivityDAO) ReadByActor(ctx context.Context, actorID primitive.ObjectID, limit int) ([]model.Activity, error) {
	return findAll[model.Activity](ctx, &d.base, "byActor", bson.D{{Key: "actorId", Value: actorID}}, newestFirst(limit))
}

// ReadByActorIDs returns the latest activities of any of the users, newest first
func (d *ActivityDAO) ReadByActorIDs(ctx context.Context, actorIDs []primitive.ObjectID, limit int) ([]model.Activity, error) {
	if len(actorIDs) == 0 {
		return []model.Activity{}, nil
	}
	filter := bson.D{{Key: "actorId", Value: bson.D{{Key: "$in", Value: actorIDs}}}}
	return findAll[model.Activity](ctx, &d.base, "byActors", filter, newestFirst(limit))
}
