package dao

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/andrewwphillips/ntlango/internal/model"
)

// Connect opens a client for uri and checks that the server answers
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging MongoDB: %w", err)
	}
	return client, nil
}

func index(unique bool, keys ...string) mongo.IndexModel {
	doc := make(bson.D, len(keys))
	for i, k := range keys {
		doc[i] = bson.E{Key: k, Value: 1}
	}
	m := mongo.IndexModel{Keys: doc}
	if unique {
		m.Options = options.Index().SetUnique(true)
	}
	return m
}

// indexes are what the queries and uniqueness rules need, per collection
var indexes = map[string][]mongo.IndexModel{
	model.UserCollection: {
		index(true, "email"),
		index(true, "username"),
		index(false, "interests"),
	},
	model.EventCollection: {
		index(true, "slug"),
		index(false, "status"),
		index(false, "eventCategoryList"),
		index(false, "startDateTime"),
	},
	model.EventCategoryCollection: {
		index(true, "slug"),
		index(true, "name"),
	},
	model.EventCategoryGroupCollection: {
		index(true, "slug"),
	},
	model.EventParticipantCollection: {
		index(true, "eventId", "userId"),
	},
	model.FollowCollection: {
		index(true, "followerUserId", "targetUserId"),
		index(false, "targetUserId"),
	},
	model.ActivityCollection: {
		index(false, "actorId", "eventAt"),
	},
}

// EnsureIndexes creates any missing indexes.  Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", collection, err)
		}
	}
	return nil
}
