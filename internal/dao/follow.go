package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/model"
)

// FollowDAO records which users follow which
type FollowDAO struct {
	base
}

func followKey(follower, target primitive.ObjectID) bson.D {
	return bson.D{{Key: "followerUserId", Value: follower}, {Key: "targetUserId", Value: target}}
}

// Follow makes follower follow target.  Following twice is not an error.
func (d *FollowDAO) Follow(ctx context.Context, follower, target primitive.ObjectID) (*model.Follow, error) {
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: d.now()}}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	start := time.Now()
	var f model.Follow
	err := d.coll.FindOneAndUpdate(ctx, followKey(follower, target), update, opts).Decode(&f)
	if err = d.done(ctx, "follow", start, err); err != nil {
		return nil, err
	}
	return &f, nil
}

// Unfollow removes the follow, which must exist
func (d *FollowDAO) Unfollow(ctx context.Context, follower, target primitive.ObjectID) error {
	start := time.Now()
	res, err := d.coll.DeleteOne(ctx, followKey(follower, target))
	if err = d.done(ctx, "unfollow", start, err); err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperror.New(apperror.NotFound, "user "+follower.Hex()+" does not follow "+target.Hex(), nil)
	}
	return nil
}

// ReadFollowing lists who the user follows, newest first
func (d *FollowDAO) ReadFollowing(ctx context.Context, userID primitive.ObjectID) ([]model.Follow, error) {
	return findAll[model.Follow](ctx, &d.base, "following", bson.D{{Key: "followerUserId", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// ReadFollowers lists who follows the user, newest first
func (d *FollowDAO) ReadFollowers(ctx context.Context, userID primitive.ObjectID) ([]model.Follow, error) {
	return findAll[model.Follow](ctx, &d.base, "followers", bson.D{{Key: "targetUserId", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}
