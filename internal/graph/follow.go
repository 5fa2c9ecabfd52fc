package graph

import (
	"context"

	"github.com/andrewwphillips/eggql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/auth"
)

// caller returns the ID of the logged-in user
func caller(ctx context.Context) (*auth.Claims, primitive.ObjectID, error) {
	claims, err := auth.Require(ctx)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, primitive.NilObjectID, apperror.NewUnauthenticated("invalid token")
	}
	return claims, id, nil
}

func (r *Resolver) readFollowing(ctx context.Context) ([]Follow, error) {
	_, self, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	list, err := r.stores.Follows.ReadFollowing(ctx, self)
	if err != nil {
		return nil, err
	}
	return r.follows(list), nil
}

func (r *Resolver) readFollowers(ctx context.Context, userID eggql.ID) ([]Follow, error) {
	id, err := objectID("userId", userID)
	if err != nil {
		return nil, err
	}
	list, err := r.stores.Follows.ReadFollowers(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.follows(list), nil
}

func (r *Resolver) followUser(ctx context.Context, userID eggql.ID) (*Follow, error) {
	_, self, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	target, err := objectID("userId", userID)
	if err != nil {
		return nil, err
	}
	if target == self {
		return nil, apperror.NewInvalidArgument("you cannot follow yourself")
	}
	if _, err := r.stores.Users.ReadUserByID(ctx, target, "_id"); err != nil {
		return nil, err
	}
	f, err := r.stores.Follows.Follow(ctx, self, target)
	if err != nil {
		return nil, err
	}
	return r.follow(f), nil
}

func (r *Resolver) unfollowUser(ctx context.Context, userID eggql.ID) (bool, error) {
	_, self, err := caller(ctx)
	if err != nil {
		return false, err
	}
	target, err := objectID("userId", userID)
	if err != nil {
		return false, err
	}
	if err := r.stores.Follows.Unfollow(ctx, self, target); err != nil {
		return false, err
	}
	return true, nil
}
