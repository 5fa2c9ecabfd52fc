package graph

import (
	"context"

	"github.com/andrewwphillips/eggql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/model"
)

// limits of the limit argument of activity reads
const (
	defaultActivityLimit = 25
	maxActivityLimit     = 100
)

func activityLimit(limit *int) (int, error) {
	if limit == nil {
		return defaultActivityLimit, nil
	}
	if *limit < 1 || *limit > maxActivityLimit {
		return 0, apperror.NewInvalidArgument("limit must be between 1 and %d", maxActivityLimit)
	}
	return *limit, nil
}

func (r *Resolver) logActivity(ctx context.Context, input CreateActivityInput) (*Activity, error) {
	_, self, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.check(input); err != nil {
		return nil, err
	}
	object, err := objectID("objectId", input.ObjectID)
	if err != nil {
		return nil, err
	}
	if err := r.objectExists(ctx, input.ObjectType, object); err != nil {
		return nil, err
	}
	a := model.Activity{
		ActorID:    self,
		Verb:       enumName(model.ActivityVerbNames, input.Verb, 0),
		ObjectType: enumName(model.ActivityObjectTypeNames, input.ObjectType, 0),
		ObjectID:   object,
		Visibility: enumName(model.ActivityVisibilityNames, input.Visibility, 0),
	}
	if input.TargetID != nil {
		if input.TargetType == nil {
			return nil, apperror.NewInvalidArgument("targetType is required with targetId")
		}
		target, err := objectID("targetId", *input.TargetID)
		if err != nil {
			return nil, err
		}
		a.TargetID = &target
		a.TargetType = enumName(model.ActivityObjectTypeNames, *input.TargetType, 0)
	}
	if input.EventAt != nil {
		a.EventAt = input.EventAt.Std()
	}
	if input.Metadata != nil {
		a.Metadata = input.Metadata.Doc()
	}

	created, err := r.stores.Activities.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	return r.activity(created), nil
}

// objectExists reads only the ID of the object an activity refers to
func (r *Resolver) objectExists(ctx context.Context, objectType int, id primitive.ObjectID) error {
	var err error
	switch enumName(model.ActivityObjectTypeNames, objectType, 0) {
	case "User":
		_, err = r.stores.Users.ReadUserByID(ctx, id, "_id")
	case "Event":
		_, err = r.stores.Events.ReadEventByID(ctx, id, "_id")
	case "EventCategory":
		_, err = r.stores.Categories.ReadEventCategoryByID(ctx, id, "_id")
	}
	return err
}

// readActivitiesByActor returns what the viewer may see of the actor's
// latest activities, so fewer than limit may be returned
func (r *Resolver) readActivitiesByActor(ctx context.Context, actorID eggql.ID, limit *int) ([]Activity, error) {
	_, self, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	actor, err := objectID("actorId", actorID)
	if err != nil {
		return nil, err
	}
	n, err := activityLimit(limit)
	if err != nil {
		return nil, err
	}
	list, err := r.stores.Activities.ReadByActor(ctx, actor, n)
	if err != nil {
		return nil, err
	}
	if actor == self {
		return r.activities(list), nil
	}

	following, err := r.stores.Follows.ReadFollowing(ctx, self)
	if err != nil {
		return nil, err
	}
	follows := false
	for _, f := range following {
		if f.TargetUserID == actor {
			follows = true
			break
		}
	}
	visible := list[:0]
	for _, a := range list {
		if a.VisibleTo(self, follows) {
			visible = append(visible, a)
		}
	}
	return r.activities(visible), nil
}

// readFeed returns the latest activities of the caller and of the users the
// caller follows.  Private activities of others are left out.
func (r *Resolver) readFeed(ctx context.Context, limit *int) ([]Activity, error) {
	_, self, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	n, err := activityLimit(limit)
	if err != nil {
		return nil, err
	}
	following, err := r.stores.Follows.ReadFollowing(ctx, self)
	if err != nil {
		return nil, err
	}
	seen := map[primitive.ObjectID]bool{self: true}
	actors := []primitive.ObjectID{self}
	for _, f := range following {
		if !seen[f.TargetUserID] {
			seen[f.TargetUserID] = true
			actors = append(actors, f.TargetUserID)
		}
	}

	list, err := r.stores.Activities.ReadByActorIDs(ctx, actors, n)
	if err != nil {
		return nil, err
	}
	visible := list[:0]
	for _, a := range list {
		if a.VisibleTo(self, true) {
			visible = append(visible, a)
		}
	}
	return r.activities(visible), nil
}
