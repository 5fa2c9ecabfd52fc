package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityVerbNames are the stored (and GraphQL enum) values of Activity.Verb
var ActivityVerbNames = []string{"Followed", "RSVPd", "Commented", "Published", "Updated", "CheckedIn", "Shared"}

// ActivityObjectTypeNames are the kinds of thing an activity is about
var ActivityObjectTypeNames = []string{"User", "Event", "EventCategory"}

// ActivityVisibilityNames are who may see an activity, PUBLIC first as the default
var ActivityVisibilityNames = []string{VisibilityPublic, VisibilityFollowers, VisibilityPrivate}

// Activity visibility values
const (
	VisibilityPublic    = "PUBLIC"
	VisibilityFollowers = "FOLLOWERS" // the actor and users following the actor
	VisibilityPrivate   = "PRIVATE"   // only the actor
)

// Activity is an entry in a user's activity stream, eg. "ann RSVPd to Jazz Night"
type Activity struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	ActorID    primitive.ObjectID  `bson:"actorId"`
	Verb       string              `bson:"verb"`
	ObjectType string              `bson:"objectType"`
	ObjectID   primitive.ObjectID  `bson:"objectId"`
	TargetType string              `bson:"targetType,omitempty"`
	TargetID   *primitive.ObjectID `bson:"targetId,omitempty"`
	Visibility string              `bson:"visibility"`
	EventAt    time.Time           `bson:"eventAt"`
	Metadata   bson.D              `bson:"metadata,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt"`
}

// VisibleTo says whether the viewer may see the activity.  Missing
// visibility is treated as public.
func (a *Activity) VisibleTo(viewer primitive.ObjectID, followsActor bool) bool {
	if viewer == a.ActorID {
		return true
	}
	switch a.Visibility {
	case VisibilityPrivate:
		return false
	case VisibilityFollowers:
		return followsActor
	}
	return true
}
