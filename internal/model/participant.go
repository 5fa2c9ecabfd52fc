package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantStatusNames are the stored (and GraphQL enum) values of EventParticipant.Status
var ParticipantStatusNames = []string{"Going", "Interested", "Waitlisted", "Cancelled", "CheckedIn"}

// Participant status values used by the DAO
const (
	ParticipantGoing     = "Going"
	ParticipantCancelled = "Cancelled"
)

// EventParticipant records a user's registration for an event.  There is at
// most one per event and user.
type EventParticipant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   primitive.ObjectID `bson:"eventId"`
	UserID    primitive.ObjectID `bson:"userId"`
	Status    string             `bson:"status"`
	Quantity  int                `bson:"quantity"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// Follow records that one user follows another
type Follow struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FollowerID   primitive.ObjectID `bson:"followerUserId"`
	TargetUserID primitive.ObjectID `bson:"targetUserId"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// DashboardStats are totals shown to administrators
type DashboardStats struct {
	EventsByStatus      map[string]int64
	EventCategories     int64
	EventCategoryGroups int64
	Users               int64
	Admins              int64
	Hosts               int64
}
