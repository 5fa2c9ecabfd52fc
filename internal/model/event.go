package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventStatusNames are the stored (and GraphQL enum) values of Event.Status
var EventStatusNames = []string{"DRAFT", "PUBLISHED", "UPCOMING", "CANCELLED", "COMPLETED"}

// Media of an event
type Media struct {
	FeaturedImageURL string `bson:"featuredImageUrl,omitempty"`
	OtherMediaData   bson.D `bson:"otherMediaData,omitempty"`
}

// EventDetails are the fields shared by the stored and the populated forms of an event
type EventDetails struct {
	Slug              string    `bson:"slug"`
	Title             string    `bson:"title"`
	Summary           string    `bson:"summary,omitempty"`
	Description       string    `bson:"description"`
	StartDateTime     time.Time `bson:"startDateTime"`
	EndDateTime       time.Time `bson:"endDateTime"`
	RecurrenceRule    string    `bson:"recurrenceRule,omitempty"`
	Location          string    `bson:"location"`
	Capacity          *int      `bson:"capacity,omitempty"`
	Status            string    `bson:"status"`
	Tags              bson.D    `bson:"tags,omitempty"`
	Media             Media     `bson:"media"`
	AdditionalDetails bson.D    `bson:"additionalDetails,omitempty"`
	PrivacySetting    string    `bson:"privacySetting,omitempty"`
	EventLink         string    `bson:"eventLink,omitempty"`
	CreatedAt         time.Time `bson:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt"`
}

// Event is the stored form where related documents are referenced by ID
type Event struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty"`
	EventDetails      `bson:",inline"`
	EventCategoryList []primitive.ObjectID `bson:"eventCategoryList"`
	OrganizerList     []primitive.ObjectID `bson:"organizerList"`
	RSVPList          []primitive.ObjectID `bson:"rsvpList"`
}

// EventView is an event read through the pipeline that looks up its
// categories and organizers.  RSVPs stay as IDs since the list can be long.
type EventView struct {
	ID                primitive.ObjectID   `bson:"_id"`
	EventDetails      `bson:",inline"`
	EventCategoryList []EventCategory      `bson:"eventCategoryList"`
	OrganizerList     []User               `bson:"organizerList"`
	RSVPList          []primitive.ObjectID `bson:"rsvpList"`
}

// EventUpdate holds the fields of a partial update, nil fields are unchanged
type EventUpdate struct {
	ID                primitive.ObjectID
	Title             *string
	Summary           *string
	Description       *string
	StartDateTime     *time.Time
	EndDateTime       *time.Time
	RecurrenceRule    *string
	Location          *string
	Capacity          *int
	Status            *string
	Tags              bson.D
	Media             *Media
	AdditionalDetails bson.D
	PrivacySetting    *string
	EventLink         *string
	EventCategoryList []primitive.ObjectID
	OrganizerList     []primitive.ObjectID
}
