package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventCategory classifies events, eg. "Music"
type EventCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Slug        string             `bson:"slug"`
	Name        string             `bson:"name"`
	IconName    string             `bson:"iconName"`
	Description string             `bson:"description"`
	Color       string             `bson:"color,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// EventCategoryUpdate holds the fields of a partial update, nil fields are unchanged
type EventCategoryUpdate struct {
	ID          primitive.ObjectID
	Name        *string
	IconName    *string
	Description *string
	Color       *string
}

// EventCategoryGroup is a named set of categories shown together, eg. "Entertainment"
type EventCategoryGroup struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty"`
	Slug              string               `bson:"slug"`
	Name              string               `bson:"name"`
	EventCategoryList []primitive.ObjectID `bson:"eventCategoryList"`
	CreatedAt         time.Time            `bson:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt"`
}

// EventCategoryGroupView is a group with its categories looked up
type EventCategoryGroupView struct {
	ID                primitive.ObjectID `bson:"_id"`
	Slug              string             `bson:"slug"`
	Name              string             `bson:"name"`
	EventCategoryList []EventCategory    `bson:"eventCategoryList"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

// EventCategoryGroupUpdate holds the fields of a partial update, nil fields are unchanged
type EventCategoryGroupUpdate struct {
	ID                primitive.ObjectID
	Name              *string
	EventCategoryList []primitive.ObjectID
}
