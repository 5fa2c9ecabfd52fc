// Package model holds the documents stored in MongoDB.  Field names follow
// the GraphQL field names so that client filter paths work unchanged, except
// for the ID which is always stored as _id.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names
const (
	UserCollection               = "users"
	EventCollection              = "events"
	EventCategoryCollection      = "eventcategories"
	EventCategoryGroupCollection = "eventcategorygroups"
	EventParticipantCollection   = "eventparticipants"
	FollowCollection             = "follows"
	ActivityCollection           = "activities"
)

// UserRole values, in GraphQL enum order
const (
	RoleAdmin UserRole = iota
	RoleUser
	RoleHost
	RoleGuest
)

// UserRole is the permission level of a user, stored by name
type UserRole int

// UserRoleNames are the stored (and GraphQL enum) names of the roles
var UserRoleNames = []string{"Admin", "User", "Host", "Guest"}

func (r UserRole) String() string {
	if r < 0 || int(r) >= len(UserRoleNames) {
		return UserRoleNames[RoleUser]
	}
	return UserRoleNames[r]
}

// ParseUserRole returns the role with the given name, or RoleUser if unknown
func ParseUserRole(s string) UserRole {
	for i, n := range UserRoleNames {
		if n == s {
			return UserRole(i)
		}
	}
	return RoleUser
}

// GenderNames are the allowed values of User.Gender
var GenderNames = []string{"Male", "Female", "Other"}

// User is a registered user.  Password is a bcrypt hash and must never be
// sent to clients.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	Email          string               `bson:"email"`
	Username       string               `bson:"username"`
	GivenName      string               `bson:"given_name"`
	FamilyName     string               `bson:"family_name"`
	Gender         string               `bson:"gender,omitempty"`
	Birthdate      *time.Time           `bson:"birthdate,omitempty"`
	Address        string               `bson:"address,omitempty"`
	PhoneNumber    string               `bson:"phone_number,omitempty"`
	ProfilePicture string               `bson:"profile_picture,omitempty"`
	Bio            string               `bson:"bio,omitempty"`
	Password       string               `bson:"password,omitempty"`
	UserRole       string               `bson:"userRole"`
	Interests      []primitive.ObjectID `bson:"interests,omitempty"`
	CreatedAt      time.Time            `bson:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt"`
}

// Role returns the parsed UserRole
func (u *User) Role() UserRole {
	return ParseUserRole(u.UserRole)
}

// UserUpdate holds the fields of a partial update, nil fields are unchanged
type UserUpdate struct {
	ID             primitive.ObjectID
	Email          *string
	Username       *string
	GivenName      *string
	FamilyName     *string
	Gender         *string
	Birthdate      *time.Time
	Address        *string
	PhoneNumber    *string
	ProfilePicture *string
	Bio            *string
	Password       *string // plain text, hashed by the DAO
	UserRole       *string
	Interests      []primitive.ObjectID // nil = unchanged
}
