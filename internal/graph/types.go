package graph

// types.go has the GraphQL object types.  Fields that are funcs are
// resolved only when a query asks for them.

import (
	"context"

	"github.com/andrewwphillips/eggql"

	"github.com/andrewwphillips/ntlango/internal/scalar"
)

type (
	User struct {
		_              eggql.TagHolder `egg:"# A registered user"`
		UserID         eggql.ID        `egg:"userId"`
		Email          string
		Username       string
		GivenName      string
		FamilyName     string
		Gender         *int `egg:"gender:Gender"`
		Birthdate      *scalar.Time
		Address        *string
		PhoneNumber    *string
		ProfilePicture *string
		Bio            *string
		UserRole       int `egg:"userRole:UserRole"`
		Interests      func(context.Context) ([]EventCategory, error)
		CreatedAt      scalar.Time
		UpdatedAt      scalar.Time
	}

	AuthPayload struct {
		Token string
		User  User
	}

	Media struct {
		FeaturedImageURL *string `egg:"featuredImageUrl"`
		OtherMediaData   *scalar.JSON
	}

	Event struct {
		_                 eggql.TagHolder `egg:"# Something happening at a place and time"`
		EventID           eggql.ID        `egg:"eventId"`
		Slug              string
		Title             string
		Summary           *string
		Description       string
		StartDateTime     scalar.Time
		EndDateTime       scalar.Time
		RecurrenceRule    *string
		Location          string
		Capacity          *int
		Status            int `egg:"status:EventStatus"`
		Tags              *scalar.JSON
		Media             Media
		AdditionalDetails *scalar.JSON
		PrivacySetting    *string
		EventLink         *string
		EventCategoryList []EventCategory
		OrganizerList     []User
		RsvpCount         int
		RsvpList          func(context.Context) ([]User, error)             `egg:"rsvpList"`
		Participants      func(context.Context) ([]EventParticipant, error) `egg:"participants"`
		CreatedAt         scalar.Time
		UpdatedAt         scalar.Time
	}

	EventCategory struct {
		_                    eggql.TagHolder `egg:"# A kind of event, eg. Music"`
		EventCategoryID      eggql.ID        `egg:"eventCategoryId"`
		Slug                 string
		Name                 string
		IconName             string
		Description          string
		Color                *string
		InterestedUsersCount func(context.Context) (int, error) `egg:"interestedUsersCount#Number of users interested in the category"`
		CreatedAt            scalar.Time
		UpdatedAt            scalar.Time
	}

	EventCategoryGroup struct {
		EventCategoryGroupID eggql.ID `egg:"eventCategoryGroupId"`
		Slug                 string
		Name                 string
		EventCategoryList    []EventCategory
		CreatedAt            scalar.Time
		UpdatedAt            scalar.Time
	}

	EventParticipant struct {
		ParticipantID eggql.ID `egg:"participantId"`
		EventID       eggql.ID `egg:"eventId"`
		UserID        eggql.ID `egg:"userId"`
		Status        int      `egg:"status:ParticipantStatus"`
		Quantity      int
		User          func(context.Context) (*User, error)
		CreatedAt     scalar.Time
		UpdatedAt     scalar.Time
	}

	Follow struct {
		FollowID     eggql.ID `egg:"followId"`
		FollowerID   eggql.ID `egg:"followerUserId"`
		TargetUserID eggql.ID `egg:"targetUserId"`
		Follower     func(context.Context) (*User, error)
		TargetUser   func(context.Context) (*User, error)
		CreatedAt    scalar.Time
	}

	Activity struct {
		_          eggql.TagHolder `egg:"# Something a user did, shown in activity streams and feeds"`
		ActivityID eggql.ID        `egg:"activityId"`
		ActorID    eggql.ID        `egg:"actorId"`
		Actor      func(context.Context) (*User, error)
		Verb       int       `egg:"verb:ActivityVerb"`
		ObjectType int       `egg:"objectType:ActivityObjectType"`
		ObjectID   eggql.ID  `egg:"objectId"`
		TargetType *int      `egg:"targetType:ActivityObjectType"`
		TargetID   *eggql.ID `egg:"targetId"`
		Visibility int       `egg:"visibility:ActivityVisibility"`
		EventAt    scalar.Time
		Metadata   *scalar.JSON
		CreatedAt  scalar.Time
	}

	AdminDashboardStats struct {
		TotalEvents         int
		DraftEvents         int
		PublishedEvents     int
		UpcomingEvents      int
		CancelledEvents     int
		CompletedEvents     int
		TotalCategories     int
		TotalCategoryGroups int
		TotalUsers          int
		TotalAdmins         int
		TotalHosts          int
	}
)
