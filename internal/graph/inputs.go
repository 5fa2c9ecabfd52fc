package graph

// inputs.go has the GraphQL input types.  Optional fields are tagged
// nullable, so a missing field leaves the Go zero value.  Update inputs use
// pointers where "not given" must be told apart from an empty value.

import (
	"github.com/andrewwphillips/eggql"

	"github.com/andrewwphillips/ntlango/internal/scalar"
)

type (
	// FilterInput compares a field with a value.  The operator defaults to eq.
	// GraphQL string and number literals reach AnyValue alike, so the value
	// is read as JSON first and "10001" matches a number.
	FilterInput struct {
		Field    string          `validate:"required"`
		Operator int             `egg:"operator:FilterOperatorInput,nullable"`
		Value    scalar.AnyValue `egg:"value#Read as JSON first so digits such as 10001 match numbers; send a JSON-quoted string to match text"`
	}

	SortInput struct {
		Field string `validate:"required"`
		Order int    `egg:"order:SortOrderInput,nullable"`
	}

	PaginationInput struct {
		Skip  int `egg:",nullable" validate:"min=0"`
		Limit int `egg:",nullable" validate:"min=0,max=1000"`
	}

	SearchInput struct {
		Fields        []string `validate:"required,min=1,dive,required"`
		Value         string
		CaseSensitive bool `egg:",nullable"`
	}

	QueryOptionsInput struct {
		Filters    []FilterInput    `egg:",nullable" validate:"dive"`
		Sort       []SortInput      `egg:",nullable" validate:"dive"`
		Pagination *PaginationInput `validate:"omitempty"`
		Search     *SearchInput     `validate:"omitempty"`
	}

	CreateUserInput struct {
		Email          string `validate:"required,email"`
		Username       string `validate:"required,min=3,max=30,alphanumunicode"`
		GivenName      string `validate:"required"`
		FamilyName     string `validate:"required"`
		Password       string `validate:"required,min=8"`
		Gender         *int   `egg:"gender:Gender"`
		Birthdate      *scalar.Time
		Address        string     `egg:",nullable"`
		PhoneNumber    string     `egg:",nullable" validate:"omitempty,e164"`
		ProfilePicture string     `egg:",nullable" validate:"omitempty,url"`
		Bio            string     `egg:",nullable" validate:"max=500"`
		Interests      []eggql.ID `egg:",nullable" validate:"dive,objectid"`
	}

	UpdateUserInput struct {
		UserID         eggql.ID `egg:"userId" validate:"objectid"`
		Email          *string  `validate:"omitempty,email"`
		Username       *string  `validate:"omitempty,min=3,max=30,alphanumunicode"`
		GivenName      *string  `validate:"omitempty,min=1"`
		FamilyName     *string  `validate:"omitempty,min=1"`
		Password       *string  `validate:"omitempty,min=8"`
		Gender         *int     `egg:"gender:Gender"`
		Birthdate      *scalar.Time
		Address        *string
		PhoneNumber    *string    `validate:"omitempty,e164"`
		ProfilePicture *string    `validate:"omitempty,url"`
		Bio            *string    `validate:"omitempty,max=500"`
		UserRole       *int       `egg:"userRole:UserRole"`
		Interests      []eggql.ID `egg:",nullable" validate:"dive,objectid"`
	}

	LoginUserInput struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required"`
	}

	MediaInput struct {
		FeaturedImageURL string `egg:"featuredImageUrl,nullable" validate:"omitempty,url"`
		OtherMediaData   *scalar.JSON
	}

	CreateEventInput struct {
		Title             string `validate:"required,max=200"`
		Summary           string `egg:",nullable" validate:"max=500"`
		Description       string `validate:"required"`
		StartDateTime     scalar.Time
		EndDateTime       scalar.Time
		RecurrenceRule    string `egg:",nullable"`
		Location          string `validate:"required"`
		Capacity          *int   `validate:"omitempty,min=0"`
		Status            int    `egg:"status:EventStatus,nullable"`
		Tags              *scalar.JSON
		Media             *MediaInput
		AdditionalDetails *scalar.JSON
		PrivacySetting    string     `egg:",nullable"`
		EventLink         string     `egg:",nullable" validate:"omitempty,url"`
		EventCategoryList []eggql.ID `validate:"dive,objectid"`
		OrganizerList     []eggql.ID `egg:",nullable" validate:"dive,objectid"`
	}

	UpdateEventInput struct {
		EventID           eggql.ID `egg:"eventId" validate:"objectid"`
		Title             *string  `validate:"omitempty,min=1,max=200"`
		Summary           *string  `validate:"omitempty,max=500"`
		Description       *string  `validate:"omitempty,min=1"`
		StartDateTime     *scalar.Time
		EndDateTime       *scalar.Time
		RecurrenceRule    *string
		Location          *string `validate:"omitempty,min=1"`
		Capacity          *int    `validate:"omitempty,min=0"`
		Status            *int    `egg:"status:EventStatus"`
		Tags              *scalar.JSON
		Media             *MediaInput
		AdditionalDetails *scalar.JSON
		PrivacySetting    *string
		EventLink         *string    `validate:"omitempty,url"`
		EventCategoryList []eggql.ID `egg:",nullable" validate:"dive,objectid"`
		OrganizerList     []eggql.ID `egg:",nullable" validate:"dive,objectid"`
	}

	// RsvpInput names the users by any mix of ID, username and email.  If
	// none are given the caller is used.
	RsvpInput struct {
		EventID      eggql.ID   `egg:"eventId" validate:"objectid"`
		UserIDList   []eggql.ID `egg:"userIdList,nullable" validate:"dive,objectid"`
		UsernameList []string   `egg:",nullable"`
		EmailList    []string   `egg:",nullable" validate:"dive,email"`
	}

	CreateEventCategoryInput struct {
		Name        string `validate:"required,max=100"`
		IconName    string `validate:"required"`
		Description string `validate:"required"`
		Color       string `egg:",nullable" validate:"omitempty,hexcolor"`
	}

	UpdateEventCategoryInput struct {
		EventCategoryID eggql.ID `egg:"eventCategoryId" validate:"objectid"`
		Name            *string  `validate:"omitempty,min=1,max=100"`
		IconName        *string  `validate:"omitempty,min=1"`
		Description     *string  `validate:"omitempty,min=1"`
		Color           *string  `validate:"omitempty,hexcolor"`
	}

	CreateEventCategoryGroupInput struct {
		Name              string     `validate:"required,max=100"`
		EventCategoryList []eggql.ID `validate:"dive,objectid"`
	}

	UpdateEventCategoryGroupInput struct {
		EventCategoryGroupID eggql.ID   `egg:"eventCategoryGroupId" validate:"objectid"`
		Name                 *string    `validate:"omitempty,min=1,max=100"`
		EventCategoryList    []eggql.ID `egg:",nullable" validate:"dive,objectid"`
	}

	UpsertEventParticipantInput struct {
		EventID  eggql.ID  `egg:"eventId" validate:"objectid"`
		UserID   *eggql.ID `egg:"userId" validate:"omitempty,objectid"`
		Status   int       `egg:"status:ParticipantStatus,nullable"`
		Quantity int       `egg:",nullable" validate:"min=0,max=100"`
	}

	// CreateActivityInput is logged as done by the caller.  Visibility
	// defaults to PUBLIC and eventAt to now.
	CreateActivityInput struct {
		Verb       int       `egg:"verb:ActivityVerb"`
		ObjectType int       `egg:"objectType:ActivityObjectType"`
		ObjectID   eggql.ID  `egg:"objectId" validate:"objectid"`
		TargetType *int      `egg:"targetType:ActivityObjectType"`
		TargetID   *eggql.ID `egg:"targetId" validate:"omitempty,objectid"`
		Visibility int       `egg:"visibility:ActivityVisibility,nullable"`
		EventAt    *scalar.Time
		Metadata   *scalar.JSON
	}

	CancelEventParticipantInput struct {
		EventID eggql.ID  `egg:"eventId" validate:"objectid"`
		UserID  *eggql.ID `egg:"userId" validate:"omitempty,objectid"`
	}
)
