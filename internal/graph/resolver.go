// Package graph is the GraphQL layer: the schema types, which eggql turns
// into the schema, and the resolvers.  Resolvers check permissions and
// validate input, convert IDs, call one or more stores, and convert the
// results to the GraphQL types.  Errors returned are from package apperror
// so that clients see a message that says what went wrong and nothing more.
package graph

import (
	"context"
	"log/slog"
	"time"

	"github.com/andrewwphillips/eggql"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/loader"
	"github.com/andrewwphillips/ntlango/internal/metrics"
	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/query"
)

type (
	UserStore interface {
		Create(ctx context.Context, u model.User, password string) (*model.User, error)
		Login(ctx context.Context, email, password string) (*model.User, error)
		ReadUserByID(ctx context.Context, id primitive.ObjectID, projections ...string) (*model.User, error)
		ReadUserByUsername(ctx context.Context, username string, projections ...string) (*model.User, error)
		ReadUserByEmail(ctx context.Context, email string, projections ...string) (*model.User, error)
		ReadUsers(ctx context.Context, opts *query.Options) ([]model.User, error)
		ReadUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error)
		UpdateUser(ctx context.Context, u model.UserUpdate) (*model.User, error)
		DeleteUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
		DeleteUserByEmail(ctx context.Context, email string) (*model.User, error)
		DeleteUserByUsername(ctx context.Context, username string) (*model.User, error)
		CountByInterestCategoryIDs(ctx context.Context, categoryIDs []string) (map[string]int, error)
		ResolveIdentifiers(ctx context.Context, ids, usernames, emails []string) ([]primitive.ObjectID, error)
	}

	EventStore interface {
		Create(ctx context.Context, e model.Event) (*model.EventView, error)
		ReadEventByID(ctx context.Context, id primitive.ObjectID, projections ...string) (*model.EventView, error)
		ReadEventBySlug(ctx context.Context, eventSlug string) (*model.EventView, error)
		ReadEvents(ctx context.Context, opts *query.Options) ([]model.EventView, error)
		UpdateEvent(ctx context.Context, u model.EventUpdate) (*model.EventView, error)
		DeleteEventByID(ctx context.Context, id primitive.ObjectID) (*model.EventView, error)
		RSVP(ctx context.Context, eventID primitive.ObjectID, userIDs []primitive.ObjectID) (*model.EventView, error)
		CancelRSVP(ctx context.Context, eventID primitive.ObjectID, userIDs []primitive.ObjectID) (*model.EventView, error)
	}

	EventCategoryStore interface {
		Create(ctx context.Context, c model.EventCategory) (*model.EventCategory, error)
		ReadEventCategoryByID(ctx context.Context, id primitive.ObjectID, projections ...string) (*model.EventCategory, error)
		ReadEventCategoryBySlug(ctx context.Context, categorySlug string) (*model.EventCategory, error)
		ReadEventCategories(ctx context.Context, opts *query.Options) ([]model.EventCategory, error)
		UpdateEventCategory(ctx context.Context, u model.EventCategoryUpdate) (*model.EventCategory, error)
		DeleteEventCategoryByID(ctx context.Context, id primitive.ObjectID) (*model.EventCategory, error)
		DeleteEventCategoryBySlug(ctx context.Context, categorySlug string) (*model.EventCategory, error)
	}

	EventCategoryGroupStore interface {
		Create(ctx context.Context, g model.EventCategoryGroup) (*model.EventCategoryGroupView, error)
		ReadEventCategoryGroupBySlug(ctx context.Context, groupSlug string) (*model.EventCategoryGroupView, error)
		ReadEventCategoryGroups(ctx context.Context, opts *query.Options) ([]model.EventCategoryGroupView, error)
		UpdateEventCategoryGroup(ctx context.Context, u model.EventCategoryGroupUpdate) (*model.EventCategoryGroupView, error)
		DeleteEventCategoryGroupBySlug(ctx context.Context, groupSlug string) (*model.EventCategoryGroupView, error)
	}

	EventParticipantStore interface {
		Upsert(ctx context.Context, eventID, userID primitive.ObjectID, status string, quantity int) (*model.EventParticipant, error)
		Cancel(ctx context.Context, eventID, userID primitive.ObjectID) (*model.EventParticipant, error)
		ReadByEvent(ctx context.Context, eventID primitive.ObjectID) ([]model.EventParticipant, error)
	}

	FollowStore interface {
		Follow(ctx context.Context, follower, target primitive.ObjectID) (*model.Follow, error)
		Unfollow(ctx context.Context, follower, target primitive.ObjectID) error
		ReadFollowing(ctx context.Context, userID primitive.ObjectID) ([]model.Follow, error)
		ReadFollowers(ctx context.Context, userID primitive.ObjectID) ([]model.Follow, error)
	}

	ActivityStore interface {
		Create(ctx context.Context, a model.Activity) (*model.Activity, error)
		ReadByActor(ctx context.Context, actorID primitive.ObjectID, limit int) ([]model.Activity, error)
		ReadByActorIDs(ctx context.Context, actorIDs []primitive.ObjectID, limit int) ([]model.Activity, error)
	}

	StatsStore interface {
		Dashboard(ctx context.Context) (*model.DashboardStats, error)
	}
)

// Stores are what the resolvers read and write through
type Stores struct {
	Users        UserStore
	Events       EventStore
	Categories   EventCategoryStore
	Groups       EventCategoryGroupStore
	Participants EventParticipantStore
	Follows      FollowStore
	Activities   ActivityStore
	Stats        StatsStore
}

type resolverOptions struct {
	log     *slog.Logger
	metrics *metrics.Collection
	wait    time.Duration
}

// WithLogger sets the logger
func WithLogger(log *slog.Logger) func(*resolverOptions) {
	return func(opt *resolverOptions) {
		opt.log = log
	}
}

// WithMetrics is passed on to the batch loaders
func WithMetrics(m *metrics.Collection) func(*resolverOptions) {
	return func(opt *resolverOptions) {
		opt.metrics = m
	}
}

// WithLoaderWait sets how long the batch loaders wait for more keys
func WithLoaderWait(d time.Duration) func(*resolverOptions) {
	return func(opt *resolverOptions) {
		opt.wait = d
	}
}

// Resolver holds what the resolvers need.  It is not modified after New.
type Resolver struct {
	stores   Stores
	issuer   *auth.Issuer
	loaders  *loader.Factory
	validate *validator.Validate
	log      *slog.Logger
}

// New creates a Resolver.  The issuer signs the tokens returned by createUser
// and loginUser.
func New(stores Stores, issuer *auth.Issuer, opts ...func(*resolverOptions)) *Resolver {
	opt := resolverOptions{log: slog.Default(), wait: loader.DefaultWait}
	for _, o := range opts {
		o(&opt)
	}
	return &Resolver{
		stores:   stores,
		issuer:   issuer,
		loaders:  loader.NewFactory(stores.Users, stores.Users, loader.WithWait(opt.wait), loader.WithMetrics(opt.metrics)),
		validate: newValidator(),
		log:      opt.log,
	}
}

// Loaders returns the factory to use with loader.Handler
func (r *Resolver) Loaders() *loader.Factory {
	return r.loaders
}

// loadersFor returns the request's loaders.  Without loader.Handler in front
// each call gets its own, which still works but batches nothing.
func (r *Resolver) loadersFor(ctx context.Context) *loader.Loaders {
	if l, ok := loader.From(ctx); ok {
		return l
	}
	return r.loaders.New()
}

// Query is the root query type
type Query struct {
	_                            eggql.TagHolder                                                         `egg:"# Read operations of the events platform"`
	ReadUserByID                 func(context.Context, eggql.ID) (*User, error)                          `egg:"readUserById(userId)"`
	ReadUserByUsername           func(context.Context, string) (*User, error)                            `egg:"readUserByUsername(username)"`
	ReadUserByEmail              func(context.Context, string) (*User, error)                            `egg:"readUserByEmail(email)"`
	ReadUsers                    func(context.Context, *QueryOptionsInput) ([]User, error)               `egg:"readUsers(options)"`
	ReadEventByID                func(context.Context, eggql.ID) (*Event, error)                         `egg:"readEventById(eventId)"`
	ReadEventBySlug              func(context.Context, string) (*Event, error)                           `egg:"readEventBySlug(slug)"`
	ReadEvents                   func(context.Context, *QueryOptionsInput) ([]Event, error)              `egg:"readEvents(options)"`
	ReadEventCategoryByID        func(context.Context, eggql.ID) (*EventCategory, error)                 `egg:"readEventCategoryById(eventCategoryId)"`
	ReadEventCategoryBySlug      func(context.Context, string) (*EventCategory, error)                   `egg:"readEventCategoryBySlug(slug)"`
	ReadEventCategories          func(context.Context, *QueryOptionsInput) ([]EventCategory, error)      `egg:"readEventCategories(options)"`
	ReadEventCategoryGroupBySlug func(context.Context, string) (*EventCategoryGroup, error)              `egg:"readEventCategoryGroupBySlug(slug)"`
	ReadEventCategoryGroups      func(context.Context, *QueryOptionsInput) ([]EventCategoryGroup, error) `egg:"readEventCategoryGroups(options)"`
	ReadEventParticipants        func(context.Context, eggql.ID) ([]EventParticipant, error)             `egg:"readEventParticipants(eventId)"`
	ReadFollowing                func(context.Context) ([]Follow, error)                                 `egg:"readFollowing#Users the caller follows"`
	ReadFollowers                func(context.Context, eggql.ID) ([]Follow, error)                       `egg:"readFollowers(userId)"`
	ReadAdminDashboardStats      func(context.Context) (*AdminDashboardStats, error)                     `egg:"readAdminDashboardStats"`
	ReadActivitiesByActor        func(context.Context, eggql.ID, *int) ([]Activity, error)               `egg:"readActivitiesByActor(actorId,limit)"`
	ReadFeed                     func(context.Context, *int) ([]Activity, error)                         `egg:"readFeed(limit)#Latest activities of the caller and the users they follow"`
}

// Mutation is the root mutation type
type Mutation struct {
	CreateUser                     func(context.Context, CreateUserInput) (*AuthPayload, error)                      `egg:"createUser(input)"`
	LoginUser                      func(context.Context, LoginUserInput) (*AuthPayload, error)                       `egg:"loginUser(input)"`
	UpdateUser                     func(context.Context, UpdateUserInput) (*User, error)                             `egg:"updateUser(input)"`
	DeleteUserByID                 func(context.Context, eggql.ID) (*User, error)                                    `egg:"deleteUserById(userId)"`
	DeleteUserByEmail              func(context.Context, string) (*User, error)                                      `egg:"deleteUserByEmail(email)"`
	DeleteUserByUsername           func(context.Context, string) (*User, error)                                      `egg:"deleteUserByUsername(username)"`
	CreateEvent                    func(context.Context, CreateEventInput) (*Event, error)                           `egg:"createEvent(input)"`
	UpdateEvent                    func(context.Context, UpdateEventInput) (*Event, error)                           `egg:"updateEvent(input)"`
	DeleteEventByID                func(context.Context, eggql.ID) (*Event, error)                                   `egg:"deleteEventById(eventId)"`
	RsvpForEvent                   func(context.Context, RsvpInput) (*Event, error)                                  `egg:"rsvpForEvent(input)"`
	CancelRsvp                     func(context.Context, RsvpInput) (*Event, error)                                  `egg:"cancelRsvp(input)"`
	CreateEventCategory            func(context.Context, CreateEventCategoryInput) (*EventCategory, error)           `egg:"createEventCategory(input)"`
	UpdateEventCategory            func(context.Context, UpdateEventCategoryInput) (*EventCategory, error)           `egg:"updateEventCategory(input)"`
	DeleteEventCategoryByID        func(context.Context, eggql.ID) (*EventCategory, error)                           `egg:"deleteEventCategoryById(eventCategoryId)"`
	DeleteEventCategoryBySlug      func(context.Context, string) (*EventCategory, error)                             `egg:"deleteEventCategoryBySlug(slug)"`
	CreateEventCategoryGroup       func(context.Context, CreateEventCategoryGroupInput) (*EventCategoryGroup, error) `egg:"createEventCategoryGroup(input)"`
	UpdateEventCategoryGroup       func(context.Context, UpdateEventCategoryGroupInput) (*EventCategoryGroup, error) `egg:"updateEventCategoryGroup(input)"`
	DeleteEventCategoryGroupBySlug func(context.Context, string) (*EventCategoryGroup, error)                        `egg:"deleteEventCategoryGroupBySlug(slug)"`
	UpsertEventParticipant         func(context.Context, UpsertEventParticipantInput) (*EventParticipant, error)     `egg:"upsertEventParticipant(input)"`
	CancelEventParticipant         func(context.Context, CancelEventParticipantInput) (*EventParticipant, error)     `egg:"cancelEventParticipant(input)"`
	FollowUser                     func(context.Context, eggql.ID) (*Follow, error)                                  `egg:"followUser(userId)"`
	UnfollowUser                   func(context.Context, eggql.ID) (bool, error)                                     `egg:"unfollowUser(userId)"`
	LogActivity                    func(context.Context, CreateActivityInput) (*Activity, error)                     `egg:"logActivity(input)"`
}

// Query returns the root query with its resolvers
func (r *Resolver) Query() Query {
	return Query{
		ReadUserByID:                 r.readUserByID,
		ReadUserByUsername:           r.readUserByUsername,
		ReadUserByEmail:              r.readUserByEmail,
		ReadUsers:                    r.readUsers,
		ReadEventByID:                r.readEventByID,
		ReadEventBySlug:              r.readEventBySlug,
		ReadEvents:                   r.readEvents,
		ReadEventCategoryByID:        r.readEventCategoryByID,
		ReadEventCategoryBySlug:      r.readEventCategoryBySlug,
		ReadEventCategories:          r.readEventCategories,
		ReadEventCategoryGroupBySlug: r.readEventCategoryGroupBySlug,
		ReadEventCategoryGroups:      r.readEventCategoryGroups,
		ReadEventParticipants:        r.readEventParticipants,
		ReadFollowing:                r.readFollowing,
		ReadFollowers:                r.readFollowers,
		ReadAdminDashboardStats:      r.readAdminDashboardStats,
		ReadActivitiesByActor:        r.readActivitiesByActor,
		ReadFeed:                     r.readFeed,
	}
}

// Mutation returns the root mutation with its resolvers
func (r *Resolver) Mutation() Mutation {
	return Mutation{
		CreateUser:                     r.createUser,
		LoginUser:                      r.loginUser,
		UpdateUser:                     r.updateUser,
		DeleteUserByID:                 r.deleteUserByID,
		DeleteUserByEmail:              r.deleteUserByEmail,
		DeleteUserByUsername:           r.deleteUserByUsername,
		CreateEvent:                    r.createEvent,
		UpdateEvent:                    r.updateEvent,
		DeleteEventByID:                r.deleteEventByID,
		RsvpForEvent:                   r.rsvpForEvent,
		CancelRsvp:                     r.cancelRsvp,
		CreateEventCategory:            r.createEventCategory,
		UpdateEventCategory:            r.updateEventCategory,
		DeleteEventCategoryByID:        r.deleteEventCategoryByID,
		DeleteEventCategoryBySlug:      r.deleteEventCategoryBySlug,
		CreateEventCategoryGroup:       r.createEventCategoryGroup,
		UpdateEventCategoryGroup:       r.updateEventCategoryGroup,
		DeleteEventCategoryGroupBySlug: r.deleteEventCategoryGroupBySlug,
		UpsertEventParticipant:         r.upsertEventParticipant,
		CancelEventParticipant:         r.cancelEventParticipant,
		FollowUser:                     r.followUser,
		UnfollowUser:                   r.unfollowUser,
		LogActivity:                    r.logActivity,
	}
}
