package graph_test

// End-to-end tests: GraphQL requests through the eggql handler with the
// stores faked.  Each fake embeds the store interface so that only the
// methods a test uses need implementing.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/graph"
	"github.com/andrewwphillips/ntlango/internal/loader"
	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/query"
)

type JsonObject = map[string]interface{}

var (
	userID  = primitive.NewObjectID()
	adminID = primitive.NewObjectID()
	eventID = primitive.NewObjectID()
	musicID = primitive.NewObjectID()
	created = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

type fakeUsers struct {
	graph.UserStore
	mu       sync.Mutex
	batches  [][]string
	resolved []string
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*model.User, error) {
	if email != "ann@example.com" || password != "correct horse" {
		return nil, apperror.NewUnauthenticated("invalid email or password")
	}
	return &model.User{ID: userID, Email: email, Username: "ann", UserRole: "User", CreatedAt: created, UpdatedAt: created}, nil
}

func (f *fakeUsers) Create(_ context.Context, u model.User, _ string) (*model.User, error) {
	u.ID = userID
	u.CreatedAt, u.UpdatedAt = created, created
	return &u, nil
}

func (f *fakeUsers) CountByInterestCategoryIDs(_ context.Context, ids []string) (map[string]int, error) {
	f.mu.Lock()
	f.batches = append(f.batches, ids)
	f.mu.Unlock()
	return map[string]int{musicID.Hex(): 12}, nil
}

func (f *fakeUsers) ReadUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	r := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if id == userID {
			r = append(r, model.User{ID: id, Username: "ann", UserRole: "User"})
		}
	}
	return r, nil
}

func (f *fakeUsers) ResolveIdentifiers(_ context.Context, ids, usernames, emails []string) ([]primitive.ObjectID, error) {
	f.mu.Lock()
	f.resolved = append(append(append(f.resolved, ids...), usernames...), emails...)
	f.mu.Unlock()
	return []primitive.ObjectID{adminID}, nil
}

type fakeCategories struct {
	graph.EventCategoryStore
	list []model.EventCategory
}

func (f *fakeCategories) ReadEventCategories(context.Context, *query.Options) ([]model.EventCategory, error) {
	return f.list, nil
}

func (f *fakeCategories) Create(_ context.Context, c model.EventCategory) (*model.EventCategory, error) {
	c.ID = primitive.NewObjectID()
	c.Slug = "live-music"
	return &c, nil
}

type fakeEvents struct {
	graph.EventStore
	mu    sync.Mutex
	opts  *query.Options
	rsvps []primitive.ObjectID
}

func (f *fakeEvents) view() *model.EventView {
	return &model.EventView{
		ID:            eventID,
		EventDetails:  model.EventDetails{Slug: "jazz-night", Title: "Jazz Night", Status: "PUBLISHED"},
		OrganizerList: []model.User{{ID: userID, Username: "ann"}},
		RSVPList:      append([]primitive.ObjectID{userID}, f.rsvps...),
	}
}

func (f *fakeEvents) ReadEvents(_ context.Context, opts *query.Options) ([]model.EventView, error) {
	f.mu.Lock()
	f.opts = opts
	f.mu.Unlock()
	return []model.EventView{*f.view()}, nil
}

func (f *fakeEvents) ReadEventByID(_ context.Context, id primitive.ObjectID, _ ...string) (*model.EventView, error) {
	if id != eventID {
		return nil, apperror.NewNotFound("Event", "id", id.Hex())
	}
	return f.view(), nil
}

func (f *fakeEvents) RSVP(_ context.Context, _ primitive.ObjectID, users []primitive.ObjectID) (*model.EventView, error) {
	f.mu.Lock()
	f.rsvps = append(f.rsvps, users...)
	f.mu.Unlock()
	return f.view(), nil
}

type fakeFollows struct {
	graph.FollowStore
	following map[primitive.ObjectID][]primitive.ObjectID
}

func (f *fakeFollows) ReadFollowing(_ context.Context, id primitive.ObjectID) ([]model.Follow, error) {
	var r []model.Follow
	for _, target := range f.following[id] {
		r = append(r, model.Follow{FollowerID: id, TargetUserID: target})
	}
	return r, nil
}

type fakeActivities struct {
	graph.ActivityStore
	list   []model.Activity
	actors []primitive.ObjectID
}

func (f *fakeActivities) Create(_ context.Context, a model.Activity) (*model.Activity, error) {
	a.ID = primitive.NewObjectID()
	a.EventAt, a.CreatedAt = created, created
	if a.Visibility == "" {
		a.Visibility = model.VisibilityPublic
	}
	f.list = append(f.list, a)
	return &a, nil
}

func (f *fakeActivities) ReadByActor(ctx context.Context, id primitive.ObjectID, limit int) ([]model.Activity, error) {
	return f.ReadByActorIDs(ctx, []primitive.ObjectID{id}, limit)
}

func (f *fakeActivities) ReadByActorIDs(_ context.Context, ids []primitive.ObjectID, limit int) ([]model.Activity, error) {
	f.actors = ids
	var r []model.Activity
	for _, a := range f.list {
		for _, id := range ids {
			if a.ActorID == id && len(r) < limit {
				r = append(r, a)
			}
		}
	}
	return r, nil
}

type fixture struct {
	users      *fakeUsers
	events     *fakeEvents
	categories *fakeCategories
	follows    *fakeFollows
	activities *fakeActivities
	issuer     *auth.Issuer
	handler    http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:  &fakeUsers{},
		events: &fakeEvents{},
		categories: &fakeCategories{list: []model.EventCategory{
			{ID: musicID, Slug: "music", Name: "Music"},
			{ID: primitive.NewObjectID(), Slug: "arts", Name: "Arts"},
			{ID: primitive.NewObjectID(), Slug: "food", Name: "Food"},
		}},
		follows:    &fakeFollows{following: map[primitive.ObjectID][]primitive.ObjectID{}},
		activities: &fakeActivities{},
		issuer:     auth.NewIssuer(auth.StaticKey("test-secret"), time.Hour),
	}
	r := graph.New(graph.Stores{
		Users:      f.users,
		Events:     f.events,
		Categories: f.categories,
		Follows:    f.follows,
		Activities: f.activities,
	}, f.issuer,
		graph.WithLoaderWait(20*time.Millisecond))
	h, err := r.Handler()
	require.NoError(t, err)
	f.handler = auth.Handler(f.issuer, nil, loader.Handler(r.Loaders(), h))
	return f
}

func (f *fixture) token(t *testing.T, id primitive.ObjectID, role string) string {
	t.Helper()
	token, err := f.issuer.Sign(context.Background(), &model.User{ID: id, Username: "u", UserRole: role})
	require.NoError(t, err)
	return token
}

type response struct {
	Data   JsonObject
	Errors []struct {
		Message string
	}
}

func (f *fixture) post(t *testing.T, token, query string, variables JsonObject) response {
	t.Helper()
	body, err := json.Marshal(JsonObject{"query": query, "variables": variables})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	var r response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&r), w.Body.String())
	return r
}

func (r response) errorContains(t *testing.T, s string) {
	t.Helper()
	if assert.NotEmpty(t, r.Errors) {
		assert.Contains(t, r.Errors[0].Message, s)
	}
}

func TestSchema(t *testing.T) {
	r := graph.New(graph.Stores{}, nil)
	s, err := r.Schema()
	require.NoError(t, err)
	for _, want := range []string{
		"readEvents(options: QueryOptionsInput)",
		"enum FilterOperatorInput",
		"input FilterInput",
		"interestedUsersCount: Int!",
		"scalar AnyValue",
		"rsvpForEvent(input: RsvpInput!)",
		"enum ActivityVisibility",
		"readFeed(limit: Int)",
		"send a JSON-quoted string to match text",
	} {
		assert.Contains(t, s, want)
	}
}

func TestInterestedUsersCount(t *testing.T) {
	f := newFixture(t)
	r := f.post(t, "", `{ readEventCategories { slug interestedUsersCount } }`, nil)
	require.Empty(t, r.Errors)

	list := r.Data["readEventCategories"].([]interface{})
	require.Len(t, list, 3)
	assert.Equal(t, JsonObject{"slug": "music", "interestedUsersCount": 12.0}, list[0])
	assert.Equal(t, JsonObject{"slug": "arts", "interestedUsersCount": 0.0}, list[1])
	assert.Equal(t, JsonObject{"slug": "food", "interestedUsersCount": 0.0}, list[2])
	keys := 0
	for _, b := range f.users.batches {
		keys += len(b)
	}
	assert.Equal(t, 3, keys, "each category counted once")
}

func TestReadEventsOptions(t *testing.T) {
	f := newFixture(t)
	r := f.post(t, "", `query($o: QueryOptionsInput) { readEvents(options: $o) { slug rsvpCount rsvpList { username } } }`, JsonObject{
		"o": JsonObject{
			"filters":    []interface{}{JsonObject{"field": "eventCategoryList.name", "value": "Music"}},
			"sort":       []interface{}{JsonObject{"field": "startDateTime", "order": "desc"}},
			"pagination": JsonObject{"limit": 5},
		},
	})
	require.Empty(t, r.Errors)
	assert.Equal(t, []interface{}{JsonObject{
		"slug":      "jazz-night",
		"rsvpCount": 1.0,
		"rsvpList":  []interface{}{JsonObject{"username": "ann"}},
	}}, r.Data["readEvents"])

	opts := f.events.opts
	require.NotNil(t, opts)
	assert.Equal(t, []query.Filter{{Field: "eventCategoryList.name", Operator: query.Eq, Value: "Music"}}, opts.Filters)
	assert.Equal(t, []query.Sort{{Field: "startDateTime", Order: query.Desc}}, opts.Sort)
	if assert.NotNil(t, opts.Pagination) && assert.NotNil(t, opts.Pagination.Limit) {
		assert.Equal(t, 5, *opts.Pagination.Limit)
		assert.Nil(t, opts.Pagination.Skip)
	}
}

func TestInvalidID(t *testing.T) {
	f := newFixture(t)
	r := f.post(t, "", `{ readEventById(eventId: "nope") { slug } }`, nil)
	r.errorContains(t, "InvalidArgumentException")
	r.errorContains(t, "eventId")

	r = f.post(t, "", `{ readEventById(eventId: "`+primitive.NewObjectID().Hex()+`") { slug } }`, nil)
	r.errorContains(t, "ResourceNotFoundException")
}

func TestCreateCategoryNeedsAdmin(t *testing.T) {
	const q = `mutation { createEventCategory(input: {name: "Live Music", iconName: "music", description: "Gigs"}) { slug name } }`
	f := newFixture(t)

	f.post(t, "", q, nil).errorContains(t, "UnauthenticatedException")
	f.post(t, f.token(t, userID, "User"), q, nil).errorContains(t, "UnauthorizedException")

	r := f.post(t, f.token(t, adminID, "Admin"), q, nil)
	require.Empty(t, r.Errors)
	assert.Equal(t, JsonObject{"slug": "live-music", "name": "Live Music"}, r.Data["createEventCategory"])
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	const q = `mutation($e: String!, $p: String!) { loginUser(input: {email: $e, password: $p}) { token user { userId username userRole } } }`

	r := f.post(t, "", q, JsonObject{"e": "ann@example.com", "p": "correct horse"})
	require.Empty(t, r.Errors)
	payload := r.Data["loginUser"].(JsonObject)
	assert.Equal(t, JsonObject{"userId": userID.Hex(), "username": "ann", "userRole": "User"}, payload["user"])
	claims, err := f.issuer.Verify(context.Background(), payload["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)

	f.post(t, "", q, JsonObject{"e": "ann@example.com", "p": "wrong"}).errorContains(t, "invalid email or password")
	f.post(t, "", q, JsonObject{"e": "not-an-email", "p": "x"}).errorContains(t, "email is not a valid email address")
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)
	const q = `mutation($u: String!, $p: String!) { createUser(input: {email: "bo@example.com", username: $u, givenName: "Bo", familyName: "Li", password: $p}) { token user { username userRole } } }`

	f.post(t, "", q, JsonObject{"u": "bobby", "p": "short"}).errorContains(t, "password failed the min=8 check")
	f.post(t, "", q, JsonObject{"u": "bo", "p": "long enough"}).errorContains(t, "username failed the min=3 check")

	r := f.post(t, "", q, JsonObject{"u": "bobby", "p": "long enough"})
	require.Empty(t, r.Errors)
	payload := r.Data["createUser"].(JsonObject)
	assert.Equal(t, JsonObject{"username": "bobby", "userRole": "User"}, payload["user"])
	assert.NotEmpty(t, payload["token"])
}

func TestRsvp(t *testing.T) {
	f := newFixture(t)
	const self = `mutation($id: ID!) { rsvpForEvent(input: {eventId: $id}) { rsvpCount } }`
	const other = `mutation($id: ID!) { rsvpForEvent(input: {eventId: $id, usernameList: ["boss"]}) { rsvpCount } }`
	vars := JsonObject{"id": eventID.Hex()}

	f.post(t, "", self, vars).errorContains(t, "UnauthenticatedException")

	r := f.post(t, f.token(t, userID, "User"), self, vars)
	require.Empty(t, r.Errors)
	assert.Equal(t, []primitive.ObjectID{userID}, f.events.rsvps)

	// userID organizes the event so may add others
	r = f.post(t, f.token(t, userID, "User"), other, vars)
	require.Empty(t, r.Errors)
	assert.Equal(t, []string{"boss"}, f.users.resolved)
	assert.Equal(t, []primitive.ObjectID{userID, adminID}, f.events.rsvps)

	f.post(t, f.token(t, primitive.NewObjectID(), "User"), other, vars).errorContains(t, "UnauthorizedException")
}

func TestActivityVisibility(t *testing.T) {
	f := newFixture(t)
	for _, vis := range []string{model.VisibilityPublic, model.VisibilityFollowers, model.VisibilityPrivate} {
		f.activities.list = append(f.activities.list, model.Activity{
			ID: primitive.NewObjectID(), ActorID: adminID, Verb: "Published", ObjectType: "Event", ObjectID: eventID, Visibility: vis,
		})
	}
	f.follows.following[userID] = []primitive.ObjectID{adminID}
	const q = `query($id: ID!) { readActivitiesByActor(actorId: $id) { visibility verb objectType } }`
	vars := JsonObject{"id": adminID.Hex()}

	f.post(t, "", q, vars).errorContains(t, "UnauthenticatedException")

	visible := func(t *testing.T, token string) []string {
		r := f.post(t, token, q, vars)
		require.Empty(t, r.Errors)
		var got []string
		for _, a := range r.Data["readActivitiesByActor"].([]interface{}) {
			got = append(got, a.(JsonObject)["visibility"].(string))
		}
		return got
	}
	tests := map[string]struct {
		token string
		want  []string
	}{
		"stranger": {f.token(t, primitive.NewObjectID(), "User"), []string{"PUBLIC"}},
		"follower": {f.token(t, userID, "User"), []string{"PUBLIC", "FOLLOWERS"}},
		"actor":    {f.token(t, adminID, "Admin"), []string{"PUBLIC", "FOLLOWERS", "PRIVATE"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, visible(t, tc.token))
		})
	}

	r := f.post(t, f.token(t, userID, "User"), `{ readActivitiesByActor(actorId: "`+adminID.Hex()+`", limit: 0) { verb } }`, nil)
	r.errorContains(t, "limit must be between 1 and 100")
}

func TestActivityFeed(t *testing.T) {
	f := newFixture(t)
	token := f.token(t, userID, "User")
	f.follows.following[userID] = []primitive.ObjectID{adminID, adminID}

	r := f.post(t, token, `mutation($id: ID!) { logActivity(input: {verb: RSVPd, objectType: Event, objectId: $id, visibility: PRIVATE}) { actorId verb visibility actor { username } } }`,
		JsonObject{"id": eventID.Hex()})
	require.Empty(t, r.Errors)
	assert.Equal(t, JsonObject{
		"actorId":    userID.Hex(),
		"verb":       "RSVPd",
		"visibility": "PRIVATE",
		"actor":      JsonObject{"username": "ann"},
	}, r.Data["logActivity"])

	f.activities.list = append(f.activities.list,
		model.Activity{ID: primitive.NewObjectID(), ActorID: adminID, Verb: "Followed", ObjectType: "User", ObjectID: userID, Visibility: model.VisibilityFollowers},
		model.Activity{ID: primitive.NewObjectID(), ActorID: adminID, Verb: "Shared", ObjectType: "Event", ObjectID: eventID, Visibility: model.VisibilityPrivate},
		model.Activity{ID: primitive.NewObjectID(), ActorID: primitive.NewObjectID(), Verb: "Shared", ObjectType: "Event", ObjectID: eventID},
	)

	r = f.post(t, token, `{ readFeed { verb visibility } }`, nil)
	require.Empty(t, r.Errors)
	assert.Equal(t, []interface{}{
		JsonObject{"verb": "RSVPd", "visibility": "PRIVATE"},
		JsonObject{"verb": "Followed", "visibility": "FOLLOWERS"},
	}, r.Data["readFeed"])
	assert.Equal(t, []primitive.ObjectID{userID, adminID}, f.activities.actors, "caller first, followed users once")

	f.post(t, token, `mutation { logActivity(input: {verb: Shared, objectType: Event, objectId: "x"}) { verb } }`, nil).
		errorContains(t, "objectId")
	f.post(t, token, `mutation($id: ID!) { logActivity(input: {verb: Shared, objectType: Event, objectId: $id}) { verb } }`,
		JsonObject{"id": primitive.NewObjectID().Hex()}).errorContains(t, "ResourceNotFoundException")
	f.post(t, "", `{ readFeed { verb } }`, nil).errorContains(t, "UnauthenticatedException")
}
