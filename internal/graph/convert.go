package graph

// convert.go converts between the stored models and the GraphQL types

import (
	"context"

	"github.com/andrewwphillips/eggql"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/query"
	"github.com/andrewwphillips/ntlango/internal/scalar"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalJSON(doc bson.D) *scalar.JSON {
	if len(doc) == 0 {
		return nil
	}
	j := scalar.JSONFromDoc(doc)
	return &j
}

func (r *Resolver) user(u *model.User) *User {
	if u == nil {
		return nil
	}
	g := &User{
		UserID:         eggql.ID(u.ID.Hex()),
		Email:          u.Email,
		Username:       u.Username,
		GivenName:      u.GivenName,
		FamilyName:     u.FamilyName,
		Address:        optional(u.Address),
		PhoneNumber:    optional(u.PhoneNumber),
		ProfilePicture: optional(u.ProfilePicture),
		Bio:            optional(u.Bio),
		UserRole:       int(u.Role()),
		CreatedAt:      scalar.NewTime(u.CreatedAt),
		UpdatedAt:      scalar.NewTime(u.UpdatedAt),
	}
	if u.Gender != "" {
		gender := enumIndex(model.GenderNames, u.Gender, len(model.GenderNames)-1)
		g.Gender = &gender
	}
	if u.Birthdate != nil {
		t := scalar.NewTime(*u.Birthdate)
		g.Birthdate = &t
	}
	interests := u.Interests
	g.Interests = func(ctx context.Context) ([]EventCategory, error) {
		if len(interests) == 0 {
			return []EventCategory{}, nil
		}
		ids := make([]string, len(interests))
		for i, id := range interests {
			ids[i] = id.Hex()
		}
		list, err := r.stores.Categories.ReadEventCategories(ctx, &query.Options{
			Filters: []query.Filter{{Field: "_id", Value: ids}},
		})
		if err != nil {
			return nil, err
		}
		return r.categories(list), nil
	}
	return g
}

func (r *Resolver) users(list []model.User) []User {
	out := make([]User, len(list))
	for i := range list {
		out[i] = *r.user(&list[i])
	}
	return out
}

// userByID resolves a user through the request's batch loader
func (r *Resolver) userByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	u, err := r.loadersFor(ctx).User.Load(ctx, id.Hex())()
	if err != nil {
		return nil, err
	}
	return r.user(u), nil
}

func (r *Resolver) category(c *model.EventCategory) *EventCategory {
	if c == nil {
		return nil
	}
	id := c.ID.Hex()
	return &EventCategory{
		EventCategoryID: eggql.ID(id),
		Slug:            c.Slug,
		Name:            c.Name,
		IconName:        c.IconName,
		Description:     c.Description,
		Color:           optional(c.Color),
		InterestedUsersCount: func(ctx context.Context) (int, error) {
			return r.loadersFor(ctx).InterestCount.Load(ctx, id)()
		},
		CreatedAt: scalar.NewTime(c.CreatedAt),
		UpdatedAt: scalar.NewTime(c.UpdatedAt),
	}
}

func (r *Resolver) categories(list []model.EventCategory) []EventCategory {
	out := make([]EventCategory, len(list))
	for i := range list {
		out[i] = *r.category(&list[i])
	}
	return out
}

func (r *Resolver) group(g *model.EventCategoryGroupView) *EventCategoryGroup {
	if g == nil {
		return nil
	}
	return &EventCategoryGroup{
		EventCategoryGroupID: eggql.ID(g.ID.Hex()),
		Slug:                 g.Slug,
		Name:                 g.Name,
		EventCategoryList:    r.categories(g.EventCategoryList),
		CreatedAt:            scalar.NewTime(g.CreatedAt),
		UpdatedAt:            scalar.NewTime(g.UpdatedAt),
	}
}

func (r *Resolver) groups(list []model.EventCategoryGroupView) []EventCategoryGroup {
	out := make([]EventCategoryGroup, len(list))
	for i := range list {
		out[i] = *r.group(&list[i])
	}
	return out
}

func (r *Resolver) event(e *model.EventView) *Event {
	if e == nil {
		return nil
	}
	eventID := e.ID
	rsvps := e.RSVPList
	g := &Event{
		EventID:           eggql.ID(e.ID.Hex()),
		Slug:              e.Slug,
		Title:             e.Title,
		Summary:           optional(e.Summary),
		Description:       e.Description,
		StartDateTime:     scalar.NewTime(e.StartDateTime),
		EndDateTime:       scalar.NewTime(e.EndDateTime),
		RecurrenceRule:    optional(e.RecurrenceRule),
		Location:          e.Location,
		Capacity:          e.Capacity,
		Status:            enumIndex(model.EventStatusNames, e.Status, 0),
		Tags:              optionalJSON(e.Tags),
		Media:             Media{FeaturedImageURL: optional(e.Media.FeaturedImageURL), OtherMediaData: optionalJSON(e.Media.OtherMediaData)},
		AdditionalDetails: optionalJSON(e.AdditionalDetails),
		PrivacySetting:    optional(e.PrivacySetting),
		EventLink:         optional(e.EventLink),
		EventCategoryList: r.categories(e.EventCategoryList),
		OrganizerList:     r.users(e.OrganizerList),
		RsvpCount:         len(e.RSVPList),
		CreatedAt:         scalar.NewTime(e.CreatedAt),
		UpdatedAt:         scalar.NewTime(e.UpdatedAt),
	}
	g.RsvpList = func(ctx context.Context) ([]User, error) {
		return r.usersByID(ctx, rsvps)
	}
	g.Participants = func(ctx context.Context) ([]EventParticipant, error) {
		list, err := r.stores.Participants.ReadByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return r.participants(list), nil
	}
	return g
}

// usersByID loads the users in ids, skipping any that no longer exist
func (r *Resolver) usersByID(ctx context.Context, ids []primitive.ObjectID) ([]User, error) {
	l := r.loadersFor(ctx).User
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.Hex()
	}
	found, errs := l.LoadMany(ctx, keys)()
	out := make([]User, 0, len(found))
	for i, u := range found {
		if len(errs) > i && errs[i] != nil {
			return nil, errs[i]
		}
		if u != nil {
			out = append(out, *r.user(u))
		}
	}
	return out, nil
}

func (r *Resolver) events(list []model.EventView) []Event {
	out := make([]Event, len(list))
	for i := range list {
		out[i] = *r.event(&list[i])
	}
	return out
}

func (r *Resolver) participant(p *model.EventParticipant) *EventParticipant {
	if p == nil {
		return nil
	}
	userID := p.UserID
	return &EventParticipant{
		ParticipantID: eggql.ID(p.ID.Hex()),
		EventID:       eggql.ID(p.EventID.Hex()),
		UserID:        eggql.ID(p.UserID.Hex()),
		Status:        enumIndex(model.ParticipantStatusNames, p.Status, 0),
		Quantity:      p.Quantity,
		User: func(ctx context.Context) (*User, error) {
			return r.userByID(ctx, userID)
		},
		CreatedAt: scalar.NewTime(p.CreatedAt),
		UpdatedAt: scalar.NewTime(p.UpdatedAt),
	}
}

func (r *Resolver) participants(list []model.EventParticipant) []EventParticipant {
	out := make([]EventParticipant, len(list))
	for i := range list {
		out[i] = *r.participant(&list[i])
	}
	return out
}

func (r *Resolver) follow(f *model.Follow) *Follow {
	if f == nil {
		return nil
	}
	follower, target := f.FollowerID, f.TargetUserID
	return &Follow{
		FollowID:     eggql.ID(f.ID.Hex()),
		FollowerID:   eggql.ID(follower.Hex()),
		TargetUserID: eggql.ID(target.Hex()),
		Follower: func(ctx context.Context) (*User, error) {
			return r.userByID(ctx, follower)
		},
		TargetUser: func(ctx context.Context) (*User, error) {
			return r.userByID(ctx, target)
		},
		CreatedAt: scalar.NewTime(f.CreatedAt),
	}
}

func (r *Resolver) follows(list []model.Follow) []Follow {
	out := make([]Follow, len(list))
	for i := range list {
		out[i] = *r.follow(&list[i])
	}
	return out
}

func (r *Resolver) activity(a *model.Activity) *Activity {
	if a == nil {
		return nil
	}
	actor := a.ActorID
	g := &Activity{
		ActivityID: eggql.ID(a.ID.Hex()),
		ActorID:    eggql.ID(actor.Hex()),
		Actor: func(ctx context.Context) (*User, error) {
			return r.userByID(ctx, actor)
		},
		Verb:       enumIndex(model.ActivityVerbNames, a.Verb, 0),
		ObjectType: enumIndex(model.ActivityObjectTypeNames, a.ObjectType, 0),
		ObjectID:   eggql.ID(a.ObjectID.Hex()),
		Visibility: enumIndex(model.ActivityVisibilityNames, a.Visibility, 0),
		EventAt:    scalar.NewTime(a.EventAt),
		Metadata:   optionalJSON(a.Metadata),
		CreatedAt:  scalar.NewTime(a.CreatedAt),
	}
	if a.TargetID != nil {
		targetType := enumIndex(model.ActivityObjectTypeNames, a.TargetType, 0)
		targetID := eggql.ID(a.TargetID.Hex())
		g.TargetType, g.TargetID = &targetType, &targetID
	}
	return g
}

func (r *Resolver) activities(list []model.Activity) []Activity {
	out := make([]Activity, len(list))
	for i := range list {
		out[i] = *r.activity(&list[i])
	}
	return out
}

// queryOptions converts the GraphQL options, which may be nil
func queryOptions(in *QueryOptionsInput) *query.Options {
	if in == nil {
		return nil
	}
	opts := &query.Options{}
	for _, f := range in.Filters {
		opts.Filters = append(opts.Filters, query.Filter{
			Field:    f.Field,
			Operator: query.Operator(f.Operator),
			Value:    f.Value.Value(),
		})
	}
	for _, s := range in.Sort {
		opts.Sort = append(opts.Sort, query.Sort{Field: s.Field, Order: query.SortOrder(s.Order)})
	}
	if p := in.Pagination; p != nil {
		opts.Pagination = &query.Pagination{}
		if p.Skip > 0 {
			skip := p.Skip
			opts.Pagination.Skip = &skip
		}
		if p.Limit > 0 {
			limit := p.Limit
			opts.Pagination.Limit = &limit
		}
	}
	if s := in.Search; s != nil {
		opts.Search = &query.Search{Fields: s.Fields, Value: s.Value, CaseSensitive: s.CaseSensitive}
	}
	return opts
}
