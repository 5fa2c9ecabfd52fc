package graph

import (
	"context"
	"time"

	"github.com/andrewwphillips/eggql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/model"
)

func (r *Resolver) readEventByID(ctx context.Context, eventID eggql.ID) (*Event, error) {
	id, err := objectID("eventId", eventID)
	if err != nil {
		return nil, err
	}
	e, err := r.stores.Events.ReadEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.event(e), nil
}

func (r *Resolver) readEventBySlug(ctx context.Context, slug string) (*Event, error) {
	e, err := r.stores.Events.ReadEventBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return r.event(e), nil
}

func (r *Resolver) readEvents(ctx context.Context, options *QueryOptionsInput) ([]Event, error) {
	if options != nil {
		if err := r.check(options); err != nil {
			return nil, err
		}
	}
	list, err := r.stores.Events.ReadEvents(ctx, queryOptions(options))
	if err != nil {
		return nil, err
	}
	return r.events(list), nil
}

func checkDates(start, end time.Time) error {
	if !end.After(start) {
		return apperror.NewInvalidArgument("endDateTime must be after startDateTime")
	}
	return nil
}

func media(in *MediaInput) model.Media {
	if in == nil {
		return model.Media{}
	}
	m := model.Media{FeaturedImageURL: in.FeaturedImageURL}
	if in.OtherMediaData != nil {
		m.OtherMediaData = in.OtherMediaData.Doc()
	}
	return m
}

func (r *Resolver) createEvent(ctx context.Context, input CreateEventInput) (*Event, error) {
	claims, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.check(input); err != nil {
		return nil, err
	}
	if err := checkDates(input.StartDateTime.Std(), input.EndDateTime.Std()); err != nil {
		return nil, err
	}
	categories, err := objectIDs("eventCategoryList", input.EventCategoryList)
	if err != nil {
		return nil, err
	}
	organizers, err := objectIDs("organizerList", input.OrganizerList)
	if err != nil {
		return nil, err
	}
	if len(organizers) == 0 {
		self, err := objectID("userId", eggql.ID(claims.UserID))
		if err != nil {
			return nil, apperror.NewUnauthenticated("invalid token")
		}
		organizers = []primitive.ObjectID{self}
	}

	e := model.Event{
		EventDetails: model.EventDetails{
			Title:          input.Title,
			Summary:        input.Summary,
			Description:    input.Description,
			StartDateTime:  input.StartDateTime.Std(),
			EndDateTime:    input.EndDateTime.Std(),
			RecurrenceRule: input.RecurrenceRule,
			Location:       input.Location,
			Capacity:       input.Capacity,
			Status:         enumName(model.EventStatusNames, input.Status, 0),
			Media:          media(input.Media),
			PrivacySetting: input.PrivacySetting,
			EventLink:      input.EventLink,
		},
		EventCategoryList: categories,
		OrganizerList:     organizers,
	}
	if input.Tags != nil {
		e.Tags = input.Tags.Doc()
	}
	if input.AdditionalDetails != nil {
		e.AdditionalDetails = input.AdditionalDetails.Doc()
	}

	created, err := r.stores.Events.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	r.log.InfoContext(ctx, "event created", "eventId", created.ID.Hex(), "userId", claims.UserID)
	return r.event(created), nil
}

// isOrganizer is true if the user is one of the event's organizers
func isOrganizer(e *model.EventView, userID string) bool {
	for _, u := range e.OrganizerList {
		if u.ID.Hex() == userID {
			return true
		}
	}
	return false
}

// requireOrganizer reads the event and checks that the caller may change it
func (r *Resolver) requireOrganizer(ctx context.Context, id primitive.ObjectID) (*auth.Claims, *model.EventView, error) {
	claims, err := auth.Require(ctx)
	if err != nil {
		return nil, nil, err
	}
	e, err := r.stores.Events.ReadEventByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if claims.Role() != model.RoleAdmin && !isOrganizer(e, claims.UserID) {
		return nil, nil, apperror.NewUnauthorized("only an organizer of the event can change it")
	}
	return claims, e, nil
}

func (r *Resolver) updateEvent(ctx context.Context, input UpdateEventInput) (*Event, error) {
	if err := r.check(input); err != nil {
		return nil, err
	}
	id, err := objectID("eventId", input.EventID)
	if err != nil {
		return nil, err
	}
	_, existing, err := r.requireOrganizer(ctx, id)
	if err != nil {
		return nil, err
	}

	update := model.EventUpdate{
		ID:             id,
		Title:          input.Title,
		Summary:        input.Summary,
		Description:    input.Description,
		RecurrenceRule: input.RecurrenceRule,
		Location:       input.Location,
		Capacity:       input.Capacity,
		PrivacySetting: input.PrivacySetting,
		EventLink:      input.EventLink,
	}
	start, end := existing.StartDateTime, existing.EndDateTime
	if input.StartDateTime != nil {
		start = input.StartDateTime.Std()
		update.StartDateTime = &start
	}
	if input.EndDateTime != nil {
		end = input.EndDateTime.Std()
		update.EndDateTime = &end
	}
	if update.StartDateTime != nil || update.EndDateTime != nil {
		if err := checkDates(start, end); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		status := enumName(model.EventStatusNames, *input.Status, 0)
		update.Status = &status
	}
	if input.Tags != nil {
		update.Tags = input.Tags.Doc()
	}
	if input.Media != nil {
		m := media(input.Media)
		update.Media = &m
	}
	if input.AdditionalDetails != nil {
		update.AdditionalDetails = input.AdditionalDetails.Doc()
	}
	if update.EventCategoryList, err = objectIDs("eventCategoryList", input.EventCategoryList); err != nil {
		return nil, err
	}
	if update.OrganizerList, err = objectIDs("organizerList", input.OrganizerList); err != nil {
		return nil, err
	}

	e, err := r.stores.Events.UpdateEvent(ctx, update)
	if err != nil {
		return nil, err
	}
	return r.event(e), nil
}

func (r *Resolver) deleteEventByID(ctx context.Context, eventID eggql.ID) (*Event, error) {
	id, err := objectID("eventId", eventID)
	if err != nil {
		return nil, err
	}
	if _, _, err := r.requireOrganizer(ctx, id); err != nil {
		return nil, err
	}
	e, err := r.stores.Events.DeleteEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.event(e), nil
}

// rsvpUsers works out who an RSVP change is for.  With no users named it is
// the caller.  Only organizers and admins may name other users.
func (r *Resolver) rsvpUsers(ctx context.Context, input RsvpInput) (primitive.ObjectID, []primitive.ObjectID, error) {
	if err := r.check(input); err != nil {
		return primitive.NilObjectID, nil, err
	}
	eventID, err := objectID("eventId", input.EventID)
	if err != nil {
		return primitive.NilObjectID, nil, err
	}
	claims, err := auth.Require(ctx)
	if err != nil {
		return primitive.NilObjectID, nil, err
	}

	if len(input.UserIDList) == 0 && len(input.UsernameList) == 0 && len(input.EmailList) == 0 {
		self, err := objectID("userId", eggql.ID(claims.UserID))
		if err != nil {
			return primitive.NilObjectID, nil, apperror.NewUnauthenticated("invalid token")
		}
		return eventID, []primitive.ObjectID{self}, nil
	}

	ids := make([]string, len(input.UserIDList))
	for i, id := range input.UserIDList {
		ids[i] = string(id)
	}
	users, err := r.stores.Users.ResolveIdentifiers(ctx, ids, input.UsernameList, input.EmailList)
	if err != nil {
		return primitive.NilObjectID, nil, err
	}
	if claims.Role() == model.RoleAdmin {
		return eventID, users, nil
	}
	for _, u := range users {
		if u.Hex() == claims.UserID {
			continue
		}
		// someone else named, which only an organizer may do
		if _, _, err := r.requireOrganizer(ctx, eventID); err != nil {
			return primitive.NilObjectID, nil, err
		}
		break
	}
	return eventID, users, nil
}

func (r *Resolver) rsvpForEvent(ctx context.Context, input RsvpInput) (*Event, error) {
	eventID, users, err := r.rsvpUsers(ctx, input)
	if err != nil {
		return nil, err
	}
	e, err := r.stores.Events.RSVP(ctx, eventID, users)
	if err != nil {
		return nil, err
	}
	return r.event(e), nil
}

func (r *Resolver) cancelRsvp(ctx context.Context, input RsvpInput) (*Event, error) {
	eventID, users, err := r.rsvpUsers(ctx, input)
	if err != nil {
		return nil, err
	}
	e, err := r.stores.Events.CancelRSVP(ctx, eventID, users)
	if err != nil {
		return nil, err
	}
	return r.event(e), nil
}
