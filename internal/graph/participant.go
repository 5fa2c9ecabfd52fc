package graph

import (
	"context"

	"github.com/andrewwphillips/eggql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/model"
)

func (r *Resolver) readEventParticipants(ctx context.Context, eventID eggql.ID) ([]EventParticipant, error) {
	id, err := objectID("eventId", eventID)
	if err != nil {
		return nil, err
	}
	list, err := r.stores.Participants.ReadByEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.participants(list), nil
}

// participantIDs returns the event and user of a registration change.  The
// user defaults to the caller, and only admins can change someone else's.
func (r *Resolver) participantIDs(ctx context.Context, eventID eggql.ID, userID *eggql.ID) (primitive.ObjectID, primitive.ObjectID, error) {
	claims, err := auth.Require(ctx)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	event, err := objectID("eventId", eventID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	who := eggql.ID(claims.UserID)
	if userID != nil {
		who = *userID
	}
	user, err := objectID("userId", who)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	if user.Hex() != claims.UserID && claims.Role() != model.RoleAdmin {
		return primitive.NilObjectID, primitive.NilObjectID, apperror.NewUnauthorized("you can only change your own registration")
	}
	return event, user, nil
}

func (r *Resolver) upsertEventParticipant(ctx context.Context, input UpsertEventParticipantInput) (*EventParticipant, error) {
	if err := r.check(input); err != nil {
		return nil, err
	}
	eventID, userID, err := r.participantIDs(ctx, input.EventID, input.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := r.stores.Events.ReadEventByID(ctx, eventID, "_id"); err != nil {
		return nil, err
	}
	status := enumName(model.ParticipantStatusNames, input.Status, 0)
	p, err := r.stores.Participants.Upsert(ctx, eventID, userID, status, input.Quantity)
	if err != nil {
		return nil, err
	}
	return r.participant(p), nil
}

func (r *Resolver) cancelEventParticipant(ctx context.Context, input CancelEventParticipantInput) (*EventParticipant, error) {
	if err := r.check(input); err != nil {
		return nil, err
	}
	eventID, userID, err := r.participantIDs(ctx, input.EventID, input.UserID)
	if err != nil {
		return nil, err
	}
	p, err := r.stores.Participants.Cancel(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	return r.participant(p), nil
}
