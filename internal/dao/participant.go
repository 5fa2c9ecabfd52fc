package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/model"
)

// EventParticipantDAO records who is going to which event
type EventParticipantDAO struct {
	base
}

func participantKey(eventID, userID primitive.ObjectID) bson.D {
	return bson.D{{Key: "eventId", Value: eventID}, {Key: "userId", Value: userID}}
}

// Upsert registers the user for the event, or changes an existing registration
func (d *EventParticipantDAO) Upsert(ctx context.Context, eventID, userID primitive.ObjectID, status string, quantity int) (*model.EventParticipant, error) {
	if status == "" {
		status = model.ParticipantGoing
	}
	if quantity < 1 {
		quantity = 1
	}
	now := d.now()
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "status", Value: status},
			{Key: "quantity", Value: quantity},
			{Key: "updatedAt", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	start := time.Now()
	var p model.EventParticipant
	err := d.coll.FindOneAndUpdate(ctx, participantKey(eventID, userID), update, opts).Decode(&p)
	if err = d.done(ctx, "upsert", start, err); err != nil {
		return nil, err
	}
	return &p, nil
}

// Cancel marks a registration as cancelled.  The record is kept for history.
func (d *EventParticipantDAO) Cancel(ctx context.Context, eventID, userID primitive.ObjectID) (*model.EventParticipant, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: model.ParticipantCancelled},
		{Key: "updatedAt", Value: d.now()},
	}}}

	start := time.Now()
	var p model.EventParticipant
	err := d.coll.FindOneAndUpdate(ctx, participantKey(eventID, userID), update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err = d.done(ctx, "cancel", start, err); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.New(apperror.NotFound, "user "+userID.Hex()+" is not a participant of event "+eventID.Hex(), nil)
		}
		return nil, err
	}
	return &p, nil
}

// ReadByEvent lists the registrations for an event, oldest first
func (d *EventParticipantDAO) ReadByEvent(ctx context.Context, eventID primitive.ObjectID) ([]model.EventParticipant, error) {
	return findAll[model.EventParticipant](ctx, &d.base, "find", bson.D{{Key: "eventId", Value: eventID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}
