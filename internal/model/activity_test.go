package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/model"
)

func TestVisibleTo(t *testing.T) {
	actor, viewer := primitive.NewObjectID(), primitive.NewObjectID()
	tests := map[string]struct {
		visibility string
		viewer     primitive.ObjectID
		follows    bool
		expected   bool
	}{
		"Public":               {model.VisibilityPublic, viewer, false, true},
		"Unset":                {"", viewer, false, true},
		"FollowersFollowing":   {model.VisibilityFollowers, viewer, true, true},
		"FollowersStranger":    {model.VisibilityFollowers, viewer, false, false},
		"PrivateFollowing":     {model.VisibilityPrivate, viewer, true, false},
		"PrivateSeenByActor":   {model.VisibilityPrivate, actor, false, true},
		"FollowersSeenByActor": {model.VisibilityFollowers, actor, false, true},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			a := model.Activity{ActorID: actor, Visibility: test.visibility}
			assert.Equal(t, test.expected, a.VisibleTo(test.viewer, test.follows))
		})
	}
}
