package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/andrewwphillips/ntlango/internal/apperror"
)

func TestFromStore(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	already := apperror.NewInvalidArgument("bad %s", "id")

	tests := map[string]struct {
		in      error
		kind    apperror.Kind
		message string
	}{
		"NoDocuments": {mongo.ErrNoDocuments, apperror.NotFound, "ResourceNotFoundException: Event not found"},
		"Wrapped":     {fmt.Errorf("find: %w", mongo.ErrNoDocuments), apperror.NotFound, "ResourceNotFoundException: Event not found"},
		"Duplicate":   {dup, apperror.Conflict, "ConflictException: Event already exists"},
		"Other":       {errors.New("connection refused"), apperror.Internal, "InternalServiceErrorException: something went wrong, please try again later"},
		"Already":     {already, apperror.InvalidArgument, "InvalidArgumentException: bad id"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := apperror.FromStore("Event", test.in)
			assert.Equal(t, test.kind, apperror.KindOf(err))
			assert.Equal(t, test.message, err.Error())
		})
	}
	assert.NoError(t, apperror.FromStore("Event", nil))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("mongodb://admin:secret@db")
	err := apperror.NewInternal(cause)
	assert.NotContains(t, err.Error(), "secret")
	assert.ErrorIs(t, err, cause)
}

func TestKinds(t *testing.T) {
	tests := map[string]struct {
		err    error
		status int
		is     func(error) bool
	}{
		"NotFound":        {apperror.NewNotFound("User", "id", "1"), http.StatusNotFound, apperror.IsNotFound},
		"InvalidArgument": {apperror.NewInvalidArgument("x"), http.StatusBadRequest, apperror.IsInvalidArgument},
		"Unauthenticated": {apperror.NewUnauthenticated("x"), http.StatusUnauthorized, apperror.IsUnauthenticated},
		"Unauthorized":    {apperror.NewUnauthorized("x"), http.StatusForbidden, apperror.IsUnauthorized},
		"Conflict":        {apperror.NewConflict("x", nil), http.StatusConflict, apperror.IsConflict},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.True(t, test.is(test.err))
			assert.True(t, test.is(fmt.Errorf("wrapped: %w", test.err)))
			assert.Equal(t, test.status, apperror.KindOf(test.err).HTTPStatus())
		})
	}

	assert.Equal(t, "ResourceNotFoundException: User with id 1 not found", apperror.NewNotFound("User", "id", "1").Error())
	assert.False(t, apperror.IsNotFound(nil))
	assert.Equal(t, apperror.Internal, apperror.KindOf(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, apperror.Kind(99).HTTPStatus())
}
