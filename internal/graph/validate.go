package graph

import (
	"errors"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/andrewwphillips/eggql"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/apperror"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report GraphQL field names rather than Go ones
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return graphName(f)
	})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
	return v
}

// graphName is the name eggql gives to a struct field
func graphName(f reflect.StructField) string {
	tag := f.Tag.Get("egg")
	if i := strings.IndexAny(tag, ":,(#"); i >= 0 {
		tag = tag[:i]
	}
	if tag != "" {
		return tag
	}
	r, n := utf8.DecodeRuneInString(f.Name)
	return string(unicode.ToLower(r)) + f.Name[n:]
}

// check validates an input struct, returning an InvalidArgument error for
// the first field that fails
func (r *Resolver) check(input interface{}) error {
	err := r.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.NewInternal(err)
	}
	fe := verrs[0]
	path := fe.Namespace()
	if _, rest, found := strings.Cut(path, "."); found {
		path = rest // drop the input type name
	}
	switch fe.Tag() {
	case "required":
		return apperror.NewInvalidArgument("%s is required", path)
	case "objectid":
		return apperror.NewInvalidArgument("%s is not a valid ID", path)
	case "email":
		return apperror.NewInvalidArgument("%s is not a valid email address", path)
	}
	if fe.Param() != "" {
		return apperror.NewInvalidArgument("%s failed the %s=%s check", path, fe.Tag(), fe.Param())
	}
	return apperror.NewInvalidArgument("%s failed the %s check", path, fe.Tag())
}

// objectID parses an ID argument
func objectID(name string, id eggql.ID) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, apperror.NewInvalidArgument("%s %q is not a valid ID", name, string(id))
	}
	return oid, nil
}

// objectIDs parses a list of IDs, returning nil for a nil list
func objectIDs(name string, ids []eggql.ID) ([]primitive.ObjectID, error) {
	if ids == nil {
		return nil, nil
	}
	r := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := objectID(name, id)
		if err != nil {
			return nil, err
		}
		r = append(r, oid)
	}
	return r, nil
}
