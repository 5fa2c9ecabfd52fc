package dao

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/query"
)

// UserDAO reads and writes users.  The password hash never leaves the DAO.
type UserDAO struct {
	base
	translator *query.Translator
}

func newUserDAO(b base) *UserDAO {
	return &UserDAO{
		base: b,
		translator: query.NewTranslator(
			query.WithAlias("userId", "_id"),
			query.WithIDFields("_id", "interests"),
		),
	}
}

func hidePassword() *options.FindOneOptions {
	return options.FindOne().SetProjection(bson.D{{Key: "password", Value: 0}})
}

// Create adds a user.  The email is stored in lower case and the username
// defaults to the local part of the email.
func (d *UserDAO) Create(ctx context.Context, u model.User, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Username == "" {
		u.Username, _, _ = strings.Cut(u.Email, "@")
	}
	if u.UserRole == "" {
		u.UserRole = model.RoleUser.String()
	}
	u.ID = primitive.NilObjectID
	u.Password = hash
	u.CreatedAt = d.now()
	u.UpdatedAt = u.CreatedAt

	start := time.Now()
	res, err := d.coll.InsertOne(ctx, u)
	if err = d.done(ctx, "insert", start, err); err != nil {
		return nil, err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	u.Password = ""
	return &u, nil
}

// Login returns the user if the password is right
func (d *UserDAO) Login(ctx context.Context, email, password string) (*model.User, error) {
	start := time.Now()
	var u model.User
	err := d.coll.FindOne(ctx, bson.D{{Key: "email", Value: strings.ToLower(strings.TrimSpace(email))}}).Decode(&u)
	if err = d.notFound(ctx, "login", start, err, "email", email); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthenticated("invalid email or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, apperror.NewUnauthenticated("invalid email or password")
	}
	u.Password = ""
	return &u, nil
}

func (d *UserDAO) readOne(ctx context.Context, by string, value interface{}, display string, projections []string) (*model.User, error) {
	start := time.Now()
	opts := options.FindOne().SetProjection(projection(projections, "password"))
	var u model.User
	err := d.coll.FindOne(ctx, bson.D{{Key: by, Value: value}}, opts).Decode(&u)
	if err = d.notFound(ctx, "findOne", start, err, by, display); err != nil {
		return nil, err
	}
	return &u, nil
}

// ReadUserByID returns one user, optionally with only the given fields
func (d *UserDAO) ReadUserByID(ctx context.Context, id primitive.ObjectID, projections ...string) (*model.User, error) {
	return d.readOne(ctx, "_id", id, id.Hex(), projections)
}

// ReadUserByUsername returns one user
func (d *UserDAO) ReadUserByUsername(ctx context.Context, username string, projections ...string) (*model.User, error) {
	return d.readOne(ctx, "username", username, username, projections)
}

// ReadUserByEmail returns one user
func (d *UserDAO) ReadUserByEmail(ctx context.Context, email string, projections ...string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return d.readOne(ctx, "email", email, email, projections)
}

// ReadUsers lists users matching opts (which may be nil)
func (d *UserDAO) ReadUsers(ctx context.Context, opts *query.Options) ([]model.User, error) {
	f := d.translator.Find(nil, opts)
	return findAll[model.User](ctx, &d.base, "find", f.Filter, f.Options().SetProjection(bson.D{{Key: "password", Value: 0}}))
}

// ReadUsersByIDs returns the users that exist of those given, in no particular order
func (d *UserDAO) ReadUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	return findAll[model.User](ctx, &d.base, "findByIds", filter, options.Find().SetProjection(bson.D{{Key: "password", Value: 0}}))
}

// UpdateUser changes the non-nil fields of u and returns the updated user
func (d *UserDAO) UpdateUser(ctx context.Context, u model.UserUpdate) (*model.User, error) {
	s := setter{}
	if u.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*u.Email))
		s.str("email", &email)
	}
	s.str("username", u.Username)
	s.str("given_name", u.GivenName)
	s.str("family_name", u.FamilyName)
	s.str("gender", u.Gender)
	if u.Birthdate != nil {
		s.set("birthdate", u.Birthdate.UTC())
	}
	s.str("address", u.Address)
	s.str("phone_number", u.PhoneNumber)
	s.str("profile_picture", u.ProfilePicture)
	s.str("bio", u.Bio)
	s.str("userRole", u.UserRole)
	s.ids("interests", u.Interests)
	if u.Password != nil {
		hash, err := auth.HashPassword(*u.Password)
		if err != nil {
			return nil, apperror.NewInternal(err)
		}
		s.str("password", &hash)
	}
	s.set("updatedAt", d.now())

	start := time.Now()
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.D{{Key: "password", Value: 0}})
	var r model.User
	err := d.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: u.ID}}, s.update(), opts).Decode(&r)
	if err = d.notFound(ctx, "update", start, err, "id", u.ID.Hex()); err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *UserDAO) deleteOne(ctx context.Context, by string, value interface{}, display string) (*model.User, error) {
	start := time.Now()
	opts := options.FindOneAndDelete().SetProjection(bson.D{{Key: "password", Value: 0}})
	var r model.User
	err := d.coll.FindOneAndDelete(ctx, bson.D{{Key: by, Value: value}}, opts).Decode(&r)
	if err = d.notFound(ctx, "delete", start, err, by, display); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteUserByID removes and returns a user
func (d *UserDAO) DeleteUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return d.deleteOne(ctx, "_id", id, id.Hex())
}

// DeleteUserByEmail removes and returns a user
func (d *UserDAO) DeleteUserByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return d.deleteOne(ctx, "email", email, email)
}

// DeleteUserByUsername removes and returns a user
func (d *UserDAO) DeleteUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return d.deleteOne(ctx, "username", username, username)
}

// CountByInterestCategoryIDs returns, for each category, the number of users
// interested in it.  Categories nobody is interested in are absent from the map.
func (d *UserDAO) CountByInterestCategoryIDs(ctx context.Context, categoryIDs []string) (map[string]int, error) {
	ids := hexes(categoryIDs)
	r := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return r, nil
	}
	in := bson.D{{Key: "interests", Value: bson.D{{Key: "$in", Value: ids}}}}
	pipeline := []bson.D{
		{{Key: "$match", Value: in}},
		{{Key: "$unwind", Value: "$interests"}},
		{{Key: "$match", Value: in}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$interests"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	type count struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int                `bson:"count"`
	}
	counts, err := aggregateAll[count](ctx, &d.base, "countByInterest", pipeline)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		r[c.ID.Hex()] = c.Count
	}
	return r, nil
}

// ResolveIdentifiers returns the IDs of the users given by ID, username or
// email.  Unknown identifiers are ignored but at least one user must exist.
func (d *UserDAO) ResolveIdentifiers(ctx context.Context, ids, usernames, emails []string) ([]primitive.ObjectID, error) {
	var or bson.A
	if len(ids) > 0 {
		or = append(or, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: hexes(ids)}}}})
	}
	if len(usernames) > 0 {
		or = append(or, bson.D{{Key: "username", Value: bson.D{{Key: "$in", Value: usernames}}}})
	}
	if len(emails) > 0 {
		lower := make([]string, len(emails))
		for i, e := range emails {
			lower[i] = strings.ToLower(strings.TrimSpace(e))
		}
		or = append(or, bson.D{{Key: "email", Value: bson.D{{Key: "$in", Value: lower}}}})
	}
	if len(or) == 0 {
		return nil, apperror.NewInvalidArgument("at least one user id, username or email is required")
	}

	type idOnly struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	found, err := findAll[idOnly](ctx, &d.base, "resolveIdentifiers", bson.D{{Key: "$or", Value: or}},
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperror.New(apperror.NotFound, "Users with the provided identifiers not found", nil)
	}
	r := make([]primitive.ObjectID, len(found))
	for i := range found {
		r[i] = found[i].ID
	}
	return r, nil
}

// CountByRole returns the number of users with the role
func (d *UserDAO) CountByRole(ctx context.Context, role model.UserRole) (int64, error) {
	start := time.Now()
	n, err := d.coll.CountDocuments(ctx, bson.D{{Key: "userRole", Value: role.String()}})
	return n, d.done(ctx, "count", start, err)
}

// Count returns the number of users
func (d *UserDAO) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := d.coll.CountDocuments(ctx, bson.D{})
	return n, d.done(ctx, "count", start, err)
}
