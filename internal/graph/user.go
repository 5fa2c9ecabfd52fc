package graph

import (
	"context"

	"github.com/andrewwphillips/eggql"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/model"
)

func (r *Resolver) readUserByID(ctx context.Context, userID eggql.ID) (*User, error) {
	id, err := objectID("userId", userID)
	if err != nil {
		return nil, err
	}
	u, err := r.stores.Users.ReadUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.user(u), nil
}

func (r *Resolver) readUserByUsername(ctx context.Context, username string) (*User, error) {
	u, err := r.stores.Users.ReadUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return r.user(u), nil
}

func (r *Resolver) readUserByEmail(ctx context.Context, email string) (*User, error) {
	u, err := r.stores.Users.ReadUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return r.user(u), nil
}

func (r *Resolver) readUsers(ctx context.Context, options *QueryOptionsInput) ([]User, error) {
	if options != nil {
		if err := r.check(options); err != nil {
			return nil, err
		}
	}
	list, err := r.stores.Users.ReadUsers(ctx, queryOptions(options))
	if err != nil {
		return nil, err
	}
	return r.users(list), nil
}

// authenticated returns a token along with the user
func (r *Resolver) authenticated(ctx context.Context, u *model.User) (*AuthPayload, error) {
	token, err := r.issuer.Sign(ctx, u)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &AuthPayload{Token: token, User: *r.user(u)}, nil
}

func (r *Resolver) createUser(ctx context.Context, input CreateUserInput) (*AuthPayload, error) {
	if err := r.check(input); err != nil {
		return nil, err
	}
	interests, err := objectIDs("interests", input.Interests)
	if err != nil {
		return nil, err
	}
	u := model.User{
		Email:          input.Email,
		Username:       input.Username,
		GivenName:      input.GivenName,
		FamilyName:     input.FamilyName,
		Address:        input.Address,
		PhoneNumber:    input.PhoneNumber,
		ProfilePicture: input.ProfilePicture,
		Bio:            input.Bio,
		UserRole:       model.RoleUser.String(),
		Interests:      interests,
	}
	if input.Gender != nil {
		u.Gender = enumName(model.GenderNames, *input.Gender, len(model.GenderNames)-1)
	}
	if input.Birthdate != nil {
		t := input.Birthdate.Std()
		u.Birthdate = &t
	}

	created, err := r.stores.Users.Create(ctx, u, input.Password)
	if err != nil {
		return nil, err
	}
	r.log.InfoContext(ctx, "user created", "userId", created.ID.Hex())
	return r.authenticated(ctx, created)
}

func (r *Resolver) loginUser(ctx context.Context, input LoginUserInput) (*AuthPayload, error) {
	if err := r.check(input); err != nil {
		return nil, err
	}
	u, err := r.stores.Users.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	return r.authenticated(ctx, u)
}

func (r *Resolver) updateUser(ctx context.Context, input UpdateUserInput) (*User, error) {
	if err := r.check(input); err != nil {
		return nil, err
	}
	id, err := objectID("userId", input.UserID)
	if err != nil {
		return nil, err
	}
	claims, err := auth.RequireSelfOrAdmin(ctx, id.Hex())
	if err != nil {
		return nil, err
	}

	update := model.UserUpdate{
		ID:             id,
		Email:          input.Email,
		Username:       input.Username,
		GivenName:      input.GivenName,
		FamilyName:     input.FamilyName,
		Address:        input.Address,
		PhoneNumber:    input.PhoneNumber,
		ProfilePicture: input.ProfilePicture,
		Bio:            input.Bio,
		Password:       input.Password,
	}
	if input.Gender != nil {
		gender := enumName(model.GenderNames, *input.Gender, len(model.GenderNames)-1)
		update.Gender = &gender
	}
	if input.Birthdate != nil {
		t := input.Birthdate.Std()
		update.Birthdate = &t
	}
	if input.UserRole != nil {
		if claims.Role() != model.RoleAdmin {
			return nil, apperror.NewUnauthorized("only an admin can change a user's role")
		}
		role := model.UserRole(*input.UserRole).String()
		update.UserRole = &role
	}
	if update.Interests, err = objectIDs("interests", input.Interests); err != nil {
		return nil, err
	}

	u, err := r.stores.Users.UpdateUser(ctx, update)
	if err != nil {
		return nil, err
	}
	return r.user(u), nil
}

func (r *Resolver) deleteUserByID(ctx context.Context, userID eggql.ID) (*User, error) {
	id, err := objectID("userId", userID)
	if err != nil {
		return nil, err
	}
	if _, err := auth.RequireSelfOrAdmin(ctx, id.Hex()); err != nil {
		return nil, err
	}
	u, err := r.stores.Users.DeleteUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.user(u), nil
}

// requireSelfOrAdminBy is RequireSelfOrAdmin for a user found by some
// other key.  Admins do not need the lookup.
func (r *Resolver) requireSelfOrAdminBy(ctx context.Context, find func() (*model.User, error)) error {
	claims, err := auth.Require(ctx)
	if err != nil {
		return err
	}
	if claims.Role() == model.RoleAdmin {
		return nil
	}
	u, err := find()
	if err != nil {
		return err
	}
	_, err = auth.RequireSelfOrAdmin(ctx, u.ID.Hex())
	return err
}

func (r *Resolver) deleteUserByEmail(ctx context.Context, email string) (*User, error) {
	err := r.requireSelfOrAdminBy(ctx, func() (*model.User, error) {
		return r.stores.Users.ReadUserByEmail(ctx, email, "_id")
	})
	if err != nil {
		return nil, err
	}
	u, err := r.stores.Users.DeleteUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return r.user(u), nil
}

func (r *Resolver) deleteUserByUsername(ctx context.Context, username string) (*User, error) {
	err := r.requireSelfOrAdminBy(ctx, func() (*model.User, error) {
		return r.stores.Users.ReadUserByUsername(ctx, username, "_id")
	})
	if err != nil {
		return nil, err
	}
	u, err := r.stores.Users.DeleteUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return r.user(u), nil
}
