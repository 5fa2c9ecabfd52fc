package auth

import (
	"context"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/model"
)

type claimsKey struct{}

// WithClaims returns a context holding the claims of the logged-in user
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// FromContext returns the claims added by WithClaims, if any
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}

// Require checks that a user is logged in and, if any roles are given,
// that the user has one of them.
func Require(ctx context.Context, roles ...model.UserRole) (*Claims, error) {
	claims, ok := FromContext(ctx)
	if !ok {
		return nil, apperror.NewUnauthenticated("you must be logged in")
	}
	if len(roles) == 0 {
		return claims, nil
	}
	role := claims.Role()
	for _, r := range roles {
		if r == role {
			return claims, nil
		}
	}
	return nil, apperror.NewUnauthorized("you do not have permission to perform this action")
}

// RequireSelfOrAdmin allows the user identified by userID, or any admin
func RequireSelfOrAdmin(ctx context.Context, userID string) (*Claims, error) {
	claims, err := Require(ctx)
	if err != nil {
		return nil, err
	}
	if claims.UserID != userID && claims.Role() != model.RoleAdmin {
		return nil, apperror.NewUnauthorized("you can only change your own account")
	}
	return claims, nil
}
