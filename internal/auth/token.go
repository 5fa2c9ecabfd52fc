// Package auth signs and verifies the JWTs that identify users, keeps the
// verified claims in the request context and checks them in resolvers.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/andrewwphillips/ntlango/internal/model"
)

// DefaultIssuer is the "iss" claim of issued tokens
const DefaultIssuer = "github.com/andrewwphillips/ntlango"

// Claims are what a token says about the logged-in user
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	UserRole string `json:"userRole"`
	jwt.RegisteredClaims
}

// Role returns the parsed role claim
func (c *Claims) Role() model.UserRole {
	return model.ParseUserRole(c.UserRole)
}

// KeySource provides the signing key.  It is asked on every use so that the
// key can be rotated (see the secrets package).
type KeySource interface {
	SigningKey(ctx context.Context) ([]byte, error)
}

// StaticKey is a KeySource that never changes
type StaticKey []byte

// SigningKey returns the key
func (k StaticKey) SigningKey(context.Context) ([]byte, error) {
	if len(k) == 0 {
		return nil, fmt.Errorf("empty signing key")
	}
	return k, nil
}

// Issuer creates and checks HS256 tokens
type Issuer struct {
	keys   KeySource
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewIssuer creates an Issuer whose tokens expire after ttl
func NewIssuer(keys KeySource, ttl time.Duration) *Issuer {
	return &Issuer{keys: keys, ttl: ttl, issuer: DefaultIssuer, now: time.Now}
}

// Sign returns a token for the user
func (i *Issuer) Sign(ctx context.Context, user *model.User) (string, error) {
	key, err := i.keys.SigningKey(ctx)
	if err != nil {
		return "", fmt.Errorf("getting signing key: %w", err)
	}
	now := i.now()
	claims := Claims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		UserRole: user.UserRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// Verify parses the token and checks its signature, expiry and issuer
func (i *Issuer) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	key, err := i.keys.SigningKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting signing key: %w", err)
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.VerifyIssuer(i.issuer, true) {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no user")
	}
	return claims, nil
}

// KeyFunc adapts a function to a KeySource
type KeyFunc func(ctx context.Context) ([]byte, error)

// SigningKey calls f
func (f KeyFunc) SigningKey(ctx context.Context) ([]byte, error) {
	return f(ctx)
}
