// Package seed fills an empty database with the standard categories and
// groups and, optionally, an admin user.  Running it again is harmless:
// anything that already exists is left alone.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/slug"
)

type (
	UserCreator interface {
		Create(ctx context.Context, u model.User, password string) (*model.User, error)
	}

	CategoryStore interface {
		Create(ctx context.Context, c model.EventCategory) (*model.EventCategory, error)
		ReadEventCategoryBySlug(ctx context.Context, categorySlug string) (*model.EventCategory, error)
	}

	GroupStore interface {
		Create(ctx context.Context, g model.EventCategoryGroup) (*model.EventCategoryGroupView, error)
	}
)

// Admin is the optional admin account to create
type Admin struct {
	Email, Username, Password string
}

// Result counts what was created
type Result struct {
	Categories, Groups, Users int
}

// Seeder writes the seed data through the stores
type Seeder struct {
	Users      UserCreator
	Categories CategoryStore
	Groups     GroupStore
	Log        *slog.Logger
}

// Run creates the categories, the groups and the admin (if admin is not nil)
func (s *Seeder) Run(ctx context.Context, admin *Admin) (Result, error) {
	var r Result
	log := s.Log
	if log == nil {
		log = slog.Default()
	}

	ids := make(map[string]primitive.ObjectID, len(Categories))
	for _, c := range Categories {
		created, err := s.Categories.Create(ctx, c)
		switch {
		case err == nil:
			r.Categories++
		case apperror.IsConflict(err):
			if created, err = s.Categories.ReadEventCategoryBySlug(ctx, slug.Make(c.Name)); err != nil {
				return r, fmt.Errorf("reading existing category %q: %w", c.Name, err)
			}
		default:
			return r, fmt.Errorf("creating category %q: %w", c.Name, err)
		}
		ids[created.Slug] = created.ID
	}

	for _, g := range Groups {
		list := make([]primitive.ObjectID, 0, len(g.Categories))
		for _, name := range g.Categories {
			id, ok := ids[name]
			if !ok {
				return r, fmt.Errorf("group %q: unknown category %q", g.Name, name)
			}
			list = append(list, id)
		}
		_, err := s.Groups.Create(ctx, model.EventCategoryGroup{Name: g.Name, EventCategoryList: list})
		switch {
		case err == nil:
			r.Groups++
		case apperror.IsConflict(err):
		default:
			return r, fmt.Errorf("creating group %q: %w", g.Name, err)
		}
	}

	if admin != nil {
		_, err := s.Users.Create(ctx, model.User{
			Email:      admin.Email,
			Username:   admin.Username,
			GivenName:  "Admin",
			FamilyName: "User",
			UserRole:   model.RoleAdmin.String(),
		}, admin.Password)
		switch {
		case err == nil:
			r.Users++
		case apperror.IsConflict(err):
		default:
			return r, fmt.Errorf("creating admin %q: %w", admin.Username, err)
		}
	}

	log.InfoContext(ctx, "seeded database", "categories", r.Categories, "groups", r.Groups, "users", r.Users)
	return r, nil
}
