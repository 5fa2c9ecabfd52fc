package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/apperror"
	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/seed"
	"github.com/andrewwphillips/ntlango/internal/slug"
)

// memory is an in-memory store enforcing unique slugs, emails and usernames
type memory struct {
	categories map[string]model.EventCategory
	groups     map[string]model.EventCategoryGroup
	users      map[string]model.User
}

func newMemory() *memory {
	return &memory{
		categories: map[string]model.EventCategory{},
		groups:     map[string]model.EventCategoryGroup{},
		users:      map[string]model.User{},
	}
}

type categories struct{ *memory }

func (m categories) Create(_ context.Context, c model.EventCategory) (*model.EventCategory, error) {
	c.Slug = slug.Make(c.Name)
	if _, ok := m.categories[c.Slug]; ok {
		return nil, apperror.NewConflict("Event Category already exists", nil)
	}
	c.ID = primitive.NewObjectID()
	m.categories[c.Slug] = c
	return &c, nil
}

func (m categories) ReadEventCategoryBySlug(_ context.Context, s string) (*model.EventCategory, error) {
	c, ok := m.categories[s]
	if !ok {
		return nil, apperror.NewNotFound("Event Category", "slug", s)
	}
	return &c, nil
}

type groups struct{ *memory }

func (m groups) Create(_ context.Context, g model.EventCategoryGroup) (*model.EventCategoryGroupView, error) {
	g.Slug = slug.Make(g.Name)
	if _, ok := m.groups[g.Slug]; ok {
		return nil, apperror.NewConflict("Event Category Group already exists", nil)
	}
	m.groups[g.Slug] = g
	return &model.EventCategoryGroupView{Slug: g.Slug, Name: g.Name}, nil
}

type users struct{ *memory }

func (m users) Create(_ context.Context, u model.User, _ string) (*model.User, error) {
	if _, ok := m.users[u.Username]; ok {
		return nil, apperror.NewConflict("User already exists", nil)
	}
	m.users[u.Username] = u
	return &u, nil
}

func TestRun(t *testing.T) {
	mem := newMemory()
	s := &seed.Seeder{Users: users{mem}, Categories: categories{mem}, Groups: groups{mem}}
	admin := &seed.Admin{Email: "admin@example.com", Username: "admin", Password: "changeme123"}

	r, err := s.Run(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Categories: len(seed.Categories), Groups: len(seed.Groups), Users: 1}, r)
	assert.Equal(t, "Admin", mem.users["admin"].UserRole)

	music := mem.categories["music"].ID
	assert.Contains(t, mem.groups["entertainment"].EventCategoryList, music)

	// a second run finds everything in place
	r, err = s.Run(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{}, r)
	assert.Len(t, mem.categories, len(seed.Categories))
}

func TestGroupsReferToCategories(t *testing.T) {
	slugs := map[string]bool{}
	for _, c := range seed.Categories {
		slugs[slug.Make(c.Name)] = true
	}
	for _, g := range seed.Groups {
		for _, c := range g.Categories {
			assert.True(t, slugs[c], "%s: %s", g.Name, c)
		}
	}
}
