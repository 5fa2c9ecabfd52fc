package graph

import (
	"context"

	"github.com/andrewwphillips/eggql"

	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/model"
)

func (r *Resolver) readEventCategoryByID(ctx context.Context, categoryID eggql.ID) (*EventCategory, error) {
	id, err := objectID("eventCategoryId", categoryID)
	if err != nil {
		return nil, err
	}
	c, err := r.stores.Categories.ReadEventCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.category(c), nil
}

func (r *Resolver) readEventCategoryBySlug(ctx context.Context, slug string) (*EventCategory, error) {
	c, err := r.stores.Categories.ReadEventCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return r.category(c), nil
}

func (r *Resolver) readEventCategories(ctx context.Context, options *QueryOptionsInput) ([]EventCategory, error) {
	if options != nil {
		if err := r.check(options); err != nil {
			return nil, err
		}
	}
	list, err := r.stores.Categories.ReadEventCategories(ctx, queryOptions(options))
	if err != nil {
		return nil, err
	}
	return r.categories(list), nil
}

func (r *Resolver) createEventCategory(ctx context.Context, input CreateEventCategoryInput) (*EventCategory, error) {
	if _, err := auth.Require(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := r.check(input); err != nil {
		return nil, err
	}
	c, err := r.stores.Categories.Create(ctx, model.EventCategory{
		Name:        input.Name,
		IconName:    input.IconName,
		Description: input.Description,
		Color:       input.Color,
	})
	if err != nil {
		return nil, err
	}
	return r.category(c), nil
}

func (r *Resolver) updateEventCategory(ctx context.Context, input UpdateEventCategoryInput) (*EventCategory, error) {
	if _, err := auth.Require(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := r.check(input); err != nil {
		return nil, err
	}
	id, err := objectID("eventCategoryId", input.EventCategoryID)
	if err != nil {
		return nil, err
	}
	c, err := r.stores.Categories.UpdateEventCategory(ctx, model.EventCategoryUpdate{
		ID:          id,
		Name:        input.Name,
		IconName:    input.IconName,
		Description: input.Description,
		Color:       input.Color,
	})
	if err != nil {
		return nil, err
	}
	return r.category(c), nil
}

func (r *Resolver) deleteEventCategoryByID(ctx context.Context, categoryID eggql.ID) (*EventCategory, error) {
	if _, err := auth.Require(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	id, err := objectID("eventCategoryId", categoryID)
	if err != nil {
		return nil, err
	}
	c, err := r.stores.Categories.DeleteEventCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.category(c), nil
}

func (r *Resolver) deleteEventCategoryBySlug(ctx context.Context, slug string) (*EventCategory, error) {
	if _, err := auth.Require(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	c, err := r.stores.Categories.DeleteEventCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return r.category(c), nil
}
