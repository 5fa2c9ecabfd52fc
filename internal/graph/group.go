package graph

import (
	"context"

	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/model"
)

func (r *Resolver) readEventCategoryGroupBySlug(ctx context.Context, slug string) (*EventCategoryGroup, error) {
	g, err := r.stores.Groups.ReadEventCategoryGroupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return r.group(g), nil
}

func (r *Resolver) readEventCategoryGroups(ctx context.Context, options *QueryOptionsInput) ([]EventCategoryGroup, error) {
	if options != nil {
		if err := r.check(options); err != nil {
			return nil, err
		}
	}
	list, err := r.stores.Groups.ReadEventCategoryGroups(ctx, queryOptions(options))
	if err != nil {
		return nil, err
	}
	return r.groups(list), nil
}

func (r *Resolver) createEventCategoryGroup(ctx context.Context, input CreateEventCategoryGroupInput) (*EventCategoryGroup, error) {
	if _, err := auth.Require(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := r.check(input); err != nil {
		return nil, err
	}
	categories, err := objectIDs("eventCategoryList", input.EventCategoryList)
	if err != nil {
		return nil, err
	}
	g, err := r.stores.Groups.Create(ctx, model.EventCategoryGroup{Name: input.Name, EventCategoryList: categories})
	if err != nil {
		return nil, err
	}
	return r.group(g), nil
}

func (r *Resolver) updateEventCategoryGroup(ctx context.Context, input UpdateEventCategoryGroupInput) (*EventCategoryGroup, error) {
	if _, err := auth.Require(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := r.check(input); err != nil {
		return nil, err
	}
	id, err := objectID("eventCategoryGroupId", input.EventCategoryGroupID)
	if err != nil {
		return nil, err
	}
	categories, err := objectIDs("eventCategoryList", input.EventCategoryList)
	if err != nil {
		return nil, err
	}
	g, err := r.stores.Groups.UpdateEventCategoryGroup(ctx, model.EventCategoryGroupUpdate{
		ID:                id,
		Name:              input.Name,
		EventCategoryList: categories,
	})
	if err != nil {
		return nil, err
	}
	return r.group(g), nil
}

func (r *Resolver) deleteEventCategoryGroupBySlug(ctx context.Context, slug string) (*EventCategoryGroup, error) {
	if _, err := auth.Require(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	g, err := r.stores.Groups.DeleteEventCategoryGroupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return r.group(g), nil
}
