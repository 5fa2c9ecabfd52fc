package dao

import (
	"context"

	"github.com/andrewwphillips/ntlango/internal/model"
)

// StatsDAO computes the admin dashboard totals from the other DAOs
type StatsDAO struct {
	daos *DAOs
}

// Dashboard returns the current totals
func (d *StatsDAO) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var (
		r   model.DashboardStats
		err error
	)
	if r.EventsByStatus, err = d.daos.Events.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if r.EventCategories, err = d.daos.Categories.Count(ctx); err != nil {
		return nil, err
	}
	if r.EventCategoryGroups, err = d.daos.Groups.Count(ctx); err != nil {
		return nil, err
	}
	if r.Users, err = d.daos.Users.Count(ctx); err != nil {
		return nil, err
	}
	if r.Admins, err = d.daos.Users.CountByRole(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	if r.Hosts, err = d.daos.Users.CountByRole(ctx, model.RoleHost); err != nil {
		return nil, err
	}
	return &r, nil
}
