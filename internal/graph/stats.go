package graph

import (
	"context"

	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/model"
)

func (r *Resolver) readAdminDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	if _, err := auth.Require(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	s, err := r.stores.Stats.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	byStatus := func(status string) int { return int(s.EventsByStatus[status]) }
	total := 0
	for _, n := range s.EventsByStatus {
		total += int(n)
	}
	return &AdminDashboardStats{
		TotalEvents:         total,
		DraftEvents:         byStatus("DRAFT"),
		PublishedEvents:     byStatus("PUBLISHED"),
		UpcomingEvents:      byStatus("UPCOMING"),
		CancelledEvents:     byStatus("CANCELLED"),
		CompletedEvents:     byStatus("COMPLETED"),
		TotalCategories:     int(s.EventCategories),
		TotalCategoryGroups: int(s.EventCategoryGroups),
		TotalUsers:          int(s.Users),
		TotalAdmins:         int(s.Admins),
		TotalHosts:          int(s.Hosts),
	}, nil
}
