package service

import (
	"context"
	"fmt"

	"github.com/msomdec/eco-track/internal/domain"
)

// DashboardService builds the per-user dashboard from the owner's actions.
type DashboardService struct {
	actions *ActionService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(actions *ActionService) *DashboardService {
	return &DashboardService{actions: actions}
}

// Summary loads the owner's actions and aggregates them.
func (s *DashboardService) Summary(ctx context.Context, ownerID int64) (domain.Summary, error) {
	actions, err := s.actions.List(ctx, ownerID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("list actions for summary: %w", err)
	}
	return Summarize(actions), nil
}
