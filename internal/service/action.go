package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/msomdec/eco-track/internal/domain"
	"github.com/msomdec/eco-track/internal/metrics"
)

// ActionInput carries the user-editable fields of an action exactly as they
// arrive from a form or JSON body.
type ActionInput struct {
	Category string
	Date     string // YYYY-MM-DD
	Note     string
	Points   int
}

// ActionService is the owner-scoped gateway for action records. Every method
// takes the owner's ID explicitly; a caller can never observe or change
// another user's actions.
type ActionService struct {
	actions domain.ActionRepository
}

// NewActionService creates a new ActionService.
func NewActionService(actions domain.ActionRepository) *ActionService {
	return &ActionService{actions: actions}
}

// List returns the owner's actions, most recent first.
func (s *ActionService) List(ctx context.Context, ownerID int64) ([]domain.Action, error) {
	return s.actions.ListByUser(ctx, ownerID)
}

// Get returns one of the owner's actions, or domain.ErrNotFound.
func (s *ActionService) Get(ctx context.Context, ownerID, id int64) (*domain.Action, error) {
	return s.actions.GetByID(ctx, ownerID, id)
}

// Create validates and stores a new action for the owner.
func (s *ActionService) Create(ctx context.Context, ownerID int64, in ActionInput) (*domain.Action, error) {
	action, err := buildAction(in)
	if err != nil {
		return nil, err
	}
	action.UserID = ownerID

	if err := s.actions.Create(ctx, action); err != nil {
		return nil, fmt.Errorf("create action: %w", err)
	}

	metrics.ActionLogged(string(action.Category), action.Points)
	return action, nil
}

// Update replaces category, date, note and points of one of the owner's
// actions. An ID owned by someone else is reported as domain.ErrNotFound so
// its existence is not revealed.
func (s *ActionService) Update(ctx context.Context, ownerID, id int64, in ActionInput) (*domain.Action, error) {
	action, err := buildAction(in)
	if err != nil {
		return nil, err
	}
	action.ID = id
	action.UserID = ownerID

	if err := s.actions.Update(ctx, action); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update action: %w", err)
	}
	return s.actions.GetByID(ctx, ownerID, id)
}

// Delete removes one of the owner's actions. Unknown or foreign IDs are a
// no-op.
func (s *ActionService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.actions.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete action: %w", err)
	}
	return nil
}

func buildAction(in ActionInput) (*domain.Action, error) {
	category, err := domain.ParseCategory(strings.TrimSpace(in.Category))
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateLayout, strings.TrimSpace(in.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", domain.ErrInvalidInput)
	}

	if in.Points < domain.MinPoints || in.Points > domain.MaxPoints {
		return nil, fmt.Errorf("%w: points must be between %d and %d", domain.ErrInvalidInput, domain.MinPoints, domain.MaxPoints)
	}

	note := strings.TrimSpace(in.Note)
	if utf8.RuneCountInString(note) > 1000 {
		return nil, fmt.Errorf("%w: note must be 1000 characters or fewer", domain.ErrInvalidInput)
	}

	return &domain.Action{
		Category: category,
		Date:     date,
		Note:     note,
		Points:   in.Points,
	}, nil
}
