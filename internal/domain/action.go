package domain

import (
	"context"
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used for action dates
// on the wire and in storage.
const DateLayout = "2006-01-02"

// Category classifies an eco-friendly action. The set is closed.
type Category string

const (
	CategoryCycling         Category = "cycling"
	CategoryRecycling       Category = "recycling"
	CategoryEnergySaving    Category = "energy-saving"
	CategoryPublicTransport Category = "public-transport"
	CategoryTreePlanting    Category = "tree-planting"
	CategoryOther           Category = "other"
)

var categoryLabels = map[Category]string{
	CategoryCycling:         "Cycling",
	CategoryRecycling:       "Recycling",
	CategoryEnergySaving:    "Energy saving",
	CategoryPublicTransport: "Public transport",
	CategoryTreePlanting:    "Tree planting",
	CategoryOther:           "Other",
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryCycling,
		CategoryRecycling,
		CategoryEnergySaving,
		CategoryPublicTransport,
		CategoryTreePlanting,
		CategoryOther,
	}
}

// ParseCategory returns the category matching s exactly. Unknown values are
// rejected rather than coerced.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Label returns the human readable name of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Point bounds accepted for a single action.
const (
	MinPoints = 0
	MaxPoints = 1000
)

// Action is a single eco-friendly action logged by a user.
type Action struct {
	ID        int64
	UserID    int64
	Category  Category
	Date      time.Time // Calendar date, midnight UTC
	Note      string
	Points    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActionRepository handles action persistence. Every method that reads or
// mutates an existing action is scoped to its owner.
type ActionRepository interface {
	Create(ctx context.Context, action *Action) error
	// GetByID returns ErrNotFound when the action does not exist or is owned
	// by someone else.
	GetByID(ctx context.Context, userID, id int64) (*Action, error)
	// ListByUser returns the owner's actions, newest date first, ties broken
	// by descending ID.
	ListByUser(ctx context.Context, userID int64) ([]Action, error)
	// Update overwrites category, date, note and points. Returns ErrNotFound
	// when no action with action.ID belongs to action.UserID.
	Update(ctx context.Context, action *Action) error
	// Delete removes the action if the owner matches. Reports whether a row
	// was removed; a missing or foreign ID is not an error.
	Delete(ctx context.Context, userID, id int64) (bool, error)
}
