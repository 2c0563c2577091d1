package handler

import (
	"time"

	"github.com/msomdec/eco-track/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	AvatarURL   string   `json:"avatarUrl"`
	Roles       []string `json:"roles"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Roles:       roles,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}

// ActionDTO is the JSON representation of an eco action.
type ActionDTO struct {
	ID            int64  `json:"id"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
	Date          string `json:"date"`
	Note          string `json:"note"`
	Points        int    `json:"points"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func toActionDTO(a *domain.Action) ActionDTO {
	return ActionDTO{
		ID:            a.ID,
		Category:      string(a.Category),
		CategoryLabel: a.Category.Label(),
		Date:          a.Date.Format(domain.DateLayout),
		Note:          a.Note,
		Points:        a.Points,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
}

func toActionDTOs(actions []domain.Action) []ActionDTO {
	dtos := make([]ActionDTO, len(actions))
	for i := range actions {
		dtos[i] = toActionDTO(&actions[i])
	}
	return dtos
}

// WeekPointsDTO is one ISO week of the dashboard breakdown.
type WeekPointsDTO struct {
	Week   string `json:"week"`
	Points int    `json:"points"`
}

// DashboardDTO is the JSON representation of the dashboard summary.
type DashboardDTO struct {
	TotalPoints      int             `json:"totalPoints"`
	Tier             string          `json:"tier"`
	ActionCount      int             `json:"actionCount"`
	PointsToNextTier int             `json:"pointsToNextTier"`
	Weeks            []WeekPointsDTO `json:"weeks"`
}

func toDashboardDTO(s domain.Summary) DashboardDTO {
	weeks := make([]WeekPointsDTO, len(s.Weeks))
	for i, w := range s.Weeks {
		weeks[i] = WeekPointsDTO{Week: w.Week, Points: w.Points}
	}
	return DashboardDTO{
		TotalPoints:      s.TotalPoints,
		Tier:             string(s.Tier),
		ActionCount:      s.ActionCount,
		PointsToNextTier: s.PointsToNextTier,
		Weeks:            weeks,
	}
}
