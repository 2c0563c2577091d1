package domain

import (
	"context"
	"slices"
	"time"
)

// RoleUser is assigned to every account at registration.
const RoleUser = "user"

// User represents a registered user of the application.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
	AvatarURL    string // Optional; empty when the user has not set one
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts the user and its roles atomically.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// UpdateProfile changes the display name and avatar only.
	UpdateProfile(ctx context.Context, id int64, displayName, avatarURL string) error
}
