package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role groups a set of permissions
type Role struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	Permissions []*Permission `json:"permissions,omitempty"`
}

// Permission names an action a role is allowed to perform
type Permission struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	RoleID      int64  `json:"role_id" db:"role_id"`
}

// User represents a system account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Email        string    `json:"email" db:"email"`
	RoleID       *int64    `json:"role_id" db:"role_id"`
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Role *Role `json:"role,omitempty"`
}

// RefreshToken is a persisted opaque token used to mint new access tokens
type RefreshToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
}
