// Package models defines the rows stored by the catalog, lead and admin
// tables, plus the error values shared by the layers above them.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents an account's permission level.
type Role string

const (
	RoleAdmin Role = "admin"
	// RoleViewer can sign in but is refused by the admin API.
	RoleViewer Role = "viewer"
)

// User is a back-office account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RequiresTOTP reports whether sign-in must include a one-time code.
func (u *User) RequiresTOTP() bool {
	return u.TOTPEnabled && u.TOTPSecret != nil
}
