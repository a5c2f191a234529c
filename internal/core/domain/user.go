package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the state of a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User represents a registered wallet holder.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	PasswordHash string     `json:"-"` // Never expose
	PINHash      *string    `json:"-"` // Transaction PIN, nil until the user sets one
	IsVerified   bool       `json:"is_verified"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsActive returns true if the user account is active.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// HasPIN returns true if the user has set a transaction PIN.
func (u *User) HasPIN() bool {
	return u.PINHash != nil && *u.PINHash != ""
}

// CanReceiveTransfers returns true if the user may be the receiver of a
// peer transfer: the account must be active and email-verified.
func (u *User) CanReceiveTransfers() bool {
	return u.IsActive() && u.IsVerified
}
