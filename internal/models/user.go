package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The user's ID is the address used
// for debt tracking: groups reference it as a member address, and the
// authenticated caller's ID is the bill creator / settlement debtor.
type User struct {
	// ID is the unique identifier for the user (UUID format) and the
	// ledger address of this user.
	ID string

	// Email is the user's email address (unique). Used for login.
	Email string

	// DisplayName is the display name of the user.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
