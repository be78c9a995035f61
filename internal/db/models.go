package db

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an identity-provider account.
// The ID is the provider's user id, not a generated key, so both systems
// agree on the primary key.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	// Credential is a generated placeholder; authentication is delegated
	// entirely to the identity provider and this value is never checked.
	Credential string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Session represents an authenticated web session.
type Session struct {
	ID           string
	UserID       string
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Entry is one journal writing with mood metadata, owned by one user.
// Entries are immutable after creation; no update operation exists.
type Entry struct {
	ID        uuid.UUID
	UserID    string
	Content   string
	Mood      string // mood word, set together with MoodColor or both empty
	MoodColor string // hex color, e.g. "#FFD700"
	Summary   string
	Title     string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt *time.Time // nullable
}

// Album is a user-defined named collection of entries.
type Album struct {
	ID          uuid.UUID
	UserID      string
	Title       string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
