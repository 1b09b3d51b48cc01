package models

import (
	"time"
)

// Session represents a server-side session row. The session id travels in a
// signed cookie; everything else stays in the database.
type Session struct {
	ID           string    `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	LastAccessed time.Time `json:"lastAccessed" db:"last_accessed"`
	ExpiresAt    time.Time `json:"expiresAt" db:"expires_at"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
