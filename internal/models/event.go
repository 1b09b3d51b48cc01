package models

import (
	"time"
)

// Event represents a community event row
type Event struct {
	ID          int64     `json:"id" db:"id"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	EventDate   time.Time `json:"eventDate" db:"event_date"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// EventDetail is an event with its creator joined in, as returned by the
// next-event and event-list endpoints
type EventDetail struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	EventDate          time.Time `json:"eventDate"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatorDisplayName string    `json:"creatorDisplayName"`
	CreatorAvatarURL   *string   `json:"creatorAvatarUrl"`
}
