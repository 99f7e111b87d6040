package domain

import "github.com/google/uuid"

// Event is a scheduled store event. Events are append-only.
type Event struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	AddedBy     string    `json:"added_by"`
}
