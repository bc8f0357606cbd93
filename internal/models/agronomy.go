package models

import (
	"time"

	"github.com/google/uuid"
)

// AgroChatRecord is one stored agronomist-chat interaction. Responses come
// from the deterministic keyword rules in the chat service.
type AgroChatRecord struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Query     string    `json:"query" db:"query"`
	Response  string    `json:"response" db:"response"`
	Context   string    `json:"context" db:"context"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
