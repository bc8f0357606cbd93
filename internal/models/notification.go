package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one in-app notification for a user. SMS/email delivery is
// handled by the downstream gateway consuming the published events.
type Notification struct {
	ID        uuid.UUID            `json:"id" db:"id"`
	UserID    string               `json:"user_id" db:"user_id"`
	Type      NotificationType     `json:"notification_type" db:"notification_type"`
	Priority  NotificationPriority `json:"priority" db:"priority"`
	Title     string               `json:"title" db:"title"`
	Message   string               `json:"message" db:"message"`
	IsRead    bool                 `json:"is_read" db:"is_read"`
	ReadAt    *time.Time           `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
}
