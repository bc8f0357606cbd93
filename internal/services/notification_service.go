package services

import (
	"context"
	"fmt"
	"time"

	"farm-backend/internal/models"
	"farm-backend/internal/repository"

	"github.com/google/uuid"
)

// NotificationService exposes the in-app notification inbox.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the caller's notifications, optionally unread only.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	return s.notificationRepo.GetByUserID(ctx, userID, unreadOnly)
}

// MarkRead marks one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, id, userID, time.Now()); err != nil {
		return fmt.Errorf("%w: notification %s", ErrNotFound, id)
	}
	return nil
}

// MarkAllRead marks every unread notification as read and returns the count.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID, time.Now())
}
