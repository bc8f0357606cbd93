package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"farm-backend/internal/event"
	"farm-backend/internal/models"
	"farm-backend/internal/repository"

	"github.com/google/uuid"
)

// PolicyExpirationService runs the daily sweep that flips active policies
// past their end date to expired and tells the owners.
type PolicyExpirationService struct {
	policyRepo       *repository.PolicyRepository
	farmRepo         *repository.FarmRepository
	notificationRepo *repository.NotificationRepository
	publisher        *event.NotificationPublisher
}

func NewPolicyExpirationService(
	policyRepo *repository.PolicyRepository,
	farmRepo *repository.FarmRepository,
	notificationRepo *repository.NotificationRepository,
	publisher *event.NotificationPublisher,
) *PolicyExpirationService {
	return &PolicyExpirationService{
		policyRepo:       policyRepo,
		farmRepo:         farmRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Run expires overdue policies and notifies their owners. Returns the number
// of policies flipped.
func (s *PolicyExpirationService) Run(ctx context.Context) (int, error) {
	ids, err := s.policyRepo.ExpireOverduePolicies(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		s.notifyExpired(ctx, id)
	}

	if len(ids) > 0 {
		slog.Info("policy expiration sweep completed", "expired", len(ids))
	}

	return len(ids), nil
}

func (s *PolicyExpirationService) notifyExpired(ctx context.Context, policyID uuid.UUID) {
	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		slog.Error("failed to load expired policy", "error", err, "policy_id", policyID)
		return
	}

	farm, err := s.farmRepo.GetByID(ctx, policy.FarmID)
	if err != nil {
		slog.Error("failed to load farm for expired policy", "error", err, "policy_id", policyID)
		return
	}

	title := "Insurance policy expired"
	body := fmt.Sprintf("Policy %s reached its end date and is no longer active", policy.PolicyNumber)

	notification := &models.Notification{
		ID:       uuid.New(),
		UserID:   farm.UserID,
		Type:     models.NotificationPolicyExpired,
		Priority: models.PriorityMedium,
		Title:    title,
		Message:  body,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("failed to store expiry notification", "error", err, "policy_id", policyID)
	}

	if s.publisher != nil {
		err := s.publisher.PublishNotification(ctx, event.NotificationEventPushModel{
			EventType:  event.EventPolicyExpired,
			Title:      title,
			Body:       body,
			LstUserIds: []string{farm.UserID},
			Data:       map[string]any{"policy_id": policy.ID.String()},
		})
		if err != nil {
			slog.Error("failed to publish expiry event", "error", err, "policy_id", policyID)
		}
	}
}
