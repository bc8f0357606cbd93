package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"farm-backend/internal/models"
	"farm-backend/internal/repository"

	"github.com/google/uuid"
)

// Canned agronomist responses, matched by keyword in order.
const (
	responseMaize      = "Maize requires well-drained soil with pH 5.5-7.0. Ensure adequate nitrogen fertilizer application at planting and top dressing."
	responsePests      = "For pest control, integrated pest management is recommended. Could you describe the symptoms or upload a photo?"
	responseIrrigation = "Most crops require consistent moisture. Drip irrigation is efficient for water conservation."
	responseFallback   = "That's an interesting question. As an AI Agronomist, I recommend checking our Crop Guides for specific details or consulting a local expert."
)

// ChatService answers agronomy questions with deterministic keyword rules
// and keeps a per-user history.
type ChatService struct {
	agronomyRepo *repository.AgronomyRepository
}

func NewChatService(agronomyRepo *repository.AgronomyRepository) *ChatService {
	return &ChatService{agronomyRepo: agronomyRepo}
}

// Ask answers a query and stores the interaction.
func (s *ChatService) Ask(ctx context.Context, userID string, req *models.ChatRequest) (*models.AgroChatRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	record := &models.AgroChatRecord{
		ID:       uuid.New(),
		UserID:   userID,
		Query:    req.Query,
		Response: AnswerQuery(req.Query),
		Context:  req.Context,
	}

	if err := s.agronomyRepo.CreateChatRecord(ctx, record); err != nil {
		return nil, err
	}

	slog.Info("chat query answered", "user_id", userID, "query_len", len(req.Query))

	return record, nil
}

// History returns the caller's recent chat interactions.
func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]models.AgroChatRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.agronomyRepo.GetHistoryByUserID(ctx, userID, limit)
}

// AnswerQuery matches keywords against the query, first rule wins.
func AnswerQuery(query string) string {
	queryLower := strings.ToLower(query)

	switch {
	case strings.Contains(queryLower, "maize"):
		return responseMaize
	case strings.Contains(queryLower, "pest") || strings.Contains(queryLower, "disease"):
		return responsePests
	case strings.Contains(queryLower, "water") || strings.Contains(queryLower, "irrigation"):
		return responseIrrigation
	default:
		return responseFallback
	}
}
