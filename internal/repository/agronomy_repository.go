package repository

import (
	"context"
	"fmt"

	"farm-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

type AgronomyRepository struct {
	db *sqlx.DB
}

func NewAgronomyRepository(db *sqlx.DB) *AgronomyRepository {
	return &AgronomyRepository{db: db}
}

// CreateChatRecord stores one chat interaction
func (r *AgronomyRepository) CreateChatRecord(ctx context.Context, record *models.AgroChatRecord) error {
	query := `
		INSERT INTO agro_chat_records (id, user_id, query, response, context, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.Query, record.Response, record.Context)
	if err != nil {
		return fmt.Errorf("failed to create chat record: %w", err)
	}

	return nil
}

// GetHistoryByUserID retrieves a user's chat history, newest first
func (r *AgronomyRepository) GetHistoryByUserID(ctx context.Context, userID string, limit int) ([]models.AgroChatRecord, error) {
	var records []models.AgroChatRecord
	query := `
		SELECT id, user_id, query, response, context, created_at
		FROM agro_chat_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &records, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	return records, nil
}
