package repository

import (
	"context"
	"fmt"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type JournalRepository struct {
	db *sqlx.DB
}

func NewJournalRepository(db *sqlx.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// CreateEntry inserts a journal entry
func (r *JournalRepository) CreateEntry(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, farm_id, title, entry_date, entry_type, content,
		       crop_name, field_section, photo_object_key, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.FarmID, entry.Title, entry.EntryDate, entry.EntryType,
		entry.Content, entry.CropName, entry.FieldSection, entry.PhotoObjectKey, entry.Tags)
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return nil
}

// GetEntryByID retrieves a journal entry by its ID
func (r *JournalRepository) GetEntryByID(ctx context.Context, id uuid.UUID) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	query := `
		SELECT id, farm_id, title, entry_date, entry_type, content, crop_name,
		       field_section, photo_object_key, tags, created_at, updated_at
		FROM journal_entries
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry by id: %w", err)
	}

	return &entry, nil
}

// GetEntriesByFarmID retrieves journal entries for a farm, newest first
func (r *JournalRepository) GetEntriesByFarmID(ctx context.Context, farmID uuid.UUID, entryType *models.JournalEntryType) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	query := `
		SELECT id, farm_id, title, entry_date, entry_type, content, crop_name,
		       field_section, photo_object_key, tags, created_at, updated_at
		FROM journal_entries
		WHERE farm_id = $1
	`

	args := []interface{}{farmID}
	if entryType != nil {
		query += ` AND entry_type = $2`
		args = append(args, *entryType)
	}
	query += ` ORDER BY entry_date DESC`

	err := r.db.SelectContext(ctx, &entries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entries: %w", err)
	}

	return entries, nil
}

// UpdateEntry updates the editable fields of a journal entry
func (r *JournalRepository) UpdateEntry(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET title = $2, entry_date = $3, entry_type = $4, content = $5, crop_name = $6,
		    field_section = $7, photo_object_key = $8, tags = $9, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Title, entry.EntryDate, entry.EntryType, entry.Content,
		entry.CropName, entry.FieldSection, entry.PhotoObjectKey, entry.Tags)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("journal entry not found: %s", entry.ID)
	}

	return nil
}

// DeleteEntry removes a journal entry
func (r *JournalRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("journal entry not found: %s", id)
	}

	return nil
}

// CreateActivity inserts a field activity record
func (r *JournalRepository) CreateActivity(ctx context.Context, activity *models.FieldActivity) error {
	query := `
		INSERT INTO field_activities (id, farm_id, activity_date, activity_type, crop_name,
		       field_section, labor_cost, material_cost, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		activity.ID, activity.FarmID, activity.ActivityDate, activity.ActivityType,
		activity.CropName, activity.FieldSection, activity.LaborCost,
		activity.MaterialCost, activity.Notes)
	if err != nil {
		return fmt.Errorf("failed to create field activity: %w", err)
	}

	return nil
}

// GetActivitiesByFarmID retrieves field activities for a farm, newest first
func (r *JournalRepository) GetActivitiesByFarmID(ctx context.Context, farmID uuid.UUID) ([]models.FieldActivity, error) {
	var activities []models.FieldActivity
	query := `
		SELECT id, farm_id, activity_date, activity_type, crop_name, field_section,
		       labor_cost, material_cost, notes, created_at
		FROM field_activities
		WHERE farm_id = $1
		ORDER BY activity_date DESC
	`

	err := r.db.SelectContext(ctx, &activities, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get field activities: %w", err)
	}

	return activities, nil
}
