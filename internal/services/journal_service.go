package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"farm-backend/internal/database/minio"
	"farm-backend/internal/models"
	"farm-backend/internal/repository"

	"github.com/google/uuid"
)

const photoURLExpiry = 1 * time.Hour

// CreateJournalEntryRequest is the payload for a new diary entry.
type CreateJournalEntryRequest struct {
	Title        string                  `json:"title"`
	EntryDate    time.Time               `json:"entry_date"`
	EntryType    models.JournalEntryType `json:"entry_type"`
	Content      string                  `json:"content"`
	CropName     string                  `json:"crop_name"`
	FieldSection string                  `json:"field_section"`
	Tags         string                  `json:"tags"`
}

func (r *CreateJournalEntryRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.EntryType == "" {
		return fmt.Errorf("entry_type is required")
	}
	return nil
}

// CreateActivityRequest is the payload for a structured field activity.
type CreateActivityRequest struct {
	ActivityDate time.Time `json:"activity_date"`
	ActivityType string    `json:"activity_type"`
	CropName     string    `json:"crop_name"`
	FieldSection string    `json:"field_section"`
	LaborCost    float64   `json:"labor_cost"`
	MaterialCost float64   `json:"material_cost"`
	Notes        string    `json:"notes"`
}

func (r *CreateActivityRequest) Validate() error {
	if r.ActivityType == "" {
		return fmt.Errorf("activity_type is required")
	}
	if r.LaborCost < 0 || r.MaterialCost < 0 {
		return fmt.Errorf("costs must not be negative")
	}
	return nil
}

// JournalService covers diary entries (with photo attachments stored in
// MinIO) and structured field activities.
type JournalService struct {
	farmRepo    *repository.FarmRepository
	journalRepo *repository.JournalRepository
	storage     *minio.MinioClient
}

func NewJournalService(farmRepo *repository.FarmRepository, journalRepo *repository.JournalRepository, storage *minio.MinioClient) *JournalService {
	return &JournalService{
		farmRepo:    farmRepo,
		journalRepo: journalRepo,
		storage:     storage,
	}
}

// CreateEntry records a diary entry for the caller's farm.
func (s *JournalService) CreateEntry(ctx context.Context, userID string, req *CreateJournalEntryRequest) (*models.JournalEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	entryDate := req.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	entry := &models.JournalEntry{
		ID:           uuid.New(),
		FarmID:       farm.ID,
		Title:        req.Title,
		EntryDate:    entryDate,
		EntryType:    req.EntryType,
		Content:      req.Content,
		CropName:     req.CropName,
		FieldSection: req.FieldSection,
		Tags:         req.Tags,
	}

	if err := s.journalRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// AttachPhoto uploads a photo for one of the caller's entries and stores the
// object key on the entry.
func (s *JournalService) AttachPhoto(ctx context.Context, userID string, entryID uuid.UUID, data []byte, contentType string) (*models.JournalEntry, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty photo upload", ErrValidation)
	}
	if s.storage == nil {
		return nil, fmt.Errorf("%w: photo storage is not configured", ErrInvalidState)
	}

	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("%s/%s", entry.FarmID, entry.ID)
	if err := s.storage.UploadBytes(ctx, minio.Storage.JournalPhotos, objectKey, data, contentType); err != nil {
		return nil, err
	}

	entry.PhotoObjectKey = &objectKey
	if err := s.journalRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.fillPhotoURL(ctx, entry)

	slog.Info("journal photo attached", "entry_id", entry.ID, "bytes", len(data))

	return entry, nil
}

// GetEntry returns one of the caller's entries with a presigned photo URL.
func (s *JournalService) GetEntry(ctx context.Context, userID string, entryID uuid.UUID) (*models.JournalEntry, error) {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	s.fillPhotoURL(ctx, entry)
	return entry, nil
}

// ListEntries returns the caller's entries, optionally filtered by type.
func (s *JournalService) ListEntries(ctx context.Context, userID string, entryType *models.JournalEntryType) ([]models.JournalEntry, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.journalRepo.GetEntriesByFarmID(ctx, farm.ID, entryType)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		s.fillPhotoURL(ctx, &entries[i])
	}

	return entries, nil
}

// UpdateEntry updates one of the caller's entries.
func (s *JournalService) UpdateEntry(ctx context.Context, userID string, entryID uuid.UUID, req *CreateJournalEntryRequest) (*models.JournalEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Title = req.Title
	if !req.EntryDate.IsZero() {
		entry.EntryDate = req.EntryDate
	}
	entry.EntryType = req.EntryType
	entry.Content = req.Content
	entry.CropName = req.CropName
	entry.FieldSection = req.FieldSection
	entry.Tags = req.Tags

	if err := s.journalRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.fillPhotoURL(ctx, entry)
	return entry, nil
}

// DeleteEntry removes one of the caller's entries, photo included.
func (s *JournalService) DeleteEntry(ctx context.Context, userID string, entryID uuid.UUID) error {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}

	if entry.PhotoObjectKey != nil && s.storage != nil {
		if err := s.storage.DeleteFile(ctx, minio.Storage.JournalPhotos, *entry.PhotoObjectKey); err != nil {
			slog.Warn("failed to delete journal photo", "error", err, "entry_id", entry.ID)
		}
	}

	return s.journalRepo.DeleteEntry(ctx, entry.ID)
}

// AddActivity records a structured field activity for the caller's farm.
func (s *JournalService) AddActivity(ctx context.Context, userID string, req *CreateActivityRequest) (*models.FieldActivity, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	activityDate := req.ActivityDate
	if activityDate.IsZero() {
		activityDate = time.Now()
	}

	activity := &models.FieldActivity{
		ID:           uuid.New(),
		FarmID:       farm.ID,
		ActivityDate: activityDate,
		ActivityType: req.ActivityType,
		CropName:     req.CropName,
		FieldSection: req.FieldSection,
		LaborCost:    req.LaborCost,
		MaterialCost: req.MaterialCost,
		Notes:        req.Notes,
	}

	if err := s.journalRepo.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// ListActivities returns the caller's field activities.
func (s *JournalService) ListActivities(ctx context.Context, userID string) ([]models.FieldActivity, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.journalRepo.GetActivitiesByFarmID(ctx, farm.ID)
}

// fillPhotoURL presigns the photo object for API responses. A presign
// failure leaves the URL empty rather than failing the read.
func (s *JournalService) fillPhotoURL(ctx context.Context, entry *models.JournalEntry) {
	if entry.PhotoObjectKey == nil || s.storage == nil {
		return
	}

	url, err := s.storage.GetPresignedURL(ctx, minio.Storage.JournalPhotos, *entry.PhotoObjectKey, photoURLExpiry)
	if err != nil {
		slog.Warn("failed to presign journal photo", "error", err, "entry_id", entry.ID)
		return
	}
	entry.PhotoURL = url
}

func (s *JournalService) ownedFarm(ctx context.Context, userID string) (*models.FarmProfile, error) {
	farm, err := s.farmRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no farm registered for user", ErrNotFound)
		}
		return nil, err
	}
	return farm, nil
}

func (s *JournalService) ownedEntry(ctx context.Context, userID string, entryID uuid.UUID) (*models.JournalEntry, error) {
	entry, err := s.journalRepo.GetEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", ErrNotFound, entryID)
		}
		return nil, err
	}

	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entry.FarmID != farm.ID {
		return nil, fmt.Errorf("%w: journal entry %s", ErrForbidden, entryID)
	}

	return entry, nil
}
