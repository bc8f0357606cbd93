package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is one farm-diary note. PhotoObjectKey references the MinIO
// object holding an attached photo; PhotoURL is the presigned URL filled in
// on read, never stored.
type JournalEntry struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	FarmID         uuid.UUID        `json:"farm_id" db:"farm_id"`
	Title          string           `json:"title" db:"title"`
	EntryDate      time.Time        `json:"entry_date" db:"entry_date"`
	EntryType      JournalEntryType `json:"entry_type" db:"entry_type"`
	Content        string           `json:"content" db:"content"`
	CropName       string           `json:"crop_name" db:"crop_name"`
	FieldSection   string           `json:"field_section" db:"field_section"`
	PhotoObjectKey *string          `json:"-" db:"photo_object_key"`
	PhotoURL       string           `json:"photo_url,omitempty" db:"-"`
	Tags           string           `json:"tags" db:"tags"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

// FieldActivity is a structured record of one farm operation.
type FieldActivity struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FarmID       uuid.UUID `json:"farm_id" db:"farm_id"`
	ActivityDate time.Time `json:"activity_date" db:"activity_date"`
	ActivityType string    `json:"activity_type" db:"activity_type"`
	CropName     string    `json:"crop_name" db:"crop_name"`
	FieldSection string    `json:"field_section" db:"field_section"`
	LaborCost    float64   `json:"labor_cost" db:"labor_cost"`
	MaterialCost float64   `json:"material_cost" db:"material_cost"`
	Notes        string    `json:"notes" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
