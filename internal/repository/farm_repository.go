package repository

import (
	"context"
	"fmt"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type FarmRepository struct {
	db *sqlx.DB
}

func NewFarmRepository(db *sqlx.DB) *FarmRepository {
	return &FarmRepository{db: db}
}

// Create inserts a new farm profile
func (r *FarmRepository) Create(ctx context.Context, farm *models.FarmProfile) error {
	query := `
		INSERT INTO farm_profiles (id, user_id, farm_name, county, location, latitude, longitude,
		       boundary, size_acres, crops, farming_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		farm.ID, farm.UserID, farm.FarmName, farm.County, farm.Location,
		farm.Latitude, farm.Longitude, farm.Boundary, farm.SizeAcres,
		farm.Crops, farm.FarmingType)
	if err != nil {
		return fmt.Errorf("failed to create farm profile: %w", err)
	}

	return nil
}

// GetByID retrieves a farm profile by its ID
func (r *FarmRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FarmProfile, error) {
	var farm models.FarmProfile
	query := `
		SELECT id, user_id, farm_name, county, location, latitude, longitude,
		       boundary, size_acres, crops, farming_type, created_at, updated_at
		FROM farm_profiles
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &farm, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get farm by id: %w", err)
	}

	return &farm, nil
}

// GetByUserID retrieves the farm profile owned by a user
func (r *FarmRepository) GetByUserID(ctx context.Context, userID string) (*models.FarmProfile, error) {
	var farm models.FarmProfile
	query := `
		SELECT id, user_id, farm_name, county, location, latitude, longitude,
		       boundary, size_acres, crops, farming_type, created_at, updated_at
		FROM farm_profiles
		WHERE user_id = $1
	`

	err := r.db.GetContext(ctx, &farm, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get farm by user id: %w", err)
	}

	return &farm, nil
}

// Update updates a farm profile
func (r *FarmRepository) Update(ctx context.Context, farm *models.FarmProfile) error {
	query := `
		UPDATE farm_profiles
		SET farm_name = $2, county = $3, location = $4, latitude = $5, longitude = $6,
		    boundary = $7, size_acres = $8, crops = $9, farming_type = $10, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		farm.ID, farm.FarmName, farm.County, farm.Location, farm.Latitude,
		farm.Longitude, farm.Boundary, farm.SizeAcres, farm.Crops, farm.FarmingType)
	if err != nil {
		return fmt.Errorf("failed to update farm profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("farm not found: %s", farm.ID)
	}

	return nil
}

// Delete removes a farm profile
func (r *FarmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM farm_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete farm profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("farm not found: %s", id)
	}

	return nil
}

// CreateHarvest inserts a harvest record
func (r *FarmRepository) CreateHarvest(ctx context.Context, harvest *models.HarvestRecord) error {
	query := `
		INSERT INTO harvest_records (id, farm_id, crop, quantity_kg, harvest_date,
		       price_per_kg, estimated_value, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		harvest.ID, harvest.FarmID, harvest.Crop, harvest.QuantityKg,
		harvest.HarvestDate, harvest.PricePerKg, harvest.EstimatedValue, harvest.Notes)
	if err != nil {
		return fmt.Errorf("failed to create harvest record: %w", err)
	}

	return nil
}

// GetHarvestsByFarmID retrieves harvest records for a farm, newest first
func (r *FarmRepository) GetHarvestsByFarmID(ctx context.Context, farmID uuid.UUID) ([]models.HarvestRecord, error) {
	var harvests []models.HarvestRecord
	query := `
		SELECT id, farm_id, crop, quantity_kg, harvest_date, price_per_kg,
		       estimated_value, notes, created_at
		FROM harvest_records
		WHERE farm_id = $1
		ORDER BY harvest_date DESC
	`

	err := r.db.SelectContext(ctx, &harvests, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get harvest records: %w", err)
	}

	return harvests, nil
}

// CreateExpense inserts an expense record
func (r *FarmRepository) CreateExpense(ctx context.Context, expense *models.ExpenseRecord) error {
	query := `
		INSERT INTO expense_records (id, farm_id, category, amount, expense_date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		expense.ID, expense.FarmID, expense.Category, expense.Amount,
		expense.ExpenseDate, expense.Description)
	if err != nil {
		return fmt.Errorf("failed to create expense record: %w", err)
	}

	return nil
}

// GetExpensesByFarmID retrieves expense records for a farm, newest first
func (r *FarmRepository) GetExpensesByFarmID(ctx context.Context, farmID uuid.UUID) ([]models.ExpenseRecord, error) {
	var expenses []models.ExpenseRecord
	query := `
		SELECT id, farm_id, category, amount, expense_date, description, created_at
		FROM expense_records
		WHERE farm_id = $1
		ORDER BY expense_date DESC
	`

	err := r.db.SelectContext(ctx, &expenses, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense records: %w", err)
	}

	return expenses, nil
}

// GetHarvestSummaryByCrop aggregates harvests per crop for a farm
func (r *FarmRepository) GetHarvestSummaryByCrop(ctx context.Context, farmID uuid.UUID) ([]models.CropSummary, error) {
	var summaries []models.CropSummary
	query := `
		SELECT crop,
		       COALESCE(SUM(quantity_kg), 0) AS total_quantity_kg,
		       COALESCE(SUM(estimated_value), 0) AS total_value
		FROM harvest_records
		WHERE farm_id = $1
		GROUP BY crop
		ORDER BY total_value DESC
	`

	err := r.db.SelectContext(ctx, &summaries, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get harvest summary: %w", err)
	}

	return summaries, nil
}
