package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"farm-backend/internal/models"
	"farm-backend/internal/repository"
	"farm-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CreateFarmRequest is the profile payload; a user owns at most one farm.
type CreateFarmRequest struct {
	FarmName    *string               `json:"farm_name"`
	County      string                `json:"county"`
	Location    string                `json:"location"`
	Latitude    *float64              `json:"latitude"`
	Longitude   *float64              `json:"longitude"`
	Boundary    *models.GeoJSONPolygon `json:"boundary"`
	SizeAcres   float64               `json:"size_acres"`
	Crops       []string              `json:"crops"`
	FarmingType models.FarmingType    `json:"farming_type"`
}

func (r *CreateFarmRequest) Validate() error {
	if r.County == "" || r.Location == "" {
		return fmt.Errorf("county and location are required")
	}
	if r.SizeAcres <= 0 {
		return fmt.Errorf("size_acres must be positive")
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be provided together")
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		return fmt.Errorf("latitude out of range")
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		return fmt.Errorf("longitude out of range")
	}
	switch r.FarmingType {
	case models.FarmingSubsistence, models.FarmingCommercial, models.FarmingMixed:
	default:
		return fmt.Errorf("invalid farming_type %q", r.FarmingType)
	}
	return nil
}

// CreateHarvestRequest is the payload for recording a harvest.
type CreateHarvestRequest struct {
	Crop        string    `json:"crop"`
	QuantityKg  float64   `json:"quantity_kg"`
	HarvestDate time.Time `json:"harvest_date"`
	PricePerKg  float64   `json:"price_per_kg"`
	Notes       string    `json:"notes"`
}

func (r *CreateHarvestRequest) Validate() error {
	if r.Crop == "" {
		return fmt.Errorf("crop is required")
	}
	if r.QuantityKg <= 0 {
		return fmt.Errorf("quantity_kg must be positive")
	}
	if r.PricePerKg < 0 {
		return fmt.Errorf("price_per_kg must not be negative")
	}
	return nil
}

// CreateExpenseRequest is the payload for recording an expense.
type CreateExpenseRequest struct {
	Category    models.ExpenseCategory `json:"category"`
	Amount      float64                `json:"amount"`
	ExpenseDate time.Time              `json:"expense_date"`
	Description string                 `json:"description"`
}

func (r *CreateExpenseRequest) Validate() error {
	switch r.Category {
	case models.ExpenseSeeds, models.ExpenseFertilizer, models.ExpensePesticides,
		models.ExpenseLabor, models.ExpenseEquipment, models.ExpenseTransport, models.ExpenseOther:
	default:
		return fmt.Errorf("invalid category %q", r.Category)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

// FarmService covers farm profiles, harvests and expenses.
type FarmService struct {
	farmRepo *repository.FarmRepository
}

func NewFarmService(farmRepo *repository.FarmRepository) *FarmService {
	return &FarmService{farmRepo: farmRepo}
}

// CreateFarm registers the caller's farm profile. A second registration for
// the same user is rejected.
func (s *FarmService) CreateFarm(ctx context.Context, userID string, req *CreateFarmRequest) (*models.FarmProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	farm := &models.FarmProfile{
		ID:          uuid.New(),
		UserID:      userID,
		FarmName:    req.FarmName,
		County:      req.County,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Boundary:    req.Boundary,
		SizeAcres:   req.SizeAcres,
		Crops:       utils.StringList(req.Crops),
		FarmingType: req.FarmingType,
	}

	if err := s.farmRepo.Create(ctx, farm); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: user already has a farm registered", ErrInvalidState)
		}
		return nil, err
	}

	slog.Info("farm profile created", "farm_id", farm.ID, "user_id", userID, "county", farm.County)

	return farm, nil
}

// GetMyFarm returns the caller's farm profile.
func (s *FarmService) GetMyFarm(ctx context.Context, userID string) (*models.FarmProfile, error) {
	farm, err := s.farmRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no farm registered for user", ErrNotFound)
		}
		return nil, err
	}
	return farm, nil
}

// UpdateFarm updates the caller's farm profile.
func (s *FarmService) UpdateFarm(ctx context.Context, userID string, req *CreateFarmRequest) (*models.FarmProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	farm, err := s.GetMyFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	farm.FarmName = req.FarmName
	farm.County = req.County
	farm.Location = req.Location
	farm.Latitude = req.Latitude
	farm.Longitude = req.Longitude
	farm.Boundary = req.Boundary
	farm.SizeAcres = req.SizeAcres
	farm.Crops = utils.StringList(req.Crops)
	farm.FarmingType = req.FarmingType

	if err := s.farmRepo.Update(ctx, farm); err != nil {
		return nil, err
	}

	return farm, nil
}

// DeleteFarm removes the caller's farm profile and everything hanging off it.
func (s *FarmService) DeleteFarm(ctx context.Context, userID string) error {
	farm, err := s.GetMyFarm(ctx, userID)
	if err != nil {
		return err
	}

	return s.farmRepo.Delete(ctx, farm.ID)
}

// AddHarvest records a harvest; estimated value is quantity times price.
func (s *FarmService) AddHarvest(ctx context.Context, userID string, req *CreateHarvestRequest) (*models.HarvestRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	farm, err := s.GetMyFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	harvestDate := req.HarvestDate
	if harvestDate.IsZero() {
		harvestDate = time.Now()
	}

	harvest := &models.HarvestRecord{
		ID:             uuid.New(),
		FarmID:         farm.ID,
		Crop:           req.Crop,
		QuantityKg:     req.QuantityKg,
		HarvestDate:    harvestDate,
		PricePerKg:     req.PricePerKg,
		EstimatedValue: req.QuantityKg * req.PricePerKg,
		Notes:          req.Notes,
	}

	if err := s.farmRepo.CreateHarvest(ctx, harvest); err != nil {
		return nil, err
	}

	return harvest, nil
}

// ListHarvests returns the caller's harvest records.
func (s *FarmService) ListHarvests(ctx context.Context, userID string) ([]models.HarvestRecord, error) {
	farm, err := s.GetMyFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.farmRepo.GetHarvestsByFarmID(ctx, farm.ID)
}

// AddExpense records a farm expense.
func (s *FarmService) AddExpense(ctx context.Context, userID string, req *CreateExpenseRequest) (*models.ExpenseRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	farm, err := s.GetMyFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	expenseDate := req.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense := &models.ExpenseRecord{
		ID:          uuid.New(),
		FarmID:      farm.ID,
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		Description: req.Description,
	}

	if err := s.farmRepo.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpenses returns the caller's expense records.
func (s *FarmService) ListExpenses(ctx context.Context, userID string) ([]models.ExpenseRecord, error) {
	farm, err := s.GetMyFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.farmRepo.GetExpensesByFarmID(ctx, farm.ID)
}

// GetAnalytics aggregates the caller's harvests and expenses.
func (s *FarmService) GetAnalytics(ctx context.Context, userID string) (*models.FarmAnalytics, error) {
	farm, err := s.GetMyFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	harvests, err := s.farmRepo.GetHarvestsByFarmID(ctx, farm.ID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.farmRepo.GetExpensesByFarmID(ctx, farm.ID)
	if err != nil {
		return nil, err
	}

	byCrop, err := s.farmRepo.GetHarvestSummaryByCrop(ctx, farm.ID)
	if err != nil {
		return nil, err
	}

	analytics := &models.FarmAnalytics{
		FarmName:      farm.DisplayName(),
		TotalHarvests: len(harvests),
		ExpenseByCat:  map[string]float64{},
		HarvestByCrop: byCrop,
	}

	for _, harvest := range harvests {
		analytics.TotalQuantityKg += harvest.QuantityKg
		analytics.TotalValue += harvest.EstimatedValue
	}
	for _, expense := range expenses {
		analytics.TotalExpenses += expense.Amount
		analytics.ExpenseByCat[string(expense.Category)] += expense.Amount
	}
	analytics.EstimatedProfit = analytics.TotalValue - analytics.TotalExpenses

	return analytics, nil
}
