package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"farm-backend/internal/event"
	"farm-backend/internal/models"
	"farm-backend/internal/repository"

	"github.com/google/uuid"
)

// assessmentWindowDays is the trailing window a risk assessment scores.
const assessmentWindowDays = 30

// ClimateService covers weather ingestion, NDVI, risk assessments and
// weather alerts.
type ClimateService struct {
	farmRepo         *repository.FarmRepository
	weatherRepo      *repository.WeatherRepository
	climateRepo      *repository.ClimateRepository
	notificationRepo *repository.NotificationRepository
	publisher        *event.NotificationPublisher
}

func NewClimateService(
	farmRepo *repository.FarmRepository,
	weatherRepo *repository.WeatherRepository,
	climateRepo *repository.ClimateRepository,
	notificationRepo *repository.NotificationRepository,
	publisher *event.NotificationPublisher,
) *ClimateService {
	return &ClimateService{
		farmRepo:         farmRepo,
		weatherRepo:      weatherRepo,
		climateRepo:      climateRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// UpsertWeather ingests one weather row, replacing measurements on conflict.
func (s *ClimateService) UpsertWeather(ctx context.Context, req *models.UpsertWeatherRequest) (*models.WeatherObservation, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	obs := &models.WeatherObservation{
		ID:           uuid.New(),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		LocationName: req.LocationName,
		Date:         req.Date,
		ForecastDate: req.ForecastDate,
		TempMin:      req.TempMin,
		TempMax:      req.TempMax,
		TempAvg:      req.TempAvg,
		Rainfall:     req.Rainfall,
		Humidity:     req.Humidity,
		WindSpeed:    req.WindSpeed,
		Condition:    req.Condition,
		Source:       req.Source,
	}

	if err := s.weatherRepo.Upsert(ctx, obs); err != nil {
		return nil, err
	}

	slog.Info("weather observation upserted",
		"latitude", obs.Latitude,
		"longitude", obs.Longitude,
		"date", obs.Date.Format("2006-01-02"),
		"forecast", obs.IsForecast(),
	)

	return obs, nil
}

// GetWeatherHistory returns historical readings for the caller's farm over a
// trailing number of days.
func (s *ClimateService) GetWeatherHistory(ctx context.Context, userID string, days int) ([]models.WeatherObservation, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !farm.HasCoordinates() {
		return nil, fmt.Errorf("%w: farm has no coordinates", ErrInvalidState)
	}

	now := time.Now()
	return s.weatherRepo.GetHistoricalWindow(ctx, *farm.Latitude, *farm.Longitude,
		now.AddDate(0, 0, -days), now)
}

// GetWeatherForecasts returns upcoming forecast rows for the caller's farm.
func (s *ClimateService) GetWeatherForecasts(ctx context.Context, userID string) ([]models.WeatherObservation, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !farm.HasCoordinates() {
		return nil, fmt.Errorf("%w: farm has no coordinates", ErrInvalidState)
	}

	return s.weatherRepo.GetForecasts(ctx, *farm.Latitude, *farm.Longitude, time.Now().Truncate(24*time.Hour))
}

// RecordNDVI stores one satellite measurement for the caller's farm. The
// health status is derived from the NDVI value, never taken from the caller.
func (s *ClimateService) RecordNDVI(ctx context.Context, userID string, req *models.CreateNDVIRequest) (*models.NDVIRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	record := &models.NDVIRecord{
		ID:                uuid.New(),
		FarmID:            farm.ID,
		NDVIValue:         req.NDVIValue,
		ImageDate:         req.ImageDate,
		HealthStatus:      models.NDVIHealthStatus(req.NDVIValue),
		Source:            req.Source,
		CloudCoverPercent: req.CloudCoverPercent,
	}

	if err := s.weatherRepo.CreateNDVI(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// ListNDVI returns recent NDVI records for the caller's farm.
func (s *ClimateService) ListNDVI(ctx context.Context, userID string, limit int) ([]models.NDVIRecord, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	return s.weatherRepo.GetNDVIByFarmID(ctx, farm.ID, limit)
}

// RunRiskAssessment scores the trailing weather window for the caller's farm
// and upserts today's assessment covering the forward period the caller asked
// for. High and critical outcomes raise an alert and a notification.
func (s *ClimateService) RunRiskAssessment(ctx context.Context, userID string, daysAhead int) (*models.ClimateRiskAssessment, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !farm.HasCoordinates() {
		return nil, fmt.Errorf("%w: farm has no coordinates", ErrInvalidState)
	}

	now := time.Now()
	today := now.Truncate(24 * time.Hour)
	periodStart, periodEnd := assessmentPeriod(today, daysAhead)

	window, err := s.weatherRepo.GetHistoricalWindow(ctx, *farm.Latitude, *farm.Longitude,
		today.AddDate(0, 0, -assessmentWindowDays), today)
	if err != nil {
		return nil, err
	}

	scores := ScoreClimateRisks(window)

	assessment := &models.ClimateRiskAssessment{
		ID:              uuid.New(),
		FarmID:          farm.ID,
		AssessmentDate:  today,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		DroughtRisk:     scores.Drought,
		FloodRisk:       scores.Flood,
		ExtremeTempRisk: scores.ExtremeTemp,
		OverallRisk:     models.OverallRiskLevelFor(scores.Drought, scores.Flood, scores.ExtremeTemp),
		Recommendations: BuildRecommendations(scores.Drought, scores.Flood, scores.ExtremeTemp),
		Confidence:      scores.Confidence,
	}

	if err := s.climateRepo.UpsertAssessment(ctx, assessment); err != nil {
		return nil, err
	}

	slog.Info("risk assessment stored",
		"farm_id", farm.ID,
		"drought", scores.Drought,
		"flood", scores.Flood,
		"extreme_temp", scores.ExtremeTemp,
		"overall", assessment.OverallRisk,
		"observations", len(window),
	)

	if assessment.OverallRisk == models.RiskLevelHigh || assessment.OverallRisk == models.RiskLevelCritical {
		s.notifyRiskLevel(ctx, farm, assessment)
	}

	return assessment, nil
}

// assessmentPeriod resolves the forward window an assessment covers.
func assessmentPeriod(today time.Time, daysAhead int) (time.Time, time.Time) {
	if daysAhead <= 0 {
		daysAhead = assessmentWindowDays
	}
	return today, today.AddDate(0, 0, daysAhead)
}

// notifyRiskLevel records a weather alert, an in-app notification and a
// gateway push event for an elevated assessment. Delivery failures are
// logged, not propagated.
func (s *ClimateService) notifyRiskLevel(ctx context.Context, farm *models.FarmProfile, assessment *models.ClimateRiskAssessment) {
	alert := buildRiskAlert(farm, assessment)
	if err := s.weatherRepo.CreateAlert(ctx, alert); err != nil {
		slog.Error("failed to store weather alert", "error", err, "farm_id", farm.ID)
	}

	title := alert.Title
	message := assessment.Recommendations

	notification := &models.Notification{
		ID:       uuid.New(),
		UserID:   farm.UserID,
		Type:     models.NotificationWeatherAlert,
		Priority: models.PriorityHigh,
		Title:    title,
		Message:  message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("failed to store risk notification", "error", err, "farm_id", farm.ID)
	}

	if s.publisher != nil {
		err := s.publisher.PublishNotification(ctx, event.NotificationEventPushModel{
			EventType:  event.EventRiskAlert,
			Title:      title,
			Body:       message,
			LstUserIds: []string{farm.UserID},
			Data: map[string]any{
				"farm_id":    farm.ID.String(),
				"risk_level": string(assessment.OverallRisk),
			},
		})
		if err != nil {
			slog.Error("failed to publish risk alert event", "error", err, "farm_id", farm.ID)
		}
	}
}

// buildRiskAlert renders the weather alert an elevated assessment raises.
// The dominant component picks the alert type; a critical overall level
// escalates the severity. The alert stays valid for the assessment's
// forward period.
func buildRiskAlert(farm *models.FarmProfile, assessment *models.ClimateRiskAssessment) *models.WeatherAlert {
	alertType := models.AlertDrought
	maxRisk := assessment.DroughtRisk
	if assessment.FloodRisk > maxRisk {
		alertType = models.AlertHeavyRain
		maxRisk = assessment.FloodRisk
	}
	if assessment.ExtremeTempRisk > maxRisk {
		alertType = models.AlertHeatwave
	}

	severity := models.SeverityWarning
	if assessment.OverallRisk == models.RiskLevelCritical {
		severity = models.SeverityCritical
	}

	return &models.WeatherAlert{
		ID:               uuid.New(),
		UserID:           farm.UserID,
		AlertType:        alertType,
		Severity:         severity,
		Title:            fmt.Sprintf("Climate risk is %s for %s", assessment.OverallRisk, farm.DisplayName()),
		Message:          assessment.Recommendations,
		ValidFrom:        assessment.PeriodStart,
		ValidUntil:       assessment.PeriodEnd,
		IsActive:         true,
		NotificationSent: true,
	}
}

// GetLatestAssessment returns the most recent assessment for the caller's farm.
func (s *ClimateService) GetLatestAssessment(ctx context.Context, userID string) (*models.ClimateRiskAssessment, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.climateRepo.GetLatestByFarmID(ctx, farm.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no assessment yet", ErrNotFound)
		}
		return nil, err
	}

	return assessment, nil
}

// GetAssessmentHistory returns assessments over a trailing number of days.
func (s *ClimateService) GetAssessmentHistory(ctx context.Context, userID string, days int) ([]models.ClimateRiskAssessment, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 90
	}

	return s.climateRepo.GetHistoryByFarmID(ctx, farm.ID, time.Now().AddDate(0, 0, -days))
}

// GetAnalytics aggregates weather, NDVI and risk for the caller's farm.
func (s *ClimateService) GetAnalytics(ctx context.Context, userID string, days int) (*models.ClimateAnalytics, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = assessmentWindowDays
	}

	now := time.Now()
	periodStart := now.AddDate(0, 0, -days)

	analytics := &models.ClimateAnalytics{
		FarmName:         farm.DisplayName(),
		PeriodStart:      periodStart,
		PeriodEnd:        now,
		CurrentRiskLevel: string(models.RiskLevelLow),
		RiskFactors:      map[string]int{},
	}

	if farm.HasCoordinates() {
		window, err := s.weatherRepo.GetHistoricalWindow(ctx, *farm.Latitude, *farm.Longitude, periodStart, now)
		if err != nil {
			return nil, err
		}
		analytics.AvgTemperature = avgTemperature(window)
		analytics.TotalRainfall = sumRainfall(window)
		for _, obs := range window {
			if obs.Rainfall >= dryDayThresholdMM {
				analytics.RainyDays++
			}
		}
	}

	ndvi, err := s.weatherRepo.GetNDVIByFarmID(ctx, farm.ID, 30)
	if err != nil {
		return nil, err
	}
	if len(ndvi) > 0 {
		var total float64
		for _, record := range ndvi {
			total += record.NDVIValue
		}
		analytics.AvgNDVI = total / float64(len(ndvi))
		analytics.LatestHealth = string(ndvi[0].HealthStatus)
	}

	assessment, err := s.climateRepo.GetLatestByFarmID(ctx, farm.ID)
	if err == nil {
		analytics.CurrentRiskLevel = string(assessment.OverallRisk)
		analytics.RiskFactors = map[string]int{
			"drought":      assessment.DroughtRisk,
			"flood":        assessment.FloodRisk,
			"extreme_temp": assessment.ExtremeTempRisk,
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return analytics, nil
}

// ListAlerts returns active alerts for the caller.
func (s *ClimateService) ListAlerts(ctx context.Context, userID string) ([]models.WeatherAlert, error) {
	return s.weatherRepo.GetActiveAlertsByUserID(ctx, userID, time.Now())
}

// MarkAlertRead marks one of the caller's alerts as read.
func (s *ClimateService) MarkAlertRead(ctx context.Context, userID string, alertID uuid.UUID) error {
	if err := s.weatherRepo.MarkAlertRead(ctx, alertID, userID); err != nil {
		return fmt.Errorf("%w: alert %s", ErrNotFound, alertID)
	}
	return nil
}

func (s *ClimateService) ownedFarm(ctx context.Context, userID string) (*models.FarmProfile, error) {
	farm, err := s.farmRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no farm registered for user", ErrNotFound)
		}
		return nil, err
	}
	return farm, nil
}
