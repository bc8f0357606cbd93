package models

type WeatherCondition string

const (
	ConditionClear        WeatherCondition = "clear"
	ConditionCloudy       WeatherCondition = "cloudy"
	ConditionRainy        WeatherCondition = "rainy"
	ConditionStormy       WeatherCondition = "stormy"
	ConditionPartlyCloudy WeatherCondition = "partly_cloudy"
)

type WeatherSource string

const (
	WeatherSourceOpenWeather WeatherSource = "openweather"
	WeatherSourceManual      WeatherSource = "manual"
	WeatherSourceSensor      WeatherSource = "sensor"
)

type NDVISource string

const (
	NDVISourceSentinel NDVISource = "sentinel"
	NDVISourceLandsat  NDVISource = "landsat"
	NDVISourceGoogleEE NDVISource = "google_ee"
	NDVISourceManual   NDVISource = "manual"
)

type CropHealthStatus string

const (
	CropHealthPoor      CropHealthStatus = "poor"
	CropHealthFair      CropHealthStatus = "fair"
	CropHealthGood      CropHealthStatus = "good"
	CropHealthExcellent CropHealthStatus = "excellent"
)

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

type AlertType string

const (
	AlertDrought   AlertType = "drought"
	AlertHeavyRain AlertType = "heavy_rain"
	AlertStorm     AlertType = "storm"
	AlertFrost     AlertType = "frost"
	AlertHeatwave  AlertType = "heatwave"
)

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

type PolicyType string

const (
	PolicyTypeDrought     PolicyType = "drought"
	PolicyTypeFlood       PolicyType = "flood"
	PolicyTypeMultiPeril  PolicyType = "multi_peril"
	PolicyTypeExcessRain  PolicyType = "excess_rain"
	PolicyTypeTemperature PolicyType = "temperature"
)

type PolicyStatus string

const (
	PolicyDraft     PolicyStatus = "draft"
	PolicyActive    PolicyStatus = "active"
	PolicyExpired   PolicyStatus = "expired"
	PolicyCancelled PolicyStatus = "cancelled"
	PolicyClaimed   PolicyStatus = "claimed"
)

type PaymentFrequency string

const (
	PaymentMonthly   PaymentFrequency = "monthly"
	PaymentQuarterly PaymentFrequency = "quarterly"
	PaymentAnnually  PaymentFrequency = "annually"
)

type TriggerType string

const (
	TriggerRainfallDeficit    TriggerType = "rainfall_deficit"
	TriggerRainfallExcess     TriggerType = "rainfall_excess"
	TriggerTemperatureHigh    TriggerType = "temperature_high"
	TriggerTemperatureLow     TriggerType = "temperature_low"
	TriggerConsecutiveDryDays TriggerType = "consecutive_dry_days"
)

type ClaimType string

const (
	ClaimAutomatic ClaimType = "automatic"
	ClaimManual    ClaimType = "manual"
)

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
	ClaimPaid     ClaimStatus = "paid"
)

type PaymentMethod string

const (
	PaymentMpesa       PaymentMethod = "mpesa"
	PaymentBank        PaymentMethod = "bank"
	PaymentCash        PaymentMethod = "cash"
	PaymentMobileMoney PaymentMethod = "mobile_money"
)

type FarmingType string

const (
	FarmingSubsistence FarmingType = "subsistence"
	FarmingCommercial  FarmingType = "commercial"
	FarmingMixed       FarmingType = "mixed"
)

type ExpenseCategory string

const (
	ExpenseSeeds      ExpenseCategory = "seeds"
	ExpenseFertilizer ExpenseCategory = "fertilizer"
	ExpensePesticides ExpenseCategory = "pesticides"
	ExpenseLabor      ExpenseCategory = "labor"
	ExpenseEquipment  ExpenseCategory = "equipment"
	ExpenseTransport  ExpenseCategory = "transport"
	ExpenseOther      ExpenseCategory = "other"
)

type JournalEntryType string

const (
	EntryGeneral     JournalEntryType = "general"
	EntryPlanting    JournalEntryType = "planting"
	EntryHarvesting  JournalEntryType = "harvesting"
	EntrySpraying    JournalEntryType = "spraying"
	EntryFertilizing JournalEntryType = "fertilizing"
	EntryIrrigation  JournalEntryType = "irrigation"
	EntryObservation JournalEntryType = "observation"
	EntryWeather     JournalEntryType = "weather"
	EntryOther       JournalEntryType = "other"
)

type NotificationType string

const (
	NotificationWeatherAlert  NotificationType = "weather_alert"
	NotificationClaimApproved NotificationType = "claim_approved"
	NotificationPriceAlert    NotificationType = "price_alert"
	NotificationPolicyExpired NotificationType = "policy_expired"
	NotificationGeneral       NotificationType = "general"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

type MarketPriceSource string

const (
	PriceSourceKACE    MarketPriceSource = "kace"
	PriceSourceManual  MarketPriceSource = "manual"
	PriceSourceAPI     MarketPriceSource = "api"
	PriceSourceScraper MarketPriceSource = "scraper"
)

type PriceTrend string

const (
	TrendRising  PriceTrend = "rising"
	TrendFalling PriceTrend = "falling"
	TrendStable  PriceTrend = "stable"
)
