package event

// PushNotiQueue is the queue the notification worker consumes from.
const PushNotiQueue = "push_noti_events"

// Event types published by the backend.
const (
	EventClaimApproved    = "claim_approved"
	EventRiskAlert        = "climate_risk_alert"
	EventPriceAlert       = "price_alert_hit"
	EventPolicyExpired    = "policy_expired"
	EventWeatherAdvisory  = "weather_advisory"
	EventPaymentConfirmed = "payment_confirmed"
)

// NotificationEventPushModel is the payload pushed onto the notification queue.
type NotificationEventPushModel struct {
	EventType  string         `json:"event_type"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	LstUserIds []string       `json:"lst_user_ids"`
	Data       map[string]any `json:"data,omitempty"`
}
