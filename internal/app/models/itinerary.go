package models

// SourceTier identifies which fallback level produced an itinerary.
type SourceTier string

const (
	SourceTierML        SourceTier = "ml"
	SourceTierSecondary SourceTier = "secondary"
	SourceTierLocal     SourceTier = "local"
	// SourceTierNone is only reported when the caller abandoned the request
	// before any tier produced a result.
	SourceTierNone SourceTier = "none"
)

// TransportLeg describes the move from one activity to the next.
type TransportLeg struct {
	Mode     string  `json:"mode"`
	Duration int     `json:"duration"` // minutes
	Distance float64 `json:"distance"` // km
}

// ItineraryItem is one scheduled activity of a day.
type ItineraryItem struct {
	Name            string        `json:"name"`
	Address         string        `json:"address,omitempty"`
	Lat             float64       `json:"lat,omitempty"`
	Lng             float64       `json:"lng,omitempty"`
	Category        string        `json:"category,omitempty"`
	ScheduledTime   string        `json:"scheduled_time,omitempty"` // HH:MM
	DurationMinutes int           `json:"duration_minutes"`
	Duration        string        `json:"duration,omitempty"` // "1h 30m"
	Priority        Priority      `json:"priority"`
	OrderIndex      int           `json:"order_index"`
	TransportToNext *TransportLeg `json:"transport_to_next,omitempty"`
}

// DayItinerary is one day of the generated plan. Times are minutes.
type DayItinerary struct {
	Day           int             `json:"day"`
	Date          string          `json:"date,omitempty"`
	Label         string          `json:"label,omitempty"`
	Destination   string          `json:"destination,omitempty"`
	Items         []ItineraryItem `json:"items"`
	TotalTime     int             `json:"total_time"`
	WalkingTime   int             `json:"walking_time"`
	TransportTime int             `json:"transport_time"`
}

// Analytics summarizes a generated itinerary.
type Analytics struct {
	TotalActivities        int                `json:"total_activities"`
	TotalDays              int                `json:"total_days"`
	OptimizationEfficiency float64            `json:"optimization_efficiency"`
	OptimizationMode       string             `json:"optimization_mode,omitempty"`
	TransportMix           map[string]float64 `json:"transport_mix,omitempty"`
	GenerationTime         float64            `json:"generation_time,omitempty"`
	ModelVersion           string             `json:"model_version,omitempty"`
}

// TierAttempt records one step of the fallback chain for telemetry.
type TierAttempt struct {
	Tier       SourceTier `json:"tier"`
	Error      string     `json:"error,omitempty"`
	DurationMs int64      `json:"duration_ms"`
}

// OrchestrationResult is always populated. Error is diagnostic only and
// never drives control flow.
type OrchestrationResult struct {
	Itinerary  []DayItinerary `json:"itinerary"`
	SourceTier SourceTier     `json:"source_tier"`
	Analytics  *Analytics     `json:"analytics,omitempty"`
	Error      string         `json:"error,omitempty"`
	Attempts   []TierAttempt  `json:"attempts,omitempty"`
}

// Preferences steer the external optimization request.
type Preferences struct {
	TransportMode  string `json:"transport_mode,omitempty"` // walking|driving|transit
	DailyStartHour int    `json:"daily_start_hour,omitempty"`
	DailyEndHour   int    `json:"daily_end_hour,omitempty"`
}

// NotificationKind classifies a user-facing toast.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationInfo    NotificationKind = "info"
	NotificationError   NotificationKind = "error"
)

// Notification is one message surfaced to the user.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}
