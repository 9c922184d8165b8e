package models

import "time"

// Confidence of a flight timing recommendation.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// JetLagFactor is a coarse severity label. Values are ordered low < medium < high.
type JetLagFactor string

const (
	JetLagLow    JetLagFactor = "low"
	JetLagMedium JetLagFactor = "medium"
	JetLagHigh   JetLagFactor = "high"
)

// Severity maps the factor onto an ordinal for comparisons.
func (j JetLagFactor) Severity() int {
	switch j {
	case JetLagHigh:
		return 2
	case JetLagMedium:
		return 1
	default:
		return 0
	}
}

// FlightTimingRecommendation is recomputed per query and never persisted.
type FlightTimingRecommendation struct {
	ShouldDepartDayBefore    bool         `json:"should_depart_day_before"`
	Reason                   string       `json:"reason"`
	Confidence               Confidence   `json:"confidence"`
	EstimatedDurationBand    string       `json:"estimated_duration_band"`
	DistanceKm               float64      `json:"distance_km"`
	TimeZoneDeltaHours       int          `json:"time_zone_delta_hours"`
	JetLagFactor             JetLagFactor `json:"jet_lag_factor"`
	AdaptationDayRecommended bool         `json:"adaptation_day_recommended"`
}

// DefaultCabinClass applies to every leg unless the caller overrides it.
const DefaultCabinClass = "economy"

// FlightLeg is one ordered segment of a multi-city plan.
type FlightLeg struct {
	From        string                      `json:"from"`
	To          string                      `json:"to"`
	DepartDate  time.Time                   `json:"depart_date"`
	Passengers  int                         `json:"passengers"`
	CabinClass  string                      `json:"cabin_class"`
	AIOptimized bool                        `json:"ai_optimized"`
	ReturnLeg   bool                        `json:"return_leg,omitempty"`
	Timing      *FlightTimingRecommendation `json:"timing,omitempty"`
}
