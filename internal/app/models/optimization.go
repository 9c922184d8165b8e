package models

import "encoding/json"

// OptimizationPlace is one entry of the external request's place list.
type OptimizationPlace struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Type     string  `json:"type"`
	Priority int     `json:"priority"` // 1-10
}

// OptimizationRequest is the body of POST /api/v2/itinerary/generate-hybrid.
type OptimizationRequest struct {
	Places         []OptimizationPlace `json:"places"`
	StartDate      string              `json:"start_date"`
	EndDate        string              `json:"end_date"`
	DailyStartHour int                 `json:"daily_start_hour"`
	DailyEndHour   int                 `json:"daily_end_hour"`
	TransportMode  string              `json:"transport_mode"`
}

// ExternalCoordinates uses the service's latitude/longitude naming.
type ExternalCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ExternalActivityDetails describes the place behind a scheduled activity.
type ExternalActivityDetails struct {
	Name              string              `json:"name"`
	Address           string              `json:"address,omitempty"`
	Coordinates       ExternalCoordinates `json:"coordinates"`
	Category          string              `json:"category"`
	Priority          int                 `json:"priority"`
	EstimatedDuration int                 `json:"estimated_duration,omitempty"`
	OpeningHours      map[string]string   `json:"opening_hours,omitempty"`
}

// UnmarshalJSON accepts opening_hours as either a string or a map.
func (a *ExternalActivityDetails) UnmarshalJSON(data []byte) error {
	type Alias ExternalActivityDetails
	aux := &struct {
		OpeningHours json.RawMessage `json:"opening_hours"`
		*Alias
	}{
		Alias: (*Alias)(a),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.OpeningHours) > 0 {
		var hoursMap map[string]string
		if err := json.Unmarshal(aux.OpeningHours, &hoursMap); err == nil {
			a.OpeningHours = hoursMap
		} else {
			var hoursString string
			if err := json.Unmarshal(aux.OpeningHours, &hoursString); err == nil && hoursString != "" {
				a.OpeningHours = map[string]string{"general": hoursString}
			}
		}
	}

	return nil
}

// ExternalTransport is the move to the next activity.
type ExternalTransport struct {
	Mode     string  `json:"mode"`
	Duration int     `json:"duration"`
	Distance float64 `json:"distance"`
}

// ExternalActivity is one scheduled slot.
type ExternalActivity struct {
	Activity        ExternalActivityDetails `json:"activity"`
	ScheduledTime   string                  `json:"scheduled_time"`
	Duration        int                     `json:"duration"`
	TransportToNext *ExternalTransport      `json:"transport_to_next,omitempty"`
}

// ExternalDay is one day of the service's schedule.
type ExternalDay struct {
	Day        int                `json:"day"`
	Date       string             `json:"date"`
	Activities []ExternalActivity `json:"activities"`
}

// TransportRecommendations is the share of each mode.
type TransportRecommendations struct {
	Walking float64 `json:"walking"`
	Driving float64 `json:"driving"`
	Transit float64 `json:"transit"`
}

// ExternalAnalytics is the service's summary block.
type ExternalAnalytics struct {
	TotalActivities          int                      `json:"total_activities"`
	TotalDays                int                      `json:"total_days"`
	OptimizationEfficiency   float64                  `json:"optimization_efficiency"`
	OptimizationMode         string                   `json:"optimization_mode"`
	TransportRecommendations TransportRecommendations `json:"transport_recommendations"`
}

// ExternalMetadata describes how the response was produced.
type ExternalMetadata struct {
	GenerationTime float64 `json:"generation_time"`
	APIVersion     string  `json:"api_version"`
	MLModelVersion string  `json:"ml_model_version"`
}

// OptimizationResponse is the generate-hybrid response body.
type OptimizationResponse struct {
	Itinerary []ExternalDay     `json:"itinerary"`
	Analytics ExternalAnalytics `json:"analytics"`
	Metadata  ExternalMetadata  `json:"metadata"`
}

// HealthStatus is the body of GET /health on the optimization service.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// RouteRequest is the secondary backend function's payload.
type RouteRequest struct {
	TripID         string      `json:"tripId"`
	TripData       Trip        `json:"tripData"`
	RouteType      string      `json:"routeType"`
	DistanceMatrix [][]float64 `json:"distanceMatrix"`
	OptimizedRoute []int       `json:"optimizedRoute"`
}

// RouteResponse is the secondary backend function's reply.
type RouteResponse struct {
	Itinerary []DayItinerary `json:"itinerary"`
}
