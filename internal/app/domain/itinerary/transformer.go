package itinerary

import (
	"fmt"
	"strings"
	"time"

	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/allocation"
	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// External scheduling weights. The receiving service uses these numbers to
// rank places, so they must not drift.
const (
	WeightHigh   = 9
	WeightMedium = 6
	WeightLow    = 3

	// DestinationWeight and DestinationType describe the synthetic places
	// sent for a trip that has no geolocated saved places.
	DestinationWeight = 8
	DestinationType   = "attraction"

	// DefaultPlaceType is used for any category outside the lookup table.
	DefaultPlaceType = "monument"

	DefaultDailyStartHour = 9
	DefaultDailyEndHour   = 18

	// DefaultSpanDays is added to today when the trip has no dates.
	DefaultSpanDays = 2
)

var priorityWeights = map[models.Priority]int{
	models.PriorityHigh:   WeightHigh,
	models.PriorityMedium: WeightMedium,
	models.PriorityLow:    WeightLow,
}

var categoryTypes = map[string]string{
	"restaurant":    "restaurant",
	"food":          "restaurant",
	"cafe":          "restaurant",
	"museum":        "museum",
	"gallery":       "museum",
	"monument":      "monument",
	"landmark":      "monument",
	"historical":    "monument",
	"church":        "church",
	"cathedral":     "church",
	"temple":        "church",
	"shopping":      "shopping_mall",
	"mall":          "shopping_mall",
	"shopping_mall": "shopping_mall",
	"beach":         "beach",
	"hotel":         "hotel",
	"accommodation": "hotel",
}

var transportModes = map[string]string{
	"walking": "walk",
	"driving": "drive",
	"transit": "transit",
}

// LocationResolver turns a place name into coordinates.
type LocationResolver interface {
	Resolve(name string) (models.Location, error)
}

// Transformer maps trips onto the optimization service schema and back.
type Transformer struct {
	resolver LocationResolver
}

// NewTransformer returns a transformer. The resolver is only used to place
// destinations that carry no coordinates; it may be nil.
func NewTransformer(resolver LocationResolver) *Transformer {
	return &Transformer{resolver: resolver}
}

// PlaceType maps a free-text category onto the external vocabulary.
func PlaceType(category string) string {
	if t, ok := categoryTypes[strings.ToLower(strings.TrimSpace(category))]; ok {
		return t
	}
	return DefaultPlaceType
}

// PriorityWeight encodes a priority for the external service.
func PriorityWeight(p models.Priority) int {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return WeightMedium
}

// PriorityFromWeight decodes an external 1-10 priority.
func PriorityFromWeight(w int) models.Priority {
	switch {
	case w >= 8:
		return models.PriorityHigh
	case w >= 5:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// TransportMode maps a preference onto the external mode, defaulting to walk.
func TransportMode(pref string) string {
	if m, ok := transportModes[strings.ToLower(strings.TrimSpace(pref))]; ok {
		return m
	}
	return "walk"
}

// ToExternalRequest builds the optimization request for a trip. Only places
// with both coordinates are sent. If none qualify, one place per locatable
// destination is sent instead.
func (t *Transformer) ToExternalRequest(trip models.Trip, prefs models.Preferences, now time.Time) models.OptimizationRequest {
	req := models.OptimizationRequest{
		Places:        make([]models.OptimizationPlace, 0, len(trip.SavedPlaces)),
		TransportMode: TransportMode(prefs.TransportMode),
	}

	for _, p := range trip.SavedPlaces {
		loc, ok := p.Coordinates()
		if !ok {
			continue
		}
		req.Places = append(req.Places, models.OptimizationPlace{
			Name:     p.Name,
			Lat:      loc.Lat,
			Lon:      loc.Lng,
			Type:     PlaceType(p.Category),
			Priority: PriorityWeight(p.Priority),
		})
	}

	if len(req.Places) == 0 {
		for _, d := range trip.Destinations {
			loc, ok := locate(d, t.resolver)
			if !ok {
				continue
			}
			req.Places = append(req.Places, models.OptimizationPlace{
				Name:     d.Name,
				Lat:      loc.Lat,
				Lon:      loc.Lng,
				Type:     DestinationType,
				Priority: DestinationWeight,
			})
		}
	}

	if r, ok := allocation.TripDateRange(trip); ok {
		req.StartDate = r.Start.Format(models.DateLayout)
		req.EndDate = r.End.Format(models.DateLayout)
	} else {
		req.StartDate = now.Format(models.DateLayout)
		req.EndDate = now.AddDate(0, 0, DefaultSpanDays).Format(models.DateLayout)
	}

	req.DailyStartHour, req.DailyEndHour = dailyHours(prefs)
	return req
}

func dailyHours(prefs models.Preferences) (int, int) {
	start, end := prefs.DailyStartHour, prefs.DailyEndHour
	if start <= 0 || start > 23 {
		start = DefaultDailyStartHour
	}
	if end <= 0 || end > 24 {
		end = DefaultDailyEndHour
	}
	if end <= start {
		return DefaultDailyStartHour, DefaultDailyEndHour
	}
	return start, end
}

// FromExternalResponse converts the service's schedule into day plans. Days
// are attributed to destinations by the trip's day allocation.
func (t *Transformer) FromExternalResponse(resp models.OptimizationResponse, trip models.Trip) []models.DayItinerary {
	days := make([]models.DayItinerary, 0, len(resp.Itinerary))
	owners := dayOwners(trip)

	for i, ext := range resp.Itinerary {
		dayNumber := ext.Day
		if dayNumber < 1 {
			dayNumber = i + 1
		}
		day := models.DayItinerary{
			Day:         dayNumber,
			Date:        ext.Date,
			Label:       dayLabel(ext.Date, trip.Dates, dayNumber),
			Destination: owners.at(dayNumber),
			Items:       make([]models.ItineraryItem, 0, len(ext.Activities)),
		}

		for j, act := range ext.Activities {
			minutes := act.Duration
			if minutes <= 0 {
				minutes = act.Activity.EstimatedDuration
			}
			item := models.ItineraryItem{
				Name:            act.Activity.Name,
				Address:         act.Activity.Address,
				Lat:             act.Activity.Coordinates.Latitude,
				Lng:             act.Activity.Coordinates.Longitude,
				Category:        act.Activity.Category,
				ScheduledTime:   act.ScheduledTime,
				DurationMinutes: minutes,
				Duration:        FormatDuration(minutes),
				Priority:        PriorityFromWeight(act.Activity.Priority),
				OrderIndex:      j,
			}
			if tr := act.TransportToNext; tr != nil {
				item.TransportToNext = &models.TransportLeg{Mode: tr.Mode, Duration: tr.Duration, Distance: tr.Distance}
			}
			day.Items = append(day.Items, item)
		}

		summarize(&day)
		days = append(days, day)
	}
	return days
}

// AnalyticsFromResponse copies the service's summary.
func AnalyticsFromResponse(resp models.OptimizationResponse) *models.Analytics {
	tr := resp.Analytics.TransportRecommendations
	return &models.Analytics{
		TotalActivities:        resp.Analytics.TotalActivities,
		TotalDays:              resp.Analytics.TotalDays,
		OptimizationEfficiency: resp.Analytics.OptimizationEfficiency,
		OptimizationMode:       resp.Analytics.OptimizationMode,
		TransportMix: map[string]float64{
			"walking": tr.Walking,
			"driving": tr.Driving,
			"transit": tr.Transit,
		},
		GenerationTime: resp.Metadata.GenerationTime,
		ModelVersion:   resp.Metadata.MLModelVersion,
	}
}

// FromRouteResponse fills the gaps the route generator may leave: day
// numbers, labels, order indexes, duration strings and totals.
func (t *Transformer) FromRouteResponse(days []models.DayItinerary, trip models.Trip) []models.DayItinerary {
	owners := dayOwners(trip)
	out := make([]models.DayItinerary, len(days))
	for i, day := range days {
		if day.Day < 1 {
			day.Day = i + 1
		}
		if day.Label == "" {
			day.Label = dayLabel(day.Date, trip.Dates, day.Day)
		}
		if day.Destination == "" {
			day.Destination = owners.at(day.Day)
		}
		items := make([]models.ItineraryItem, len(day.Items))
		for j, item := range day.Items {
			item.OrderIndex = j
			if item.Priority == "" {
				item.Priority = models.PriorityMedium
			}
			if item.Duration == "" && item.DurationMinutes > 0 {
				item.Duration = FormatDuration(item.DurationMinutes)
			}
			items[j] = item
		}
		day.Items = items
		if day.TotalTime == 0 {
			summarize(&day)
		}
		out[i] = day
	}
	return out
}

// FormatDuration renders minutes as "1h 30m", "2h" or "45m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// summarize sums activity and transport minutes. Walking legs count toward
// WalkingTime, every other mode toward TransportTime.
func summarize(day *models.DayItinerary) {
	day.TotalTime, day.WalkingTime, day.TransportTime = 0, 0, 0
	for _, item := range day.Items {
		day.TotalTime += item.DurationMinutes
		if item.TransportToNext == nil {
			continue
		}
		day.TotalTime += item.TransportToNext.Duration
		if isWalking(item.TransportToNext.Mode) {
			day.WalkingTime += item.TransportToNext.Duration
		} else {
			day.TransportTime += item.TransportToNext.Duration
		}
	}
}

func isWalking(mode string) bool {
	switch strings.ToLower(mode) {
	case "walk", "walking":
		return true
	}
	return false
}

func dayLabel(date, display string, dayNumber int) string {
	if d, err := time.Parse(models.DateLayout, date); err == nil {
		return d.Format(allocation.DayLabelLayout)
	}
	return allocation.DayLabel(display, dayNumber)
}

// ownerIndex maps 1-based trip days to destination names.
type ownerIndex []string

func dayOwners(trip models.Trip) ownerIndex {
	counts, err := allocation.Allocate(allocation.TotalDays(trip, allocation.DefaultTripDays), len(trip.Destinations))
	if err != nil {
		return nil
	}
	var o ownerIndex
	for i, n := range counts {
		for d := 0; d < n; d++ {
			o = append(o, trip.Destinations[i].Name)
		}
	}
	return o
}

func (o ownerIndex) at(day int) string {
	if len(o) == 0 || day < 1 {
		return ""
	}
	if day > len(o) {
		return o[len(o)-1]
	}
	return o[day-1]
}
