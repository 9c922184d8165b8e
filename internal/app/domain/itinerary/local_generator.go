package itinerary

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/allocation"
	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

const (
	// DefaultActivityMinutes is used for saved places without an estimate.
	DefaultActivityMinutes = 90
	// LocalTransferMinutes is the walking gap assumed between activities.
	LocalTransferMinutes = 20
)

type activityTemplate struct {
	format   string
	category string
	minutes  int
	priority models.Priority
}

// genericDay fills a day at a destination with no saved places.
var genericDay = []activityTemplate{
	{format: "Explore the historic center of %s", category: "landmark", minutes: 180, priority: models.PriorityHigh},
	{format: "Lunch at a local spot in %s", category: "restaurant", minutes: 60, priority: models.PriorityMedium},
	{format: "Visit a museum or gallery in %s", category: "museum", minutes: 120, priority: models.PriorityMedium},
	{format: "Dinner and an evening walk in %s", category: "restaurant", minutes: 90, priority: models.PriorityLow},
}

// LocalGenerator builds an itinerary without any network access from the
// trip's day allocation and saved places.
type LocalGenerator struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewLocalGenerator(logger *zap.Logger) *LocalGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalGenerator{
		logger: logger,
		now:    time.Now,
	}
}

// Generate never fails. A trip without destinations yields an empty,
// non-nil itinerary.
func (g *LocalGenerator) Generate(trip models.Trip, prefs models.Preferences) []models.DayItinerary {
	windows, err := allocation.AllocateTrip(trip, g.now())
	if err != nil {
		g.logger.Warn("Local generation has nothing to allocate", zap.Error(err))
		return []models.DayItinerary{}
	}

	startHour, _ := dailyHours(prefs)
	days := make([]models.DayItinerary, 0, allocation.TotalDays(trip, allocation.DefaultTripDays))
	dayNumber := 0

	for _, w := range windows {
		if w.Empty() {
			g.logger.Info("Destination received no days",
				zap.String("destination", w.DestinationName),
				zap.Int("index", w.DestinationIndex))
			continue
		}

		places := placesFor(trip.SavedPlaces, w.DestinationName)
		chunks := split(places, w.DayCount)
		for d := 0; d < w.DayCount; d++ {
			dayNumber++
			date := w.StartDate.AddDate(0, 0, d)
			day := models.DayItinerary{
				Day:         dayNumber,
				Date:        date.Format(models.DateLayout),
				Label:       date.Format(allocation.DayLabelLayout),
				Destination: w.DestinationName,
			}
			if len(chunks[d]) > 0 {
				day.Items = g.placeItems(chunks[d])
			} else {
				day.Items = g.genericItems(w.DestinationName)
			}
			schedule(day.Items, startHour)
			summarize(&day)
			days = append(days, day)
		}
	}
	return days
}

func (g *LocalGenerator) placeItems(places []models.SavedPlace) []models.ItineraryItem {
	items := make([]models.ItineraryItem, 0, len(places))
	for _, p := range places {
		minutes := p.EstimatedTime
		if minutes <= 0 {
			minutes = DefaultActivityMinutes
		}
		item := models.ItineraryItem{
			Name:            p.Name,
			Category:        p.Category,
			DurationMinutes: minutes,
			Duration:        FormatDuration(minutes),
			Priority:        p.Priority,
		}
		if item.Priority == "" {
			item.Priority = models.PriorityMedium
		}
		if loc, ok := p.Coordinates(); ok {
			item.Lat, item.Lng = loc.Lat, loc.Lng
		}
		items = append(items, item)
	}
	return items
}

func (g *LocalGenerator) genericItems(destination string) []models.ItineraryItem {
	// Casers carry state and are not shared between goroutines.
	name := cases.Title(language.English).String(destination)
	items := make([]models.ItineraryItem, 0, len(genericDay))
	for _, tpl := range genericDay {
		items = append(items, models.ItineraryItem{
			Name:            fmt.Sprintf(tpl.format, name),
			Category:        tpl.category,
			DurationMinutes: tpl.minutes,
			Duration:        FormatDuration(tpl.minutes),
			Priority:        tpl.priority,
		})
	}
	return items
}

// placesFor returns the destination's saved places in their stored order.
func placesFor(all []models.SavedPlace, destination string) []models.SavedPlace {
	var out []models.SavedPlace
	for _, p := range all {
		if p.BelongsTo(destination) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PositionOrder < out[j].PositionOrder })
	return out
}

// split deals places into n contiguous chunks whose sizes differ by at most
// one, earlier days taking the larger chunks.
func split(places []models.SavedPlace, n int) [][]models.SavedPlace {
	chunks := make([][]models.SavedPlace, n)
	sizes, err := allocation.Allocate(len(places), n)
	if err != nil {
		return chunks
	}
	cursor := 0
	for i, size := range sizes {
		chunks[i] = places[cursor : cursor+size]
		cursor += size
	}
	return chunks
}

// schedule assigns HH:MM start times and walking transfers in order.
func schedule(items []models.ItineraryItem, startHour int) {
	clock := startHour * 60
	for i := range items {
		items[i].OrderIndex = i
		items[i].ScheduledTime = fmt.Sprintf("%02d:%02d", (clock/60)%24, clock%60)
		clock += items[i].DurationMinutes
		if i < len(items)-1 {
			items[i].TransportToNext = &models.TransportLeg{Mode: "walk", Duration: LocalTransferMinutes}
			clock += LocalTransferMinutes
		}
	}
}
