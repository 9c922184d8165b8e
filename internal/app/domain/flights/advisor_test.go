package flights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

var tripStart = time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)

func TestRecommendScenarios(t *testing.T) {
	advisor := NewAdvisor(nil, zap.NewNop())

	t.Run("short hop", func(t *testing.T) {
		// Paris to London is ~344 km.
		rec := advisor.Recommend("Paris", "London", tripStart)
		assert.False(t, rec.ShouldDepartDayBefore)
		assert.Equal(t, models.JetLagLow, rec.JetLagFactor)
		assert.Equal(t, models.ConfidenceHigh, rec.Confidence)
		assert.Less(t, rec.DistanceKm, RegionalMaxKm)
		assert.Equal(t, "1-2 hours", rec.EstimatedDurationBand)
	})

	t.Run("long hop", func(t *testing.T) {
		// London to Tokyo is ~9560 km.
		rec := advisor.Recommend("London", "Tokyo", tripStart)
		assert.True(t, rec.ShouldDepartDayBefore)
		assert.Equal(t, models.JetLagHigh, rec.JetLagFactor)
		assert.Equal(t, models.ConfidenceHigh, rec.Confidence)
		assert.Equal(t, 9, rec.TimeZoneDeltaHours)
		assert.False(t, rec.AdaptationDayRecommended)
		assert.Contains(t, rec.Reason, "London")
		assert.Contains(t, rec.Reason, "Tokyo")
	})

	t.Run("extreme hop flags adaptation day", func(t *testing.T) {
		rec := advisor.Recommend("Lisbon", "Sydney", tripStart)
		assert.True(t, rec.ShouldDepartDayBefore)
		assert.True(t, rec.AdaptationDayRecommended)
		assert.Equal(t, "12+ hours", rec.EstimatedDurationBand)
	})

	t.Run("unresolved city", func(t *testing.T) {
		rec := advisor.Recommend("Paris", "Atlantis", tripStart)
		assert.Equal(t, models.ConfidenceLow, rec.Confidence)
		assert.Equal(t, 0.0, rec.DistanceKm)
		assert.False(t, rec.ShouldDepartDayBefore)
		assert.Equal(t, models.JetLagLow, rec.JetLagFactor)
		assert.Contains(t, rec.Reason, "Atlantis")
	})

	t.Run("unresolved origin", func(t *testing.T) {
		rec := advisor.Recommend("", "Paris", tripStart)
		assert.Equal(t, models.ConfidenceLow, rec.Confidence)
	})
}

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		tzDelta   int
		dayBefore bool
		jetLag    models.JetLagFactor
	}{
		{name: "regional", distance: 300, tzDelta: 0, dayBefore: false, jetLag: models.JetLagLow},
		{name: "continental short", distance: 1200, tzDelta: 1, dayBefore: false, jetLag: models.JetLagLow},
		{name: "continental small tz", distance: 2500, tzDelta: 3, dayBefore: false, jetLag: models.JetLagLow},
		{name: "continental large tz", distance: 2500, tzDelta: 4, dayBefore: true, jetLag: models.JetLagMedium},
		{name: "intercontinental short", distance: 4500, tzDelta: 5, dayBefore: true, jetLag: models.JetLagMedium},
		{name: "major intercontinental", distance: 9000, tzDelta: 8, dayBefore: true, jetLag: models.JetLagHigh},
		{name: "extreme", distance: 15000, tzDelta: 10, dayBefore: true, jetLag: models.JetLagHigh},
		{name: "lower band edge is inclusive", distance: 500, tzDelta: 0, dayBefore: false, jetLag: models.JetLagLow},
		{name: "edge at 3000", distance: 3000, tzDelta: 0, dayBefore: true, jetLag: models.JetLagMedium},
		{name: "edge at 10000", distance: 10000, tzDelta: 0, dayBefore: true, jetLag: models.JetLagHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := classify(tc.distance, tc.tzDelta)
			assert.Equal(t, tc.dayBefore, rec.ShouldDepartDayBefore)
			assert.Equal(t, tc.jetLag, rec.JetLagFactor)
			assert.Equal(t, models.ConfidenceHigh, rec.Confidence)
		})
	}
}

func TestJetLagMonotonicInDistance(t *testing.T) {
	for tz := 0; tz <= 12; tz++ {
		prev := -1
		for d := 0.0; d <= 20000; d += 50 {
			sev := classify(d, tz).JetLagFactor.Severity()
			assert.GreaterOrEqual(t, sev, prev, "distance %.0f tz %d", d, tz)
			prev = sev
		}
	}
}

func TestAdjustDeparture(t *testing.T) {
	day := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	shifted := AdjustDeparture(day, models.FlightTimingRecommendation{ShouldDepartDayBefore: true})
	assert.Equal(t, "2025-02-28", shifted.Format(models.DateLayout))

	same := AdjustDeparture(day, models.FlightTimingRecommendation{ShouldDepartDayBefore: false})
	assert.True(t, same.Equal(day))
}

func TestTimeZoneDelta(t *testing.T) {
	a := models.Location{Lng: -9.14}
	b := models.Location{Lng: 139.65}
	assert.Equal(t, 10, TimeZoneDelta(a, b))
	assert.Equal(t, TimeZoneDelta(a, b), TimeZoneDelta(b, a))
	assert.Equal(t, 0, TimeZoneDelta(a, a))
}
