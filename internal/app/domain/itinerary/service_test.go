package itinerary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

func TestServiceAppliesDefaultPreferences(t *testing.T) {
	var seen models.Preferences
	capture := funcTier{name: models.SourceTierML, run: func(_ context.Context, req Request) (Output, error) {
		seen = req.Preferences
		return Output{}, models.ErrTierDisabled
	}}
	svc := NewService(NewOrchestrator(nil, nil, capture), nil, staticHealth{}, nil, zap.NewNop()).
		WithDefaults(models.Preferences{TransportMode: "transit", DailyStartHour: 8, DailyEndHour: 20})

	tests := []struct {
		name  string
		prefs models.Preferences
		want  models.Preferences
	}{
		{
			name: "empty request takes every default",
			want: models.Preferences{TransportMode: "transit", DailyStartHour: 8, DailyEndHour: 20},
		},
		{
			name:  "explicit window is kept",
			prefs: models.Preferences{DailyStartHour: 10, DailyEndHour: 16},
			want:  models.Preferences{TransportMode: "transit", DailyStartHour: 10, DailyEndHour: 16},
		},
		{
			name:  "explicit mode is kept",
			prefs: models.Preferences{TransportMode: "driving"},
			want:  models.Preferences{TransportMode: "driving", DailyStartHour: 8, DailyEndHour: 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := svc.Generate(context.Background(), sampleTrip(), tt.prefs)
			require.NoError(t, err)
			assert.Equal(t, models.SourceTierLocal, gen.SourceTier)
			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestServiceGenerateForTripErrors(t *testing.T) {
	missing := uuid.New()
	broken := uuid.New()

	reader := new(MockTripReader)
	reader.On("GetTrip", mock.Anything, missing).Return(nil, models.ErrNotFound).Once()
	reader.On("GetTrip", mock.Anything, broken).Return(nil, errors.New("pool closed")).Once()

	svc := NewService(NewOrchestrator(nil, nil), reader, staticHealth{}, nil, zap.NewNop())

	_, err := svc.GenerateForTrip(context.Background(), missing, models.Preferences{})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.GenerateForTrip(context.Background(), broken, models.Preferences{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)

	reader.AssertExpectations(t)
}

func TestServiceRejectsOverlongTrips(t *testing.T) {
	localRan := false
	local := funcTier{name: models.SourceTierLocal, run: func(context.Context, Request) (Output, error) {
		localRan = true
		return Output{Itinerary: []models.DayItinerary{{Day: 1}}}, nil
	}}
	svc := NewService(NewOrchestrator(nil, nil, local), nil, staticHealth{}, nil, zap.NewNop()).WithMaxTripDays(30)

	trip := sampleTrip()
	start := time.Date(1700, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)
	trip.StartDate, trip.EndDate = &start, &end

	_, err := svc.Generate(context.Background(), trip, models.Preferences{})
	assert.ErrorIs(t, err, models.ErrTripTooLong)
	assert.False(t, localRan)

	_, err = svc.Generate(context.Background(), sampleTrip(), models.Preferences{})
	assert.NoError(t, err)
	assert.True(t, localRan)
}
