package flights

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

// MockTripReader is a mock implementation of TripReader
type MockTripReader struct {
	mock.Mock
}

func (m *MockTripReader) GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func newTestService(trips TripReader) *ServiceImpl {
	logger := zap.NewNop()
	advisor := NewAdvisor(nil, logger)
	svc := NewService(advisor, NewPlanner(advisor, logger), trips, logger)
	svc.now = func() time.Time { return date(2025, time.June, 1) }
	return svc
}

func TestServiceRecommendTiming(t *testing.T) {
	svc := newTestService(nil)

	rec := svc.RecommendTiming(context.Background(), "London", "Tokyo", date(2025, time.March, 10))
	assert.True(t, rec.ShouldDepartDayBefore)
	assert.Equal(t, models.ConfidenceHigh, rec.Confidence)

	rec = svc.RecommendTiming(context.Background(), "Atlantis", "Tokyo", date(2025, time.March, 10))
	assert.False(t, rec.ShouldDepartDayBefore)
	assert.Equal(t, models.ConfidenceLow, rec.Confidence)
}

func TestServicePlanTripFlights(t *testing.T) {
	tripID := uuid.New()
	trip := &models.Trip{
		ID:        tripID,
		Dates:     "Jul 1 - Jul 8, 2025",
		Travelers: 2,
		Destinations: []models.Destination{
			{Location: models.Location{Name: "Rome"}, Position: 0},
			{Location: models.Location{Name: "Florence"}, Position: 1},
		},
	}

	tests := []struct {
		name      string
		setupMock func(m *MockTripReader)
		wantLegs  int
		wantErr   error
	}{
		{
			name: "plans legs for a stored trip",
			setupMock: func(m *MockTripReader) {
				m.On("GetTrip", mock.Anything, tripID).Return(trip, nil).Once()
			},
			wantLegs: 3,
		},
		{
			name: "propagates a missing trip",
			setupMock: func(m *MockTripReader) {
				m.On("GetTrip", mock.Anything, tripID).Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
		{
			name: "trip without destinations",
			setupMock: func(m *MockTripReader) {
				m.On("GetTrip", mock.Anything, tripID).Return(&models.Trip{ID: tripID}, nil).Once()
			},
			wantErr: models.ErrNoDestinations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := new(MockTripReader)
			tt.setupMock(reader)
			svc := newTestService(reader)

			legs, err := svc.PlanTripFlights(context.Background(), tripID, "Lisbon")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, legs)
			} else {
				require.NoError(t, err)
				assert.Len(t, legs, tt.wantLegs)
				assert.Equal(t, 2, legs[0].Passengers)
			}
			reader.AssertExpectations(t)
		})
	}
}

func TestServicePlanFlights(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.PlanFlights(context.Background(), PlanRequest{Origin: "Lisbon", TripStart: date(2025, time.May, 1)})
	assert.ErrorIs(t, err, models.ErrNoDestinations)

	legs, err := svc.PlanFlights(context.Background(), PlanRequest{
		Origin:       "Lisbon",
		Destinations: []models.Location{{Name: "Porto"}},
		TripStart:    date(2025, time.May, 1),
	})
	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, "2025-05-01", legs[0].DepartDate.Format(models.DateLayout))
}
