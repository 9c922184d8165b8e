package itinerary

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/geo"
	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
	"github.com/FACorreiaa/loci-itinerary/internal/pkg/cache"
)

// MockOptimizationClient is a mock implementation of OptimizationClient
type MockOptimizationClient struct {
	mock.Mock
}

func (m *MockOptimizationClient) Generate(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OptimizationResponse), args.Error(1)
}

// MockRouteClient is a mock implementation of RouteClient
type MockRouteClient struct {
	mock.Mock
}

func (m *MockRouteClient) Generate(ctx context.Context, req models.RouteRequest) ([]models.DayItinerary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DayItinerary), args.Error(1)
}

// funcTier adapts a function to the Tier interface.
type funcTier struct {
	name models.SourceTier
	run  func(ctx context.Context, req Request) (Output, error)
}

func (f funcTier) Name() models.SourceTier { return f.name }
func (f funcTier) Run(ctx context.Context, req Request) (Output, error) {
	return f.run(ctx, req)
}

func sampleTrip() models.Trip {
	return models.Trip{
		ID:        uuid.New(),
		Name:      "Italy",
		StartDate: day(2025, time.September, 1),
		EndDate:   day(2025, time.September, 6),
		Destinations: []models.Destination{
			{Location: models.Location{Name: "Rome"}, Position: 0},
			{Location: models.Location{Name: "Florence"}, Position: 1},
			{Location: models.Location{Name: "Venice"}, Position: 2},
		},
		SavedPlaces: []models.SavedPlace{
			{Name: "Colosseum", Category: "landmark", DestinationName: "Rome", Lat: ptr(41.8902), Lng: ptr(12.4922), Priority: models.PriorityHigh},
			{Name: "Uffizi", Category: "gallery", DestinationName: "Florence", Lat: ptr(43.7678), Lng: ptr(11.2553)},
		},
	}
}

func mlResponse() *models.OptimizationResponse {
	return &models.OptimizationResponse{
		Itinerary: []models.ExternalDay{{
			Day:  1,
			Date: "2025-09-01",
			Activities: []models.ExternalActivity{{
				Activity:      models.ExternalActivityDetails{Name: "Colosseum", Priority: 9},
				ScheduledTime: "09:00",
				Duration:      120,
			}},
		}},
		Metadata: models.ExternalMetadata{MLModelVersion: "v3"},
	}
}

func newChain(ml OptimizationClient, route RouteClient, responses *cache.UnifiedCache[models.OptimizationResponse]) *Orchestrator {
	resolver := geo.NewResolver(nil)
	tr := NewTransformer(resolver)
	return NewOrchestrator(nil, zap.NewNop(),
		NewMLTier(ml, tr, responses, 0),
		NewSecondaryTier(route, tr, resolver),
		NewLocalTier(NewLocalGenerator(nil)),
	)
}

func TestOrchestratorTiers(t *testing.T) {
	tests := []struct {
		name         string
		setupML      func(m *MockOptimizationClient)
		setupRoute   func(m *MockRouteClient)
		wantTier     models.SourceTier
		wantAttempts int
		wantError    bool
	}{
		{
			name: "ML tier succeeds",
			setupML: func(m *MockOptimizationClient) {
				m.On("Generate", mock.Anything, mock.Anything).Return(mlResponse(), nil).Once()
			},
			setupRoute:   func(m *MockRouteClient) {},
			wantTier:     models.SourceTierML,
			wantAttempts: 1,
		},
		{
			name: "ML fails, secondary succeeds",
			setupML: func(m *MockOptimizationClient) {
				m.On("Generate", mock.Anything, mock.Anything).
					Return(nil, &models.StatusError{Service: "optimizer", StatusCode: 503}).Once()
			},
			setupRoute: func(m *MockRouteClient) {
				m.On("Generate", mock.Anything, mock.MatchedBy(func(req models.RouteRequest) bool {
					return req.RouteType == RouteTypeBalanced && len(req.DistanceMatrix) == 3 && len(req.OptimizedRoute) == 3
				})).Return([]models.DayItinerary{{Items: []models.ItineraryItem{{Name: "Pantheon", DurationMinutes: 60}}}}, nil).Once()
			},
			wantTier:     models.SourceTierSecondary,
			wantAttempts: 2,
			wantError:    true,
		},
		{
			name: "ML returns empty, secondary errors, local wins",
			setupML: func(m *MockOptimizationClient) {
				m.On("Generate", mock.Anything, mock.Anything).Return(&models.OptimizationResponse{}, nil).Once()
			},
			setupRoute: func(m *MockRouteClient) {
				m.On("Generate", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("dial: %w", models.ErrNetwork)).Once()
			},
			wantTier:     models.SourceTierLocal,
			wantAttempts: 3,
			wantError:    true,
		},
		{
			name: "secondary returns nothing",
			setupML: func(m *MockOptimizationClient) {
				m.On("Generate", mock.Anything, mock.Anything).Return(nil, models.ErrTimeout).Once()
			},
			setupRoute: func(m *MockRouteClient) {
				m.On("Generate", mock.Anything, mock.Anything).Return([]models.DayItinerary{}, nil).Once()
			},
			wantTier:     models.SourceTierLocal,
			wantAttempts: 3,
			wantError:    true,
		},
		{
			name: "secondary returns days without activities",
			setupML: func(m *MockOptimizationClient) {
				m.On("Generate", mock.Anything, mock.Anything).Return(nil, models.ErrTimeout).Once()
			},
			setupRoute: func(m *MockRouteClient) {
				m.On("Generate", mock.Anything, mock.Anything).Return([]models.DayItinerary{{Day: 1}, {Day: 2}}, nil).Once()
			},
			wantTier:     models.SourceTierLocal,
			wantAttempts: 3,
			wantError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ml := new(MockOptimizationClient)
			route := new(MockRouteClient)
			tt.setupML(ml)
			tt.setupRoute(route)

			recorder := &RecordingNotifier{}
			result := newChain(ml, route, nil).Run(context.Background(), Request{Trip: sampleTrip(), Notifier: recorder})

			assert.Equal(t, tt.wantTier, result.SourceTier)
			assert.NotEmpty(t, result.Itinerary)
			assert.Len(t, result.Attempts, tt.wantAttempts)
			assert.Equal(t, tt.wantError, result.Error != "")

			notes := recorder.Notifications()
			require.NotEmpty(t, notes)
			assert.Equal(t, models.NotificationSuccess, notes[len(notes)-1].Kind, "a fallback tier still reports success")

			ml.AssertExpectations(t)
			route.AssertExpectations(t)
		})
	}
}

func TestOrchestratorFullFallbackUsesAllocation(t *testing.T) {
	failing := func(err error) func(context.Context, Request) (Output, error) {
		return func(context.Context, Request) (Output, error) { return Output{}, err }
	}
	o := NewOrchestrator(nil, nil,
		funcTier{name: models.SourceTierML, run: failing(models.ErrTimeout)},
		funcTier{name: models.SourceTierSecondary, run: failing(models.ErrNetwork)},
	)
	assert.Equal(t, []models.SourceTier{models.SourceTierML, models.SourceTierSecondary, models.SourceTierLocal}, o.Tiers())

	result := o.Run(context.Background(), Request{Trip: sampleTrip()})
	require.Equal(t, models.SourceTierLocal, result.SourceTier)

	// 6 days over 3 destinations is 2 days each.
	require.Len(t, result.Itinerary, 6)
	assert.Equal(t, "Rome", result.Itinerary[0].Destination)
	assert.Equal(t, "Rome", result.Itinerary[1].Destination)
	assert.Equal(t, "Florence", result.Itinerary[2].Destination)
	assert.Equal(t, "Venice", result.Itinerary[5].Destination)
	assert.Equal(t, "Colosseum", result.Itinerary[0].Items[0].Name)
	assert.Contains(t, result.Error, "ml:")
	assert.Contains(t, result.Error, "secondary:")
	require.NotNil(t, result.Analytics)
	assert.Equal(t, "local", result.Analytics.OptimizationMode)
}

func TestOrchestratorTotality(t *testing.T) {
	errs := []error{
		models.ErrTimeout,
		models.ErrNetwork,
		&models.StatusError{StatusCode: 500},
		models.ErrEmptyResult,
		models.ErrTierDisabled,
		errors.New("unexpected"),
	}
	for _, mlErr := range errs {
		for _, routeErr := range errs {
			o := NewOrchestrator(nil, nil,
				funcTier{name: models.SourceTierML, run: func(context.Context, Request) (Output, error) { return Output{}, mlErr }},
				funcTier{name: models.SourceTierSecondary, run: func(context.Context, Request) (Output, error) { return Output{}, routeErr }},
			)
			result := o.Run(context.Background(), Request{Trip: sampleTrip()})
			assert.Equal(t, models.SourceTierLocal, result.SourceTier)
			assert.NotEmpty(t, result.Itinerary)
		}
	}
}

func TestOrchestratorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	secondaryCalled := false
	localCalled := false

	o := NewOrchestrator(nil, nil,
		funcTier{name: models.SourceTierML, run: func(ctx context.Context, _ Request) (Output, error) {
			cancel()
			return Output{}, ctx.Err()
		}},
		funcTier{name: models.SourceTierSecondary, run: func(context.Context, Request) (Output, error) {
			secondaryCalled = true
			return Output{}, nil
		}},
		funcTier{name: models.SourceTierLocal, run: func(context.Context, Request) (Output, error) {
			localCalled = true
			return Output{}, nil
		}},
	)

	result := o.Run(ctx, Request{Trip: sampleTrip()})
	assert.False(t, secondaryCalled)
	assert.False(t, localCalled)
	assert.Equal(t, models.SourceTierNone, result.SourceTier)
	assert.NotNil(t, result.Itinerary)
	assert.Contains(t, result.Error, "cancelled")
	assert.Len(t, result.Attempts, 1)
}

func TestMLTierTimeout(t *testing.T) {
	slow := funcClient(func(ctx context.Context, _ models.OptimizationRequest) (*models.OptimizationResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	tier := NewMLTier(slow, NewTransformer(geo.NewResolver(nil)), nil, 10*time.Millisecond)

	_, err := tier.Run(context.Background(), Request{Trip: sampleTrip()})
	assert.ErrorIs(t, err, models.ErrTimeout)
}

func TestMLTierNothingToSend(t *testing.T) {
	ml := new(MockOptimizationClient)
	tier := NewMLTier(ml, NewTransformer(nil), nil, 0)

	trip := models.Trip{Destinations: []models.Destination{{Location: models.Location{Name: "Atlantis"}}}}
	_, err := tier.Run(context.Background(), Request{Trip: trip})
	assert.ErrorIs(t, err, models.ErrEmptyResult)
	ml.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestMLTierCache(t *testing.T) {
	responses := cache.NewUnifiedCache[models.OptimizationResponse](time.Minute, "test", nil)
	defer responses.Close()

	ml := new(MockOptimizationClient)
	ml.On("Generate", mock.Anything, mock.Anything).Return(mlResponse(), nil).Once()
	tier := NewMLTier(ml, NewTransformer(nil), responses, 0)

	trip := sampleTrip()
	for i := 0; i < 2; i++ {
		out, err := tier.Run(context.Background(), Request{Trip: trip})
		require.NoError(t, err)
		assert.Equal(t, "Colosseum", out.Itinerary[0].Items[0].Name)
	}
	ml.AssertExpectations(t)
	assert.Equal(t, int64(1), responses.GetMetrics().Hits)
}

func TestRouteInputs(t *testing.T) {
	trip := models.Trip{Destinations: []models.Destination{
		{Location: models.Location{Name: "Lisbon"}},
		{Location: models.Location{Name: "Atlantis"}},
		{Location: models.Location{Name: "Tokyo"}},
		{Location: models.Location{Name: "Madrid"}},
	}}

	matrix, route := RouteInputs(trip, geo.NewResolver(nil))
	require.Len(t, matrix, 4)
	assert.Equal(t, 0.0, matrix[1][1])
	assert.Equal(t, -1.0, matrix[0][1])
	assert.Equal(t, -1.0, matrix[1][2])
	assert.InDelta(t, matrix[0][3], matrix[3][0], 1e-9)
	assert.Greater(t, matrix[0][2], matrix[0][3])
	assert.Equal(t, []int{0, 3, 2, 1}, route)
}

type funcClient func(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResponse, error)

func (f funcClient) Generate(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResponse, error) {
	return f(ctx, req)
}

func TestSecondaryTierRejectsDaysWithoutActivities(t *testing.T) {
	route := new(MockRouteClient)
	route.On("Generate", mock.Anything, mock.Anything).Return([]models.DayItinerary{{Day: 1}, {Day: 2}}, nil).Once()
	resolver := geo.NewResolver(nil)
	tier := NewSecondaryTier(route, NewTransformer(resolver), resolver)

	_, err := tier.Run(context.Background(), Request{Trip: sampleTrip()})
	assert.ErrorIs(t, err, models.ErrEmptyResult)

	o := NewOrchestrator(nil, zap.NewNop(), tier)
	result := o.Run(context.Background(), Request{Trip: sampleTrip()})
	assert.Equal(t, models.SourceTierLocal, result.SourceTier)
	assert.Positive(t, countItems(result.Itinerary))
	route.AssertExpectations(t)
}
