package routegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

func TestGenerate(t *testing.T) {
	var got models.RouteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"itinerary":[{"day":1,"destination":"Rome","items":[{"name":"Colosseum","duration_minutes":90,"priority":"high","order_index":0}],"total_time":90}]}`))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, APIKey: "secret"}, srv.Client(), nil)
	days, err := c.Generate(context.Background(), models.RouteRequest{
		TripID:         "trip-1",
		RouteType:      "balanced",
		DistanceMatrix: [][]float64{{0}},
		OptimizedRoute: []int{0},
	})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Colosseum", days[0].Items[0].Name)
	assert.Equal(t, "balanced", got.RouteType)
	assert.Equal(t, []int{0}, got.OptimizedRoute)
}

func TestGenerateErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(Config{URL: srv.URL}, srv.Client(), nil).Generate(context.Background(), models.RouteRequest{})
	assert.ErrorIs(t, err, models.ErrNonSuccessStatus)

	_, err = New(Config{}, nil, nil).Generate(context.Background(), models.RouteRequest{})
	assert.ErrorIs(t, err, models.ErrTierDisabled)
}

func TestParseRouteResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantDays int
		wantErr  bool
	}{
		{name: "itinerary object", body: `{"itinerary":[{"day":1,"items":[]}]}`, wantDays: 1},
		{name: "data envelope", body: `{"data":{"itinerary":[{"day":1},{"day":2}]}}`, wantDays: 2},
		{name: "bare array", body: `[{"day":1}]`, wantDays: 1},
		{name: "markdown fenced", body: "```json\n{\"itinerary\":[{\"day\":1}]}\n```", wantDays: 1},
		{name: "empty itinerary", body: `{"itinerary":[]}`, wantDays: 0},
		{name: "empty body", body: ``, wantDays: 0},
		{name: "garbage", body: `not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := parseRouteResponse([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, days, tt.wantDays)
		})
	}
}
