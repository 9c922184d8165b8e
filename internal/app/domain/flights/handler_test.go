package flights

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/flights/timing", h.RecommendTiming)
	r.POST("/flights/plan", h.PlanFlights)
	r.POST("/trips/:id/flights", h.PlanTripFlights)
	return r
}

func doJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerRecommendTiming(t *testing.T) {
	r := newTestRouter(NewHandler(newTestService(nil), zap.NewNop()))

	w := doJSON(t, r, "/flights/timing", TimingRequest{
		Origin:        "London",
		Destination:   "Tokyo",
		TripStartDate: "2025-03-10",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TimingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Recommendation.ShouldDepartDayBefore)
	assert.Equal(t, "2025-03-09", resp.DepartureDate)
	assert.Equal(t, "2025-03-10", resp.TripStartDate)

	w = doJSON(t, r, "/flights/timing", TimingRequest{Origin: "London", Destination: "Tokyo", TripStartDate: "10/03/2025"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "/flights/timing", map[string]string{"origin": "London"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerPlanFlights(t *testing.T) {
	r := newTestRouter(NewHandler(newTestService(nil), zap.NewNop()))

	tests := []struct {
		name       string
		body       PlanBody
		wantStatus int
		wantLegs   int
	}{
		{
			name: "plans with a return leg",
			body: PlanBody{
				Origin:       "Lisbon",
				Destinations: []models.Location{{Name: "Madrid"}, {Name: "Paris"}},
				StartDate:    "2025-05-01",
				EndDate:      "2025-05-09",
			},
			wantStatus: http.StatusOK,
			wantLegs:   3,
		},
		{
			name:       "no destinations is unprocessable",
			body:       PlanBody{Origin: "Lisbon", StartDate: "2025-05-01"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "end before start",
			body: PlanBody{
				Origin:       "Lisbon",
				Destinations: []models.Location{{Name: "Madrid"}},
				StartDate:    "2025-05-10",
				EndDate:      "2025-05-01",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad start date",
			body:       PlanBody{Origin: "Lisbon", StartDate: "May 1"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, "/flights/plan", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp struct {
				Legs []models.FlightLeg `json:"legs"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Len(t, resp.Legs, tt.wantLegs)
			assert.True(t, resp.Legs[len(resp.Legs)-1].ReturnLeg)
		})
	}
}

func TestHandlerPlanTripFlights(t *testing.T) {
	tripID := uuid.New()
	reader := new(MockTripReader)
	reader.On("GetTrip", mock.Anything, tripID).Return(nil, models.ErrNotFound).Once()
	r := newTestRouter(NewHandler(newTestService(reader), zap.NewNop()))

	w := doJSON(t, r, "/trips/"+tripID.String()+"/flights", TripFlightsBody{Origin: "Lisbon"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "/trips/not-a-uuid/flights", TripFlightsBody{Origin: "Lisbon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	reader.AssertExpectations(t)
}
