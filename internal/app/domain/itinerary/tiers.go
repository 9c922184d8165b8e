package itinerary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/geo"
	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
	"github.com/FACorreiaa/loci-itinerary/internal/app/observability/metrics"
	"github.com/FACorreiaa/loci-itinerary/internal/pkg/cache"
)

// DefaultMLTimeout bounds a single call to the optimization service.
const DefaultMLTimeout = 30 * time.Second

// RouteTypeBalanced is the route type sent to the route generator.
const RouteTypeBalanced = "balanced"

// Request is one itinerary generation.
type Request struct {
	Trip        models.Trip
	Preferences models.Preferences
	// Notifier overrides the orchestrator's default sink when set.
	Notifier Notifier
}

// Output is what a successful tier produces.
type Output struct {
	Itinerary []models.DayItinerary
	Analytics *models.Analytics
}

// Tier is one step of the fallback chain. It calls its source, validates
// the answer and converts it. An empty itinerary is reported as
// models.ErrEmptyResult.
type Tier interface {
	Name() models.SourceTier
	Run(ctx context.Context, req Request) (Output, error)
}

// OptimizationClient is the ML optimization service.
type OptimizationClient interface {
	Generate(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResponse, error)
}

// RouteClient is the secondary route generator.
type RouteClient interface {
	Generate(ctx context.Context, req models.RouteRequest) ([]models.DayItinerary, error)
}

// MLTier asks the optimization service for a schedule. Identical requests
// are answered from the cache while it is warm.
type MLTier struct {
	client      OptimizationClient
	transformer *Transformer
	cache       *cache.UnifiedCache[models.OptimizationResponse]
	timeout     time.Duration
	now         func() time.Time
}

// NewMLTier builds the tier. responses may be nil to disable caching.
func NewMLTier(client OptimizationClient, transformer *Transformer,
	responses *cache.UnifiedCache[models.OptimizationResponse], timeout time.Duration) *MLTier {
	if timeout <= 0 {
		timeout = DefaultMLTimeout
	}
	return &MLTier{
		client:      client,
		transformer: transformer,
		cache:       responses,
		timeout:     timeout,
		now:         time.Now,
	}
}

func (t *MLTier) Name() models.SourceTier { return models.SourceTierML }

func (t *MLTier) Run(ctx context.Context, req Request) (Output, error) {
	ext := t.transformer.ToExternalRequest(req.Trip, req.Preferences, t.now())
	if len(ext.Places) == 0 {
		return Output{}, fmt.Errorf("no locatable places to optimize: %w", models.ErrEmptyResult)
	}

	key := ""
	if t.cache != nil {
		key = cache.NewCacheKeyBuilder(nil).AddTrip(req.Trip.ID.String()).AddRequest(ext).BuildOrDefault()
		if resp, ok := t.cache.Get(key); ok {
			metrics.Get().OptimizerCacheHits.Add(ctx, 1)
			return t.convert(resp, req.Trip)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.client.Generate(callCtx, ext)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, models.ErrTimeout) {
			return Output{}, fmt.Errorf("%w: %v", models.ErrTimeout, err)
		}
		return Output{}, err
	}
	if resp == nil {
		return Output{}, models.ErrEmptyResult
	}

	out, err := t.convert(*resp, req.Trip)
	if err == nil && key != "" {
		t.cache.Set(key, *resp)
	}
	return out, err
}

func (t *MLTier) convert(resp models.OptimizationResponse, trip models.Trip) (Output, error) {
	days := t.transformer.FromExternalResponse(resp, trip)
	if countItems(days) == 0 {
		return Output{}, models.ErrEmptyResult
	}
	return Output{Itinerary: days, Analytics: AnalyticsFromResponse(resp)}, nil
}

// SecondaryTier asks the backend route generator for a balanced route.
type SecondaryTier struct {
	client      RouteClient
	transformer *Transformer
	resolver    LocationResolver
}

func NewSecondaryTier(client RouteClient, transformer *Transformer, resolver LocationResolver) *SecondaryTier {
	return &SecondaryTier{client: client, transformer: transformer, resolver: resolver}
}

func (t *SecondaryTier) Name() models.SourceTier { return models.SourceTierSecondary }

func (t *SecondaryTier) Run(ctx context.Context, req Request) (Output, error) {
	matrix, route := RouteInputs(req.Trip, t.resolver)
	days, err := t.client.Generate(ctx, models.RouteRequest{
		TripID:         req.Trip.ID.String(),
		TripData:       req.Trip,
		RouteType:      RouteTypeBalanced,
		DistanceMatrix: matrix,
		OptimizedRoute: route,
	})
	if err != nil {
		return Output{}, err
	}
	itinerary := t.transformer.FromRouteResponse(days, req.Trip)
	if countItems(itinerary) == 0 {
		return Output{}, models.ErrEmptyResult
	}
	return Output{Itinerary: itinerary}, nil
}

// RouteInputs builds the destination distance matrix and a nearest-neighbour
// visiting order. Rows and columns follow trip order; distances involving a
// destination that cannot be located are -1, and such destinations are
// appended to the route after the located ones.
func RouteInputs(trip models.Trip, resolver LocationResolver) ([][]float64, []int) {
	n := len(trip.Destinations)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	var located []models.Location
	var indexes []int
	var missing []int
	for i, d := range trip.Destinations {
		if loc, ok := locate(d, resolver); ok {
			located = append(located, loc)
			indexes = append(indexes, i)
		} else {
			missing = append(missing, i)
		}
	}

	sub := geo.DistanceMatrix(located)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				matrix[i][j] = -1
			}
		}
	}
	for a, i := range indexes {
		for b, j := range indexes {
			matrix[i][j] = sub[a][b]
		}
	}

	route := make([]int, 0, n)
	for _, k := range geo.NearestNeighborRoute(sub) {
		route = append(route, indexes[k])
	}
	route = append(route, missing...)
	return matrix, route
}

func locate(d models.Destination, resolver LocationResolver) (models.Location, bool) {
	if d.HasCoordinates() {
		return d.Location, true
	}
	if resolver == nil {
		return models.Location{}, false
	}
	loc, err := resolver.Resolve(d.Name)
	if err != nil {
		return models.Location{}, false
	}
	return loc, true
}

// LocalTier wraps the network-free generator. It cannot fail.
type LocalTier struct {
	generator *LocalGenerator
}

func NewLocalTier(generator *LocalGenerator) *LocalTier {
	return &LocalTier{generator: generator}
}

func (t *LocalTier) Name() models.SourceTier { return models.SourceTierLocal }

func (t *LocalTier) Run(_ context.Context, req Request) (Output, error) {
	days := t.generator.Generate(req.Trip, req.Preferences)
	return Output{Itinerary: days, Analytics: localAnalytics(days)}, nil
}

func localAnalytics(days []models.DayItinerary) *models.Analytics {
	return &models.Analytics{
		TotalActivities:  countItems(days),
		TotalDays:        len(days),
		OptimizationMode: "local",
	}
}

func countItems(days []models.DayItinerary) int {
	n := 0
	for _, d := range days {
		n += len(d.Items)
	}
	return n
}
