// Package geo resolves city names to coordinates and measures the distance
// between them.
package geo

import (
	"github.com/golang/geo/s2"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// EarthRadiusKm is the mean Earth radius used by every distance in this package.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two resolved points.
// s2.LatLng.Distance is the haversine formula, so this is
// 2R·atan2(√a, √(1−a)) with a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2).
func DistanceKm(a, b models.Location) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// DistanceMatrix returns the pairwise distances between locations, in km.
func DistanceMatrix(locs []models.Location) [][]float64 {
	matrix := make([][]float64, len(locs))
	for i := range locs {
		matrix[i] = make([]float64, len(locs))
	}
	for i := range locs {
		for j := i + 1; j < len(locs); j++ {
			d := DistanceKm(locs[i], locs[j])
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}
	return matrix
}

// NearestNeighborRoute orders the matrix indices greedily starting at 0.
// It is a visiting order hint, not an optimal tour.
func NearestNeighborRoute(matrix [][]float64) []int {
	n := len(matrix)
	if n == 0 {
		return []int{}
	}

	route := make([]int, 0, n)
	used := make([]bool, n)
	current := 0
	route = append(route, current)
	used[current] = true

	for len(route) < n {
		next := -1
		for j := 0; j < n; j++ {
			if used[j] {
				continue
			}
			if next == -1 || matrix[current][j] < matrix[current][next] {
				next = j
			}
		}
		used[next] = true
		route = append(route, next)
		current = next
	}
	return route
}
