package models

// Location is a named geographic point. Treat as immutable once resolved.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Destination is one ordered stop of a trip.
type Destination struct {
	Location
	Position int `json:"position" db:"position"`
}

// ValidateCoordinates checks if latitude and longitude are in range
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// HasCoordinates reports whether the destination carries a usable position.
// A (0,0) pair is treated as missing data.
func (d Destination) HasCoordinates() bool {
	if d.Lat == 0 && d.Lng == 0 {
		return false
	}
	return ValidateCoordinates(d.Lat, d.Lng)
}
