// internal/domain/geo/geo.go

package geo

import (
	"math"
)

// UnknownDistanceKm is assigned to records without coordinates so they sort last.
const UnknownDistanceKm = 999999

// Coordinates is the canonical coordinate pair. All ingestion paths normalize
// into this shape; nothing downstream deals with alternative layouts.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm calculates the distance between two coordinate pairs in kilometers
// using the haversine formula.
func DistanceKm(a, b Coordinates) float64 {
	const earthRadiusKm = 6371.0

	lat1 := a.Lat * math.Pi / 180.0
	lon1 := a.Lng * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	lon2 := b.Lng * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	hSin := math.Sin(dLat / 2)
	hSin *= hSin

	vSin := math.Sin(dLon / 2)
	vSin *= vSin

	h := hSin + math.Cos(lat1)*math.Cos(lat2)*vSin

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// DistanceFromKm returns the distance from origin to target, or
// UnknownDistanceKm when the target has no coordinates.
func DistanceFromKm(origin Coordinates, target *Coordinates) float64 {
	if target == nil {
		return UnknownDistanceKm
	}
	return DistanceKm(origin, *target)
}

// IsWithinKm checks if a point lies within radiusKm of a center point.
func IsWithinKm(point, center Coordinates, radiusKm float64) bool {
	return DistanceKm(point, center) <= radiusKm
}
