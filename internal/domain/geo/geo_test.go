// internal/domain/geo/geo_test.go

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	hamburg = Coordinates{Lat: 53.5511, Lng: 9.9937}
	berlin  = Coordinates{Lat: 52.5200, Lng: 13.4050}
)

func TestDistanceKmSymmetry(t *testing.T) {
	assert.Equal(t, DistanceKm(hamburg, berlin), DistanceKm(berlin, hamburg))
}

func TestDistanceKmZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(hamburg, hamburg))
}

func TestDistanceKmKnownDistance(t *testing.T) {
	// Hamburg to Berlin is roughly 255 km as the crow flies.
	d := DistanceKm(hamburg, berlin)
	assert.InDelta(t, 255, d, 5)
}

func TestDistanceFromKm(t *testing.T) {
	assert.Equal(t, float64(UnknownDistanceKm), DistanceFromKm(hamburg, nil))

	d := DistanceFromKm(hamburg, &berlin)
	assert.Equal(t, DistanceKm(hamburg, berlin), d)
}

func TestIsWithinKm(t *testing.T) {
	assert.True(t, IsWithinKm(berlin, hamburg, 300))
	assert.False(t, IsWithinKm(berlin, hamburg, 100))
}
