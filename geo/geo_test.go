package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"yatra-suraksha/dashboard/models"
)

func TestCirclePolygonClosedRing(t *testing.T) {
	center := models.LngLat{Lng: 77.5946, Lat: 12.9716}
	ring := CirclePolygon(center, 1000, 64)

	require.Len(t, ring, 65)
	require.Equal(t, ring[0], ring[64])
}

func TestCirclePolygonPointsNearCenter(t *testing.T) {
	center := models.LngLat{Lng: 20, Lat: 10}
	radius := 5000.0
	ring := CirclePolygon(center, radius, 64)

	// Loose L-inf bound from the degree conversion: r meters is at most
	// roughly r/1000/110 degrees in either axis (slightly more in longitude
	// away from the equator).
	limit := (radius / 1000 / 110) * 1.1
	for _, p := range ring {
		require.LessOrEqual(t, math.Abs(p.Lng-center.Lng), limit)
		require.LessOrEqual(t, math.Abs(p.Lat-center.Lat), limit)
	}
}

func TestCirclePolygonDefaultSegments(t *testing.T) {
	ring := CirclePolygon(models.LngLat{Lng: 0, Lat: 0}, 100, 0)
	require.Len(t, ring, 65)
}

func TestCirclePolygonDegenerateRadius(t *testing.T) {
	center := models.LngLat{Lng: 5, Lat: 6}
	ring := CirclePolygon(center, 0, 16)

	require.Len(t, ring, 17)
	for _, p := range ring {
		require.Equal(t, center, p)
	}
}

func TestBoundsOf(t *testing.T) {
	points := []models.LngLat{
		{Lng: 10, Lat: 5},
		{Lng: -3, Lat: 12},
		{Lng: 7, Lat: -1},
	}
	b, ok := BoundsOf(points)
	require.True(t, ok)
	require.Equal(t, Bounds{MinLng: -3, MinLat: -1, MaxLng: 10, MaxLat: 12}, b)

	_, ok = BoundsOf(nil)
	require.False(t, ok)
}
