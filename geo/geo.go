// Package geo holds the pure coordinate helpers behind the map overlays.
package geo

import (
	"math"

	"yatra-suraksha/dashboard/models"
)

const defaultSegments = 64

// CirclePolygon approximates a circle of radiusMeters around center as a
// closed polygon ring with segments evenly spaced points plus a closing point
// equal to the first. The radius is converted to degree deltas with an
// equirectangular approximation: it degrades near the poles and for very
// large radii, which is acceptable for drawing only. The server owns the
// precise geofence math.
func CirclePolygon(center models.LngLat, radiusMeters float64, segments int) []models.LngLat {
	if segments <= 0 {
		segments = defaultSegments
	}

	km := radiusMeters / 1000
	distanceX := km / (111.32 * math.Cos(center.Lat*math.Pi/180))
	distanceY := km / 110.574

	ring := make([]models.LngLat, 0, segments+1)
	for i := 0; i < segments; i++ {
		theta := (float64(i) / float64(segments)) * (2 * math.Pi)
		ring = append(ring, models.LngLat{
			Lng: center.Lng + distanceX*math.Cos(theta),
			Lat: center.Lat + distanceY*math.Sin(theta),
		})
	}
	ring = append(ring, ring[0]) // close the ring
	return ring
}

// Bounds is an axis-aligned bounding box in geographic coordinates.
type Bounds struct {
	MinLng float64 `json:"minLng"`
	MinLat float64 `json:"minLat"`
	MaxLng float64 `json:"maxLng"`
	MaxLat float64 `json:"maxLat"`
}

// BoundsOf computes the bounding box of points. The second return value is
// false when points is empty.
func BoundsOf(points []models.LngLat) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinLng: points[0].Lng, MaxLng: points[0].Lng,
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
	}
	for _, p := range points[1:] {
		b.MinLng = math.Min(b.MinLng, p.Lng)
		b.MaxLng = math.Max(b.MaxLng, p.Lng)
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
	}
	return b, true
}
