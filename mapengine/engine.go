// Package mapengine defines the boundary to the map rendering engine. The
// engine owns tiles, WebGL painting, and the authoritative camera; the
// dashboard only issues primitive commands through the Engine interface.
package mapengine

import (
	"yatra-suraksha/dashboard/geo"
	"yatra-suraksha/dashboard/models"
	"yatra-suraksha/dashboard/styles"
)

// Geometry is a minimal GeoJSON geometry. Coordinates follow GeoJSON rules
// for the given type (Point: [lng,lat], LineString: [][lng,lat],
// Polygon: [][][lng,lat]).
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties,omitempty"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

func NewFeatureCollection(features ...Feature) *FeatureCollection {
	return &FeatureCollection{Type: "FeatureCollection", Features: features}
}

// Source is a GeoJSON data source added for an overlay.
type Source struct {
	Type string             `json:"type"`
	Data *FeatureCollection `json:"data"`
}

// Marker is a composed DOM marker the engine renders at a coordinate.
// Attrs carries the visual sub-element attributes (status color, avatar URL,
// label, pulse flag, popup payload) the browser side composes from.
type Marker struct {
	ID     string         `json:"id"`
	Kind   string         `json:"kind"` // "user" or "safety-score"
	LngLat models.LngLat  `json:"lngLat"`
	Anchor string         `json:"anchor,omitempty"`
	Attrs  map[string]any `json:"attrs,omitempty"`
}

// MarkerPatch applies only changed attributes to an existing marker, so the
// engine can mutate sub-elements in place instead of recreating the marker.
type MarkerPatch struct {
	LngLat *models.LngLat `json:"lngLat,omitempty"`
	Attrs  map[string]any `json:"attrs,omitempty"`
}

// CameraMove is a fly-to request.
type CameraMove struct {
	Center     models.LngLat `json:"center"`
	Zoom       float64       `json:"zoom,omitempty"`
	Pitch      *float64      `json:"pitch,omitempty"`
	Bearing    *float64      `json:"bearing,omitempty"`
	DurationMs int           `json:"duration,omitempty"`
}

// Engine is the rendering surface the reconciler draws on. Implementations
// must treat every call as a silent no-op until Ready reports true.
type Engine interface {
	Ready() bool

	AddSource(id string, src Source)
	RemoveSource(id string)
	AddLayer(layer styles.Layer)
	RemoveLayer(id string)

	AddMarker(m Marker)
	PatchMarker(id string, patch MarkerPatch)
	RemoveMarker(id string)

	FlyTo(move CameraMove)
	FitBounds(b geo.Bounds, padding float64, durationMs int)

	SetStyle(theme string)
	SetPaintProperty(layerID, property string, value any)
}
