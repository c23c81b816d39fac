package reconcile

import (
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"yatra-suraksha/dashboard/geo"
	"yatra-suraksha/dashboard/mapengine"
	"yatra-suraksha/dashboard/models"
	"yatra-suraksha/dashboard/store"
	"yatra-suraksha/dashboard/styles"
)

const (
	onlineColor  = "#10b981"
	offlineColor = "#6b7280"

	routeColor = "#3b82f6"

	routeSourceID = "user-route-source"
	routeLineID   = "user-route-layer"
	routeArrowsID = "user-route-arrows"
	routePointsID = "user-route-points"

	previewSourceID  = "geofence-preview-source"
	previewFillID    = "geofence-preview-fill"
	previewOutlineID = "geofence-preview-outline"
	previewCenterID  = "geofence-preview-center"
)

// Reconciler projects store state onto the map engine. It keeps a registry
// of what it has already drawn so user markers are patched in place instead
// of recreated, and so geofence layers are fully torn down before the
// current set is re-added.
//
// Every sync method is a silent no-op while the engine is not ready;
// ResyncAll rebuilds everything once readiness is reached.
type Reconciler struct {
	engine mapengine.Engine
	store  *store.EntityStore
	log    *zap.Logger

	mu           sync.Mutex
	userMarkers  map[string]bool
	safetyDots   []string
	drawnFences  map[string]bool
	routeDrawn   bool
	previewDrawn bool
}

func New(engine mapengine.Engine, st *store.EntityStore, log *zap.Logger) *Reconciler {
	return &Reconciler{
		engine:      engine,
		store:       st,
		log:         log,
		userMarkers: make(map[string]bool),
		drawnFences: make(map[string]bool),
	}
}

// Apply routes a store change notification to the matching sync.
func (r *Reconciler) Apply(scope store.Scope) {
	switch scope {
	case store.ScopeUsers:
		r.SyncUsers()
	case store.ScopeGeofences:
		// a create/update/delete broadcast also closes any open draft,
		// so the preview is re-derived alongside the fences
		r.SyncGeofences()
		r.SyncPreview()
	case store.ScopeDraft:
		r.SyncPreview()
	case store.ScopeScores:
		r.SyncSafetyScores()
	case store.ScopeRoute:
		r.SyncRoute()
	}
}

// ResyncAll redraws every overlay from scratch. Called when the map surface
// reports ready, which happens on initial load and after every style swap;
// the browser side starts from a blank slate either way, so the registries
// are reset first.
func (r *Reconciler) ResyncAll() {
	if !r.engine.Ready() {
		return
	}
	r.mu.Lock()
	r.userMarkers = make(map[string]bool)
	r.drawnFences = make(map[string]bool)
	r.safetyDots = nil
	r.routeDrawn = false
	r.previewDrawn = false
	r.mu.Unlock()

	r.SyncUsers()
	r.SyncGeofences()
	r.SyncPreview()
	r.SyncSafetyScores()
	r.SyncRoute()
	r.log.Debug("map overlays resynced")
}

// SyncUsers patches markers for users already on the map and creates
// markers for newly located ones. Users that left the store get their
// marker removed.
func (r *Reconciler) SyncUsers() {
	if !r.engine.Ready() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current := make(map[string]bool)
	for _, u := range r.store.Users() {
		if !u.Located() {
			continue
		}
		current[u.UserID] = true
		pos := models.LngLat{Lng: *u.Longitude, Lat: *u.Latitude}
		attrs := userMarkerAttrs(&u)
		if r.userMarkers[u.UserID] {
			r.engine.PatchMarker(u.UserID, mapengine.MarkerPatch{LngLat: &pos, Attrs: attrs})
			continue
		}
		r.engine.AddMarker(mapengine.Marker{
			ID:     u.UserID,
			Kind:   "user",
			LngLat: pos,
			Anchor: "bottom",
			Attrs:  attrs,
		})
		r.userMarkers[u.UserID] = true
	}

	for id := range r.userMarkers {
		if !current[id] {
			r.engine.RemoveMarker(id)
			delete(r.userMarkers, id)
		}
	}
}

func userMarkerAttrs(u *models.User) map[string]any {
	color := offlineColor
	if u.IsOnline {
		color = onlineColor
	}
	attrs := map[string]any{
		"name":   u.Name,
		"color":  color,
		"pulse":  u.IsEmergency,
		"avatar": avatarURL(u),
	}
	if u.Battery != nil {
		attrs["battery"] = *u.Battery
	}
	return attrs
}

func avatarURL(u *models.User) string {
	if u.ProfilePicture != "" {
		return u.ProfilePicture
	}
	name := u.Name
	if name == "" {
		name = u.UserID
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=10b981&color=fff"
}

// SyncGeofences tears down every previously drawn geofence (dependent
// layers first, then the source) and re-adds the visible set. Hidden,
// radius-less, and coordinate-less fences are skipped.
func (r *Reconciler) SyncGeofences() {
	if !r.engine.Ready() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.drawnFences {
		r.engine.RemoveLayer("geofence-fill-" + id)
		r.engine.RemoveLayer("geofence-outline-" + id)
		r.engine.RemoveLayer("geofence-label-" + id)
		r.engine.RemoveSource("geofence-source-" + id)
	}
	r.drawnFences = make(map[string]bool)

	if !r.store.ShowGeofences() {
		return
	}
	selected := r.store.SelectedGeofenceID()
	for _, g := range r.store.Geofences() {
		if !g.Drawable() {
			continue
		}
		r.drawGeofence(&g, g.ID == selected)
		r.drawnFences[g.ID] = true
	}
}

func (r *Reconciler) drawGeofence(g *models.Geofence, selected bool) {
	fillColor, strokeColor := fenceColors(g.FenceType)

	center := models.LngLat{Lng: *g.Longitude, Lat: *g.Latitude}
	ring := geo.CirclePolygon(center, g.Radius, 0)
	coords := make([][]float64, len(ring))
	for i, p := range ring {
		coords[i] = []float64{p.Lng, p.Lat}
	}

	sourceID := "geofence-source-" + g.ID
	r.engine.AddSource(sourceID, mapengine.Source{
		Type: "geojson",
		Data: mapengine.NewFeatureCollection(mapengine.Feature{
			Type: "Feature",
			Geometry: mapengine.Geometry{
				Type:        "Polygon",
				Coordinates: [][][]float64{coords},
			},
			Properties: map[string]any{"name": g.Name, "fenceType": g.FenceType},
		}),
	})

	fillOpacity, lineWidth, lineOpacity := 0.3, 1.5, 0.5
	dash := []any{4, 2}
	if g.IsActive {
		fillOpacity, lineWidth, lineOpacity = 0.6, 3, 0.9
		dash = []any{1}
	}
	if selected {
		lineWidth += 1
	}

	r.engine.AddLayer(styleLayer("geofence-fill-"+g.ID, "fill", sourceID, nil, map[string]any{
		"fill-color":   fillColor,
		"fill-opacity": fillOpacity,
	}))
	r.engine.AddLayer(styleLayer("geofence-outline-"+g.ID, "line", sourceID, nil, map[string]any{
		"line-color":     strokeColor,
		"line-width":     lineWidth,
		"line-opacity":   lineOpacity,
		"line-dasharray": dash,
	}))
	r.engine.AddLayer(styleLayer("geofence-label-"+g.ID, "symbol", sourceID, map[string]any{
		"text-field": g.Name,
		"text-size":  12,
	}, map[string]any{
		"text-color":      strokeColor,
		"text-halo-color": "#ffffff",
		"text-halo-width": 1.5,
	}))
}

func fenceColors(fenceType string) (fill, stroke string) {
	if fenceType == "restricted" {
		return "rgba(239, 68, 68, 0.3)", "#ef4444"
	}
	return "rgba(34, 197, 94, 0.2)", "#22c55e"
}

// SyncRoute draws the selected user's movement trail: a line with
// direction arrows and per-fix dots over a single source. Fewer than two
// points clears the trail instead.
func (r *Reconciler) SyncRoute() {
	if !r.engine.Ready() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, points := r.store.LocationHistory()
	r.clearRouteLocked()
	if len(points) < 2 {
		return
	}

	coords := make([][]float64, len(points))
	lngLats := make([]models.LngLat, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Longitude, p.Latitude}
		lngLats[i] = models.LngLat{Lng: p.Longitude, Lat: p.Latitude}
	}

	r.engine.AddSource(routeSourceID, mapengine.Source{
		Type: "geojson",
		Data: mapengine.NewFeatureCollection(mapengine.Feature{
			Type:     "Feature",
			Geometry: mapengine.Geometry{Type: "LineString", Coordinates: coords},
		}),
	})
	r.engine.AddLayer(styleLayer(routeLineID, "line", routeSourceID, map[string]any{
		"line-join": "round",
		"line-cap":  "round",
	}, map[string]any{
		"line-color":   routeColor,
		"line-width":   4,
		"line-opacity": 0.8,
	}))
	r.engine.AddLayer(styleLayer(routeArrowsID, "symbol", routeSourceID, map[string]any{
		"symbol-placement": "line",
		"symbol-spacing":   80,
		"text-field":       "▶",
		"text-size":        12,
		"text-keep-upright": false,
	}, map[string]any{
		"text-color": routeColor,
	}))
	r.engine.AddLayer(styleLayer(routePointsID, "circle", routeSourceID, nil, map[string]any{
		"circle-radius":       4,
		"circle-color":        routeColor,
		"circle-stroke-width": 1.5,
		"circle-stroke-color": "#ffffff",
	}))
	r.routeDrawn = true

	if b, ok := geo.BoundsOf(lngLats); ok {
		r.engine.FitBounds(b, 80, 1000)
	}
}

// ClearRoute removes the trail overlay if present.
func (r *Reconciler) ClearRoute() {
	if !r.engine.Ready() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearRouteLocked()
}

func (r *Reconciler) clearRouteLocked() {
	if !r.routeDrawn {
		return
	}
	r.engine.RemoveLayer(routeLineID)
	r.engine.RemoveLayer(routeArrowsID)
	r.engine.RemoveLayer(routePointsID)
	r.engine.RemoveSource(routeSourceID)
	r.routeDrawn = false
}

// SyncPreview renders the geofence draft as a dashed live preview. The
// previous preview is always removed first; a draft without parseable
// coordinates or a positive radius leaves the map clean.
func (r *Reconciler) SyncPreview() {
	if !r.engine.Ready() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.previewDrawn {
		r.engine.RemoveLayer(previewFillID)
		r.engine.RemoveLayer(previewOutlineID)
		r.engine.RemoveLayer(previewCenterID)
		r.engine.RemoveSource(previewSourceID)
		r.previewDrawn = false
	}

	draft := r.store.Draft()
	if draft == nil || draft.Radius <= 0 {
		return
	}
	lat, errLat := strconv.ParseFloat(draft.Latitude, 64)
	lng, errLng := strconv.ParseFloat(draft.Longitude, 64)
	if errLat != nil || errLng != nil {
		return
	}

	fillColor, strokeColor := fenceColors(draft.FenceType)
	center := models.LngLat{Lng: lng, Lat: lat}
	ring := geo.CirclePolygon(center, float64(draft.Radius), 0)
	coords := make([][]float64, len(ring))
	for i, p := range ring {
		coords[i] = []float64{p.Lng, p.Lat}
	}

	r.engine.AddSource(previewSourceID, mapengine.Source{
		Type: "geojson",
		Data: mapengine.NewFeatureCollection(
			mapengine.Feature{
				Type: "Feature",
				Geometry: mapengine.Geometry{
					Type:        "Polygon",
					Coordinates: [][][]float64{coords},
				},
			},
			mapengine.Feature{
				Type:       "Feature",
				Geometry:   mapengine.Geometry{Type: "Point", Coordinates: []float64{lng, lat}},
				Properties: map[string]any{"center": true},
			},
		),
	})
	r.engine.AddLayer(styleLayer(previewFillID, "fill", previewSourceID, nil, map[string]any{
		"fill-color":   fillColor,
		"fill-opacity": 0.4,
	}))
	r.engine.AddLayer(styleLayer(previewOutlineID, "line", previewSourceID, nil, map[string]any{
		"line-color":     strokeColor,
		"line-width":     2,
		"line-dasharray": []any{2, 2},
	}))
	previewCenter := styleLayer(previewCenterID, "circle", previewSourceID, nil, map[string]any{
		"circle-radius":       5,
		"circle-color":        strokeColor,
		"circle-stroke-width": 2,
		"circle-stroke-color": "#ffffff",
	})
	previewCenter.Filter = []any{"==", []any{"get", "center"}, true}
	r.engine.AddLayer(previewCenter)
	r.previewDrawn = true
}

// SyncSafetyScores clears and recreates the score dots. Scores come as a
// full replacement set, so there is nothing to patch in place.
func (r *Reconciler) SyncSafetyScores() {
	if !r.engine.Ready() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.safetyDots {
		r.engine.RemoveMarker(id)
	}
	r.safetyDots = nil

	for i, sc := range r.store.SafetyScores() {
		if !sc.Located() {
			continue
		}
		id := sc.ID
		if id == "" {
			id = fmt.Sprintf("safety-%d", i)
		} else {
			id = "safety-" + id
		}
		band := models.BandForScore(sc.Score)
		bg, border := band.Colors()
		r.engine.AddMarker(mapengine.Marker{
			ID:     id,
			Kind:   "safety-score",
			LngLat: models.LngLat{Lng: *sc.Longitude, Lat: *sc.Latitude},
			Attrs: map[string]any{
				"score":        sc.Score,
				"label":        fmt.Sprintf("%.0f/100", sc.Score),
				"locationName": sc.LocationName,
				"color":        bg,
				"borderColor":  border,
			},
		})
		r.safetyDots = append(r.safetyDots, id)
	}
}

func styleLayer(id, layerType, source string, layout, paint map[string]any) styles.Layer {
	return styles.Layer{
		ID:     id,
		Type:   layerType,
		Source: source,
		Layout: layout,
		Paint:  paint,
	}
}
