package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yatra-suraksha/dashboard/geo"
	"yatra-suraksha/dashboard/mapengine"
	"yatra-suraksha/dashboard/models"
	"yatra-suraksha/dashboard/store"
	"yatra-suraksha/dashboard/styles"
)

type fakeEngine struct {
	ready bool
	ops   []string

	markers map[string]mapengine.Marker
	sources map[string]mapengine.Source
	layers  map[string]styles.Layer
	bounds  []geo.Bounds
	padding []float64
}

func newFakeEngine(ready bool) *fakeEngine {
	return &fakeEngine{
		ready:   ready,
		markers: make(map[string]mapengine.Marker),
		sources: make(map[string]mapengine.Source),
		layers:  make(map[string]styles.Layer),
	}
}

func (f *fakeEngine) Ready() bool { return f.ready }

func (f *fakeEngine) AddSource(id string, src mapengine.Source) {
	f.ops = append(f.ops, "addSource:"+id)
	f.sources[id] = src
}

func (f *fakeEngine) RemoveSource(id string) {
	f.ops = append(f.ops, "removeSource:"+id)
	delete(f.sources, id)
}

func (f *fakeEngine) AddLayer(layer styles.Layer) {
	f.ops = append(f.ops, "addLayer:"+layer.ID)
	f.layers[layer.ID] = layer
}

func (f *fakeEngine) RemoveLayer(id string) {
	f.ops = append(f.ops, "removeLayer:"+id)
	delete(f.layers, id)
}

func (f *fakeEngine) AddMarker(m mapengine.Marker) {
	f.ops = append(f.ops, "addMarker:"+m.ID)
	f.markers[m.ID] = m
}

func (f *fakeEngine) PatchMarker(id string, patch mapengine.MarkerPatch) {
	f.ops = append(f.ops, "patchMarker:"+id)
	m := f.markers[id]
	if patch.LngLat != nil {
		m.LngLat = *patch.LngLat
	}
	if patch.Attrs != nil {
		m.Attrs = patch.Attrs
	}
	f.markers[id] = m
}

func (f *fakeEngine) RemoveMarker(id string) {
	f.ops = append(f.ops, "removeMarker:"+id)
	delete(f.markers, id)
}

func (f *fakeEngine) FlyTo(move mapengine.CameraMove) {
	f.ops = append(f.ops, "flyTo")
}

func (f *fakeEngine) FitBounds(b geo.Bounds, padding float64, durationMs int) {
	f.ops = append(f.ops, "fitBounds")
	f.bounds = append(f.bounds, b)
	f.padding = append(f.padding, padding)
}

func (f *fakeEngine) SetStyle(theme string) {
	f.ops = append(f.ops, "setStyle:"+theme)
}

func (f *fakeEngine) SetPaintProperty(layerID, property string, value any) {
	f.ops = append(f.ops, "setPaint:"+layerID+":"+property)
}

func ptr[T any](v T) *T { return &v }

func locatedUser(id, name string, lng, lat float64) models.UserPatch {
	return models.UserPatch{
		UserID:    id,
		Name:      &name,
		Latitude:  &lat,
		Longitude: &lng,
	}
}

func TestSyncUsersNotReadyIsNoop(t *testing.T) {
	engine := newFakeEngine(false)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.UpsertUser(locatedUser("u1", "Asha", 77.2, 28.6))
	rec.SyncUsers()

	assert.Empty(t, engine.ops)
}

func TestSyncUsersCreateThenPatch(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.UpsertUser(locatedUser("u1", "Asha", 77.2, 28.6))
	rec.SyncUsers()

	require.Contains(t, engine.markers, "u1")
	m := engine.markers["u1"]
	assert.Equal(t, "user", m.Kind)
	assert.Equal(t, "bottom", m.Anchor)
	assert.Equal(t, onlineColor, m.Attrs["color"])

	st.UpsertUser(locatedUser("u1", "Asha", 77.3, 28.7))
	rec.SyncUsers()

	assert.Contains(t, engine.ops, "patchMarker:u1")
	assert.Equal(t, models.LngLat{Lng: 77.3, Lat: 28.7}, engine.markers["u1"].LngLat)
	// still only one create
	creates := 0
	for _, op := range engine.ops {
		if op == "addMarker:u1" {
			creates++
		}
	}
	assert.Equal(t, 1, creates)
}

func TestSyncUsersOfflineColorAndRemoval(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.UpsertUser(locatedUser("u1", "Asha", 77.2, 28.6))
	rec.SyncUsers()

	st.SetUserOnline("u1", false)
	rec.SyncUsers()
	assert.Equal(t, offlineColor, engine.markers["u1"].Attrs["color"])

	st.RemoveUser("u1")
	rec.SyncUsers()
	assert.NotContains(t, engine.markers, "u1")
}

func TestSyncUsersSkipsUnlocated(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	name := "Ghost"
	st.UpsertUser(models.UserPatch{UserID: "u2", Name: &name})
	rec.SyncUsers()

	assert.Empty(t, engine.markers)
}

func TestAvatarFallback(t *testing.T) {
	u := &models.User{UserID: "u1", Name: "Asha Rao"}
	assert.Contains(t, avatarURL(u), "ui-avatars.com")
	assert.Contains(t, avatarURL(u), "Asha+Rao")

	u.ProfilePicture = "https://cdn.example.com/p.jpg"
	assert.Equal(t, "https://cdn.example.com/p.jpg", avatarURL(u))
}

func TestSyncGeofencesDrawsTriadPerFence(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.ReplaceGeofences([]models.Geofence{
		{ID: "g1", Name: "Station", Latitude: ptr(28.6), Longitude: ptr(77.2), Radius: 500, FenceType: "safety", IsActive: true},
		{ID: "g2", Name: "Quarry", Latitude: ptr(28.7), Longitude: ptr(77.3), Radius: 300, FenceType: "restricted"},
	})
	rec.SyncGeofences()

	for _, id := range []string{"g1", "g2"} {
		assert.Contains(t, engine.sources, "geofence-source-"+id)
		assert.Contains(t, engine.layers, "geofence-fill-"+id)
		assert.Contains(t, engine.layers, "geofence-outline-"+id)
		assert.Contains(t, engine.layers, "geofence-label-"+id)
	}

	assert.Equal(t, "rgba(34, 197, 94, 0.2)", engine.layers["geofence-fill-g1"].Paint["fill-color"])
	assert.Equal(t, "#ef4444", engine.layers["geofence-outline-g2"].Paint["line-color"])

	// active fence solid, inactive dashed
	assert.Equal(t, []any{1}, engine.layers["geofence-outline-g1"].Paint["line-dasharray"])
	assert.Equal(t, []any{4, 2}, engine.layers["geofence-outline-g2"].Paint["line-dasharray"])
}

func TestSyncGeofencesTearsDownBeforeRedraw(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.ReplaceGeofences([]models.Geofence{
		{ID: "g1", Name: "Station", Latitude: ptr(28.6), Longitude: ptr(77.2), Radius: 500, FenceType: "safety", IsActive: true},
	})
	rec.SyncGeofences()

	st.ReplaceGeofences([]models.Geofence{
		{ID: "g2", Name: "Quarry", Latitude: ptr(28.7), Longitude: ptr(77.3), Radius: 300, FenceType: "restricted", IsActive: true},
	})
	engine.ops = nil
	rec.SyncGeofences()

	// layers removed before the source, and no g1 leftovers
	removeSourceAt := -1
	for i, op := range engine.ops {
		if op == "removeSource:geofence-source-g1" {
			removeSourceAt = i
		}
	}
	require.GreaterOrEqual(t, removeSourceAt, 3)
	for _, op := range engine.ops[:removeSourceAt] {
		assert.NotEqual(t, "addSource:geofence-source-g2", op)
	}
	assert.NotContains(t, engine.layers, "geofence-fill-g1")
	assert.NotContains(t, engine.sources, "geofence-source-g1")
	assert.Contains(t, engine.sources, "geofence-source-g2")
}

func TestSyncGeofencesHiddenWhenToggledOff(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.ReplaceGeofences([]models.Geofence{
		{ID: "g1", Name: "Station", Latitude: ptr(28.6), Longitude: ptr(77.2), Radius: 500, FenceType: "safety", IsActive: true},
	})
	rec.SyncGeofences()
	require.Contains(t, engine.sources, "geofence-source-g1")

	st.SetShowGeofences(false)
	rec.SyncGeofences()
	assert.Empty(t, engine.sources)
	assert.Empty(t, engine.layers)
}

func TestSyncGeofencesSkipsNonDrawable(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.ReplaceGeofences([]models.Geofence{
		{ID: "g1", Name: "No coords", Radius: 500, FenceType: "safety", IsActive: true},
		{ID: "g2", Name: "Zero radius", Latitude: ptr(28.6), Longitude: ptr(77.2), Radius: 0, FenceType: "safety", IsActive: true},
	})
	rec.SyncGeofences()

	assert.Empty(t, engine.sources)
}

func TestSyncRouteNeedsTwoPoints(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.SetLocationHistory("u1", []models.TrackPoint{{Latitude: 28.6, Longitude: 77.2}})
	rec.SyncRoute()

	assert.Empty(t, engine.sources)
	assert.Empty(t, engine.ops)
}

func TestSyncRouteDrawsAndFitsBounds(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.SetLocationHistory("u1", []models.TrackPoint{
		{Latitude: 28.6, Longitude: 77.2},
		{Latitude: 28.7, Longitude: 77.3},
		{Latitude: 28.8, Longitude: 77.25},
	})
	rec.SyncRoute()

	assert.Contains(t, engine.sources, routeSourceID)
	assert.Contains(t, engine.layers, routeLineID)
	assert.Contains(t, engine.layers, routeArrowsID)
	assert.Contains(t, engine.layers, routePointsID)
	require.Len(t, engine.padding, 1)
	assert.Equal(t, 80.0, engine.padding[0])
	assert.Equal(t, geo.Bounds{MinLng: 77.2, MinLat: 28.6, MaxLng: 77.3, MaxLat: 28.8}, engine.bounds[0])
}

func TestSyncRouteClearRemovesLayersBeforeSource(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.SetLocationHistory("u1", []models.TrackPoint{
		{Latitude: 28.6, Longitude: 77.2},
		{Latitude: 28.7, Longitude: 77.3},
	})
	rec.SyncRoute()
	engine.ops = nil

	st.SetLocationHistory("", nil)
	rec.SyncRoute()

	require.Equal(t, []string{
		"removeLayer:" + routeLineID,
		"removeLayer:" + routeArrowsID,
		"removeLayer:" + routePointsID,
		"removeSource:" + routeSourceID,
	}, engine.ops)
}

func TestSyncPreviewDrawsDraft(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.SetDraft(&models.GeofenceDraft{
		Mode:      "create",
		Name:      "New zone",
		Latitude:  "28.6",
		Longitude: "77.2",
		Radius:    400,
		FenceType: "restricted",
	})
	rec.SyncPreview()

	assert.Contains(t, engine.sources, previewSourceID)
	assert.Contains(t, engine.layers, previewFillID)
	assert.Equal(t, "#ef4444", engine.layers[previewOutlineID].Paint["line-color"])
	assert.Equal(t, []any{2, 2}, engine.layers[previewOutlineID].Paint["line-dasharray"])
}

func TestSyncPreviewClearsOnBadDraft(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.SetDraft(&models.GeofenceDraft{Latitude: "28.6", Longitude: "77.2", Radius: 400, FenceType: "safety"})
	rec.SyncPreview()
	require.Contains(t, engine.sources, previewSourceID)

	st.SetDraft(&models.GeofenceDraft{Latitude: "not-a-number", Longitude: "77.2", Radius: 400})
	rec.SyncPreview()
	assert.Empty(t, engine.sources)
	assert.Empty(t, engine.layers)

	st.SetDraft(nil)
	rec.SyncPreview()
	assert.Empty(t, engine.sources)
}

func TestSyncSafetyScoresClearAndRecreate(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.ReplaceSafetyScores([]models.SafetyScore{
		{ID: "s1", Latitude: ptr(28.6), Longitude: ptr(77.2), Score: 92},
		{ID: "s2", Latitude: ptr(28.7), Longitude: ptr(77.3), Score: 65},
		{ID: "s3", Latitude: ptr(28.8), Longitude: ptr(77.4), Score: 20},
		{ID: "s4", Score: 50}, // no coordinates
	})
	rec.SyncSafetyScores()

	require.Len(t, engine.markers, 3)
	assert.Equal(t, "#22c55e", engine.markers["safety-s1"].Attrs["color"])
	assert.Equal(t, "#f59e0b", engine.markers["safety-s2"].Attrs["color"])
	assert.Equal(t, "#ef4444", engine.markers["safety-s3"].Attrs["color"])
	assert.Equal(t, "65/100", engine.markers["safety-s2"].Attrs["label"])

	st.ReplaceSafetyScores([]models.SafetyScore{
		{ID: "s9", Latitude: ptr(28.9), Longitude: ptr(77.5), Score: 81},
	})
	rec.SyncSafetyScores()

	require.Len(t, engine.markers, 1)
	assert.Contains(t, engine.markers, "safety-s9")
}

func TestResyncAllRebuildsEverything(t *testing.T) {
	engine := newFakeEngine(true)
	st := store.New()
	rec := New(engine, st, zap.NewNop())

	st.UpsertUser(locatedUser("u1", "Asha", 77.2, 28.6))
	st.ReplaceGeofences([]models.Geofence{
		{ID: "g1", Name: "Station", Latitude: ptr(28.6), Longitude: ptr(77.2), Radius: 500, FenceType: "safety", IsActive: true},
	})
	st.ReplaceSafetyScores([]models.SafetyScore{
		{ID: "s1", Latitude: ptr(28.6), Longitude: ptr(77.2), Score: 92},
	})
	rec.ResyncAll()

	assert.Contains(t, engine.markers, "u1")
	assert.Contains(t, engine.markers, "safety-s1")
	assert.Contains(t, engine.sources, "geofence-source-g1")

	// a second resync starts from empty registries, so markers are
	// recreated rather than patched
	engine.ops = nil
	rec.ResyncAll()
	assert.Contains(t, engine.ops, "addMarker:u1")
	assert.NotContains(t, engine.ops, "patchMarker:u1")
}
