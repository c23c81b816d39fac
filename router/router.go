package router

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"yatra-suraksha/dashboard/mapengine"
	"yatra-suraksha/dashboard/models"
	"yatra-suraksha/dashboard/store"
	"yatra-suraksha/dashboard/transport"
)

// Emitter is the outbound half of the admin feed.
type Emitter interface {
	Emit(event string, data any)
}

// Router binds inbound admin feed events to store mutations and wraps the
// outbound request vocabulary. Each inbound handler mutates state first and
// performs at most one side effect (camera move, selection) after.
type Router struct {
	store  *store.EntityStore
	engine mapengine.Engine
	feed   Emitter
	log    *zap.Logger
}

func New(st *store.EntityStore, engine mapengine.Engine, feed Emitter, log *zap.Logger) *Router {
	return &Router{store: st, engine: engine, feed: feed, log: log}
}

// Bind registers every inbound handler and the reconnect snapshot hook.
func (r *Router) Bind(socket *transport.AdminSocket) {
	socket.On("admin:all-locations", r.handleAllLocations)
	socket.On("user:location", r.handleUserLocation)
	socket.On("user:online", r.handleUserOnline)
	socket.On("user:offline", r.handleUserOffline)
	socket.On("admin:user-location-history", r.handleLocationHistory)

	socket.On("admin:active-alerts", r.handleActiveAlerts)
	socket.On("sos:emergency", r.handleSOS)
	socket.On("alert:low-battery", r.handleLowBattery)
	socket.On("user:location-stopped", r.handleLocationStopped)
	socket.On("alert:resolved", r.handleAlertResolved)

	socket.On("admin:all-geofences", r.handleAllGeofences)
	socket.On("admin:geofence-details", r.handleGeofenceDetails)
	socket.On("admin:geofence-created", r.handleGeofenceUpsert)
	socket.On("admin:geofence-updated", r.handleGeofenceUpsert)
	socket.On("admin:geofence-deleted", r.handleGeofenceDeleted)
	socket.On("admin:geofence-toggled", r.handleGeofenceToggled)
	socket.On("admin:geofence-stats", r.handleGeofenceStats)

	socket.On("admin:all-safety-scores", r.handleSafetyScores)
	socket.On("admin:nearby-safety-scores", r.handleSafetyScores)
	socket.On("admin:safety-stats", r.handleSafetyStats)

	socket.On("admin:all-videos", r.handleAllVideos)
	socket.On("admin:user-videos", r.handleUserVideos)
	socket.On("admin:alert-videos", r.handleAlertVideos)
	socket.On("admin:video-details", r.handleVideoDetails)
	socket.On("admin:video-stats", r.handleVideoStats)
	socket.On("admin:video-deleted", r.handleVideoDeleted)
	socket.On("admin:videos-bulk-deleted", r.handleVideosBulkDeleted)

	// acknowledged but not projected anywhere
	socket.On("users:online", r.handleLoggedOnly("users:online"))
	socket.On("gpt:response", r.handleLoggedOnly("gpt:response"))
	socket.On("gpt:user-connected", r.handleLoggedOnly("gpt:user-connected"))
	socket.On("gpt:user-disconnected", r.handleLoggedOnly("gpt:user-disconnected"))

	socket.OnConnect(r.RequestSnapshots)
}

// RequestSnapshots re-requests the full working set. Runs on every connect;
// full resync replaces any per-request retry policy.
func (r *Router) RequestSnapshots() {
	r.feed.Emit("admin:get-all-locations", map[string]any{})
	r.feed.Emit("admin:get-active-alerts", map[string]any{})
	r.feed.Emit("admin:get-all-geofences", map[string]any{})
	r.feed.Emit("admin:get-geofence-stats", map[string]any{})
	r.feed.Emit("admin:get-all-safety-scores", map[string]any{})
}

func (r *Router) handleLoggedOnly(event string) transport.Handler {
	return func(data json.RawMessage) {
		r.log.Debug("event acknowledged", zap.String("event", event))
	}
}

// --- users ---

func (r *Router) handleAllLocations(data json.RawMessage) {
	var payload struct {
		Users []map[string]any `json:"users"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		r.log.Warn("bad all-locations payload", zap.Error(err))
		return
	}
	for _, raw := range payload.Users {
		if patch, ok := models.UserPatchFromPayload(raw); ok {
			r.store.UpsertUser(patch)
		}
	}
	r.log.Info("user roster merged", zap.Int("count", len(payload.Users)))
}

func (r *Router) handleUserLocation(data json.RawMessage) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return
	}
	if patch, ok := models.UserPatchFromPayload(raw); ok {
		r.store.UpsertUser(patch)
	}
}

func (r *Router) handleUserOnline(data json.RawMessage) {
	if id := userIDOf(data); id != "" {
		r.store.SetUserOnline(id, true)
	}
}

func (r *Router) handleUserOffline(data json.RawMessage) {
	if id := userIDOf(data); id != "" {
		r.store.SetUserOnline(id, false)
	}
}

func userIDOf(data json.RawMessage) string {
	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.UserID
}

func (r *Router) handleLocationHistory(data json.RawMessage) {
	var payload struct {
		Locations []models.TrackPoint  `json:"locations"`
		User      *models.UserSnapshot `json:"user"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		r.log.Warn("bad location-history payload", zap.Error(err))
		return
	}
	userID := ""
	if payload.User != nil {
		userID = payload.User.ID
	}
	r.store.SetLocationHistory(userID, payload.Locations)
}

// --- alerts ---

func (r *Router) handleActiveAlerts(data json.RawMessage) {
	var payload struct {
		Alerts []models.Alert `json:"alerts"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		r.log.Warn("bad active-alerts payload", zap.Error(err))
		return
	}
	now := time.Now()
	for i := range payload.Alerts {
		payload.Alerts[i].Normalize(now)
	}
	r.store.ReplaceAlerts(payload.Alerts)
	r.log.Info("active alerts replaced", zap.Int("count", len(payload.Alerts)))
}

func (r *Router) handleSOS(data json.RawMessage) {
	var alert models.Alert
	if err := json.Unmarshal(data, &alert); err != nil {
		r.log.Warn("bad sos payload", zap.Error(err))
		return
	}
	alert.Type = models.AlertTypeSOS
	alert.Normalize(time.Now())
	if !r.store.InsertAlert(alert) {
		return
	}

	userID := alert.UserID
	if userID == "" && alert.User != nil {
		userID = alert.User.ID
	}
	if userID != "" {
		patch := models.UserPatch{UserID: userID}
		emergency := true
		online := true
		patch.IsEmergency = &emergency
		patch.IsOnline = &online
		if alert.Message != "" {
			msg := alert.Message
			patch.SOSMessage = &msg
		}
		if alert.User != nil && alert.User.Name != "" {
			name := alert.User.Name
			patch.Name = &name
		}
		if alert.Location != nil {
			lat, lng := alert.Location.Latitude, alert.Location.Longitude
			patch.Latitude = &lat
			patch.Longitude = &lng
		}
		r.store.UpsertUser(patch)
	}

	r.store.SelectAlert(alert.ID)
	if alert.Location != nil {
		r.engine.FlyTo(mapengine.CameraMove{
			Center:     models.LngLat{Lng: alert.Location.Longitude, Lat: alert.Location.Latitude},
			Zoom:       15,
			DurationMs: 1500,
		})
	}
	r.log.Warn("sos alert received",
		zap.String("alertId", alert.ID),
		zap.String("userId", userID))
}

func (r *Router) handleLowBattery(data json.RawMessage) {
	var alert models.Alert
	if err := json.Unmarshal(data, &alert); err != nil {
		return
	}
	alert.Type = models.AlertTypeLowBattery
	alert.Normalize(time.Now())
	if !r.store.InsertAlert(alert) {
		return
	}

	userID := alert.UserID
	if userID == "" && alert.User != nil {
		userID = alert.User.ID
	}
	if userID != "" {
		patch := models.UserPatch{UserID: userID}
		low := true
		patch.LowBattery = &low
		if alert.Battery != nil {
			battery := *alert.Battery
			patch.Battery = &battery
		}
		if alert.Location != nil {
			lat, lng := alert.Location.Latitude, alert.Location.Longitude
			patch.Latitude = &lat
			patch.Longitude = &lng
		}
		r.store.UpsertUser(patch)
	}
}

// handleLocationStopped marks the user offline. Stops the user initiated
// themselves do not raise an alert; anything else does.
func (r *Router) handleLocationStopped(data json.RawMessage) {
	var payload struct {
		UserID    string           `json:"userId"`
		Reason    string           `json:"reason"`
		Timestamp string           `json:"timestamp"`
		Location  *models.Location `json:"location"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.UserID == "" {
		return
	}

	offline := false
	patch := models.UserPatch{UserID: payload.UserID, IsOnline: &offline}
	if payload.Timestamp != "" {
		stopped := payload.Timestamp
		patch.StoppedAt = &stopped
	}
	r.store.UpsertUser(patch)

	if payload.Reason == "user_initiated" {
		return
	}
	alert := models.Alert{
		Type:      models.AlertTypeLocationStopped,
		UserID:    payload.UserID,
		Reason:    payload.Reason,
		Location:  payload.Location,
		Timestamp: payload.Timestamp,
	}
	alert.Normalize(time.Now())
	r.store.InsertAlert(alert)
}

func (r *Router) handleAlertResolved(data json.RawMessage) {
	var payload struct {
		AlertID string `json:"alertId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.AlertID == "" {
		return
	}
	r.store.ResolveAlert(payload.AlertID)
}

// --- geofences ---

func (r *Router) handleAllGeofences(data json.RawMessage) {
	var payload struct {
		Geofences []models.Geofence `json:"geofences"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		r.log.Warn("bad all-geofences payload", zap.Error(err))
		return
	}
	r.store.ReplaceGeofences(payload.Geofences)
}

func (r *Router) handleGeofenceUpsert(data json.RawMessage) {
	if g, ok := decodeGeofence(data); ok {
		r.store.UpsertGeofence(g)
	}
}

// handleGeofenceDetails refreshes one fence without closing an open form;
// a details response is a read, not a broadcast about someone's edit.
func (r *Router) handleGeofenceDetails(data json.RawMessage) {
	if g, ok := decodeGeofence(data); ok {
		r.store.SetGeofence(g)
	}
}

func decodeGeofence(data json.RawMessage) (models.Geofence, bool) {
	var payload struct {
		Geofence *models.Geofence `json:"geofence"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Geofence != nil {
		return *payload.Geofence, true
	}
	// some broadcasts carry the geofence at the top level
	var g models.Geofence
	if err := json.Unmarshal(data, &g); err == nil && g.ID != "" {
		return g, true
	}
	return models.Geofence{}, false
}

func (r *Router) handleGeofenceDeleted(data json.RawMessage) {
	var payload struct {
		GeofenceID string `json:"geofenceId"`
		ID         string `json:"id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	id := payload.GeofenceID
	if id == "" {
		id = payload.ID
	}
	if id != "" {
		r.store.RemoveGeofence(id)
	}
}

func (r *Router) handleGeofenceToggled(data json.RawMessage) {
	var payload struct {
		GeofenceID string `json:"geofenceId"`
		ID         string `json:"id"`
		IsActive   bool   `json:"isActive"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	id := payload.GeofenceID
	if id == "" {
		id = payload.ID
	}
	if id != "" {
		r.store.ToggleGeofence(id, payload.IsActive)
	}
}

func (r *Router) handleGeofenceStats(data json.RawMessage) {
	var stats models.GeofenceStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return
	}
	r.store.SetGeofenceStats(stats)
}

// --- safety scores ---

func (r *Router) handleSafetyScores(data json.RawMessage) {
	var payload struct {
		Scores []map[string]any `json:"scores"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		r.log.Warn("bad safety-scores payload", zap.Error(err))
		return
	}
	scores := make([]models.SafetyScore, 0, len(payload.Scores))
	for _, raw := range payload.Scores {
		scores = append(scores, models.SafetyScoreFromPayload(raw))
	}
	r.store.ReplaceSafetyScores(scores)
}

func (r *Router) handleSafetyStats(data json.RawMessage) {
	var stats models.SafetyStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return
	}
	r.store.SetSafetyStats(stats)
}

// --- videos ---

type videoPayload struct {
	Videos     []models.Video          `json:"videos"`
	Pagination *models.VideoPagination `json:"pagination"`
	User       *models.UserSnapshot    `json:"user"`
	Alert      *models.RelatedAlert    `json:"alert"`
}

func (r *Router) handleAllVideos(data json.RawMessage) {
	var payload videoPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		r.log.Warn("bad videos payload", zap.Error(err))
		return
	}
	r.store.ReplaceVideos(payload.Videos, payload.Pagination, nil)
}

func (r *Router) handleUserVideos(data json.RawMessage) {
	var payload videoPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	filter := &models.VideoFilterContext{Type: "user", User: payload.User, Count: len(payload.Videos)}
	r.store.ReplaceVideos(payload.Videos, payload.Pagination, filter)
}

func (r *Router) handleAlertVideos(data json.RawMessage) {
	var payload videoPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	filter := &models.VideoFilterContext{Type: "alert", Alert: payload.Alert, Count: len(payload.Videos)}
	r.store.ReplaceVideos(payload.Videos, payload.Pagination, filter)
}

func (r *Router) handleVideoDetails(data json.RawMessage) {
	var payload struct {
		Video *models.Video `json:"video"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Video != nil && payload.Video.ID != "" {
		r.store.UpsertVideo(*payload.Video)
		return
	}
	var v models.Video
	if err := json.Unmarshal(data, &v); err == nil && v.ID != "" {
		r.store.UpsertVideo(v)
	}
}

func (r *Router) handleVideoStats(data json.RawMessage) {
	var stats models.VideoStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return
	}
	r.store.SetVideoStats(stats)
}

func (r *Router) handleVideoDeleted(data json.RawMessage) {
	var payload struct {
		VideoID string `json:"videoId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.VideoID == "" {
		return
	}
	r.store.RemoveVideo(payload.VideoID)
}

func (r *Router) handleVideosBulkDeleted(data json.RawMessage) {
	var payload struct {
		VideoIDs []string `json:"videoIds"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.VideoIDs) == 0 {
		return
	}
	r.store.RemoveVideos(payload.VideoIDs)
}

// --- outbound requests ---

// ResolveAlert removes the alert locally and tells upstream. The local
// removal is optimistic; the admin:alert-resolved broadcast is a no-op by
// then.
func (r *Router) ResolveAlert(alertID string) {
	r.store.ResolveAlert(alertID)
	r.feed.Emit("admin:resolve-alert", map[string]any{"alertId": alertID})
}

func (r *Router) SubscribeUser(userID string) {
	r.feed.Emit("admin:subscribe-user", map[string]any{"userId": userID})
}

func (r *Router) RequestUserLocation(userID string, limit int) {
	r.feed.Emit("admin:get-user-location", map[string]any{"userId": userID, "limit": limit})
}

func (r *Router) CreateGeofence(draft models.GeofenceDraft) {
	r.feed.Emit("admin:create-geofence", geofencePayload(draft))
}

func (r *Router) UpdateGeofence(draft models.GeofenceDraft) {
	payload := geofencePayload(draft)
	payload["geofenceId"] = draft.GeofenceID
	r.feed.Emit("admin:update-geofence", payload)
}

func geofencePayload(draft models.GeofenceDraft) map[string]any {
	return map[string]any{
		"name":        draft.Name,
		"description": draft.Description,
		"latitude":    draft.Latitude,
		"longitude":   draft.Longitude,
		"radius":      draft.Radius,
		"fenceType":   draft.FenceType,
		"isActive":    draft.IsActive,
	}
}

func (r *Router) DeleteGeofence(geofenceID string) {
	r.feed.Emit("admin:delete-geofence", map[string]any{"geofenceId": geofenceID})
}

func (r *Router) ToggleGeofence(geofenceID string, isActive bool) {
	r.feed.Emit("admin:toggle-geofence", map[string]any{"geofenceId": geofenceID, "isActive": isActive})
}

func (r *Router) RequestAllSafetyScores() {
	r.feed.Emit("admin:get-all-safety-scores", map[string]any{})
}

func (r *Router) RequestNearbySafetyScores(lat, lon, radiusKm float64) {
	r.feed.Emit("admin:get-nearby-safety-scores", map[string]any{
		"lat":      lat,
		"lon":      lon,
		"radiusKm": radiusKm,
	})
}

func (r *Router) RequestSafetyStats() {
	r.feed.Emit("admin:get-safety-stats", map[string]any{})
}

func (r *Router) RequestVideos(page, limit int) {
	r.feed.Emit("admin:get-all-videos", map[string]any{"page": page, "limit": limit})
}

func (r *Router) RequestVideosByUser(userID string) {
	r.feed.Emit("admin:get-videos-by-user", map[string]any{"userId": userID})
}

func (r *Router) RequestVideosByAlert(alertID string) {
	r.feed.Emit("admin:get-videos-by-alert", map[string]any{"alertId": alertID})
}

func (r *Router) RequestVideo(videoID string) {
	r.feed.Emit("admin:get-video", map[string]any{"videoId": videoID})
}

func (r *Router) RequestVideoStats() {
	r.feed.Emit("admin:get-video-stats", map[string]any{})
}

func (r *Router) DeleteVideo(videoID string) {
	r.feed.Emit("admin:delete-video", map[string]any{"videoId": videoID})
}

func (r *Router) BulkDeleteVideos(videoIDs []string) {
	r.feed.Emit("admin:bulk-delete-videos", map[string]any{"videoIds": videoIDs})
}
