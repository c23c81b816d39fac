package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yatra-suraksha/dashboard/config"
	"yatra-suraksha/dashboard/mapengine"
	"yatra-suraksha/dashboard/models"
	"yatra-suraksha/dashboard/router"
	"yatra-suraksha/dashboard/store"
	"yatra-suraksha/dashboard/transport"
	"yatra-suraksha/dashboard/view"
)

// DashboardHandler serves the operator API: state snapshots plus the
// actions the dashboard can take. Reads come from the entity store;
// mutating actions go upstream through the event router (or, for
// display-only concerns like the route overlay, mutate the store
// directly).
type DashboardHandler struct {
	store  *store.EntityStore
	router *router.Router
	engine mapengine.Engine
	feed   *transport.AdminSocket
	cfg    *config.Config
}

func NewDashboardHandler(st *store.EntityStore, rt *router.Router, engine mapengine.Engine, feed *transport.AdminSocket, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{
		store:  st,
		router: rt,
		engine: engine,
		feed:   feed,
		cfg:    cfg,
	}
}

func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"upstreamLive": h.feed.Connected(),
		"mapReady":     h.engine.Ready(),
	})
}

// --- state snapshots ---

func (h *DashboardHandler) GetUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Users())
}

func (h *DashboardHandler) GetAlerts(c *gin.Context) {
	alerts := h.store.Alerts()
	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"counts": view.CountAlerts(alerts),
	})
}

func (h *DashboardHandler) GetGeofences(c *gin.Context) {
	stats, _, _ := h.store.Stats()
	c.JSON(http.StatusOK, gin.H{
		"geofences": h.store.Geofences(),
		"visible":   h.store.ShowGeofences(),
		"stats":     stats,
	})
}

func (h *DashboardHandler) GetSafetyScores(c *gin.Context) {
	_, stats, _ := h.store.Stats()
	c.JSON(http.StatusOK, gin.H{
		"scores": h.store.SafetyScores(),
		"stats":  stats,
	})
}

func (h *DashboardHandler) GetVideos(c *gin.Context) {
	videos, pagination := h.store.Videos()
	_, _, stats := h.store.Stats()
	c.JSON(http.StatusOK, gin.H{
		"videos":     videos,
		"pagination": pagination,
		"filter":     h.store.VideoFilter(),
		"stats":      stats,
	})
}

func (h *DashboardHandler) GetCamera(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.CameraState())
}

// --- alerts ---

func (h *DashboardHandler) ResolveAlert(c *gin.Context) {
	alertID := c.Param("id")
	h.router.ResolveAlert(alertID)
	c.JSON(http.StatusOK, gin.H{"message": "Alert resolved", "alertId": alertID})
}

// --- users ---

func (h *DashboardHandler) SelectUser(c *gin.Context) {
	userID := c.Param("id")
	h.store.SelectUser(userID)
	h.router.SubscribeUser(userID)
	c.JSON(http.StatusOK, gin.H{"message": "User selected", "userId": userID})
}

func (h *DashboardHandler) DeselectUser(c *gin.Context) {
	h.store.SelectUser("")
	c.JSON(http.StatusOK, gin.H{"message": "Selection cleared"})
}

type routeRequest struct {
	Limit int `json:"limit"`
}

// ShowRoute requests the user's location history; the trail draws when the
// admin:user-location-history snapshot arrives.
func (h *DashboardHandler) ShowRoute(c *gin.Context) {
	userID := c.Param("id")
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Limit <= 0 {
		req.Limit = 50
	}
	h.router.RequestUserLocation(userID, req.Limit)
	c.JSON(http.StatusOK, gin.H{"message": "Route requested", "userId": userID, "limit": req.Limit})
}

func (h *DashboardHandler) ClearRoute(c *gin.Context) {
	h.store.SetLocationHistory("", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Route cleared"})
}

// --- geofences ---

type geofenceVisibilityRequest struct {
	Show *bool `json:"show" binding:"required"`
}

func (h *DashboardHandler) SetGeofenceVisibility(c *gin.Context) {
	var req geofenceVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.SetShowGeofences(*req.Show)
	c.JSON(http.StatusOK, gin.H{"visible": *req.Show})
}

func (h *DashboardHandler) CreateGeofence(c *gin.Context) {
	var draft models.GeofenceDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if draft.Name == "" || draft.Radius <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and a positive radius are required"})
		return
	}
	h.router.CreateGeofence(draft)
	c.JSON(http.StatusAccepted, gin.H{"message": "Geofence creation requested"})
}

func (h *DashboardHandler) UpdateGeofence(c *gin.Context) {
	var draft models.GeofenceDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft.GeofenceID = c.Param("id")
	h.router.UpdateGeofence(draft)
	c.JSON(http.StatusAccepted, gin.H{"message": "Geofence update requested"})
}

func (h *DashboardHandler) DeleteGeofence(c *gin.Context) {
	h.router.DeleteGeofence(c.Param("id"))
	c.JSON(http.StatusAccepted, gin.H{"message": "Geofence deletion requested"})
}

type toggleRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (h *DashboardHandler) ToggleGeofence(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.router.ToggleGeofence(c.Param("id"), *req.IsActive)
	c.JSON(http.StatusAccepted, gin.H{"message": "Geofence toggle requested"})
}

// SetDraft opens or updates the create/edit form; the map shows a live
// preview while the draft is open. An empty body closes the form.
func (h *DashboardHandler) SetDraft(c *gin.Context) {
	var draft models.GeofenceDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if draft.Mode == "" {
		draft.Mode = "create"
	}
	h.store.SetDraft(&draft)
	c.JSON(http.StatusOK, gin.H{"message": "Draft updated"})
}

func (h *DashboardHandler) ClearDraft(c *gin.Context) {
	h.store.SetDraft(nil)
	c.JSON(http.StatusOK, gin.H{"message": "Draft closed"})
}

// --- safety scores ---

type nearbyScoresRequest struct {
	Lat      float64 `json:"lat" binding:"required"`
	Lon      float64 `json:"lon" binding:"required"`
	RadiusKm float64 `json:"radiusKm"`
}

func (h *DashboardHandler) RequestNearbyScores(c *gin.Context) {
	var req nearbyScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RadiusKm <= 0 {
		req.RadiusKm = 10
	}
	h.router.RequestNearbySafetyScores(req.Lat, req.Lon, req.RadiusKm)
	c.JSON(http.StatusAccepted, gin.H{"message": "Nearby scores requested"})
}

// --- videos ---

type videoQueryRequest struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	UserID  string `json:"userId"`
	AlertID string `json:"alertId"`
}

func (h *DashboardHandler) QueryVideos(c *gin.Context) {
	var req videoQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch {
	case req.UserID != "":
		h.router.RequestVideosByUser(req.UserID)
	case req.AlertID != "":
		h.router.RequestVideosByAlert(req.AlertID)
	default:
		if req.Page <= 0 {
			req.Page = 1
		}
		if req.Limit <= 0 {
			req.Limit = 12
		}
		h.router.RequestVideos(req.Page, req.Limit)
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Videos requested"})
}

type deleteVideoRequest struct {
	Confirm bool `json:"confirm"`
}

// DeleteVideo is destructive and requires explicit confirmation in the
// request body.
func (h *DashboardHandler) DeleteVideo(c *gin.Context) {
	var req deleteVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deletion requires confirmation"})
		return
	}
	h.router.DeleteVideo(c.Param("id"))
	c.JSON(http.StatusAccepted, gin.H{"message": "Video deletion requested"})
}

type bulkDeleteRequest struct {
	VideoIDs []string `json:"videoIds"`
	Confirm  bool     `json:"confirm"`
}

func (h *DashboardHandler) BulkDeleteVideos(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deletion requires confirmation"})
		return
	}
	if len(req.VideoIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No video ids given"})
		return
	}
	h.router.BulkDeleteVideos(req.VideoIDs)
	c.JSON(http.StatusAccepted, gin.H{"message": "Bulk deletion requested", "count": len(req.VideoIDs)})
}

// --- camera ---

// ResetView flies the camera back to the configured home view.
func (h *DashboardHandler) ResetView(c *gin.Context) {
	pitch := h.cfg.Map.Pitch
	h.engine.FlyTo(mapengine.CameraMove{
		Center:     models.LngLat{Lng: h.cfg.Map.CenterLng, Lat: h.cfg.Map.CenterLat},
		Zoom:       h.cfg.Map.Zoom,
		Pitch:      &pitch,
		DurationMs: 2000,
	})
	c.JSON(http.StatusOK, gin.H{"message": "View reset"})
}

// --- formatting, used by thin clients that render plain text ---

func (h *DashboardHandler) FormatAlertTimes(c *gin.Context) {
	now := time.Now()
	alerts := h.store.Alerts()
	out := make([]gin.H, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, gin.H{
			"id":           a.ID,
			"type":         a.Type,
			"priority":     a.Priority,
			"relativeTime": view.RelativeTime(a.Timestamp, now),
		})
	}
	c.JSON(http.StatusOK, out)
}
