package models

import "time"

// LngLat is a geographic coordinate in [longitude, latitude] order, matching
// the order the map engine consumes.
type LngLat struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type User struct {
	UserID         string     `json:"userId"`
	Name           string     `json:"name,omitempty"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	IsOnline       bool       `json:"isOnline"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	Battery        *float64   `json:"battery,omitempty"`
	Accuracy       *float64   `json:"accuracy,omitempty"`
	Speed          *float64   `json:"speed,omitempty"`
	Heading        *float64   `json:"heading,omitempty"`
	Altitude       *float64   `json:"altitude,omitempty"`
	IsEmergency    bool       `json:"isEmergency,omitempty"`
	LowBattery     bool       `json:"lowBattery,omitempty"`
	SOSMessage     string     `json:"sosMessage,omitempty"`
	StoppedAt      string     `json:"stoppedAt,omitempty"`
	LastUpdated    time.Time  `json:"lastUpdated"`
}

// Located reports whether the user can be placed on the map.
func (u *User) Located() bool {
	return u.Latitude != nil && u.Longitude != nil
}

// UserPatch carries one inbound update for a user. Nil fields were absent
// from the payload and must not overwrite existing state.
type UserPatch struct {
	UserID         string
	Name           *string
	Email          *string
	Phone          *string
	Latitude       *float64
	Longitude      *float64
	IsOnline       *bool
	ProfilePicture *string
	Battery        *float64
	Accuracy       *float64
	Speed          *float64
	Heading        *float64
	Altitude       *float64
	IsEmergency    *bool
	LowBattery     *bool
	SOSMessage     *string
	StoppedAt      *string
	Timestamp      *string
}

// Location is an embedded coordinate snapshot carried by alerts.
type Location struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
}

// UserSnapshot is the embedded (not live-referenced) user carried by alerts
// and videos.
type UserSnapshot struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type Alert struct {
	ID         string        `json:"id"`
	AlertID    string        `json:"alertId,omitempty"`
	Type       string        `json:"type"`
	Priority   string        `json:"priority,omitempty"`
	User       *UserSnapshot `json:"user,omitempty"`
	UserID     string        `json:"userId,omitempty"`
	Location   *Location     `json:"location,omitempty"`
	Battery    *float64      `json:"battery,omitempty"`
	Message    string        `json:"message,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Status     string        `json:"status,omitempty"`
	Timestamp  string        `json:"timestamp,omitempty"`
	ReceivedAt time.Time     `json:"receivedAt"`
}

type Geofence struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Radius      float64  `json:"radius"`
	FenceType   string   `json:"fenceType"` // "safety" or "restricted"
	IsActive    bool     `json:"isActive"`
}

// Drawable reports whether the geofence has everything the map rendering
// needs: both coordinates and a positive radius.
func (g *Geofence) Drawable() bool {
	return g.Latitude != nil && g.Longitude != nil && g.Radius > 0
}

// GeofenceDraft is the create/edit form state mirrored for the map preview.
type GeofenceDraft struct {
	Mode        string `json:"mode"` // "create" or "edit"
	GeofenceID  string `json:"geofenceId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	Radius      int    `json:"radius"`
	FenceType   string `json:"fenceType"`
	IsActive    bool   `json:"isActive"`
}

type SafetyFactors struct {
	Weather string `json:"weather,omitempty"`
	Crowd   string `json:"crowd,omitempty"`
	Terrain string `json:"terrain,omitempty"`
}

type SafetyScore struct {
	ID           string         `json:"id,omitempty"`
	Latitude     *float64       `json:"latitude,omitempty"`
	Longitude    *float64       `json:"longitude,omitempty"`
	Score        float64        `json:"score"`
	LocationName string         `json:"locationName,omitempty"`
	Category     string         `json:"category,omitempty"`
	Factors      *SafetyFactors `json:"factors,omitempty"`
}

// Located reports whether the score record carries a usable coordinate.
func (s *SafetyScore) Located() bool {
	return s.Latitude != nil && s.Longitude != nil
}

type RelatedAlert struct {
	ID       string `json:"id"`
	Type     string `json:"type,omitempty"`
	Severity string `json:"severity,omitempty"`
	Status   string `json:"status,omitempty"`
}

type Video struct {
	ID           string        `json:"id"`
	VideoURL     string        `json:"videoURL,omitempty"`
	ThumbnailURL string        `json:"thumbnailURL,omitempty"`
	Duration     float64       `json:"duration,omitempty"` // seconds
	FileSizeMB   float64       `json:"fileSizeMB,omitempty"`
	FileSize     int64         `json:"fileSize,omitempty"` // bytes
	CreatedAt    string        `json:"createdAt,omitempty"`
	User         *UserSnapshot `json:"user,omitempty"`
	RelatedAlert *RelatedAlert `json:"relatedAlert,omitempty"`
}

type VideoPagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// VideoFilterContext records which user or alert the working video list was
// filtered by, if any.
type VideoFilterContext struct {
	Type  string        `json:"type"` // "user" or "alert"
	User  *UserSnapshot `json:"user,omitempty"`
	Alert *RelatedAlert `json:"alert,omitempty"`
	Count int           `json:"count,omitempty"`
}

// TrackPoint is one entry of a user's location history.
type TrackPoint struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

// CameraState mirrors the rendering engine's live camera. Derived,
// display-only: the engine owns the authoritative values.
type CameraState struct {
	Zoom    float64 `json:"zoom"`
	Center  LngLat  `json:"center"`
	Pitch   float64 `json:"pitch"`
	Bearing float64 `json:"bearing"`
}

// Opaque stats payloads rendered as-is.
type GeofenceStats map[string]any
type SafetyStats map[string]any
type VideoStats map[string]any
