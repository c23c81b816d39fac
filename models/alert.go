package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Alert type enumeration. Unrecognized inbound types are kept verbatim but
// classified as AlertTypeGeneric for icon/priority purposes.
const (
	AlertTypeSOS             = "sos"
	AlertTypeLowBattery      = "low-battery"
	AlertTypeLocationStopped = "location-stopped"
	AlertTypeGeofence        = "geofence"
	AlertTypeGeneric         = "generic"
)

const (
	PriorityCritical = "critical"
	PriorityWarning  = "warning"
	PriorityInfo     = "info"
)

// CanonicalAlertType folds the wire variants of each alert type onto one name.
func CanonicalAlertType(t string) string {
	switch t {
	case "sos":
		return AlertTypeSOS
	case "low-battery", "low_battery":
		return AlertTypeLowBattery
	case "location-stopped":
		return AlertTypeLocationStopped
	case "geofence", "enter_restricted_geofence":
		return AlertTypeGeofence
	default:
		return AlertTypeGeneric
	}
}

// DefaultPriority is the priority implied by an alert type when the payload
// carries none.
func DefaultPriority(alertType string) string {
	switch CanonicalAlertType(alertType) {
	case AlertTypeSOS:
		return PriorityCritical
	case AlertTypeLowBattery:
		return PriorityWarning
	case AlertTypeLocationStopped:
		return PriorityInfo
	case AlertTypeGeofence:
		return PriorityCritical
	default:
		return ""
	}
}

// NewAlertID synthesizes a client-side id for alerts that arrive without one.
// Time plus random: transient identity only, not collision-proof across
// independent admin sessions.
func NewAlertID(alertType string) string {
	return fmt.Sprintf("%s-%d-%s", alertType, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Normalize fills the alert's identity, priority, and receipt metadata.
func (a *Alert) Normalize(now time.Time) {
	if a.ID == "" {
		if a.AlertID != "" {
			a.ID = a.AlertID
		} else {
			a.ID = NewAlertID(a.Type)
		}
	}
	if a.Priority == "" {
		a.Priority = DefaultPriority(a.Type)
	}
	if a.Timestamp == "" {
		a.Timestamp = now.UTC().Format(time.RFC3339)
	}
	if a.ReceivedAt.IsZero() {
		a.ReceivedAt = now
	}
	if a.Status == "" {
		a.Status = "active"
	}
}
