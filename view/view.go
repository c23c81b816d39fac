// Package view holds pure display projections: derived counts and
// formatting helpers recomputed from current state, never stored.
package view

import (
	"fmt"
	"time"

	"yatra-suraksha/dashboard/models"
)

type AlertCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Total    int `json:"total"`
}

// CountAlerts groups the alert list by display priority. SOS alerts count
// as critical and low-battery as warning regardless of their priority
// field.
func CountAlerts(alerts []models.Alert) AlertCounts {
	counts := AlertCounts{Total: len(alerts)}
	for _, a := range alerts {
		switch {
		case a.Priority == models.PriorityCritical || a.Type == models.AlertTypeSOS:
			counts.Critical++
		case a.Priority == models.PriorityWarning || a.Type == models.AlertTypeLowBattery:
			counts.Warning++
		}
	}
	return counts
}

// RelativeTime renders a timestamp as a coarse "ago" string. Unparseable
// timestamps come back verbatim.
func RelativeTime(timestamp string, now time.Time) string {
	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	diff := now.Sub(ts)
	if diff < 0 {
		diff = 0
	}
	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

// FormatFileSize renders a byte count for display.
func FormatFileSize(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case bytes < kb:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	case bytes < gb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	default:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	}
}

// VideoSize prefers the precomputed MB figure and falls back to raw bytes.
func VideoSize(v *models.Video) string {
	if v.FileSizeMB > 0 {
		return fmt.Sprintf("%.2f MB", v.FileSizeMB)
	}
	if v.FileSize > 0 {
		return FormatFileSize(v.FileSize)
	}
	return ""
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
