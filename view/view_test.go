package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"yatra-suraksha/dashboard/models"
)

func TestCountAlertsGroupsByDisplayPriority(t *testing.T) {
	alerts := []models.Alert{
		{ID: "a1", Type: models.AlertTypeSOS}, // no priority field, still critical
		{ID: "a2", Type: "generic", Priority: models.PriorityCritical},
		{ID: "a3", Type: models.AlertTypeLowBattery},
		{ID: "a4", Type: "generic", Priority: models.PriorityWarning},
		{ID: "a5", Type: models.AlertTypeLocationStopped, Priority: models.PriorityInfo},
	}

	counts := CountAlerts(alerts)
	assert.Equal(t, 2, counts.Critical)
	assert.Equal(t, 2, counts.Warning)
	assert.Equal(t, 5, counts.Total)
}

func TestRelativeTimeBuckets(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{15 * time.Second, "15s ago"},
		{59 * time.Second, "59s ago"},
		{90 * time.Second, "1m ago"},
		{45 * time.Minute, "45m ago"},
		{5 * time.Hour, "5h ago"},
		{30 * time.Hour, "1d ago"},
		{9 * 24 * time.Hour, "9d ago"},
	}

	for _, tc := range cases {
		ts := now.Add(-tc.ago).Format(time.RFC3339)
		assert.Equal(t, tc.want, RelativeTime(ts, now), "ago=%s", tc.ago)
	}
}

func TestRelativeTimeUnparseablePassesThrough(t *testing.T) {
	assert.Equal(t, "yesterday-ish", RelativeTime("yesterday-ish", time.Now()))
}

func TestRelativeTimeFutureClampsToZero(t *testing.T) {
	now := time.Now()
	ts := now.Add(10 * time.Second).Format(time.RFC3339)
	assert.Equal(t, "0s ago", RelativeTime(ts, now))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "2.00 MB", FormatFileSize(2*1024*1024))
	assert.Equal(t, "1.25 GB", FormatFileSize(1024*1024*1024+256*1024*1024))
}

func TestVideoSizePrefersMBField(t *testing.T) {
	assert.Equal(t, "4.20 MB", VideoSize(&models.Video{FileSizeMB: 4.2, FileSize: 999}))
	assert.Equal(t, "999 B", VideoSize(&models.Video{FileSize: 999}))
	assert.Equal(t, "", VideoSize(&models.Video{}))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:05", FormatDuration(5))
	assert.Equal(t, "1:30", FormatDuration(90))
	assert.Equal(t, "12:00", FormatDuration(720))
	assert.Equal(t, "0:00", FormatDuration(-3))
}
