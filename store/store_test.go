package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"yatra-suraksha/dashboard/models"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestUpsertUserShallowMerge(t *testing.T) {
	s := New()

	s.UpsertUser(models.UserPatch{
		UserID:    "u1",
		Name:      strPtr("Alice"),
		Latitude:  floatPtr(10),
		Longitude: floatPtr(20),
	})
	s.UpsertUser(models.UserPatch{
		UserID:  "u1",
		Battery: floatPtr(42),
	})

	u, ok := s.User("u1")
	require.True(t, ok)
	require.Equal(t, "Alice", u.Name)
	require.Equal(t, 10.0, *u.Latitude)
	require.Equal(t, 20.0, *u.Longitude)
	require.Equal(t, 42.0, *u.Battery)
	require.True(t, u.IsOnline, "isOnline defaults true")
}

func TestUpsertUserLaterFieldsOverride(t *testing.T) {
	s := New()

	s.UpsertUser(models.UserPatch{UserID: "u1", Name: strPtr("Old"), Battery: floatPtr(90)})
	s.UpsertUser(models.UserPatch{UserID: "u1", Name: strPtr("New")})

	u, _ := s.User("u1")
	require.Equal(t, "New", u.Name)
	require.Equal(t, 90.0, *u.Battery)
}

func TestUpsertUserOfflineFlag(t *testing.T) {
	s := New()
	s.UpsertUser(models.UserPatch{UserID: "u1", IsOnline: boolPtr(false)})
	u, _ := s.User("u1")
	require.False(t, u.IsOnline)

	s.SetUserOnline("u1", true)
	u, _ = s.User("u1")
	require.True(t, u.IsOnline)
}

func TestInsertAlertDeduplicatesByID(t *testing.T) {
	s := New()

	require.True(t, s.InsertAlert(models.Alert{ID: "a1", Type: "sos"}))
	require.False(t, s.InsertAlert(models.Alert{ID: "a1", Type: "sos"}))
	require.Len(t, s.Alerts(), 1)
}

func TestResolveAlertIdempotent(t *testing.T) {
	s := New()
	s.InsertAlert(models.Alert{ID: "a1", Type: "sos"})
	s.InsertAlert(models.Alert{ID: "a2", Type: "low-battery"})

	require.True(t, s.ResolveAlert("a1"))
	require.Len(t, s.Alerts(), 1)
	require.Equal(t, "a2", s.Alerts()[0].ID)

	// second resolve of the same id is a no-op
	require.False(t, s.ResolveAlert("a1"))
	require.Len(t, s.Alerts(), 1)
}

func TestResolveAlertMatchesServerAlertID(t *testing.T) {
	s := New()
	s.InsertAlert(models.Alert{ID: "local-1", AlertID: "srv-9"})

	require.True(t, s.ResolveAlert("srv-9"))
	require.Empty(t, s.Alerts())
}

func TestAlertsNewestFirst(t *testing.T) {
	s := New()
	s.InsertAlert(models.Alert{ID: "a1"})
	s.InsertAlert(models.Alert{ID: "a2"})

	alerts := s.Alerts()
	require.Equal(t, "a2", alerts[0].ID)
	require.Equal(t, "a1", alerts[1].ID)
}

func TestGeofenceLifecycle(t *testing.T) {
	s := New()
	s.ReplaceGeofences([]models.Geofence{
		{ID: "g1", Name: "Zone A", Radius: 500, IsActive: true},
	})
	s.SetDraft(&models.GeofenceDraft{Mode: "create"})

	// a broadcast upsert replaces by id and closes the open form
	s.UpsertGeofence(models.Geofence{ID: "g1", Name: "Zone A2", Radius: 800, IsActive: true})
	require.Nil(t, s.Draft())
	fences := s.Geofences()
	require.Len(t, fences, 1)
	require.Equal(t, "Zone A2", fences[0].Name)

	s.UpsertGeofence(models.Geofence{ID: "g2", Name: "Zone B", Radius: 300})
	require.Equal(t, "g2", s.Geofences()[0].ID, "new fences prepend")

	s.ToggleGeofence("g2", true)
	require.True(t, s.Geofences()[0].IsActive)

	s.RemoveGeofence("g1")
	require.Len(t, s.Geofences(), 1)
}

func TestSetGeofenceLeavesDraftOpen(t *testing.T) {
	s := New()
	s.SetDraft(&models.GeofenceDraft{Mode: "edit", GeofenceID: "g1"})

	s.SetGeofence(models.Geofence{ID: "g1", Name: "Zone A", Radius: 500})
	require.NotNil(t, s.Draft())
	require.Len(t, s.Geofences(), 1)

	s.SetGeofence(models.Geofence{ID: "g1", Name: "Zone A+", Radius: 600})
	require.Len(t, s.Geofences(), 1)
	require.Equal(t, "Zone A+", s.Geofences()[0].Name)
}

func TestRemoveVideosByMembership(t *testing.T) {
	s := New()
	s.ReplaceVideos([]models.Video{{ID: "v1"}, {ID: "v2"}, {ID: "v3"}}, &models.VideoPagination{Page: 1, Limit: 10, Total: 3, Pages: 1}, nil)

	s.RemoveVideos([]string{"v1", "v3"})
	videos, pagination := s.Videos()
	require.Len(t, videos, 1)
	require.Equal(t, "v2", videos[0].ID)
	require.Equal(t, 1, pagination.Page)
}

func TestChangeNotificationScopes(t *testing.T) {
	s := New()
	var scopes []Scope
	s.OnChange(func(scope Scope) { scopes = append(scopes, scope) })

	s.UpsertUser(models.UserPatch{UserID: "u1"})
	s.InsertAlert(models.Alert{ID: "a1"})
	s.ReplaceSafetyScores(nil)

	require.Equal(t, []Scope{ScopeUsers, ScopeAlerts, ScopeScores}, scopes)
}

func TestSelectUserClearsHistoryOnClose(t *testing.T) {
	s := New()
	s.SelectUser("u1")
	s.SetLocationHistory("u1", []models.TrackPoint{{Latitude: 1, Longitude: 2}})

	s.SelectUser("")
	user, points := s.LocationHistory()
	require.Empty(t, user)
	require.Empty(t, points)
}

func TestUpsertUserTimestampParse(t *testing.T) {
	s := New()
	ts := "2026-01-02T03:04:05Z"
	s.UpsertUser(models.UserPatch{UserID: "u1", Timestamp: &ts})

	u, _ := s.User("u1")
	want, _ := time.Parse(time.RFC3339, ts)
	require.Equal(t, want, u.LastUpdated)
}
