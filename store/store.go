// Package store owns the dashboard's in-memory entity collections: users,
// alerts, geofences, safety scores, and videos. All mutation goes through
// typed operations; reads hand out copies so callers never alias internal
// state.
package store

import (
	"sync"
	"time"

	"yatra-suraksha/dashboard/models"
)

// Scope names the collection a change notification refers to.
type Scope string

const (
	ScopeUsers     Scope = "users"
	ScopeAlerts    Scope = "alerts"
	ScopeGeofences Scope = "geofences"
	ScopeScores    Scope = "scores"
	ScopeVideos    Scope = "videos"
	ScopeRoute     Scope = "route"
	ScopeDraft     Scope = "draft"
	ScopeCamera    Scope = "camera"
)

type EntityStore struct {
	mu sync.RWMutex

	users     map[string]*models.User
	alerts    []models.Alert
	geofences []models.Geofence
	scores    []models.SafetyScore

	videos          []models.Video
	videoPagination models.VideoPagination
	videoStats      models.VideoStats
	videoFilter     *models.VideoFilterContext

	geofenceStats models.GeofenceStats
	safetyStats   models.SafetyStats

	history     []models.TrackPoint
	historyUser string

	camera models.CameraState

	selectedUserID     string
	selectedAlertID    string
	selectedGeofenceID string

	draft         *models.GeofenceDraft
	showGeofences bool

	listeners []func(Scope)
}

func New() *EntityStore {
	return &EntityStore{
		users:         make(map[string]*models.User),
		showGeofences: true,
	}
}

// OnChange registers a listener invoked after every mutation with the scope
// that changed. Listeners run outside the store lock.
func (s *EntityStore) OnChange(fn func(Scope)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *EntityStore) notify(scope Scope) {
	s.mu.RLock()
	listeners := make([]func(Scope), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(scope)
	}
}

// ---------- Users ----------

// UpsertUser applies a shallow merge: only fields present on the patch
// overwrite the stored record. A user is created on its first patch; then
// isOnline defaults to true unless the patch says otherwise.
func (s *EntityStore) UpsertUser(patch models.UserPatch) models.User {
	s.mu.Lock()
	user, ok := s.users[patch.UserID]
	if !ok {
		user = &models.User{UserID: patch.UserID, IsOnline: true}
		s.users[patch.UserID] = user
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Latitude != nil {
		user.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		user.Longitude = patch.Longitude
	}
	if patch.IsOnline != nil {
		user.IsOnline = *patch.IsOnline
	}
	if patch.ProfilePicture != nil {
		user.ProfilePicture = *patch.ProfilePicture
	}
	if patch.Battery != nil {
		user.Battery = patch.Battery
	}
	if patch.Accuracy != nil {
		user.Accuracy = patch.Accuracy
	}
	if patch.Speed != nil {
		user.Speed = patch.Speed
	}
	if patch.Heading != nil {
		user.Heading = patch.Heading
	}
	if patch.Altitude != nil {
		user.Altitude = patch.Altitude
	}
	if patch.IsEmergency != nil {
		user.IsEmergency = *patch.IsEmergency
	}
	if patch.LowBattery != nil {
		user.LowBattery = *patch.LowBattery
	}
	if patch.SOSMessage != nil {
		user.SOSMessage = *patch.SOSMessage
	}
	if patch.StoppedAt != nil {
		user.StoppedAt = *patch.StoppedAt
	}
	if patch.Timestamp != nil {
		if ts, err := time.Parse(time.RFC3339, *patch.Timestamp); err == nil {
			user.LastUpdated = ts
		} else {
			user.LastUpdated = time.Now()
		}
	} else {
		user.LastUpdated = time.Now()
	}
	updated := *user
	s.mu.Unlock()

	s.notify(ScopeUsers)
	return updated
}

// SetUserOnline patches just the online flag.
func (s *EntityStore) SetUserOnline(userID string, online bool) {
	s.mu.Lock()
	user, ok := s.users[userID]
	if !ok {
		user = &models.User{UserID: userID}
		s.users[userID] = user
	}
	user.IsOnline = online
	s.mu.Unlock()
	s.notify(ScopeUsers)
}

// RemoveUser is an explicit cleanup path: the server feed does not normally
// delete users.
func (s *EntityStore) RemoveUser(userID string) {
	s.mu.Lock()
	delete(s.users, userID)
	if s.selectedUserID == userID {
		s.selectedUserID = ""
		s.history = nil
		s.historyUser = ""
	}
	s.mu.Unlock()
	s.notify(ScopeUsers)
}

// User returns a copy of one user record.
func (s *EntityStore) User(userID string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		return *u, true
	}
	return models.User{}, false
}

// Users returns a copy of the full roster.
func (s *EntityStore) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out
}

// ---------- Alerts ----------

// InsertAlert prepends the alert unless one with the same id is already
// present.
func (s *EntityStore) InsertAlert(alert models.Alert) bool {
	s.mu.Lock()
	for _, a := range s.alerts {
		if a.ID == alert.ID {
			s.mu.Unlock()
			return false
		}
	}
	s.alerts = append([]models.Alert{alert}, s.alerts...)
	s.mu.Unlock()
	s.notify(ScopeAlerts)
	return true
}

// ResolveAlert removes exactly the alert with the given id. Resolving an
// absent id is a no-op, so the operation is idempotent.
func (s *EntityStore) ResolveAlert(alertID string) bool {
	s.mu.Lock()
	removed := false
	kept := s.alerts[:0]
	for _, a := range s.alerts {
		if a.ID == alertID || a.AlertID == alertID {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	s.alerts = kept
	if s.selectedAlertID == alertID {
		s.selectedAlertID = ""
	}
	s.mu.Unlock()
	if removed {
		s.notify(ScopeAlerts)
	}
	return removed
}

// ReplaceAlerts swaps in a full snapshot.
func (s *EntityStore) ReplaceAlerts(alerts []models.Alert) {
	s.mu.Lock()
	s.alerts = append([]models.Alert(nil), alerts...)
	s.mu.Unlock()
	s.notify(ScopeAlerts)
}

func (s *EntityStore) Alerts() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Alert(nil), s.alerts...)
}

// ---------- Geofences ----------

func (s *EntityStore) ReplaceGeofences(geofences []models.Geofence) {
	s.mu.Lock()
	s.geofences = append([]models.Geofence(nil), geofences...)
	s.mu.Unlock()
	s.notify(ScopeGeofences)
}

// UpsertGeofence inserts or replaces one geofence by id. New fences go to
// the front, matching broadcast order on the original dashboard. A
// create/update broadcast also closes any open form.
func (s *EntityStore) UpsertGeofence(g models.Geofence) {
	s.mu.Lock()
	s.upsertGeofenceLocked(g)
	s.draft = nil
	s.mu.Unlock()
	s.notify(ScopeGeofences)
}

// SetGeofence inserts or replaces one geofence without touching the open
// form. Detail responses can arrive while the operator is editing.
func (s *EntityStore) SetGeofence(g models.Geofence) {
	s.mu.Lock()
	s.upsertGeofenceLocked(g)
	s.mu.Unlock()
	s.notify(ScopeGeofences)
}

func (s *EntityStore) upsertGeofenceLocked(g models.Geofence) {
	for i := range s.geofences {
		if s.geofences[i].ID == g.ID {
			s.geofences[i] = g
			return
		}
	}
	s.geofences = append([]models.Geofence{g}, s.geofences...)
}

func (s *EntityStore) RemoveGeofence(geofenceID string) {
	s.mu.Lock()
	kept := s.geofences[:0]
	for _, g := range s.geofences {
		if g.ID != geofenceID {
			kept = append(kept, g)
		}
	}
	s.geofences = kept
	if s.selectedGeofenceID == geofenceID {
		s.selectedGeofenceID = ""
	}
	s.draft = nil
	s.mu.Unlock()
	s.notify(ScopeGeofences)
}

func (s *EntityStore) ToggleGeofence(geofenceID string, isActive bool) {
	s.mu.Lock()
	for i := range s.geofences {
		if s.geofences[i].ID == geofenceID {
			s.geofences[i].IsActive = isActive
			break
		}
	}
	s.mu.Unlock()
	s.notify(ScopeGeofences)
}

func (s *EntityStore) Geofences() []models.Geofence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Geofence(nil), s.geofences...)
}

// SetShowGeofences toggles geofence visibility on the map.
func (s *EntityStore) SetShowGeofences(show bool) {
	s.mu.Lock()
	s.showGeofences = show
	s.mu.Unlock()
	s.notify(ScopeGeofences)
}

func (s *EntityStore) ShowGeofences() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showGeofences
}

// ---------- Safety scores ----------

func (s *EntityStore) ReplaceSafetyScores(scores []models.SafetyScore) {
	s.mu.Lock()
	s.scores = append([]models.SafetyScore(nil), scores...)
	s.mu.Unlock()
	s.notify(ScopeScores)
}

func (s *EntityStore) SafetyScores() []models.SafetyScore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SafetyScore(nil), s.scores...)
}

// ---------- Videos ----------

// ReplaceVideos swaps the working list and pagination metadata.
func (s *EntityStore) ReplaceVideos(videos []models.Video, pagination *models.VideoPagination, filter *models.VideoFilterContext) {
	s.mu.Lock()
	s.videos = append([]models.Video(nil), videos...)
	if pagination != nil {
		s.videoPagination = *pagination
	}
	s.videoFilter = filter
	s.mu.Unlock()
	s.notify(ScopeVideos)
}

// UpsertVideo replaces a listed video in place, or prepends an unseen one.
func (s *EntityStore) UpsertVideo(video models.Video) {
	s.mu.Lock()
	replaced := false
	for i, v := range s.videos {
		if v.ID == video.ID {
			s.videos[i] = video
			replaced = true
			break
		}
	}
	if !replaced {
		s.videos = append([]models.Video{video}, s.videos...)
	}
	s.mu.Unlock()
	s.notify(ScopeVideos)
}

func (s *EntityStore) RemoveVideo(videoID string) {
	s.RemoveVideos([]string{videoID})
}

// RemoveVideos filters the working list by id membership.
func (s *EntityStore) RemoveVideos(videoIDs []string) {
	ids := make(map[string]struct{}, len(videoIDs))
	for _, id := range videoIDs {
		ids[id] = struct{}{}
	}
	s.mu.Lock()
	kept := s.videos[:0]
	for _, v := range s.videos {
		if _, gone := ids[v.ID]; !gone {
			kept = append(kept, v)
		}
	}
	s.videos = kept
	s.mu.Unlock()
	s.notify(ScopeVideos)
}

func (s *EntityStore) Videos() ([]models.Video, models.VideoPagination) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Video(nil), s.videos...), s.videoPagination
}

func (s *EntityStore) VideoFilter() *models.VideoFilterContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.videoFilter
}

// ---------- Stats ----------

func (s *EntityStore) SetGeofenceStats(stats models.GeofenceStats) {
	s.mu.Lock()
	s.geofenceStats = stats
	s.mu.Unlock()
	s.notify(ScopeGeofences)
}

func (s *EntityStore) SetSafetyStats(stats models.SafetyStats) {
	s.mu.Lock()
	s.safetyStats = stats
	s.mu.Unlock()
	s.notify(ScopeScores)
}

func (s *EntityStore) SetVideoStats(stats models.VideoStats) {
	s.mu.Lock()
	s.videoStats = stats
	s.mu.Unlock()
	s.notify(ScopeVideos)
}

func (s *EntityStore) Stats() (models.GeofenceStats, models.SafetyStats, models.VideoStats) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.geofenceStats, s.safetyStats, s.videoStats
}

// ---------- Location history / route ----------

// SetLocationHistory replaces the working history list for one user.
func (s *EntityStore) SetLocationHistory(userID string, points []models.TrackPoint) {
	s.mu.Lock()
	s.historyUser = userID
	s.history = append([]models.TrackPoint(nil), points...)
	s.mu.Unlock()
	s.notify(ScopeRoute)
}

func (s *EntityStore) LocationHistory() (string, []models.TrackPoint) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.historyUser, append([]models.TrackPoint(nil), s.history...)
}

// ---------- Camera ----------

// SetCameraState mirrors the engine's camera. Display-only.
func (s *EntityStore) SetCameraState(c models.CameraState) {
	s.mu.Lock()
	s.camera = c
	s.mu.Unlock()
	s.notify(ScopeCamera)
}

func (s *EntityStore) CameraState() models.CameraState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

// ---------- Selections and drafts ----------

func (s *EntityStore) SelectUser(userID string) {
	s.mu.Lock()
	s.selectedUserID = userID
	if userID == "" {
		s.history = nil
		s.historyUser = ""
	}
	s.mu.Unlock()
	s.notify(ScopeRoute)
}

func (s *EntityStore) SelectedUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedUserID == "" {
		return models.User{}, false
	}
	if u, ok := s.users[s.selectedUserID]; ok {
		return *u, true
	}
	return models.User{UserID: s.selectedUserID}, true
}

func (s *EntityStore) SelectAlert(alertID string) {
	s.mu.Lock()
	s.selectedAlertID = alertID
	s.mu.Unlock()
	s.notify(ScopeAlerts)
}

func (s *EntityStore) SelectGeofence(geofenceID string) {
	s.mu.Lock()
	s.selectedGeofenceID = geofenceID
	s.mu.Unlock()
	s.notify(ScopeGeofences)
}

func (s *EntityStore) SelectedAlertID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedAlertID
}

func (s *EntityStore) SelectedGeofenceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedGeofenceID
}

// SetDraft updates the geofence create/edit form state; nil closes the form.
func (s *EntityStore) SetDraft(draft *models.GeofenceDraft) {
	s.mu.Lock()
	s.draft = draft
	s.mu.Unlock()
	s.notify(ScopeDraft)
}

func (s *EntityStore) Draft() *models.GeofenceDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.draft == nil {
		return nil
	}
	d := *s.draft
	return &d
}
