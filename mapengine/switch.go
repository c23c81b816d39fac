package mapengine

import (
	"sync"

	"yatra-suraksha/dashboard/geo"
	"yatra-suraksha/dashboard/styles"
)

// Switch is an Engine that delegates to the currently attached map session.
// Browser sessions come and go; the rest of the process holds the Switch
// and never has to care. With no session attached every call is a no-op
// and Ready reports false.
type Switch struct {
	mu      sync.RWMutex
	current Engine
}

func NewSwitch() *Switch {
	return &Switch{}
}

// Attach points the switch at a new session. A replaced session is closed
// so its ticker and connection do not linger.
func (s *Switch) Attach(e Engine) {
	s.mu.Lock()
	prev := s.current
	s.current = e
	s.mu.Unlock()
	if prev != nil && prev != e {
		if c, ok := prev.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

// Detach clears the switch only if e is still the attached session. A stale
// session ending after it was already replaced must not take down the live
// one.
func (s *Switch) Detach(e Engine) {
	s.mu.Lock()
	if s.current == e {
		s.current = nil
	}
	s.mu.Unlock()
}

func (s *Switch) engine() Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Switch) Ready() bool {
	if e := s.engine(); e != nil {
		return e.Ready()
	}
	return false
}

func (s *Switch) AddSource(id string, src Source) {
	if e := s.engine(); e != nil {
		e.AddSource(id, src)
	}
}

func (s *Switch) RemoveSource(id string) {
	if e := s.engine(); e != nil {
		e.RemoveSource(id)
	}
}

func (s *Switch) AddLayer(layer styles.Layer) {
	if e := s.engine(); e != nil {
		e.AddLayer(layer)
	}
}

func (s *Switch) RemoveLayer(id string) {
	if e := s.engine(); e != nil {
		e.RemoveLayer(id)
	}
}

func (s *Switch) AddMarker(m Marker) {
	if e := s.engine(); e != nil {
		e.AddMarker(m)
	}
}

func (s *Switch) PatchMarker(id string, patch MarkerPatch) {
	if e := s.engine(); e != nil {
		e.PatchMarker(id, patch)
	}
}

func (s *Switch) RemoveMarker(id string) {
	if e := s.engine(); e != nil {
		e.RemoveMarker(id)
	}
}

func (s *Switch) FlyTo(move CameraMove) {
	if e := s.engine(); e != nil {
		e.FlyTo(move)
	}
}

func (s *Switch) FitBounds(b geo.Bounds, padding float64, durationMs int) {
	if e := s.engine(); e != nil {
		e.FitBounds(b, padding, durationMs)
	}
}

func (s *Switch) SetStyle(theme string) {
	if e := s.engine(); e != nil {
		e.SetStyle(theme)
	}
}

func (s *Switch) SetPaintProperty(layerID, property string, value any) {
	if e := s.engine(); e != nil {
		e.SetPaintProperty(layerID, property, value)
	}
}
