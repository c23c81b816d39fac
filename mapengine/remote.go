package mapengine

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"yatra-suraksha/dashboard/geo"
	"yatra-suraksha/dashboard/models"
	"yatra-suraksha/dashboard/styles"
)

// Remote drives a browser map surface over a websocket: every Engine call
// becomes a JSON command frame the browser executes against its MapLibre
// instance. The browser reports readiness, camera moves, and clicks back as
// event frames.
//
// Until the browser signals map:ready, every command is a silent no-op; the
// caller re-runs a full overlay sync once readiness is reached.
type Remote struct {
	conn *websocket.Conn
	log  *zap.Logger

	writeMu sync.Mutex

	mu           sync.RWMutex
	ready        bool
	currentTheme string

	onReady       func()
	onMove        func(models.CameraState)
	onMapClick    func(models.LngLat)
	onMarkerClick func(markerID string)

	waterStop chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

type command struct {
	Cmd      string  `json:"cmd"`
	ID       string  `json:"id,omitempty"`
	Source   any     `json:"source,omitempty"`
	Layer    any     `json:"layer,omitempty"`
	Marker   any     `json:"marker,omitempty"`
	Patch    any     `json:"patch,omitempty"`
	Move     any     `json:"move,omitempty"`
	Bounds   any     `json:"bounds,omitempty"`
	Padding  float64 `json:"padding,omitempty"`
	Duration int     `json:"duration,omitempty"`
	Theme    string  `json:"theme,omitempty"`
	Style    any     `json:"style,omitempty"`
	Property string  `json:"property,omitempty"`
	Value    any     `json:"value,omitempty"`
}

type browserEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func NewRemote(conn *websocket.Conn, initialTheme string, log *zap.Logger) *Remote {
	return &Remote{
		conn:         conn,
		log:          log,
		currentTheme: initialTheme,
		done:         make(chan struct{}),
	}
}

// OnReady registers the hook invoked whenever the browser reports the style
// finished loading (initial load and after every style swap).
func (r *Remote) OnReady(fn func()) { r.onReady = fn }

// OnMove registers the camera mirror hook.
func (r *Remote) OnMove(fn func(models.CameraState)) { r.onMove = fn }

// OnMapClick registers the location-picking hook.
func (r *Remote) OnMapClick(fn func(models.LngLat)) { r.onMapClick = fn }

// OnMarkerClick registers the marker selection hook.
func (r *Remote) OnMarkerClick(fn func(string)) { r.onMarkerClick = fn }

func (r *Remote) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}

// Run reads browser events until the connection drops. Call on its own
// goroutine; it returns when the session ends.
func (r *Remote) Run() {
	defer r.Close()
	for {
		var ev browserEvent
		if err := r.conn.ReadJSON(&ev); err != nil {
			r.log.Debug("map session read ended", zap.Error(err))
			return
		}
		r.handle(ev)
	}
}

func (r *Remote) handle(ev browserEvent) {
	switch ev.Event {
	case "map:ready":
		r.mu.Lock()
		r.ready = true
		theme := r.currentTheme
		r.mu.Unlock()
		r.log.Info("map surface ready", zap.String("theme", theme))
		r.startWaterAnimation()
		if r.onReady != nil {
			r.onReady()
		}
	case "map:move":
		var state models.CameraState
		if err := json.Unmarshal(ev.Data, &state); err != nil {
			return
		}
		if r.onMove != nil {
			r.onMove(state)
		}
	case "map:click":
		var pt models.LngLat
		if err := json.Unmarshal(ev.Data, &pt); err != nil {
			return
		}
		if r.onMapClick != nil {
			r.onMapClick(pt)
		}
	case "marker:click":
		var data struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			return
		}
		if r.onMarkerClick != nil {
			r.onMarkerClick(data.ID)
		}
	}
}

// send writes one command frame. Dropped silently while not ready, except
// for set-style which always goes through so the initial style can load.
func (r *Remote) send(c command) {
	if c.Cmd != "setStyle" && !r.Ready() {
		return
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if err := r.conn.WriteJSON(c); err != nil {
		r.log.Debug("map session write failed", zap.String("cmd", c.Cmd), zap.Error(err))
	}
}

func (r *Remote) AddSource(id string, src Source) {
	r.send(command{Cmd: "addSource", ID: id, Source: src})
}

func (r *Remote) RemoveSource(id string) {
	r.send(command{Cmd: "removeSource", ID: id})
}

func (r *Remote) AddLayer(layer styles.Layer) {
	r.send(command{Cmd: "addLayer", Layer: layer})
}

func (r *Remote) RemoveLayer(id string) {
	r.send(command{Cmd: "removeLayer", ID: id})
}

func (r *Remote) AddMarker(m Marker) {
	r.send(command{Cmd: "addMarker", Marker: m})
}

func (r *Remote) PatchMarker(id string, patch MarkerPatch) {
	r.send(command{Cmd: "patchMarker", ID: id, Patch: patch})
}

func (r *Remote) RemoveMarker(id string) {
	r.send(command{Cmd: "removeMarker", ID: id})
}

func (r *Remote) FlyTo(move CameraMove) {
	r.send(command{Cmd: "flyTo", Move: move})
}

func (r *Remote) FitBounds(b geo.Bounds, padding float64, durationMs int) {
	r.send(command{Cmd: "fitBounds", Bounds: b, Padding: padding, Duration: durationMs})
}

// SetStyle swaps the whole style document. The swap discards every source
// and layer on the browser side, so readiness drops until the browser
// reports map:ready again and the overlays are re-derived.
func (r *Remote) SetStyle(theme string) {
	t, ok := styles.Get(theme)
	if !ok {
		r.log.Warn("unknown map theme", zap.String("theme", theme))
		return
	}
	r.mu.Lock()
	r.ready = false
	r.currentTheme = theme
	r.mu.Unlock()
	r.stopWaterAnimation()
	r.send(command{Cmd: "setStyle", Theme: theme, Style: t.Style})
}

func (r *Remote) SetPaintProperty(layerID, property string, value any) {
	r.send(command{Cmd: "setPaint", ID: layerID, Property: property, Value: value})
}

// Close tears the session down: the water tick stops and no further
// commands are written.
func (r *Remote) Close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.ready = false
		r.mu.Unlock()
		r.stopWaterAnimation()
		close(r.done)
		r.conn.Close()
	})
}

// Done is closed when the session ends.
func (r *Remote) Done() <-chan struct{} { return r.done }

// startWaterAnimation runs the ambient water repaint tick. Only the default
// theme carries the layered wave stack; for the rest the tick is skipped.
// The tick only writes paint properties, never entity overlays.
func (r *Remote) startWaterAnimation() {
	r.mu.Lock()
	if r.currentTheme != "default" || r.waterStop != nil {
		r.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	r.waterStop = stop
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				r.paintWater(time.Since(start).Seconds())
			}
		}
	}()
}

func (r *Remote) stopWaterAnimation() {
	r.mu.Lock()
	if r.waterStop != nil {
		close(r.waterStop)
		r.waterStop = nil
	}
	r.mu.Unlock()
}

func (r *Remote) paintWater(t float64) {
	base := rgb(
		100+math.Sin(t*0.5)*20,
		180+math.Sin(t*0.7+1)*25,
		220+math.Sin(t*0.6+2)*20,
	)
	wave1 := rgb(
		140+math.Sin(t*0.6+1)*30,
		200+math.Sin(t*0.8)*25,
		240+math.Sin(t*0.5+2)*15,
	)

	r.SetPaintProperty(styles.WaterLayerIDs.Base, "fill-color", base)
	r.SetPaintProperty(styles.WaterLayerIDs.Wave1, "fill-color", wave1)
	r.SetPaintProperty(styles.WaterLayerIDs.Wave1, "fill-opacity", 0.5+math.Sin(t*1.0)*0.3)
	r.SetPaintProperty(styles.WaterLayerIDs.Wave2, "fill-opacity", 0.4+math.Sin(t*0.8+1.5)*0.25)
	r.SetPaintProperty(styles.WaterLayerIDs.Highlight, "fill-opacity", 0.15+math.Sin(t*1.5+3)*0.15)
}

func rgb(r, g, b float64) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", int(r), int(g), int(b))
}
