package transport

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"yatra-suraksha/dashboard/config"
)

// frame is the named-event envelope carried on the admin feed.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Handler receives the raw payload of one inbound event.
type Handler func(data json.RawMessage)

// AdminSocket maintains the connection to the upstream admin event feed.
// Inbound events are dispatched on a single goroutine in arrival order, so
// handlers never race each other. Emits while disconnected are dropped
// silently; every successful connect re-runs the connect hook so state can
// be resynced from upstream snapshots.
type AdminSocket struct {
	url            string
	reconnectDelay time.Duration
	maxWait        time.Duration
	log            *zap.Logger

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool
	handlers  map[string]Handler
	onConnect func()

	writeMu sync.Mutex
}

func NewAdminSocket(cfg config.UpstreamConfig, log *zap.Logger) *AdminSocket {
	return &AdminSocket{
		url:            cfg.URL,
		reconnectDelay: cfg.ReconnectDelay,
		maxWait:        cfg.MaxReconnectWait,
		log:            log,
		handlers:       make(map[string]Handler),
	}
}

// On registers the handler for one event name. Register everything before
// calling Run.
func (s *AdminSocket) On(event string, h Handler) {
	s.mu.Lock()
	s.handlers[event] = h
	s.mu.Unlock()
}

// OnConnect registers the hook invoked after every successful connect,
// including reconnects.
func (s *AdminSocket) OnConnect(fn func()) {
	s.mu.Lock()
	s.onConnect = fn
	s.mu.Unlock()
}

func (s *AdminSocket) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Run connects and keeps reconnecting with backoff until ctx is cancelled.
// Blocks; run on its own goroutine.
func (s *AdminSocket) Run(ctx context.Context) {
	wait := s.reconnectDelay
	for {
		if ctx.Err() != nil {
			return
		}
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
		if err != nil {
			s.log.Warn("admin feed connect failed",
				zap.String("url", s.url),
				zap.Duration("retryIn", wait),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			wait *= 2
			if wait > s.maxWait {
				wait = s.maxWait
			}
			continue
		}
		wait = s.reconnectDelay

		s.mu.Lock()
		s.conn = conn
		s.connected = true
		hook := s.onConnect
		s.mu.Unlock()
		s.log.Info("admin feed connected", zap.String("url", s.url))
		if hook != nil {
			hook()
		}

		s.readLoop(ctx, conn)

		s.mu.Lock()
		s.connected = false
		s.conn = nil
		s.mu.Unlock()
		s.log.Warn("admin feed disconnected")
	}
}

// readLoop dispatches frames in arrival order until the connection drops.
func (s *AdminSocket) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			conn.Close()
			return
		}
		s.mu.RLock()
		h := s.handlers[f.Event]
		s.mu.RUnlock()
		if h == nil {
			s.log.Debug("unhandled admin event", zap.String("event", f.Event))
			continue
		}
		h(f.Data)
	}
}

// Emit sends one event frame upstream. While disconnected it drops the
// frame silently; snapshots are re-requested on reconnect anyway.
func (s *AdminSocket) Emit(event string, data any) {
	s.mu.RLock()
	conn, connected := s.conn, s.connected
	s.mu.RUnlock()
	if !connected || conn == nil {
		s.log.Debug("emit dropped while disconnected", zap.String("event", event))
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		s.log.Error("emit marshal failed", zap.String("event", event), zap.Error(err))
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := conn.WriteJSON(frame{Event: event, Data: payload}); err != nil {
		s.log.Warn("emit failed", zap.String("event", event), zap.Error(err))
	}
}
