package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"yatra-suraksha/dashboard/config"
	"yatra-suraksha/dashboard/mapengine"
	"yatra-suraksha/dashboard/models"
	"yatra-suraksha/dashboard/reconcile"
	"yatra-suraksha/dashboard/router"
	"yatra-suraksha/dashboard/store"
	"yatra-suraksha/dashboard/styles"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		return true
	},
	EnableCompression: true,
}

// MapHandler owns the browser map session: it upgrades /ws connections,
// attaches each session to the engine switch, and holds the current theme.
// One session at a time; a new connection replaces the previous one.
type MapHandler struct {
	sw    *mapengine.Switch
	rec   *reconcile.Reconciler
	store *store.EntityStore
	rt    *router.Router
	cfg   *config.Config
	log   *zap.Logger

	mu    sync.RWMutex
	theme string
}

func NewMapHandler(sw *mapengine.Switch, rec *reconcile.Reconciler, st *store.EntityStore, rt *router.Router, cfg *config.Config, log *zap.Logger) *MapHandler {
	theme := cfg.Map.DefaultTheme
	if _, ok := styles.Get(theme); !ok {
		theme = "default"
	}
	return &MapHandler{
		sw:    sw,
		rec:   rec,
		store: st,
		rt:    rt,
		cfg:   cfg,
		log:   log,
		theme: theme,
	}
}

func (h *MapHandler) Theme() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.theme
}

// SetTheme swaps the live style. Overlays are re-derived once the browser
// reports the new style loaded.
func (h *MapHandler) SetTheme(key string) bool {
	if _, ok := styles.Get(key); !ok {
		return false
	}
	h.mu.Lock()
	h.theme = key
	h.mu.Unlock()
	h.sw.SetStyle(key)
	return true
}

func (h *MapHandler) ListThemes(c *gin.Context) {
	out := make([]gin.H, 0, len(styles.Themes))
	current := h.Theme()
	for _, key := range styles.ThemeOrder {
		t := styles.Themes[key]
		out = append(out, gin.H{
			"key":     t.Key,
			"name":    t.Name,
			"icon":    t.Icon,
			"preview": t.Preview,
			"active":  t.Key == current,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *MapHandler) GetThemeStyle(c *gin.Context) {
	t, ok := styles.Get(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown theme"})
		return
	}
	c.JSON(http.StatusOK, t.Style)
}

func (h *MapHandler) SwitchTheme(c *gin.Context) {
	key := c.Param("key")
	if !h.SetTheme(key) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": key})
}

// ServeWS upgrades the connection and runs the map session until it drops.
func (h *MapHandler) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("map session upgrade failed", zap.Error(err))
		return
	}

	remote := mapengine.NewRemote(conn, h.Theme(), h.log)
	remote.OnReady(h.rec.ResyncAll)
	remote.OnMove(h.store.SetCameraState)
	remote.OnMapClick(h.pickLocation)
	remote.OnMarkerClick(h.selectUser)

	h.sw.Attach(remote)
	h.log.Info("map session attached", zap.String("remote", conn.RemoteAddr().String()))

	// push the current style; everything else follows on map:ready
	remote.SetStyle(h.Theme())

	remote.Run()
	h.sw.Detach(remote)
	h.log.Info("map session detached")
}

// pickLocation fills the open geofence draft from a map click. Clicks with
// no draft open do nothing.
func (h *MapHandler) pickLocation(pt models.LngLat) {
	draft := h.store.Draft()
	if draft == nil {
		return
	}
	draft.Latitude = strconv.FormatFloat(pt.Lat, 'f', 6, 64)
	draft.Longitude = strconv.FormatFloat(pt.Lng, 'f', 6, 64)
	h.store.SetDraft(draft)
}

func (h *MapHandler) selectUser(userID string) {
	h.store.SelectUser(userID)
	h.rt.SubscribeUser(userID)
}
