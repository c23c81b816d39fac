package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yatra-suraksha/dashboard/config"
	"yatra-suraksha/dashboard/handlers"
	"yatra-suraksha/dashboard/logger"
	"yatra-suraksha/dashboard/mapengine"
	"yatra-suraksha/dashboard/middleware"
	"yatra-suraksha/dashboard/reconcile"
	"yatra-suraksha/dashboard/router"
	"yatra-suraksha/dashboard/store"
	"yatra-suraksha/dashboard/transport"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "safety-dashboard")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Entity state and the map engine boundary
	entityStore := store.New()
	engine := mapengine.NewSwitch()
	reconciler := reconcile.New(engine, entityStore, zlog)
	entityStore.OnChange(reconciler.Apply)

	// Upstream admin feed
	feed := transport.NewAdminSocket(cfg.Upstream, zlog)
	eventRouter := router.New(entityStore, engine, feed, zlog)
	eventRouter.Bind(feed)
	go feed.Run(ctx)

	// HTTP surface
	mapHandler := handlers.NewMapHandler(engine, reconciler, entityStore, eventRouter, cfg, zlog)
	dashHandler := handlers.NewDashboardHandler(entityStore, eventRouter, engine, feed, cfg)

	r := setupRouter(dashHandler, mapHandler, zlog)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown incomplete", zap.Error(err))
	}
}

func setupRouter(dash *handlers.DashboardHandler, maps *handlers.MapHandler, zlog *zap.Logger) *gin.Engine {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zlog))

	// CORS configuration
	// Allow all localhost origins for development
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if origin == "" {
				return true
			}
			return origin == "http://localhost:8080" ||
				origin == "http://localhost:5173" ||
				origin == "http://localhost:3000" ||
				origin == "http://127.0.0.1:8080" ||
				origin == "http://127.0.0.1:5173" ||
				origin == "http://127.0.0.1:3000"
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", dash.Health)

	// Browser map surface
	r.GET("/ws", maps.ServeWS)

	api := r.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.GET("", dash.GetUsers)
			users.POST("/:id/select", dash.SelectUser)
			users.POST("/:id/route", dash.ShowRoute)
			users.DELETE("/selection", dash.DeselectUser)
		}
		api.DELETE("/route", dash.ClearRoute)

		alerts := api.Group("/alerts")
		{
			alerts.GET("", dash.GetAlerts)
			alerts.GET("/relative-times", dash.FormatAlertTimes)
			alerts.POST("/:id/resolve", dash.ResolveAlert)
		}

		geofences := api.Group("/geofences")
		{
			geofences.GET("", dash.GetGeofences)
			geofences.POST("", dash.CreateGeofence)
			geofences.PUT("/:id", dash.UpdateGeofence)
			geofences.DELETE("/:id", dash.DeleteGeofence)
			geofences.POST("/:id/toggle", dash.ToggleGeofence)
		}
		api.POST("/geofence-visibility", dash.SetGeofenceVisibility)
		api.PUT("/geofence-draft", dash.SetDraft)
		api.DELETE("/geofence-draft", dash.ClearDraft)

		scores := api.Group("/safety-scores")
		{
			scores.GET("", dash.GetSafetyScores)
			scores.POST("/nearby", dash.RequestNearbyScores)
		}

		videos := api.Group("/videos")
		{
			videos.GET("", dash.GetVideos)
			videos.POST("/query", dash.QueryVideos)
			videos.DELETE("/:id", dash.DeleteVideo)
			videos.POST("/bulk-delete", dash.BulkDeleteVideos)
		}

		mapGroup := api.Group("/map")
		{
			mapGroup.GET("/camera", dash.GetCamera)
			mapGroup.POST("/reset-view", dash.ResetView)
			mapGroup.GET("/themes", maps.ListThemes)
			mapGroup.GET("/themes/:key", maps.GetThemeStyle)
			mapGroup.POST("/themes/:key", maps.SwitchTheme)
		}
	}

	return r
}
