package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Asnor14/rsvp01-admin/internal/config"
	"github.com/Asnor14/rsvp01-admin/internal/database"
	"github.com/Asnor14/rsvp01-admin/internal/handlers"
	"github.com/Asnor14/rsvp01-admin/internal/websocket"
)

const AppVersion = "1.0.0"

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	logger.Info().Str("version", AppVersion).Msg("RSVP admin server starting")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}

	hub := websocket.NewHub(logger)
	go hub.Run()

	h := handlers.New(db, cfg, hub, logger)

	router := setupRouter(h, cfg, logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info().Str("port", cfg.HTTPPort).Msg("HTTP server starting")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("failed to start HTTP server")
	}
}

func setupRouter(h *handlers.Handlers, cfg *config.Config, logger zerolog.Logger) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(zerologGinLogger(logger), gin.Recovery())

	// CORS middleware (for the dashboard and the public site)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.FrontendURI)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/login", h.Login)
		api.GET("/invite/:code", h.GetInvite)
		api.POST("/invite/:code/rsvp", h.SubmitRSVP)
		api.GET("/vapid-public-key", h.GetVAPIDPublicKey)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(h.AuthMiddleware())
	{
		protected.GET("/invitations", h.ListInvitations)
		protected.POST("/invitations", h.CreateInvitation)
		protected.PUT("/invitations/:id", h.UpdateInvitation)
		protected.DELETE("/invitations/:id", h.DeleteInvitation)
		protected.POST("/invitations/:id/status", h.ToggleInvitationStatus)
		protected.GET("/stats", h.GetDashboardStats)
		protected.GET("/export", h.ExportGuestList)
		protected.POST("/push/subscribe", h.SubscribePush)
		protected.DELETE("/push/subscribe", h.UnsubscribePush)
	}

	// WebSocket route (token checked in the handler)
	router.GET("/ws", h.HandleWebSocket)

	return router
}
