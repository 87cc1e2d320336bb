package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/roksva123/go-clickup-bridge/internal/api/handlers"
	"github.com/roksva123/go-clickup-bridge/internal/config"
	"github.com/roksva123/go-clickup-bridge/internal/service"
)

func main() {

	// LOAD ENV
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed load config:", err)
	}

	// LOGGING
	if cfg.AppEnv == "production" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		gin.SetMode(gin.ReleaseMode)
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	}

	// SERVICES
	clickService := service.NewClickUpService(cfg.ClickUpToken, cfg.ClickUpWorkspaceID)
	dispatcher := service.NewDispatcher(clickService, cfg.ClickUpWorkspaceID)

	// HANDLERS
	interactionHandler, err := handlers.NewInteractionHandler(cfg.DiscordPublicKey, dispatcher)
	if err != nil {
		log.Fatal("failed init interaction handler:", err)
	}
	registerHandler := handlers.NewRegisterHandler(cfg.DiscordApplicationID, cfg.DiscordToken, service.Commands())

	// ROUTER
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// DISCORD ROUTES
	r.POST("/interactions", interactionHandler.Handle)
	r.POST("/register", registerHandler.Handle)

	// SERVICE INFO
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Discord ClickUp Bridge",
			"description": "A Discord bot that integrates with ClickUp",
			"endpoints": []gin.H{
				{"path": "/register", "description": "Register Discord commands"},
				{"path": "/interactions", "description": "Handle Discord interactions"},
			},
			"status": "online",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// START SERVER
	log.Println("Server running on port:", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server error:", err)
	}
}
