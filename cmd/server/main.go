package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"qr_dine_backend/internal/database"
	"qr_dine_backend/internal/realtime"
	"qr_dine_backend/internal/router"
	"qr_dine_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()
	utils.InitJWT(utils.Getenv("JWT_SECRET", "dev-only-secret-change-me"))

	database.InitDB(database.Config{
		Host:             utils.Getenv("DB_HOST", "localhost"),
		Port:             utils.Getenv("DB_PORT", "5432"),
		User:             utils.Getenv("DB_USER", "qr_dine_user"),
		Password:         utils.Getenv("DB_PASSWORD", "qr_dine_password"),
		Name:             utils.Getenv("DB_NAME", "qr_dine_db"),
		SSLMode:          utils.Getenv("DB_SSLMODE", "disable"),
		MaxOpenConns:     utils.GetenvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:     utils.GetenvInt("DB_MAX_IDLE_CONNS", 5),
		StatementTimeout: 30 * time.Second,
	})
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	hub := realtime.NewHub()
	go hub.Run()

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, database.GetDB(), hub, router.AdminCredentials{
		Username: utils.Getenv("ADMIN_USERNAME", "admin"),
		Password: utils.Getenv("ADMIN_PASSWORD", ""),
	})

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
