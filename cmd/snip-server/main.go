package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sniplink/snip/pkg/snip/admin"
	"github.com/sniplink/snip/pkg/snip/auth"
	"github.com/sniplink/snip/pkg/snip/codegen"
	"github.com/sniplink/snip/pkg/snip/config"
	"github.com/sniplink/snip/pkg/snip/database"
	"github.com/sniplink/snip/pkg/snip/models"
	"github.com/sniplink/snip/pkg/snip/redirect"
	"github.com/sniplink/snip/pkg/snip/shorturls"
	"gorm.io/gorm"
)

// @title Snip API
// @version 1.0
// @description A URL shortener with per-user link management.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	// .env is a development convenience; absence is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Create default admin user if no admin exists
	if err := ensureAdminExists(db); err != nil {
		log.Fatalf("Failed to ensure admin user exists: %v", err)
	}

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	gen, err := codegen.NewBase62(models.ShortCodeLength)
	if err != nil {
		log.Fatalf("Failed to create code generator: %v", err)
	}
	svc := shorturls.NewService(db, gen, cfg.BaseURL)

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Auth routes (public)
	authHandler := auth.NewHandler(db, tm)
	authHandler.RegisterRoutes(r.Group("/auth"))

	urlsHandler := shorturls.NewHandler(svc)

	// Shortening accepts anonymous callers; a valid token attributes the
	// mapping to its owner
	r.POST("/shorten", auth.OptionalAuthMiddleware(tm), urlsHandler.Shorten)

	// Owner-scoped routes (auth required)
	urlsHandler.RegisterRoutes(r.Group("", auth.AuthMiddleware(tm)))

	// Admin routes (auth + admin role required)
	adminHandler := admin.NewHandler(db)
	adminGroup := r.Group("/admin")
	adminGroup.Use(auth.AuthMiddleware(tm), auth.RequireAdmin())
	adminHandler.RegisterRoutes(adminGroup)

	// Redirect routes (public, must be registered LAST to avoid conflicts)
	redirectHandler := redirect.NewHandler(svc)
	redirectHandler.RegisterRoutes(r)

	log.Printf("Starting snip server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminExists creates a default admin user if no admin exists in the
// database.
func ensureAdminExists(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("system_role = ?", models.SystemRoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := auth.HashPassword("changeme")
	if err != nil {
		return err
	}

	adminUser := models.User{
		Email:        "admin@snip.local",
		PasswordHash: hashedPassword,
		SystemRole:   models.SystemRoleAdmin,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Printf("Created default admin user: admin@snip.local (password: changeme)")
	return nil
}
