package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"vetclinic-app-server/internal/config"
	"vetclinic-app-server/internal/jobs"
	"vetclinic-app-server/internal/models"
	"vetclinic-app-server/internal/routes"
	"vetclinic-app-server/internal/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	// Initialize image storage
	images, err := storage.NewImageStore(cfg.Cloudinary)
	if err != nil {
		log.Fatalf("Error initializing image storage: %v", err)
	}

	// Schedule the no-show sweep
	sweeper := jobs.NewNoShowSweeper(db, cfg.NoShowGraceHours)
	c := cron.New()
	if _, err := c.AddFunc(cfg.NoShowCronSpec, sweeper.Run); err != nil {
		log.Fatalf("Error scheduling no-show sweep: %v", err)
	}
	c.Start()

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, cfg, images)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Server running on port %s\n", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
