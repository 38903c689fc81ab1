package routes

import (
	"vetclinic-app-server/internal/config"
	"vetclinic-app-server/internal/handlers"
	"vetclinic-app-server/internal/middleware"
	"vetclinic-app-server/internal/models"
	"vetclinic-app-server/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, images *storage.ImageStore) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	petHandler := handlers.NewPetHandler(db, images)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	statsHandler := handlers.NewStatsHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	diaryHandler := handlers.NewDiaryHandler(db, images)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User directory + admin management
		userRoutes := private.Group("/users")
		{
			// Veterinarian directory - accessible by all authenticated users
			userRoutes.GET("/veterinarians", userHandler.GetVeterinarians)

			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Pet routes (owner only)
		petRoutes := private.Group("/pets")
		petRoutes.Use(middleware.RoleAuthMiddleware(models.RolePetOwner))
		{
			petRoutes.POST("", petHandler.CreatePet)
			petRoutes.GET("", petHandler.GetPets)
			petRoutes.GET("/:id", petHandler.GetPetByID)
			petRoutes.PUT("/:id", petHandler.UpdatePet)
			petRoutes.DELETE("/:id", petHandler.DeletePet)
			petRoutes.POST("/:id/photo", petHandler.UploadPetPhoto)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Owners book; ownership and the daily cap are enforced in the handler
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePetOwner), appointmentHandler.CreateAppointment)

			// Advisory capacity indicator for the dashboard
			appointmentRoutes.GET("/capacity", middleware.RoleAuthMiddleware(models.RolePetOwner), appointmentHandler.GetDailyCapacity)

			// All authenticated users get their own appointments (role decides the filter)
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)

			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID) // Authorization inside handler

			// The privileged status transition endpoint (authorization inside handler)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
		}

		// Dashboard statistics
		statsRoutes := private.Group("/stats")
		{
			statsRoutes.GET("/owner", middleware.RoleAuthMiddleware(models.RolePetOwner), statsHandler.GetOwnerStats)
			statsRoutes.GET("/veterinarian", middleware.RoleAuthMiddleware(models.RoleVeterinarian), statsHandler.GetVetStats)
		}

		// Clinic routes
		clinicRoutes := private.Group("/clinics")
		{
			clinicRoutes.GET("", clinicHandler.GetClinics)
			clinicRoutes.GET("/:id", clinicHandler.GetClinicByID)
			clinicRoutes.GET("/:id/services", clinicHandler.GetClinicServices)
			clinicRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), clinicHandler.CreateClinic)
			clinicRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleVeterinarian, models.RoleAdmin), clinicHandler.UpdateClinic)
			clinicRoutes.POST("/:id/services", middleware.RoleAuthMiddleware(models.RoleVeterinarian, models.RoleAdmin), clinicHandler.CreateService)
		}

		// Review routes
		reviewRoutes := private.Group("/reviews")
		{
			reviewRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePetOwner), reviewHandler.CreateReview)
			reviewRoutes.GET("/veterinarian/:id", reviewHandler.GetReviewsForVet)
		}

		// Pet diary routes (owner only)
		diaryRoutes := private.Group("/diary")
		diaryRoutes.Use(middleware.RoleAuthMiddleware(models.RolePetOwner))
		{
			diaryRoutes.POST("", diaryHandler.CreateEntry)
			diaryRoutes.GET("/pet/:petId", diaryHandler.GetEntriesForPet)
			diaryRoutes.PUT("/:id", diaryHandler.UpdateEntry)
			diaryRoutes.DELETE("/:id", diaryHandler.DeleteEntry)
			diaryRoutes.POST("/:id/image", diaryHandler.UploadEntryImage)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
