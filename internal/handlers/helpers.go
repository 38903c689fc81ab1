package handlers

import (
	"vetclinic-app-server/internal/middleware"
	"vetclinic-app-server/internal/models"
	"vetclinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentOwnerProfile resolves the authenticated user's pet owner profile.
// Sends an error response and returns false when the caller is not a pet owner.
func currentOwnerProfile(c *gin.Context, db *gorm.DB) (*models.PetOwnerProfile, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var profile models.PetOwnerProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Forbidden(c, "No pet owner profile exists for this account")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &profile, true
}

// currentVeterinarian resolves the authenticated user's veterinarian record.
func currentVeterinarian(c *gin.Context, db *gorm.DB) (*models.Veterinarian, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var vet models.Veterinarian
	if err := db.Where("user_id = ?", userID).First(&vet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Forbidden(c, "No veterinarian profile exists for this account")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &vet, true
}
