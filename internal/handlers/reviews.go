package handlers

import (
	"strconv"

	"vetclinic-app-server/internal/models"
	"vetclinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReviewHandler handles veterinarian review requests.
type ReviewHandler struct {
	DB *gorm.DB
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{DB: db}
}

// CreateReviewRequest represents the request body for reviewing a vet.
type CreateReviewRequest struct {
	AppointmentID uint   `json:"appointmentId" binding:"required"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment"`
}

// CreateReview lets an owner review the veterinarian of one of their own
// completed appointments. One review per appointment.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	owner, ok := currentOwnerProfile(c, h.DB)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, req.AppointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.PetOwnerID != owner.ID {
		utils.Forbidden(c, "You can only review your own appointments")
		return
	}
	if appointment.Status != models.StatusCompleted {
		utils.BadRequest(c, "Only completed appointments can be reviewed")
		return
	}

	var existing models.Review
	if err := h.DB.Where("appointment_id = ?", appointment.ID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "This appointment has already been reviewed")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	review := models.Review{
		PetOwnerID:     owner.ID,
		VeterinarianID: appointment.VeterinarianID,
		AppointmentID:  appointment.ID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		utils.InternalServerError(c, "Failed to create review: "+err.Error())
		return
	}

	utils.Created(c, "Review created successfully", review)
}

// GetReviewsForVet lists reviews for a veterinarian, newest first.
func (h *ReviewHandler) GetReviewsForVet(c *gin.Context) {
	vetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid Veterinarian ID format")
		return
	}

	var reviews []models.Review
	if err := h.DB.Preload("Owner.User").
		Where("veterinarian_id = ?", uint(vetID)).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch reviews: "+err.Error())
		return
	}

	utils.Success(c, "Reviews fetched successfully", reviews)
}
