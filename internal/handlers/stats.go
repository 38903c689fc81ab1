package handlers

import (
	"time"

	"vetclinic-app-server/internal/booking"
	"vetclinic-app-server/internal/models"
	"vetclinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler serves the dashboard aggregate counters. Every request
// recomputes from the source tables; nothing here is cached or patched
// incrementally, so the numbers always reflect the latest writes.
type StatsHandler struct {
	DB *gorm.DB
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

// OwnerStats is the pet-owner dashboard summary.
type OwnerStats struct {
	TotalPets             int64   `json:"totalPets"`
	UpcomingAppointments  int64   `json:"upcomingAppointments"`
	CompletedAppointments int64   `json:"completedAppointments"`
	TotalSpent            float64 `json:"totalSpent"`
	LastVisitDate         string  `json:"lastVisitDate,omitempty"`
}

// GetOwnerStats recomputes the owner dashboard counters.
func (h *StatsHandler) GetOwnerStats(c *gin.Context) {
	owner, ok := currentOwnerProfile(c, h.DB)
	if !ok {
		return
	}

	var stats OwnerStats
	today := time.Now().Format("2006-01-02")

	if err := h.DB.Model(&models.Pet{}).
		Where("pet_owner_id = ? AND is_active = ?", owner.ID, true).
		Count(&stats.TotalPets).Error; err != nil {
		utils.InternalServerError(c, "Failed to count pets: "+err.Error())
		return
	}

	if err := h.DB.Model(&models.Appointment{}).
		Where("pet_owner_id = ? AND appointment_date >= ? AND status IN ?", owner.ID, today, booking.ActiveStatuses).
		Count(&stats.UpcomingAppointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to count upcoming appointments: "+err.Error())
		return
	}

	if err := h.DB.Model(&models.Appointment{}).
		Where("pet_owner_id = ? AND status = ?", owner.ID, models.StatusCompleted).
		Count(&stats.CompletedAppointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to count completed appointments: "+err.Error())
		return
	}

	if err := h.DB.Model(&models.Appointment{}).
		Where("pet_owner_id = ? AND status = ?", owner.ID, models.StatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalSpent).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute total spent: "+err.Error())
		return
	}

	var lastVisit models.Appointment
	err := h.DB.
		Where("pet_owner_id = ? AND status = ?", owner.ID, models.StatusCompleted).
		Order("appointment_date desc, appointment_time desc").
		First(&lastVisit).Error
	if err == nil {
		stats.LastVisitDate = lastVisit.AppointmentDate
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Failed to find last visit: "+err.Error())
		return
	}

	utils.Success(c, "Owner statistics computed", stats)
}

// VetStats is the veterinarian dashboard summary.
type VetStats struct {
	TotalAppointments int64   `json:"totalAppointments"`
	PendingRequests   int64   `json:"pendingRequests"`
	CompletedToday    int64   `json:"completedToday"`
	AverageRating     float64 `json:"averageRating"`
	ReviewCount       int64   `json:"reviewCount"`
}

// GetVetStats recomputes the veterinarian dashboard counters.
func (h *StatsHandler) GetVetStats(c *gin.Context) {
	vet, ok := currentVeterinarian(c, h.DB)
	if !ok {
		return
	}

	var stats VetStats
	today := time.Now().Format("2006-01-02")

	if err := h.DB.Model(&models.Appointment{}).
		Where("veterinarian_id = ?", vet.ID).
		Count(&stats.TotalAppointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}

	if err := h.DB.Model(&models.Appointment{}).
		Where("veterinarian_id = ? AND status = ?", vet.ID, models.StatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		utils.InternalServerError(c, "Failed to count pending requests: "+err.Error())
		return
	}

	if err := h.DB.Model(&models.Appointment{}).
		Where("veterinarian_id = ? AND status = ? AND appointment_date = ?", vet.ID, models.StatusCompleted, today).
		Count(&stats.CompletedToday).Error; err != nil {
		utils.InternalServerError(c, "Failed to count completed today: "+err.Error())
		return
	}

	if err := h.DB.Model(&models.Review{}).
		Where("veterinarian_id = ?", vet.ID).
		Count(&stats.ReviewCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to count reviews: "+err.Error())
		return
	}
	if stats.ReviewCount > 0 {
		if err := h.DB.Model(&models.Review{}).
			Where("veterinarian_id = ?", vet.ID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&stats.AverageRating).Error; err != nil {
			utils.InternalServerError(c, "Failed to compute average rating: "+err.Error())
			return
		}
	}

	utils.Success(c, "Veterinarian statistics computed", stats)
}
