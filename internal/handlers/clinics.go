package handlers

import (
	"strconv"

	"vetclinic-app-server/internal/middleware"
	"vetclinic-app-server/internal/models"
	"vetclinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ClinicHandler handles clinic and service requests.
type ClinicHandler struct {
	DB *gorm.DB
}

// NewClinicHandler creates a new ClinicHandler.
func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{DB: db}
}

// CreateClinicRequest represents the request body for creating a clinic (admin).
type CreateClinicRequest struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address" binding:"required"`
	City         string `json:"city" binding:"required"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email" binding:"omitempty,email"`
	OpeningHours string `json:"openingHours"`
}

// CreateClinic creates a new clinic (admin only, enforced in routing).
func (h *ClinicHandler) CreateClinic(c *gin.Context) {
	var req CreateClinicRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	clinic := models.Clinic{
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		OpeningHours: req.OpeningHours,
	}
	if err := h.DB.Create(&clinic).Error; err != nil {
		utils.InternalServerError(c, "Failed to create clinic: "+err.Error())
		return
	}

	utils.Created(c, "Clinic created successfully", clinic)
}

// GetClinics lists all clinics, optionally filtered by city.
func (h *ClinicHandler) GetClinics(c *gin.Context) {
	query := h.DB.Order("name asc")
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var clinics []models.Clinic
	if err := query.Find(&clinics).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch clinics: "+err.Error())
		return
	}

	utils.Success(c, "Clinics fetched successfully", clinics)
}

// GetClinicByID fetches a clinic with its services.
func (h *ClinicHandler) GetClinicByID(c *gin.Context) {
	clinicID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid Clinic ID format")
		return
	}

	var clinic models.Clinic
	if err := h.DB.Preload("Services", "is_active = ?", true).First(&clinic, uint(clinicID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Clinic not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Clinic fetched successfully", clinic)
}

// UpdateClinicRequest represents the request body for updating clinic data.
type UpdateClinicRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	City         string `json:"city"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email" binding:"omitempty,email"`
	OpeningHours string `json:"openingHours"`
}

// UpdateClinic updates clinic data. Veterinarians may only update the clinic
// they belong to; admins may update any.
func (h *ClinicHandler) UpdateClinic(c *gin.Context) {
	clinicID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid Clinic ID format")
		return
	}

	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RoleVeterinarian {
		vet, ok := currentVeterinarian(c, h.DB)
		if !ok {
			return
		}
		if vet.ClinicID != uint(clinicID) {
			utils.Forbidden(c, "You can only update your own clinic")
			return
		}
	}

	var req UpdateClinicRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var clinic models.Clinic
	if err := h.DB.First(&clinic, uint(clinicID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Clinic not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != "" {
		clinic.Name = req.Name
	}
	if req.Address != "" {
		clinic.Address = req.Address
	}
	if req.City != "" {
		clinic.City = req.City
	}
	if req.PhoneNumber != "" {
		clinic.PhoneNumber = req.PhoneNumber
	}
	if req.Email != "" {
		clinic.Email = req.Email
	}
	if req.OpeningHours != "" {
		clinic.OpeningHours = req.OpeningHours
	}

	if err := h.DB.Save(&clinic).Error; err != nil {
		utils.InternalServerError(c, "Failed to update clinic: "+err.Error())
		return
	}

	utils.Success(c, "Clinic updated successfully", clinic)
}

// CreateServiceRequest represents the request body for adding a clinic service.
type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DurationMinutes int     `json:"durationMinutes" binding:"omitempty,gt=0"`
}

// CreateService adds a service to a clinic. Veterinarians may only add to
// their own clinic; admins to any.
func (h *ClinicHandler) CreateService(c *gin.Context) {
	clinicID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid Clinic ID format")
		return
	}

	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RoleVeterinarian {
		vet, ok := currentVeterinarian(c, h.DB)
		if !ok {
			return
		}
		if vet.ClinicID != uint(clinicID) {
			utils.Forbidden(c, "You can only add services to your own clinic")
			return
		}
	}

	var req CreateServiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	service := models.Service{
		ClinicID:        uint(clinicID),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if service.DurationMinutes == 0 {
		service.DurationMinutes = 30
	}

	if err := h.DB.Create(&service).Error; err != nil {
		utils.InternalServerError(c, "Failed to create service: "+err.Error())
		return
	}

	utils.Created(c, "Service created successfully", service)
}

// GetClinicServices lists a clinic's active services.
func (h *ClinicHandler) GetClinicServices(c *gin.Context) {
	clinicID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid Clinic ID format")
		return
	}

	var services []models.Service
	if err := h.DB.Where("clinic_id = ? AND is_active = ?", uint(clinicID), true).
		Order("name asc").Find(&services).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch services: "+err.Error())
		return
	}

	utils.Success(c, "Services fetched successfully", services)
}
