package handlers

import (
	"errors"
	"strconv"
	"time"

	"vetclinic-app-server/internal/booking"
	"vetclinic-app-server/internal/middleware"
	"vetclinic-app-server/internal/models"
	"vetclinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	PatientID       uint   `json:"patientId" binding:"required"`
	VeterinarianID  uint   `json:"veterinarianId" binding:"required"`
	ServiceID       uint   `json:"serviceId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointmentTime" binding:"required,datetime=15:04"`
	ReasonForVisit  string `json:"reasonForVisit" binding:"required"`
	Symptoms        string `json:"symptoms"`
	Notes           string `json:"notes"`
}

// CreateAppointment books a new appointment for the authenticated pet owner.
// The daily booking cap is re-checked here, in the same handler that performs
// the write, so the advisory capacity endpoint can never be the only guard.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	owner, ok := currentOwnerProfile(c, h.DB)
	if !ok {
		return
	}

	// The pet must belong to the booking owner and still be active.
	var pet models.Pet
	if err := h.DB.Where("id = ? AND pet_owner_id = ? AND is_active = ?", req.PatientID, owner.ID, true).First(&pet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Pet not found among your active pets")
		} else {
			utils.InternalServerError(c, "Database error verifying pet: "+err.Error())
		}
		return
	}

	var vet models.Veterinarian
	if err := h.DB.First(&vet, req.VeterinarianID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Veterinarian not found")
		} else {
			utils.InternalServerError(c, "Database error verifying veterinarian: "+err.Error())
		}
		return
	}

	var service models.Service
	if err := h.DB.Where("id = ? AND is_active = ?", req.ServiceID, true).First(&service).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Service not found or inactive")
		} else {
			utils.InternalServerError(c, "Database error verifying service: "+err.Error())
		}
		return
	}

	startsAt, err := time.ParseInLocation("2006-01-02 15:04", req.AppointmentDate+" "+req.AppointmentTime, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment date or time")
		return
	}
	if startsAt.Before(time.Now()) {
		utils.BadRequest(c, "Appointment date must be in the future.")
		return
	}

	// Authoritative capacity check. The count and the insert are not inside one
	// transaction; a concurrent booking can still race past the cap, matching
	// the backend's last-write-wins posture everywhere else.
	capacity, err := booking.CheckDailyCapacity(h.DB, owner.ID, req.AppointmentDate)
	if err != nil {
		utils.InternalServerError(c, "Failed to check daily booking limit: "+err.Error())
		return
	}
	if capacity.LimitReached {
		utils.Conflict(c, "Daily booking limit reached: you already have "+
			strconv.FormatInt(capacity.Count, 10)+" active appointments on "+req.AppointmentDate)
		return
	}

	appointment := models.Appointment{
		PetOwnerID:      owner.ID,
		PatientID:       pet.ID,
		VeterinarianID:  vet.ID,
		ClinicID:        vet.ClinicID,
		ServiceID:       service.ID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		ReasonForVisit:  req.ReasonForVisit,
		Symptoms:        req.Symptoms,
		Notes:           req.Notes,
		Status:          models.StatusPending,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in user
// (pet owner or veterinarian), with joined descriptive records, ordered by
// date and time.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	query := h.DB.
		Preload("Patient").
		Preload("Owner.User").
		Preload("Veterinarian.User").
		Preload("Clinic").
		Preload("Service").
		Order("appointment_date asc, appointment_time asc")

	switch userRole {
	case models.RolePetOwner:
		owner, ok := currentOwnerProfile(c, h.DB)
		if !ok {
			return
		}
		query = query.Where("pet_owner_id = ?", owner.ID)
	case models.RoleVeterinarian:
		vet, ok := currentVeterinarian(c, h.DB)
		if !ok {
			return
		}
		query = query.Where("veterinarian_id = ?", vet.ID)
	case models.RoleAdmin:
		// Admins see everything.
	default:
		utils.Forbidden(c, "User role not permitted to view appointments this way.")
		return
	}

	// Optional filters used by the dashboards.
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("appointment_date = ?", date)
	}

	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by the involved owner, the assigned veterinarian, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := h.DB.
		Preload("Patient").
		Preload("Owner.User").
		Preload("Veterinarian.User").
		Preload("Clinic").
		Preload("Service").
		First(&appointment, uint(appointmentID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	actor, ok := h.resolveActor(c)
	if !ok {
		return
	}

	involved := actor.Role == models.RoleAdmin ||
		(actor.Role == models.RolePetOwner && actor.ID == appointment.PetOwnerID) ||
		(actor.Role == models.RoleVeterinarian && actor.ID == appointment.VeterinarianID)
	if !involved {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentStatusRequest represents the request body for a status change.
// DeclineReason is consumed only on the veterinarian decline path.
type UpdateAppointmentStatusRequest struct {
	Status        models.AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed in_progress completed cancelled no_show"`
	DeclineReason string                   `json:"declineReason"`
	Notes         string                   `json:"notes"`
	TotalAmount   float64                  `json:"totalAmount"`
}

// UpdateAppointmentStatus is the privileged transition endpoint: it re-loads
// the row, validates the transition against the status machine and the
// ownership predicate, and writes nothing on failure.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, uint(appointmentID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	actor, ok := h.resolveActor(c)
	if !ok {
		return
	}

	if err := booking.Authorize(&appointment, actor, req.Status, req.DeclineReason); err != nil {
		switch {
		case errors.Is(err, booking.ErrPermissionDenied):
			utils.Forbidden(c, err.Error())
		case errors.Is(err, booking.ErrInvalidTransition):
			utils.Conflict(c, err.Error())
		case errors.Is(err, booking.ErrReasonRequired), errors.Is(err, booking.ErrUnknownStatus):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalServerError(c, err.Error())
		}
		return
	}

	appointment.Status = req.Status
	if req.Status == models.StatusCancelled && actor.Role == models.RoleVeterinarian {
		appointment.DeclineReason = req.DeclineReason
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}
	if req.Status == models.StatusCompleted {
		appointment.TotalAmount = req.TotalAmount
		if appointment.TotalAmount == 0 {
			// Settle at the listed service price when no amount was entered.
			var service models.Service
			if err := h.DB.First(&service, appointment.ServiceID).Error; err == nil {
				appointment.TotalAmount = service.Price
			}
		}
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// GetDailyCapacity reports the authenticated owner's active appointment count
// for a date and whether the booking cap is reached. Advisory for the UI; the
// write path re-checks independently.
func (h *AppointmentHandler) GetDailyCapacity(c *gin.Context) {
	owner, ok := currentOwnerProfile(c, h.DB)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	capacity, err := booking.CheckDailyCapacity(h.DB, owner.ID, date)
	if err != nil {
		utils.InternalServerError(c, "Failed to compute daily capacity: "+err.Error())
		return
	}

	utils.Success(c, "Daily capacity computed", capacity)
}

// resolveActor maps the authenticated user to a booking.Actor carrying the
// profile id matching their role.
func (h *AppointmentHandler) resolveActor(c *gin.Context) (booking.Actor, bool) {
	userRole, _ := middleware.GetUserRoleFromContext(c)

	switch userRole {
	case models.RolePetOwner:
		owner, ok := currentOwnerProfile(c, h.DB)
		if !ok {
			return booking.Actor{}, false
		}
		return booking.Actor{ID: owner.ID, Role: models.RolePetOwner}, true
	case models.RoleVeterinarian:
		vet, ok := currentVeterinarian(c, h.DB)
		if !ok {
			return booking.Actor{}, false
		}
		return booking.Actor{ID: vet.ID, Role: models.RoleVeterinarian}, true
	case models.RoleAdmin:
		userID, _ := middleware.GetUserIDFromContext(c)
		return booking.Actor{ID: userID, Role: models.RoleAdmin}, true
	}

	utils.Forbidden(c, "User role not permitted to act on appointments.")
	return booking.Actor{}, false
}
