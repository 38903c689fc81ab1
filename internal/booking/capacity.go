package booking

import (
	"vetclinic-app-server/internal/models"

	"gorm.io/gorm"
)

// MaxDailyAppointments is the booking cap per owner per calendar date.
const MaxDailyAppointments = 5

// ActiveStatuses are the statuses that consume daily quota. Cancelled and
// no-show appointments free their slot.
var ActiveStatuses = []models.AppointmentStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusInProgress,
}

// DailyCapacity is the result of a capacity check for one owner and date.
type DailyCapacity struct {
	Date         string `json:"date"`
	Count        int64  `json:"count"`
	Limit        int    `json:"limit"`
	LimitReached bool   `json:"limitReached"`
}

// CountActive counts the owner's appointments on date whose status still
// consumes quota. date is a YYYY-MM-DD calendar date.
func CountActive(db *gorm.DB, ownerID uint, date string) (int64, error) {
	var count int64
	err := db.Model(&models.Appointment{}).
		Where("pet_owner_id = ? AND appointment_date = ? AND status IN ?", ownerID, date, ActiveStatuses).
		Count(&count).Error
	return count, err
}

// CheckDailyCapacity recomputes the owner's active count for date and reports
// whether the cap is reached. Always computed from the appointment table,
// never cached.
func CheckDailyCapacity(db *gorm.DB, ownerID uint, date string) (DailyCapacity, error) {
	count, err := CountActive(db, ownerID, date)
	if err != nil {
		return DailyCapacity{}, err
	}
	return DailyCapacity{
		Date:         date,
		Count:        count,
		Limit:        MaxDailyAppointments,
		LimitReached: count >= MaxDailyAppointments,
	}, nil
}
