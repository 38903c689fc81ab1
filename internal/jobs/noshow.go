package jobs

import (
	"log"
	"time"

	"vetclinic-app-server/internal/booking"
	"vetclinic-app-server/internal/models"

	"gorm.io/gorm"
)

// NoShowSweeper administratively flags appointments that were never attended.
// Appointments still pending or confirmed whose scheduled time is more than
// GraceHours in the past are moved to no_show through the same rules core the
// API uses.
type NoShowSweeper struct {
	DB         *gorm.DB
	GraceHours int
}

// NewNoShowSweeper creates a sweeper with the given grace period.
func NewNoShowSweeper(db *gorm.DB, graceHours int) *NoShowSweeper {
	return &NoShowSweeper{DB: db, GraceHours: graceHours}
}

// Run performs one sweep. Intended to be scheduled via cron.
func (s *NoShowSweeper) Run() {
	cutoff := time.Now().Add(-time.Duration(s.GraceHours) * time.Hour)

	var candidates []models.Appointment
	err := s.DB.
		Where("status IN ? AND appointment_date <= ?",
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed},
			cutoff.Format("2006-01-02")).
		Find(&candidates).Error
	if err != nil {
		log.Printf("no-show sweep: failed to load candidates: %v", err)
		return
	}

	admin := booking.Actor{Role: models.RoleAdmin}
	flagged := 0
	for i := range candidates {
		appt := &candidates[i]

		startsAt, err := time.ParseInLocation("2006-01-02 15:04",
			appt.AppointmentDate+" "+appt.AppointmentTime, time.Local)
		if err != nil {
			log.Printf("no-show sweep: appointment %d has unparseable schedule %q %q",
				appt.ID, appt.AppointmentDate, appt.AppointmentTime)
			continue
		}
		if startsAt.After(cutoff) {
			continue
		}

		if err := booking.Authorize(appt, admin, models.StatusNoShow, ""); err != nil {
			// Another actor got there first; skip.
			continue
		}

		appt.Status = models.StatusNoShow
		if err := s.DB.Save(appt).Error; err != nil {
			log.Printf("no-show sweep: failed to flag appointment %d: %v", appt.ID, err)
			continue
		}
		flagged++
	}

	if flagged > 0 {
		log.Printf("no-show sweep: flagged %d appointment(s)", flagged)
	}
}
