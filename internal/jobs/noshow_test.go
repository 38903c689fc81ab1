package jobs

import (
	"fmt"
	"testing"
	"time"

	"vetclinic-app-server/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB, when time.Time, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	appt := &models.Appointment{
		PetOwnerID:      1,
		PatientID:       1,
		VeterinarianID:  1,
		ClinicID:        1,
		ServiceID:       1,
		AppointmentDate: when.Format("2006-01-02"),
		AppointmentTime: when.Format("15:04"),
		Status:          status,
		ReasonForVisit:  "checkup",
	}
	if err := db.Create(appt).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}
	return appt
}

func reload(t *testing.T, db *gorm.DB, id uint) models.Appointment {
	t.Helper()
	var appt models.Appointment
	if err := db.First(&appt, id).Error; err != nil {
		t.Fatalf("failed to reload appointment %d: %v", id, err)
	}
	return appt
}

func TestNoShowSweep(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	stale := seed(t, db, now.Add(-48*time.Hour), models.StatusConfirmed)
	stalePending := seed(t, db, now.Add(-48*time.Hour), models.StatusPending)
	recent := seed(t, db, now.Add(-2*time.Hour), models.StatusConfirmed)
	upcoming := seed(t, db, now.Add(72*time.Hour), models.StatusPending)
	done := seed(t, db, now.Add(-48*time.Hour), models.StatusCompleted)

	NewNoShowSweeper(db, 24).Run()

	if got := reload(t, db, stale.ID).Status; got != models.StatusNoShow {
		t.Fatalf("stale confirmed appointment = %s, want no_show", got)
	}
	if got := reload(t, db, stalePending.ID).Status; got != models.StatusNoShow {
		t.Fatalf("stale pending appointment = %s, want no_show", got)
	}
	if got := reload(t, db, recent.ID).Status; got != models.StatusConfirmed {
		t.Fatalf("appointment inside the grace period = %s, want confirmed", got)
	}
	if got := reload(t, db, upcoming.ID).Status; got != models.StatusPending {
		t.Fatalf("upcoming appointment = %s, want pending", got)
	}
	if got := reload(t, db, done.ID).Status; got != models.StatusCompleted {
		t.Fatalf("completed appointment = %s, want completed (terminal)", got)
	}
}
