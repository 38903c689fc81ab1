package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"vetclinic-app-server/internal/booking"
	"vetclinic-app-server/internal/models"
)

func TestConfirmThenOwnerCancel(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, f.owner.ID, futureDate(7), models.StatusPending)

	// Vet confirms the pending request.
	w, _ := f.do(t, http.MethodPatch, statusPath(appt.ID), f.vetToken,
		map[string]interface{}{"status": "confirmed"})
	assertCode(t, w, http.StatusOK)
	if got := f.reloadAppointment(t, appt.ID).Status; got != models.StatusConfirmed {
		t.Fatalf("status after confirm = %s, want confirmed", got)
	}

	// Owner cancels the confirmed appointment.
	w, _ = f.do(t, http.MethodPatch, statusPath(appt.ID), f.ownerToken,
		map[string]interface{}{"status": "cancelled"})
	assertCode(t, w, http.StatusOK)
	if got := f.reloadAppointment(t, appt.ID).Status; got != models.StatusCancelled {
		t.Fatalf("status after owner cancel = %s, want cancelled", got)
	}
}

func TestDeclineWithoutReasonRejected(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, f.owner.ID, futureDate(7), models.StatusPending)

	w, resp := f.do(t, http.MethodPatch, statusPath(appt.ID), f.vetToken,
		map[string]interface{}{"status": "cancelled"})
	assertCode(t, w, http.StatusBadRequest)
	if resp.Error == "" {
		t.Fatal("expected an error message in the response")
	}
	if got := f.reloadAppointment(t, appt.ID).Status; got != models.StatusPending {
		t.Fatalf("status after rejected decline = %s, want pending", got)
	}
}

func TestDeclineWithReasonStored(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, f.owner.ID, futureDate(7), models.StatusPending)

	w, _ := f.do(t, http.MethodPatch, statusPath(appt.ID), f.vetToken,
		map[string]interface{}{"status": "cancelled", "declineReason": "fully booked that day"})
	assertCode(t, w, http.StatusOK)

	reloaded := f.reloadAppointment(t, appt.ID)
	if reloaded.Status != models.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", reloaded.Status)
	}
	if reloaded.DeclineReason != "fully booked that day" {
		t.Fatalf("declineReason = %q, want the submitted reason", reloaded.DeclineReason)
	}
}

func TestTransitionByUninvolvedActorRejected(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, f.owner.ID, futureDate(7), models.StatusPending)

	// A different pet owner must not be able to cancel it.
	_, strangerToken := f.newOwner(t, "stranger@example.com")
	w, _ := f.do(t, http.MethodPatch, statusPath(appt.ID), strangerToken,
		map[string]interface{}{"status": "cancelled"})
	assertCode(t, w, http.StatusForbidden)
	if got := f.reloadAppointment(t, appt.ID).Status; got != models.StatusPending {
		t.Fatalf("status after forbidden cancel = %s, want pending", got)
	}

	// An unassigned vet must not be able to confirm it.
	otherVetUser := f.createUser(t, "othervet@example.com", models.RoleVeterinarian)
	otherVet := models.Veterinarian{UserID: otherVetUser.ID, ClinicID: f.clinic.ID}
	mustCreate(t, f.db, &otherVet)

	w, _ = f.do(t, http.MethodPatch, statusPath(appt.ID), f.tokenFor(t, otherVetUser),
		map[string]interface{}{"status": "confirmed"})
	assertCode(t, w, http.StatusForbidden)
	if got := f.reloadAppointment(t, appt.ID).Status; got != models.StatusPending {
		t.Fatalf("status after forbidden confirm = %s, want pending", got)
	}
}

func TestCompleteFromPendingRejected(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, f.owner.ID, futureDate(7), models.StatusPending)

	w, _ := f.do(t, http.MethodPatch, statusPath(appt.ID), f.vetToken,
		map[string]interface{}{"status": "completed"})
	assertCode(t, w, http.StatusConflict)
	if got := f.reloadAppointment(t, appt.ID).Status; got != models.StatusPending {
		t.Fatalf("status = %s, want pending", got)
	}
}

func TestCompletedAppointmentRejectsFurtherTransitions(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, f.owner.ID, futureDate(7), models.StatusConfirmed)

	w, _ := f.do(t, http.MethodPatch, statusPath(appt.ID), f.vetToken,
		map[string]interface{}{"status": "completed", "totalAmount": 75.0})
	assertCode(t, w, http.StatusOK)

	// A second complete attempt must be rejected, not silently accepted.
	w, _ = f.do(t, http.MethodPatch, statusPath(appt.ID), f.vetToken,
		map[string]interface{}{"status": "completed"})
	assertCode(t, w, http.StatusConflict)

	reloaded := f.reloadAppointment(t, appt.ID)
	if reloaded.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want completed", reloaded.Status)
	}
	if reloaded.TotalAmount != 75.0 {
		t.Fatalf("totalAmount = %v, want 75 from the first completion", reloaded.TotalAmount)
	}
}

func TestCompleteDefaultsTotalAmountToServicePrice(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, f.owner.ID, futureDate(7), models.StatusConfirmed)

	w, _ := f.do(t, http.MethodPatch, statusPath(appt.ID), f.vetToken,
		map[string]interface{}{"status": "completed"})
	assertCode(t, w, http.StatusOK)

	if got := f.reloadAppointment(t, appt.ID).TotalAmount; got != f.service.Price {
		t.Fatalf("totalAmount = %v, want service price %v", got, f.service.Price)
	}
}

func TestCreateAppointmentEnforcesDailyCap(t *testing.T) {
	f := newFixture(t)
	date := futureDate(7)

	for i := 0; i < booking.MaxDailyAppointments; i++ {
		f.seedAppointment(t, f.owner.ID, date, models.StatusPending)
	}

	body := map[string]interface{}{
		"patientId":       f.pet.ID,
		"veterinarianId":  f.vet.ID,
		"serviceId":       f.service.ID,
		"appointmentDate": date,
		"appointmentTime": "15:00",
		"reasonForVisit":  "vaccination",
	}

	w, resp := f.do(t, http.MethodPost, "/api/v1/appointments", f.ownerToken, body)
	assertCode(t, w, http.StatusConflict)
	if resp.Error == "" {
		t.Fatal("expected a limit-reached error message")
	}

	// Cancelling one appointment frees a slot and booking succeeds.
	var victim models.Appointment
	if err := f.db.Where("pet_owner_id = ? AND appointment_date = ?", f.owner.ID, date).First(&victim).Error; err != nil {
		t.Fatalf("failed to load appointment: %v", err)
	}
	victim.Status = models.StatusCancelled
	if err := f.db.Save(&victim).Error; err != nil {
		t.Fatalf("failed to cancel appointment: %v", err)
	}

	w, _ = f.do(t, http.MethodPost, "/api/v1/appointments", f.ownerToken, body)
	assertCode(t, w, http.StatusCreated)
}

func TestCreateAppointmentRejectsForeignPet(t *testing.T) {
	f := newFixture(t)
	stranger, strangerToken := f.newOwner(t, "stranger@example.com")
	_ = stranger

	body := map[string]interface{}{
		"patientId":       f.pet.ID, // belongs to the fixture owner
		"veterinarianId":  f.vet.ID,
		"serviceId":       f.service.ID,
		"appointmentDate": futureDate(7),
		"appointmentTime": "15:00",
		"reasonForVisit":  "vaccination",
	}

	w, _ := f.do(t, http.MethodPost, "/api/v1/appointments", strangerToken, body)
	assertCode(t, w, http.StatusNotFound)
}

func TestCapacityEndpoint(t *testing.T) {
	f := newFixture(t)
	date := futureDate(7)

	f.seedAppointment(t, f.owner.ID, date, models.StatusPending)
	f.seedAppointment(t, f.owner.ID, date, models.StatusConfirmed)
	f.seedAppointment(t, f.owner.ID, date, models.StatusCancelled) // no quota

	w, resp := f.do(t, http.MethodGet, "/api/v1/appointments/capacity?date="+date, f.ownerToken, nil)
	assertCode(t, w, http.StatusOK)

	var capacity booking.DailyCapacity
	if err := json.Unmarshal(resp.Data, &capacity); err != nil {
		t.Fatalf("failed to decode capacity payload: %v", err)
	}
	if capacity.Count != 2 {
		t.Fatalf("count = %d, want 2", capacity.Count)
	}
	if capacity.LimitReached {
		t.Fatal("limit must not be reached at 2 active appointments")
	}
	if capacity.Limit != booking.MaxDailyAppointments {
		t.Fatalf("limit = %d, want %d", capacity.Limit, booking.MaxDailyAppointments)
	}
}

func TestGetAppointmentsScopedToCaller(t *testing.T) {
	f := newFixture(t)
	date := futureDate(7)

	f.seedAppointment(t, f.owner.ID, date, models.StatusPending)
	stranger, strangerToken := f.newOwner(t, "stranger@example.com")
	strangerPet := models.Pet{PetOwnerID: stranger.ID, Name: "Mia", Species: "cat", IsActive: true}
	mustCreate(t, f.db, &strangerPet)
	mustCreate(t, f.db, &models.Appointment{
		PetOwnerID:      stranger.ID,
		PatientID:       strangerPet.ID,
		VeterinarianID:  f.vet.ID,
		ClinicID:        f.clinic.ID,
		ServiceID:       f.service.ID,
		AppointmentDate: date,
		AppointmentTime: "11:00",
		Status:          models.StatusPending,
		ReasonForVisit:  "checkup",
	})

	w, resp := f.do(t, http.MethodGet, "/api/v1/appointments", strangerToken, nil)
	assertCode(t, w, http.StatusOK)

	var appointments []models.Appointment
	if err := json.Unmarshal(resp.Data, &appointments); err != nil {
		t.Fatalf("failed to decode appointments: %v", err)
	}
	if len(appointments) != 1 {
		t.Fatalf("got %d appointments, want only the caller's 1", len(appointments))
	}
	if appointments[0].PetOwnerID != stranger.ID {
		t.Fatalf("appointment belongs to owner %d, want %d", appointments[0].PetOwnerID, stranger.ID)
	}

	// The vet sees both, since both were booked with them.
	w, resp = f.do(t, http.MethodGet, "/api/v1/appointments", f.vetToken, nil)
	assertCode(t, w, http.StatusOK)
	if err := json.Unmarshal(resp.Data, &appointments); err != nil {
		t.Fatalf("failed to decode appointments: %v", err)
	}
	if len(appointments) != 2 {
		t.Fatalf("vet sees %d appointments, want 2", len(appointments))
	}
}

func TestGetAppointmentByIDForbiddenForStranger(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, f.owner.ID, futureDate(7), models.StatusPending)
	_, strangerToken := f.newOwner(t, "stranger@example.com")

	w, _ := f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/appointments/%d", appt.ID), strangerToken, nil)
	assertCode(t, w, http.StatusForbidden)
}
