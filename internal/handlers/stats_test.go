package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"vetclinic-app-server/internal/models"
)

type ownerStatsPayload struct {
	TotalPets             int64   `json:"totalPets"`
	UpcomingAppointments  int64   `json:"upcomingAppointments"`
	CompletedAppointments int64   `json:"completedAppointments"`
	TotalSpent            float64 `json:"totalSpent"`
	LastVisitDate         string  `json:"lastVisitDate"`
}

type vetStatsPayload struct {
	TotalAppointments int64   `json:"totalAppointments"`
	PendingRequests   int64   `json:"pendingRequests"`
	CompletedToday    int64   `json:"completedToday"`
	AverageRating     float64 `json:"averageRating"`
	ReviewCount       int64   `json:"reviewCount"`
}

func TestOwnerStatsRecomputedAfterTransition(t *testing.T) {
	f := newFixture(t)
	date := futureDate(7)
	appt := f.seedAppointment(t, f.owner.ID, date, models.StatusConfirmed)

	w, resp := f.do(t, http.MethodGet, "/api/v1/stats/owner", f.ownerToken, nil)
	assertCode(t, w, http.StatusOK)

	var stats ownerStatsPayload
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		t.Fatalf("failed to decode owner stats: %v", err)
	}
	if stats.TotalPets != 1 {
		t.Fatalf("totalPets = %d, want 1", stats.TotalPets)
	}
	if stats.UpcomingAppointments != 1 {
		t.Fatalf("upcomingAppointments = %d, want 1", stats.UpcomingAppointments)
	}
	if stats.CompletedAppointments != 0 || stats.TotalSpent != 0 {
		t.Fatalf("expected no completed visits yet, got count=%d spent=%v",
			stats.CompletedAppointments, stats.TotalSpent)
	}

	// Vet completes the visit; the counters must reflect it on the next read
	// with no staleness, since they are recomputed from the source tables.
	w, _ = f.do(t, http.MethodPatch, statusPath(appt.ID), f.vetToken,
		map[string]interface{}{"status": "completed", "totalAmount": 150.0})
	assertCode(t, w, http.StatusOK)

	w, resp = f.do(t, http.MethodGet, "/api/v1/stats/owner", f.ownerToken, nil)
	assertCode(t, w, http.StatusOK)
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		t.Fatalf("failed to decode owner stats: %v", err)
	}
	if stats.UpcomingAppointments != 0 {
		t.Fatalf("upcomingAppointments = %d, want 0 after completion", stats.UpcomingAppointments)
	}
	if stats.CompletedAppointments != 1 {
		t.Fatalf("completedAppointments = %d, want 1", stats.CompletedAppointments)
	}
	if stats.TotalSpent != 150.0 {
		t.Fatalf("totalSpent = %v, want 150", stats.TotalSpent)
	}
	if stats.LastVisitDate != date {
		t.Fatalf("lastVisitDate = %q, want %q", stats.LastVisitDate, date)
	}
}

func TestVetStats(t *testing.T) {
	f := newFixture(t)
	today := time.Now().Format("2006-01-02")

	f.seedAppointment(t, f.owner.ID, futureDate(7), models.StatusPending)
	completed := f.seedAppointment(t, f.owner.ID, today, models.StatusCompleted)

	mustCreate(t, f.db, &models.Review{
		PetOwnerID:     f.owner.ID,
		VeterinarianID: f.vet.ID,
		AppointmentID:  completed.ID,
		Rating:         4,
		Comment:        "great with nervous dogs",
	})

	w, resp := f.do(t, http.MethodGet, "/api/v1/stats/veterinarian", f.vetToken, nil)
	assertCode(t, w, http.StatusOK)

	var stats vetStatsPayload
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		t.Fatalf("failed to decode vet stats: %v", err)
	}
	if stats.TotalAppointments != 2 {
		t.Fatalf("totalAppointments = %d, want 2", stats.TotalAppointments)
	}
	if stats.PendingRequests != 1 {
		t.Fatalf("pendingRequests = %d, want 1", stats.PendingRequests)
	}
	if stats.CompletedToday != 1 {
		t.Fatalf("completedToday = %d, want 1", stats.CompletedToday)
	}
	if stats.ReviewCount != 1 || stats.AverageRating != 4 {
		t.Fatalf("reviews = %d avg %v, want 1 review with average 4", stats.ReviewCount, stats.AverageRating)
	}
}
