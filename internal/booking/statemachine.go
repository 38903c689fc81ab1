package booking

import (
	"errors"
	"strings"

	"vetclinic-app-server/internal/models"
)

// Sentinel errors for rejected status changes. Handlers map these to distinct
// HTTP responses: permission failures must never be conflated with invalid
// transitions or missing input.
var (
	// ErrInvalidTransition means the target status is not reachable from the
	// appointment's current status.
	ErrInvalidTransition = errors.New("status transition not allowed from the current status")
	// ErrPermissionDenied means the actor does not own / is not assigned to
	// the appointment, or their role may not perform this transition.
	ErrPermissionDenied = errors.New("actor is not permitted to perform this transition")
	// ErrReasonRequired means a veterinarian declined without giving a reason.
	ErrReasonRequired = errors.New("a decline reason is required")
	// ErrUnknownStatus means the requested target is not a known status.
	ErrUnknownStatus = errors.New("unknown appointment status")
)

// Actor identifies who is requesting a status change. ID is the profile id
// matching the role: PetOwnerProfile.ID for owners, Veterinarian.ID for vets.
// Admin actors bypass the ownership predicate but not the transition table.
type Actor struct {
	ID   uint
	Role models.Role
}

// transitions is the reachability table. Actor rules are layered on top in
// Authorize; this only answers "is to reachable from from at all".
var transitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:    {models.StatusConfirmed, models.StatusCancelled, models.StatusNoShow},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCompleted, models.StatusCancelled, models.StatusNoShow},
	models.StatusInProgress: {models.StatusCompleted, models.StatusNoShow},
}

// IsTerminal reports whether no further transition is permitted from s.
func IsTerminal(s models.AppointmentStatus) bool {
	switch s {
	case models.StatusCompleted, models.StatusCancelled, models.StatusNoShow:
		return true
	}
	return false
}

// KnownStatus reports whether s is one of the defined appointment statuses.
func KnownStatus(s models.AppointmentStatus) bool {
	switch s {
	case models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled, models.StatusNoShow:
		return true
	}
	return false
}

// CanTransition reports whether to is reachable from from, ignoring actors.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Authorize validates a requested status change against the transition table,
// the actor's role and the ownership predicate. It performs no writes; the
// caller applies the change only when the returned error is nil.
//
// declineReason is consulted only on the veterinarian decline path
// (pending -> cancelled by the assigned vet), where it must be non-blank.
func Authorize(appt *models.Appointment, actor Actor, target models.AppointmentStatus, declineReason string) error {
	if !KnownStatus(target) {
		return ErrUnknownStatus
	}
	if IsTerminal(appt.Status) || !CanTransition(appt.Status, target) {
		return ErrInvalidTransition
	}

	isOwner := actor.Role == models.RolePetOwner && actor.ID == appt.PetOwnerID
	isVet := actor.Role == models.RoleVeterinarian && actor.ID == appt.VeterinarianID
	isAdmin := actor.Role == models.RoleAdmin

	switch target {
	case models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted:
		if !isVet && !isAdmin {
			return ErrPermissionDenied
		}
	case models.StatusNoShow:
		// Administrative: assigned vet or admin, from any non-terminal status.
		if !isVet && !isAdmin {
			return ErrPermissionDenied
		}
	case models.StatusCancelled:
		if !isOwner && !isVet && !isAdmin {
			return ErrPermissionDenied
		}
		// A vet cancelling a pending request is a decline and needs a reason.
		if isVet && appt.Status == models.StatusPending && strings.TrimSpace(declineReason) == "" {
			return ErrReasonRequired
		}
	}

	return nil
}
