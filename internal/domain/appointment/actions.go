package appointment

import (
	"time"

	"github.com/clinagenda/clinic-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to target after validating the state machine,
// stamping the terminal timestamps as a side effect. Status changes
// never touch the owning invoice.
func Transition(ap *models.Appointment, target Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), target); err != nil {
		return err
	}

	ap.Status = string(target)

	switch target {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusAttended:
		ap.AttendedAt = &now
	}

	return nil
}

func Confirm(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusConfirmed, now)
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelled, now)
}

func Attend(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusAttended, now)
}
