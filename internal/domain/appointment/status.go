package appointment

import "github.com/clinagenda/clinic-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusAttended  Status = "attended"
)

// transitions lists every legal (from -> to) pair. Cancelled and
// attended are terminal: a cancelled slot is never re-activated, it is
// rebooked as a new appointment.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusAttended},
	StatusConfirmed: {StatusCancelled, StatusAttended},
}

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusAttended:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusAttended
}

// CanTransition decides whether current -> target is a legal move.
func CanTransition(current, target Status) error {
	for _, allowed := range transitions[current] {
		if allowed == target {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

func InitialStatus() Status {
	return StatusPending
}
