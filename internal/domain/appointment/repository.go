package appointment

import (
	"context"
	"time"

	"github.com/clinagenda/clinic-api/internal/models"
)

// Filters narrows appointment lookups. Nil fields are ignored.
type Filters struct {
	PatientID      *uint
	ProfessionalID *uint
	Status         *Status
	From           *time.Time
	To             *time.Time
}

type Repository interface {
	// -------- References --------
	GetPatientByID(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)

	GetProfessionalByID(
		ctx context.Context,
		id uint,
	) (*models.Professional, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// CountConflicts counts non-cancelled appointments of the
	// professional at exactly scheduledAt, optionally excluding one
	// row (editing that same appointment).
	CountConflicts(
		ctx context.Context,
		professionalID uint,
		scheduledAt time.Time,
		excludeID *uint,
	) (int64, error)

	// -------- Appointment (read / update / delete) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) (bool, error)

	FindAppointments(
		ctx context.Context,
		f Filters,
	) ([]models.Appointment, error)

	CountAppointments(
		ctx context.Context,
		f Filters,
	) (int64, error)

	// -------- Agenda --------
	ListBookedSlots(
		ctx context.Context,
		professionalID uint,
		from time.Time,
		to time.Time,
	) ([]time.Time, error)
}
