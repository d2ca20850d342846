package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinagenda/clinic-api/internal/audit"
	"github.com/clinagenda/clinic-api/internal/cache"
	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/models"
	"github.com/clinagenda/clinic-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PatientID      uint
	ProfessionalID uint

	Date string // 2006-01-02
	Time string // 15:04

	Reason string
	Notes  string
	Cost   decimal.Decimal

	UserID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	agenda *cache.AgendaCache
	tz     string
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	agenda *cache.AgendaCache,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		audit:  audit,
		agenda: agenda,
		tz:     tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if _, err := uc.repo.GetPatientByID(ctx, in.PatientID); err != nil {
		return nil, httperr.ErrBusiness("patient_not_found")
	}

	pro, err := uc.repo.GetProfessionalByID(ctx, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	if !pro.Active {
		return nil, httperr.ErrBusiness("professional_inactive")
	}

	scheduledAt, err := parseSlot(in.Date, in.Time, uc.tz)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// Advisory pre-check: a storage error here means we cannot confirm
	// the slot is free, so the booking aborts either way. The partial
	// unique index remains the authoritative guard at write time.
	count, err := uc.repo.CountConflicts(ctx, in.ProfessionalID, scheduledAt, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.ErrBusiness(httperr.CodeScheduleConflict)
	}

	ap := &models.Appointment{
		PatientID:      in.PatientID,
		ProfessionalID: in.ProfessionalID,
		ScheduledAt:    scheduledAt,
		Reason:         in.Reason,
		Notes:          in.Notes,
		Cost:           in.Cost,
		Status:         string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.agenda.InvalidateDay(ctx, in.ProfessionalID, scheduledAt)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// parseSlot resolves a date + time pair in the clinic timezone,
// truncated to the minute the scheduling model works at.
func parseSlot(date, hm, tz string) (time.Time, error) {
	t, err := time.ParseInLocation(
		"2006-01-02 15:04",
		date+" "+hm,
		timezone.Location(tz),
	)
	if err != nil {
		return time.Time{}, err
	}
	return t.Truncate(time.Minute), nil
}
