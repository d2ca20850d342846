package appointment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/clinagenda/clinic-api/internal/audit"
	"github.com/clinagenda/clinic-api/internal/cache"
	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type UpdateAppointmentInput struct {
	AppointmentID uint

	PatientID      uint
	ProfessionalID uint

	Date string
	Time string

	Reason string
	Notes  string
	Cost   decimal.Decimal

	UserID uint
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	agenda *cache.AgendaCache
	tz     string
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	agenda *cache.AgendaCache,
	tz string,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		audit:  audit,
		agenda: agenda,
		tz:     tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentMissing)
	}

	// Once invoiced, an appointment is a frozen billing line item:
	// cost, slot and participants all stay as invoiced. Status changes
	// go through ChangeStatus; nothing else is editable.
	if ap.InvoiceID != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAlreadyInvoiced)
	}

	scheduledAt, err := parseSlot(in.Date, in.Time, uc.tz)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if _, err := uc.repo.GetPatientByID(ctx, in.PatientID); err != nil {
		return nil, httperr.ErrBusiness("patient_not_found")
	}
	if _, err := uc.repo.GetProfessionalByID(ctx, in.ProfessionalID); err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	count, err := uc.repo.CountConflicts(
		ctx,
		in.ProfessionalID,
		scheduledAt,
		&in.AppointmentID,
	)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.ErrBusiness(httperr.CodeScheduleConflict)
	}

	previousDay := ap.ScheduledAt
	previousProfessional := ap.ProfessionalID

	ap.PatientID = in.PatientID
	ap.ProfessionalID = in.ProfessionalID
	ap.ScheduledAt = scheduledAt
	ap.Reason = in.Reason
	ap.Notes = in.Notes
	ap.Cost = in.Cost

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.agenda.InvalidateDay(ctx, previousProfessional, previousDay)
	uc.agenda.InvalidateDay(ctx, ap.ProfessionalID, ap.ScheduledAt)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
