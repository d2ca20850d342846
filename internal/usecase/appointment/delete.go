package appointment

import (
	"context"

	"github.com/clinagenda/clinic-api/internal/audit"
	"github.com/clinagenda/clinic-api/internal/cache"
	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	"github.com/clinagenda/clinic-api/internal/httperr"
)

type DeleteAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	agenda *cache.AgendaCache
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	agenda *cache.AgendaCache,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:   repo,
		audit:  audit,
		agenda: agenda,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (bool, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return false, httperr.ErrBusiness(httperr.CodeAppointmentMissing)
	}

	// Invoiced appointments are historical billing records and are
	// never deleted; the invoice must be voided instead.
	if ap.InvoiceID != nil {
		return false, httperr.ErrBusiness(httperr.CodeAlreadyInvoiced)
	}

	deleted, err := uc.repo.DeleteAppointment(ctx, appointmentID)
	if err != nil {
		return false, err
	}

	if deleted {
		uc.agenda.InvalidateDay(ctx, ap.ProfessionalID, ap.ScheduledAt)

		uc.audit.Dispatch(audit.Event{
			UserID:   &userID,
			Action:   "appointment_deleted",
			Entity:   "appointment",
			EntityID: &appointmentID,
		})
	}

	return deleted, nil
}
