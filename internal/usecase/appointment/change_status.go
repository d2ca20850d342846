package appointment

import (
	"context"

	"github.com/clinagenda/clinic-api/internal/audit"
	"github.com/clinagenda/clinic-api/internal/cache"
	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/models"
	"github.com/clinagenda/clinic-api/internal/timezone"
)

type ChangeStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	agenda *cache.AgendaCache
	tz     string
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	agenda *cache.AgendaCache,
	tz string,
) *ChangeStatus {
	return &ChangeStatus{
		repo:   repo,
		audit:  audit,
		agenda: agenda,
		tz:     tz,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
	target domain.Status,
) (*models.Appointment, error) {

	if !domain.IsValid(target) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentMissing)
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Transition(ap, target, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// A cancellation frees the slot for rebooking.
	if target == domain.StatusCancelled {
		uc.agenda.InvalidateDay(ctx, ap.ProfessionalID, ap.ScheduledAt)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_" + string(target),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
