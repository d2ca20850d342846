package appointment

import (
	"context"
	"time"

	"github.com/clinagenda/clinic-api/internal/cache"
	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/timezone"
)

// GetAgenda returns a professional's booked (non-cancelled) slots for
// one day, answering from redis when the day was fetched recently.
type GetAgenda struct {
	repo   domain.Repository
	agenda *cache.AgendaCache
	tz     string
}

func NewGetAgenda(
	repo domain.Repository,
	agenda *cache.AgendaCache,
	tz string,
) *GetAgenda {
	return &GetAgenda{
		repo:   repo,
		agenda: agenda,
		tz:     tz,
	}
}

func (uc *GetAgenda) Execute(
	ctx context.Context,
	professionalID uint,
	date string,
) ([]time.Time, error) {

	day, err := time.ParseInLocation("2006-01-02", date, timezone.Location(uc.tz))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if slots, ok := uc.agenda.GetDay(ctx, professionalID, day); ok {
		return slots, nil
	}

	slots, err := uc.repo.ListBookedSlots(
		ctx,
		professionalID,
		day,
		day.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	uc.agenda.SetDay(ctx, professionalID, day, slots)

	return slots, nil
}
