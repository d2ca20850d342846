package appointment

import (
	"context"
	"time"

	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
)

// CheckConflict is the read-only resolver behind the booking form's
// early rejection. It never writes; callers must still expect the
// write path to fail when two bookings race.
type CheckConflict struct {
	repo domain.Repository
}

func NewCheckConflict(repo domain.Repository) *CheckConflict {
	return &CheckConflict{repo: repo}
}

func (uc *CheckConflict) Execute(
	ctx context.Context,
	professionalID uint,
	scheduledAt time.Time,
	excludeID *uint,
) (bool, error) {

	count, err := uc.repo.CountConflicts(
		ctx,
		professionalID,
		scheduledAt.Truncate(time.Minute),
		excludeID,
	)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
