package appointment

import (
	"context"

	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	"github.com/clinagenda/clinic-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.Filters,
) ([]models.Appointment, int64, error) {

	apps, err := uc.repo.FindAppointments(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.repo.CountAppointments(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}
