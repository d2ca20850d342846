package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	"github.com/clinagenda/clinic-api/internal/httperr"
	infraRepo "github.com/clinagenda/clinic-api/internal/infra/repository"
)

func TestGetAgenda(t *testing.T) {
	gdb := newTestDB(t)
	seedSchedulingRefs(t, gdb)

	repo := infraRepo.NewAppointmentGormRepository(gdb)
	agendaUC := NewGetAgenda(repo, nil, "UTC")
	statusUC := newChangeStatusUC(gdb)
	ctx := context.Background()

	morning := bookAt(t, gdb, "2025-11-18", "09:00")
	bookAt(t, gdb, "2025-11-18", "11:00")
	bookAt(t, gdb, "2025-11-19", "09:00") // next day, out of range

	t.Run("lists the day's booked slots in order", func(t *testing.T) {
		slots, err := agendaUC.Execute(ctx, 5, "2025-11-18")
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC), slots[0].UTC())
		assert.Equal(t, time.Date(2025, 11, 18, 11, 0, 0, 0, time.UTC), slots[1].UTC())
	})

	t.Run("cancelled slots drop off the agenda", func(t *testing.T) {
		_, err := statusUC.Execute(ctx, 1, morning.ID, domain.StatusCancelled)
		require.NoError(t, err)

		slots, err := agendaUC.Execute(ctx, 5, "2025-11-18")
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, time.Date(2025, 11, 18, 11, 0, 0, 0, time.UTC), slots[0].UTC())
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := agendaUC.Execute(ctx, 5, "18-11-2025")
		assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
	})
}

func TestListAppointmentsFilters(t *testing.T) {
	gdb := newTestDB(t)
	seedSchedulingRefs(t, gdb)

	repo := infraRepo.NewAppointmentGormRepository(gdb)
	listUC := NewListAppointments(repo)
	statusUC := newChangeStatusUC(gdb)
	ctx := context.Background()

	a := bookAt(t, gdb, "2025-11-20", "08:00")
	bookAt(t, gdb, "2025-11-20", "09:00")
	bookAt(t, gdb, "2025-11-21", "08:00")

	_, err := statusUC.Execute(ctx, 1, a.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	t.Run("by status", func(t *testing.T) {
		confirmed := domain.StatusConfirmed
		apps, total, err := listUC.Execute(ctx, domain.Filters{Status: &confirmed})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, apps, 1)
		assert.Equal(t, a.ID, apps[0].ID)
	})

	t.Run("by date window", func(t *testing.T) {
		from := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC)
		_, total, err := listUC.Execute(ctx, domain.Filters{From: &from, To: &to})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("by professional", func(t *testing.T) {
		pro := uint(5)
		_, total, err := listUC.Execute(ctx, domain.Filters{ProfessionalID: &pro})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
	})
}
