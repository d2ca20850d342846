package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinagenda/clinic-api/internal/audit"
	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	"github.com/clinagenda/clinic-api/internal/httperr"
	infraRepo "github.com/clinagenda/clinic-api/internal/infra/repository"
	"github.com/clinagenda/clinic-api/internal/models"
)

func newChangeStatusUC(gdb *gorm.DB) *ChangeStatus {
	repo := infraRepo.NewAppointmentGormRepository(gdb)
	dispatcher := audit.NewDispatcher(audit.New(gdb), zap.NewNop())
	return NewChangeStatus(repo, dispatcher, nil, "UTC")
}

func bookAt(t *testing.T, gdb *gorm.DB, date, hm string) *models.Appointment {
	t.Helper()
	ap, err := newCreateUC(gdb).Execute(context.Background(), CreateAppointmentInput{
		PatientID:      7,
		ProfessionalID: 5,
		Date:           date,
		Time:           hm,
	})
	require.NoError(t, err)
	return ap
}

func seedInvoiceFor(t *testing.T, gdb *gorm.DB, number string) uint {
	t.Helper()

	client := models.Client{Name: "Ana Torres", Document: "900123456-" + number}
	require.NoError(t, gdb.Create(&client).Error)

	inv := models.Invoice{
		Number:        number,
		ClientID:      client.ID,
		IssuedAt:      time.Now().UTC(),
		City:          "Bogota",
		PaymentMethod: "cash",
		Status:        "active",
	}
	require.NoError(t, gdb.Create(&inv).Error)
	return inv.ID
}

func TestChangeStatus(t *testing.T) {
	gdb := newTestDB(t)
	seedSchedulingRefs(t, gdb)

	uc := newChangeStatusUC(gdb)
	ctx := context.Background()

	t.Run("pending to confirmed", func(t *testing.T) {
		ap := bookAt(t, gdb, "2025-11-12", "08:00")

		got, err := uc.Execute(ctx, 1, ap.ID, domain.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), got.Status)
	})

	t.Run("confirmed to attended stamps the moment", func(t *testing.T) {
		ap := bookAt(t, gdb, "2025-11-12", "09:00")

		_, err := uc.Execute(ctx, 1, ap.ID, domain.StatusConfirmed)
		require.NoError(t, err)
		got, err := uc.Execute(ctx, 1, ap.ID, domain.StatusAttended)
		require.NoError(t, err)
		require.NotNil(t, got.AttendedAt)
	})

	t.Run("cancelled is terminal and the row is untouched", func(t *testing.T) {
		ap := bookAt(t, gdb, "2025-11-12", "10:00")

		_, err := uc.Execute(ctx, 1, ap.ID, domain.StatusCancelled)
		require.NoError(t, err)

		_, err = uc.Execute(ctx, 1, ap.ID, domain.StatusConfirmed)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

		var stored models.Appointment
		require.NoError(t, gdb.First(&stored, ap.ID).Error)
		assert.Equal(t, string(domain.StatusCancelled), stored.Status)
		assert.NotNil(t, stored.CancelledAt)
	})

	t.Run("unknown target status", func(t *testing.T) {
		ap := bookAt(t, gdb, "2025-11-12", "11:00")

		_, err := uc.Execute(ctx, 1, ap.ID, domain.Status("archived"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
	})

	t.Run("missing appointment", func(t *testing.T) {
		_, err := uc.Execute(ctx, 1, 9999, domain.StatusConfirmed)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentMissing))
	})
}

func TestUpdateAppointment(t *testing.T) {
	gdb := newTestDB(t)
	seedSchedulingRefs(t, gdb)

	repo := infraRepo.NewAppointmentGormRepository(gdb)
	dispatcher := audit.NewDispatcher(audit.New(gdb), zap.NewNop())
	uc := NewUpdateAppointment(repo, dispatcher, nil, "UTC")
	ctx := context.Background()

	ap := bookAt(t, gdb, "2025-11-13", "08:00")
	other := bookAt(t, gdb, "2025-11-13", "09:00")

	t.Run("keeping the own slot is not a conflict", func(t *testing.T) {
		got, err := uc.Execute(ctx, UpdateAppointmentInput{
			AppointmentID:  ap.ID,
			PatientID:      ap.PatientID,
			ProfessionalID: ap.ProfessionalID,
			Date:           "2025-11-13",
			Time:           "08:00",
			Reason:         "follow-up",
		})
		require.NoError(t, err)
		assert.Equal(t, "follow-up", got.Reason)
	})

	t.Run("moving onto an occupied slot conflicts", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateAppointmentInput{
			AppointmentID:  ap.ID,
			PatientID:      ap.PatientID,
			ProfessionalID: ap.ProfessionalID,
			Date:           "2025-11-13",
			Time:           "09:00",
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeScheduleConflict))
	})

	t.Run("invoiced appointments are frozen", func(t *testing.T) {
		invoiceID := seedInvoiceFor(t, gdb, "FAC-900001")
		other.Cost = decimal.RequireFromString("100.00")
		other.InvoiceID = &invoiceID
		require.NoError(t, gdb.Save(other).Error)

		t.Run("cannot be moved", func(t *testing.T) {
			_, err := uc.Execute(ctx, UpdateAppointmentInput{
				AppointmentID:  other.ID,
				PatientID:      other.PatientID,
				ProfessionalID: other.ProfessionalID,
				Date:           "2025-11-13",
				Time:           "16:00",
				Cost:           other.Cost,
			})
			assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyInvoiced))
		})

		// Even at the unchanged slot: a cost or reason rewrite would
		// desynchronize the line item from the persisted invoice totals.
		t.Run("cannot change cost at the same slot", func(t *testing.T) {
			_, err := uc.Execute(ctx, UpdateAppointmentInput{
				AppointmentID:  other.ID,
				PatientID:      other.PatientID,
				ProfessionalID: other.ProfessionalID,
				Date:           "2025-11-13",
				Time:           "09:00",
				Reason:         "rewritten",
				Cost:           decimal.RequireFromString("5.00"),
			})
			assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyInvoiced))

			var stored models.Appointment
			require.NoError(t, gdb.First(&stored, other.ID).Error)
			assert.True(t, stored.Cost.Equal(decimal.RequireFromString("100.00")),
				"stored cost %s", stored.Cost)
			assert.NotEqual(t, "rewritten", stored.Reason)
		})
	})
}

func TestDeleteAppointment(t *testing.T) {
	gdb := newTestDB(t)
	seedSchedulingRefs(t, gdb)

	repo := infraRepo.NewAppointmentGormRepository(gdb)
	dispatcher := audit.NewDispatcher(audit.New(gdb), zap.NewNop())
	uc := NewDeleteAppointment(repo, dispatcher, nil)
	ctx := context.Background()

	t.Run("deletes an uninvoiced appointment", func(t *testing.T) {
		ap := bookAt(t, gdb, "2025-11-14", "08:00")

		deleted, err := uc.Execute(ctx, 1, ap.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		err = gdb.First(&models.Appointment{}, ap.ID).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("refuses an invoiced appointment", func(t *testing.T) {
		ap := bookAt(t, gdb, "2025-11-14", "09:00")
		invoiceID := seedInvoiceFor(t, gdb, "FAC-900002")
		ap.InvoiceID = &invoiceID
		require.NoError(t, gdb.Save(ap).Error)

		_, err := uc.Execute(ctx, 1, ap.ID)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyInvoiced))
	})

	t.Run("missing appointment", func(t *testing.T) {
		_, err := uc.Execute(ctx, 1, 9999)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentMissing))
	})
}

// Regression guard for the slot normalization: bookings land on whole
// minutes regardless of what the parser was fed.
func TestParseSlotTruncatesToMinute(t *testing.T) {
	got, err := parseSlot("2025-11-10", "14:30", "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 10, 14, 30, 0, 0, time.UTC), got)
	assert.Zero(t, got.Second())
}
