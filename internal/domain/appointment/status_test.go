package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusPending, StatusAttended}:    true, // walk-in completion
		{StatusConfirmed, StatusCancelled}: true,
		{StatusConfirmed, StatusAttended}:  true,
	}

	all := []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusAttended}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if allowed[[2]Status{from, to}] {
				assert.NoError(t, err, "%s -> %s should be legal", from, to)
			} else {
				assert.Error(t, err, "%s -> %s should be rejected", from, to)
				assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
			}
		}
	}
}

func TestTransitionSideEffects(t *testing.T) {
	now := time.Date(2025, 11, 10, 14, 0, 0, 0, time.UTC)

	t.Run("cancel stamps cancelled_at", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		assert.NoError(t, Cancel(ap, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.Equal(t, now, *ap.CancelledAt)
		assert.Nil(t, ap.AttendedAt)
	})

	t.Run("attend stamps attended_at", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusConfirmed)}
		assert.NoError(t, Attend(ap, now))
		assert.Equal(t, string(StatusAttended), ap.Status)
		assert.Equal(t, now, *ap.AttendedAt)
	})

	t.Run("confirm keeps timestamps empty", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		assert.NoError(t, Confirm(ap, now))
		assert.Equal(t, string(StatusConfirmed), ap.Status)
		assert.Nil(t, ap.CancelledAt)
		assert.Nil(t, ap.AttendedAt)
	})

	t.Run("illegal transition leaves the model untouched", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCancelled)}
		err := Confirm(ap, now)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.Nil(t, ap.CancelledAt)
	})
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, IsValid(StatusPending))
	assert.False(t, IsValid(Status("rescheduled")))

	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusAttended))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))

	assert.Equal(t, StatusPending, InitialStatus())
}
