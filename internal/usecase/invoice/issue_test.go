package invoice

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinagenda/clinic-api/internal/audit"
	dbpkg "github.com/clinagenda/clinic-api/internal/db"
	apdomain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	domain "github.com/clinagenda/clinic-api/internal/domain/invoice"
	"github.com/clinagenda/clinic-api/internal/httperr"
	infraRepo "github.com/clinagenda/clinic-api/internal/infra/repository"
	"github.com/clinagenda/clinic-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(gdb))

	return gdb
}

func seedBillingRefs(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	require.NoError(t, gdb.Create(&models.Specialty{ID: 1, Name: "General"}).Error)
	require.NoError(t, gdb.Create(&models.Professional{
		ID: 5, Name: "Dr. Vargas", License: "MED-5521", SpecialtyID: 1, Active: true,
	}).Error)
	require.NoError(t, gdb.Create(&models.Patient{
		ID: 7, Name: "Ana Torres", Document: "900123456",
	}).Error)
	require.NoError(t, gdb.Create(&models.Client{
		ID: 3, Name: "Ana Torres", Document: "900123456",
	}).Error)
}

func newIssueUC(gdb *gorm.DB) *IssueInvoice {
	repo := infraRepo.NewInvoiceGormRepository(gdb)
	dispatcher := audit.NewDispatcher(audit.New(gdb), zap.NewNop())
	return NewIssueInvoice(repo, dispatcher, nil, domain.DefaultNumberPrefix, "UTC", 15*time.Second)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func candidate(cost string, day int, hour int) models.Appointment {
	return models.Appointment{
		PatientID:      7,
		ProfessionalID: 5,
		ScheduledAt:    time.Date(2025, 11, day, hour, 0, 0, 0, time.UTC),
		Reason:         "consultation",
		Cost:           decimal.RequireFromString(cost),
	}
}

func sequenceValue(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var seq models.InvoiceSequence
	require.NoError(t, gdb.First(&seq).Error)
	return seq.Value
}

func TestIssueInvoice(t *testing.T) {
	gdb := newTestDB(t)
	seedBillingRefs(t, gdb)

	uc := newIssueUC(gdb)
	ctx := context.Background()

	subtotal := dec(t, "150.50")
	totals := domain.ComputeTotals(subtotal, domain.DefaultTaxRate, decimal.Zero)

	id, err := uc.Execute(ctx, IssueInvoiceInput{
		ClientID:      3,
		City:          "Bogota",
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		PaymentMethod: domain.PaymentCash,
		Appointments: []models.Appointment{
			candidate("100.00", 20, 9),
			candidate("50.50", 20, 10),
		},
		UserID: 1,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	var inv models.Invoice
	require.NoError(t, gdb.First(&inv, id).Error)

	assert.Equal(t, "FAC-000001", inv.Number)
	assert.Equal(t, string(domain.StatusActive), inv.Status)
	assert.True(t, inv.Subtotal.Equal(dec(t, "150.50")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.Tax.Equal(dec(t, "22.575")), "tax %s", inv.Tax)
	assert.True(t, inv.Total.Equal(dec(t, "173.075")), "total %s", inv.Total)

	var lines []models.Appointment
	require.NoError(t, gdb.Where("invoice_id = ?", id).Find(&lines).Error)
	require.Len(t, lines, 2)
	for _, ln := range lines {
		assert.Equal(t, string(apdomain.StatusPending), ln.Status)
	}

	assert.EqualValues(t, 1, sequenceValue(t, gdb))
}

func TestIssueInvoiceNumbersAreSequential(t *testing.T) {
	gdb := newTestDB(t)
	seedBillingRefs(t, gdb)

	uc := newIssueUC(gdb)
	ctx := context.Background()

	issue := func(day int) *models.Invoice {
		id, err := uc.Execute(ctx, IssueInvoiceInput{
			ClientID:      3,
			City:          "Bogota",
			Subtotal:      dec(t, "100.00"),
			Total:         dec(t, "100.00"),
			PaymentMethod: domain.PaymentCard,
			Appointments:  []models.Appointment{candidate("100.00", day, 9)},
		})
		require.NoError(t, err)

		var inv models.Invoice
		require.NoError(t, gdb.First(&inv, id).Error)
		return &inv
	}

	first := issue(21)
	second := issue(22)

	assert.Equal(t, "FAC-000001", first.Number)
	assert.Equal(t, "FAC-000002", second.Number)

	// Line items of distinct invoices never overlap.
	for _, inv := range []*models.Invoice{first, second} {
		var lines int64
		require.NoError(t, gdb.Model(&models.Appointment{}).
			Where("invoice_id = ?", inv.ID).
			Count(&lines).Error)
		assert.EqualValues(t, 1, lines)
	}
}

func TestIssueInvoiceValidation(t *testing.T) {
	gdb := newTestDB(t)
	seedBillingRefs(t, gdb)

	uc := newIssueUC(gdb)
	ctx := context.Background()

	t.Run("empty batch writes nothing", func(t *testing.T) {
		_, err := uc.Execute(ctx, IssueInvoiceInput{
			ClientID:      3,
			PaymentMethod: domain.PaymentCash,
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeEmptyBatch))

		var count int64
		require.NoError(t, gdb.Model(&models.Invoice{}).Count(&count).Error)
		assert.Zero(t, count)
		assert.Zero(t, sequenceValue(t, gdb))
	})

	t.Run("unknown payment method", func(t *testing.T) {
		_, err := uc.Execute(ctx, IssueInvoiceInput{
			ClientID:      3,
			PaymentMethod: domain.PaymentMethod("barter"),
			Appointments:  []models.Appointment{candidate("10.00", 23, 9)},
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_payment_method"))
	})

	t.Run("already invoiced candidate", func(t *testing.T) {
		linked := uint(1)
		ap := candidate("10.00", 23, 10)
		ap.InvoiceID = &linked

		_, err := uc.Execute(ctx, IssueInvoiceInput{
			ClientID:      3,
			PaymentMethod: domain.PaymentCash,
			Appointments:  []models.Appointment{ap},
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyInvoiced))
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := uc.Execute(ctx, IssueInvoiceInput{
			ClientID:      99,
			PaymentMethod: domain.PaymentCash,
			Appointments:  []models.Appointment{candidate("10.00", 23, 11)},
		})
		assert.True(t, httperr.IsBusiness(err, "client_not_found"))
	})
}

// A failing line item rolls back the whole issuance: no header row, no
// partial batch, and the reserved number is released.
func TestIssueInvoiceRollsBackAtomically(t *testing.T) {
	gdb := newTestDB(t)
	seedBillingRefs(t, gdb)

	uc := newIssueUC(gdb)
	ctx := context.Background()

	// Occupy the slot the third candidate will collide with.
	taken := candidate("0.00", 25, 10)
	taken.Status = string(apdomain.StatusPending)
	require.NoError(t, gdb.Create(&taken).Error)

	_, err := uc.Execute(ctx, IssueInvoiceInput{
		ClientID:      3,
		City:          "Bogota",
		Subtotal:      dec(t, "30.00"),
		Total:         dec(t, "30.00"),
		PaymentMethod: domain.PaymentCash,
		Appointments: []models.Appointment{
			candidate("10.00", 25, 8),
			candidate("10.00", 25, 9),
			candidate("10.00", 25, 10), // conflicts with the taken slot
		},
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeScheduleConflict))

	var invoices int64
	require.NoError(t, gdb.Model(&models.Invoice{}).Count(&invoices).Error)
	assert.Zero(t, invoices, "no header row survives the rollback")

	var appointments int64
	require.NoError(t, gdb.Model(&models.Appointment{}).Count(&appointments).Error)
	assert.EqualValues(t, 1, appointments, "only the pre-existing booking remains")

	assert.Zero(t, sequenceValue(t, gdb), "a failed issuance never advances the sequence")

	// The released number is handed to the next successful issuance.
	id, err := uc.Execute(ctx, IssueInvoiceInput{
		ClientID:      3,
		Subtotal:      dec(t, "10.00"),
		Total:         dec(t, "10.00"),
		PaymentMethod: domain.PaymentCash,
		Appointments:  []models.Appointment{candidate("10.00", 26, 8)},
	})
	require.NoError(t, err)

	var inv models.Invoice
	require.NoError(t, gdb.First(&inv, id).Error)
	assert.Equal(t, "FAC-000001", inv.Number)
}

func TestVoidInvoice(t *testing.T) {
	gdb := newTestDB(t)
	seedBillingRefs(t, gdb)

	issueUC := newIssueUC(gdb)
	repo := infraRepo.NewInvoiceGormRepository(gdb)
	dispatcher := audit.NewDispatcher(audit.New(gdb), zap.NewNop())
	voidUC := NewVoidInvoice(repo, dispatcher)
	ctx := context.Background()

	id, err := issueUC.Execute(ctx, IssueInvoiceInput{
		ClientID:      3,
		Subtotal:      dec(t, "100.00"),
		Total:         dec(t, "100.00"),
		PaymentMethod: domain.PaymentTransfer,
		Appointments:  []models.Appointment{candidate("100.00", 27, 9)},
	})
	require.NoError(t, err)

	t.Run("first void flips the status", func(t *testing.T) {
		voided, err := voidUC.Execute(ctx, 1, id)
		require.NoError(t, err)
		assert.True(t, voided)

		var inv models.Invoice
		require.NoError(t, gdb.First(&inv, id).Error)
		assert.Equal(t, string(domain.StatusVoided), inv.Status)
		assert.NotNil(t, inv.VoidedAt)
	})

	t.Run("second void is a no-op", func(t *testing.T) {
		voided, err := voidUC.Execute(ctx, 1, id)
		require.NoError(t, err)
		assert.False(t, voided)

		var inv models.Invoice
		require.NoError(t, gdb.First(&inv, id).Error)
		assert.Equal(t, string(domain.StatusVoided), inv.Status)
	})

	t.Run("voiding does not cascade to appointments", func(t *testing.T) {
		var lines []models.Appointment
		require.NoError(t, gdb.Where("invoice_id = ?", id).Find(&lines).Error)
		require.Len(t, lines, 1)
		assert.Equal(t, string(apdomain.StatusPending), lines[0].Status)
		assert.NotNil(t, lines[0].InvoiceID)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		voided, err := voidUC.Execute(ctx, 1, 9999)
		require.NoError(t, err)
		assert.False(t, voided)
	})
}
