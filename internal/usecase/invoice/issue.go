package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/clinagenda/clinic-api/internal/audit"
	"github.com/clinagenda/clinic-api/internal/cache"
	apdomain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	domain "github.com/clinagenda/clinic-api/internal/domain/invoice"
	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/models"
	"github.com/clinagenda/clinic-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type IssueInvoiceInput struct {
	ClientID uint
	City     string

	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal

	PaymentMethod domain.PaymentMethod

	// Fully formed, not yet persisted appointment candidates.
	Appointments []models.Appointment

	UserID uint
}

// ======================================================
// USE CASE
// ======================================================

type IssueInvoice struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	agenda  *cache.AgendaCache
	prefix  string
	tz      string
	timeout time.Duration
}

func NewIssueInvoice(
	repo domain.Repository,
	audit *audit.Dispatcher,
	agenda *cache.AgendaCache,
	prefix string,
	tz string,
	timeout time.Duration,
) *IssueInvoice {
	return &IssueInvoice{
		repo:    repo,
		audit:   audit,
		agenda:  agenda,
		prefix:  prefix,
		tz:      tz,
		timeout: timeout,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute creates the invoice header and every line-item appointment
// as one atomic unit. Number reservation, the header insert and the N
// appointment inserts share a single transaction: any failure rolls
// all of it back, including the reserved number.
func (uc *IssueInvoice) Execute(
	ctx context.Context,
	in IssueInvoiceInput,
) (uint, error) {

	if len(in.Appointments) == 0 {
		return 0, httperr.ErrBusiness(httperr.CodeEmptyBatch)
	}

	if !domain.IsValidPaymentMethod(in.PaymentMethod) {
		return 0, httperr.ErrBusiness("invalid_payment_method")
	}

	for i := range in.Appointments {
		ap := &in.Appointments[i]
		if ap.InvoiceID != nil {
			return 0, httperr.ErrBusiness(httperr.CodeAlreadyInvoiced)
		}
		if ap.PatientID == 0 || ap.ProfessionalID == 0 || ap.ScheduledAt.IsZero() {
			return 0, httperr.ErrBusiness("invalid_appointment")
		}
	}

	if _, err := uc.repo.GetClientByID(ctx, in.ClientID); err != nil {
		return 0, httperr.ErrBusiness("client_not_found")
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	inv := models.Invoice{
		ClientID:      in.ClientID,
		IssuedAt:      timezone.NowIn(uc.tz),
		City:          in.City,
		Subtotal:      in.Subtotal,
		Tax:           in.Tax,
		Discount:      in.Discount,
		Total:         in.Total,
		PaymentMethod: string(in.PaymentMethod),
		Status:        string(domain.StatusActive),
	}

	err := uc.repo.Transaction(ctx, func(tx *gorm.DB) error {
		seq, err := uc.repo.NextSequenceValue(ctx, tx)
		if err != nil {
			return err
		}

		number, err := domain.FormatNumber(uc.prefix, seq)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNumberGeneration)
		}
		inv.Number = number

		if err := uc.repo.InsertInvoiceHeader(ctx, tx, &inv); err != nil {
			return err
		}

		for i := range in.Appointments {
			ap := &in.Appointments[i]
			ap.InvoiceID = &inv.ID
			// Issuance never auto-confirms.
			ap.Status = string(apdomain.StatusPending)

			if err := uc.repo.InsertAppointmentLine(ctx, tx, ap); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	for i := range in.Appointments {
		ap := &in.Appointments[i]
		uc.agenda.InvalidateDay(ctx, ap.ProfessionalID, ap.ScheduledAt)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "invoice_issued",
		Entity:   "invoice",
		EntityID: &inv.ID,
		Metadata: map[string]any{
			"number":       inv.Number,
			"client_id":    inv.ClientID,
			"appointments": len(in.Appointments),
		},
	})

	return inv.ID, nil
}
