package invoice

import (
	"context"

	"gorm.io/gorm"

	"github.com/clinagenda/clinic-api/internal/models"
)

// Repository is the store contract behind issuance and voiding. The
// tx-scoped methods must all run inside the same transaction: the
// sequence bump, the header insert and every line-item insert either
// commit together or roll back together.
type Repository interface {
	GetClientByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetInvoiceByID(
		ctx context.Context,
		id uint,
	) (*models.Invoice, error)

	FindInvoices(
		ctx context.Context,
		clientID *uint,
		status *Status,
	) ([]models.Invoice, error)

	// -------- Issuance (tx-scoped) --------
	NextSequenceValue(
		ctx context.Context,
		tx *gorm.DB,
	) (int64, error)

	InsertInvoiceHeader(
		ctx context.Context,
		tx *gorm.DB,
		inv *models.Invoice,
	) error

	InsertAppointmentLine(
		ctx context.Context,
		tx *gorm.DB,
		ap *models.Appointment,
	) error

	// -------- Voiding --------
	// VoidInvoice conditionally flips an active invoice to voided and
	// reports whether a row actually changed.
	VoidInvoice(
		ctx context.Context,
		id uint,
	) (bool, error)

	// Transaction wraps fn in a single unit of work.
	Transaction(
		ctx context.Context,
		fn func(tx *gorm.DB) error,
	) error
}
