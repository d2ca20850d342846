package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/clinagenda/clinic-api/internal/domain/invoice"
	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/models"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *InvoiceGormRepository) GetClientByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *InvoiceGormRepository) GetInvoiceByID(
	ctx context.Context,
	id uint,
) (*models.Invoice, error) {

	var inv models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Appointments").
		First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceGormRepository) FindInvoices(
	ctx context.Context,
	clientID *uint,
	status *domain.Status,
) ([]models.Invoice, error) {

	q := r.db.WithContext(ctx).Preload("Client")

	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var invoices []models.Invoice
	if err := q.Order("issued_at DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}

	return invoices, nil
}

// --------------------------------------------------
// Issuance (tx-scoped)
// --------------------------------------------------

// NextSequenceValue bumps the single-row counter under a row lock and
// returns the reserved ordinal. Rolling back the transaction releases
// the number: the sequence is never advanced by a failed issuance.
func (r *InvoiceGormRepository) NextSequenceValue(
	ctx context.Context,
	tx *gorm.DB,
) (int64, error) {

	var seq models.InvoiceSequence
	if err := lockForUpdate(tx.WithContext(ctx)).
		First(&seq).Error; err != nil {
		return 0, httperr.ErrBusiness(httperr.CodeNumberGeneration)
	}

	seq.Value++
	if err := tx.WithContext(ctx).Save(&seq).Error; err != nil {
		return 0, httperr.ErrBusiness(httperr.CodeNumberGeneration)
	}

	return seq.Value, nil
}

func (r *InvoiceGormRepository) InsertInvoiceHeader(
	ctx context.Context,
	tx *gorm.DB,
	inv *models.Invoice,
) error {
	return tx.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceGormRepository) InsertAppointmentLine(
	ctx context.Context,
	tx *gorm.DB,
	ap *models.Appointment,
) error {
	if err := tx.WithContext(ctx).Create(ap).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness(httperr.CodeScheduleConflict)
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Voiding
// --------------------------------------------------

func (r *InvoiceGormRepository) VoidInvoice(
	ctx context.Context,
	id uint,
) (bool, error) {

	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ? AND status = ?", id, string(domain.StatusActive)).
		Updates(map[string]any{
			"status":    string(domain.StatusVoided),
			"voided_at": now,
		})

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

func (r *InvoiceGormRepository) Transaction(
	ctx context.Context,
	fn func(tx *gorm.DB) error,
) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// Compile-time check
var _ domain.Repository = (*InvoiceGormRepository)(nil)
