package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatientByID(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *AppointmentGormRepository) GetProfessionalByID(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var pro models.Professional
	if err := r.db.WithContext(ctx).First(&pro, id).Error; err != nil {
		return nil, err
	}
	return &pro, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness(httperr.CodeScheduleConflict)
		}
		return err
	}
	return nil
}

func (r *AppointmentGormRepository) CountConflicts(
	ctx context.Context,
	professionalID uint,
	scheduledAt time.Time,
	excludeID *uint,
) (int64, error) {

	// Plain read, no row lock: postgres rejects FOR UPDATE on an
	// aggregate, and this check is advisory anyway. The partial unique
	// index on (professional_id, scheduled_at) is the guard of record.
	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"professional_id = ? AND scheduled_at = ? AND status <> ?",
			professionalID,
			scheduledAt,
			string(domain.StatusCancelled),
		)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// --------------------------------------------------
// Appointment (read / update / delete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Save(ap).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness(httperr.CodeScheduleConflict)
		}
		return err
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func (r *AppointmentGormRepository) FindAppointments(
	ctx context.Context,
	f domain.Filters,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.applyFilters(r.db.WithContext(ctx), f).
		Preload("Patient").
		Preload("Professional").
		Order("scheduled_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) CountAppointments(
	ctx context.Context,
	f domain.Filters,
) (int64, error) {

	var count int64
	if err := r.applyFilters(r.db.WithContext(ctx), f).
		Model(&models.Appointment{}).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *AppointmentGormRepository) applyFilters(
	q *gorm.DB,
	f domain.Filters,
) *gorm.DB {

	if f.PatientID != nil {
		q = q.Where("patient_id = ?", *f.PatientID)
	}
	if f.ProfessionalID != nil {
		q = q.Where("professional_id = ?", *f.ProfessionalID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.From != nil {
		q = q.Where("scheduled_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("scheduled_at < ?", *f.To)
	}

	return q
}

// --------------------------------------------------
// Agenda
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedSlots(
	ctx context.Context,
	professionalID uint,
	from time.Time,
	to time.Time,
) ([]time.Time, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("scheduled_at").
		Where(
			"professional_id = ? AND status <> ? AND scheduled_at >= ? AND scheduled_at < ?",
			professionalID,
			string(domain.StatusCancelled),
			from,
			to,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	slots := make([]time.Time, 0, len(apps))
	for _, ap := range apps {
		slots = append(slots, ap.ScheduledAt)
	}

	return slots, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
