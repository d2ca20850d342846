package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clinagenda/clinic-api/internal/config"
	"github.com/clinagenda/clinic-api/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	gdb, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(gdb); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	return gdb
}

// Migrate builds the schema plus the two pieces AutoMigrate cannot
// express: the partial unique index that is the authoritative
// double-booking guard, and the invoice sequence seed row.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.Specialty{},
		&models.Professional{},
		&models.Patient{},
		&models.Client{},
		&models.User{},
		&models.Invoice{},
		&models.InvoiceSequence{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// Cancelled rows stay out of the index so their slot can be rebooked.
	if err := gdb.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_professional_slot
        ON appointments (professional_id, scheduled_at)
        WHERE status <> 'cancelled'
    `).Error; err != nil {
		return err
	}

	var count int64
	if err := gdb.Model(&models.InvoiceSequence{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := gdb.Create(&models.InvoiceSequence{Value: 0}).Error; err != nil {
			return err
		}
	}

	return nil
}
