package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `gorm:"not null;index" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"patient"`

	ProfessionalID uint         `gorm:"not null;index" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"professional"`

	// Minute precision; the partial unique index on
	// (professional_id, scheduled_at) is created in internal/db.
	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`

	Reason string `gorm:"size:255" json:"reason"`
	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"size:500" json:"notes"`

	Cost decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost"`

	// Set exactly once, inside the issuance transaction.
	InvoiceID *uint `gorm:"index" json:"invoice_id"`

	CancelledAt *time.Time `json:"cancelled_at"`
	AttendedAt  *time.Time `json:"attended_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
