package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Human-readable sequential number, e.g. FAC-000123.
	Number string `gorm:"size:20;uniqueIndex;not null" json:"number"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	IssuedAt time.Time `gorm:"not null" json:"issued_at"`
	City     string    `gorm:"size:100" json:"city"`

	Subtotal decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:decimal(10,3)" json:"tax"`
	Discount decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount"`
	Total    decimal.Decimal `gorm:"type:decimal(10,3)" json:"total"`

	PaymentMethod string `gorm:"size:20" json:"payment_method"`
	Status        string `gorm:"size:20;default:'active'" json:"status"`

	Appointments []Appointment `gorm:"foreignKey:InvoiceID" json:"appointments"`

	VoidedAt  *time.Time `json:"voided_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// InvoiceSequence is the single-row counter behind invoice numbering.
// It is read and bumped inside the issuance transaction, never ahead of it.
type InvoiceSequence struct {
	ID    uint  `gorm:"primaryKey"`
	Value int64 `gorm:"not null;default:0"`
}
