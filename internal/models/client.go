package models

import "time"

// Billing party of an invoice. Usually the patient, sometimes an
// insurer or a relative paying on the patient's behalf.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Document string `gorm:"size:20;uniqueIndex" json:"document"`
	Phone    string `gorm:"size:20" json:"phone"`
	Email    string `gorm:"size:100" json:"email"`
	Address  string `gorm:"size:200" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
