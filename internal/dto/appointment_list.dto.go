package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinagenda/clinic-api/internal/models"
)

type AppointmentListDTO struct {
	ID               uint            `json:"id"`
	ScheduledAt      time.Time       `json:"scheduled_at"`
	Status           string          `json:"status"`
	Reason           string          `json:"reason"`
	Cost             decimal.Decimal `json:"cost"`
	PatientName      string          `json:"patient_name"`
	ProfessionalName string          `json:"professional_name"`
	InvoiceID        *uint           `json:"invoice_id"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:               ap.ID,
		ScheduledAt:      ap.ScheduledAt,
		Status:           ap.Status,
		Reason:           ap.Reason,
		Cost:             ap.Cost,
		PatientName:      ap.Patient.Name,
		ProfessionalName: ap.Professional.Name,
		InvoiceID:        ap.InvoiceID,
	}
}
