package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/clinagenda/clinic-api/internal/httperr"
)

// User-facing messages per business code. Persistence failures stay
// behind a generic retryable message.
var businessMessages = map[string]string{
	httperr.CodeScheduleConflict:   "Slot already booked for this professional.",
	httperr.CodeInvalidTransition:  "This status change is not allowed.",
	httperr.CodeEmptyBatch:         "An invoice needs at least one appointment.",
	httperr.CodeNumberGeneration:   "Could not reserve an invoice number, try again.",
	httperr.CodeAlreadyInvoiced:    "Appointment is already linked to an invoice.",
	httperr.CodeAppointmentMissing: "Appointment not found.",
	httperr.CodeInvoiceNotFound:    "Invoice not found.",
	"patient_not_found":            "Patient not found.",
	"professional_not_found":       "Professional not found.",
	"professional_inactive":        "Professional is not accepting appointments.",
	"client_not_found":             "Client not found.",
	"invalid_date_or_time":         "Invalid date or time.",
	"invalid_payment_method":       "Unknown payment method.",
	"invalid_appointment":          "Malformed appointment in batch.",
}

// writeError maps a use-case error to the HTTP surface. Anything that
// is not a business error is an internal failure and stays opaque.
func writeError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong, try again.")
		return
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = "Request rejected."
	}

	switch code {
	case httperr.CodeScheduleConflict:
		httperr.Conflict(c, code, msg)
	case httperr.CodeInvalidTransition, httperr.CodeAlreadyInvoiced, httperr.CodeEmptyBatch:
		httperr.Unprocessable(c, code, msg)
	case httperr.CodeAppointmentMissing, httperr.CodeInvoiceNotFound:
		httperr.NotFound(c, code, msg)
	case httperr.CodeNumberGeneration:
		httperr.Internal(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
}
