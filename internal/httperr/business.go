package httperr

import "errors"

// Business error codes shared by the scheduling and billing cores.
const (
	CodeScheduleConflict   = "schedule_conflict"
	CodeInvalidTransition  = "invalid_transition"
	CodeEmptyBatch         = "empty_batch"
	CodeNumberGeneration   = "number_generation_failed"
	CodeAlreadyInvoiced    = "appointment_already_invoiced"
	CodeInvoiceNotFound    = "invoice_not_found"
	CodeAppointmentMissing = "appointment_not_found"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code when err is a business error.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
