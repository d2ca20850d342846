package invoice

// ===============================
// Invoice Status
// ===============================

type Status string

const (
	StatusActive Status = "active"
	StatusVoided Status = "voided"
)

// ===============================
// Payment Method
// ===============================

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCheck    PaymentMethod = "check"
)

func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCheck:
		return true
	}
	return false
}
