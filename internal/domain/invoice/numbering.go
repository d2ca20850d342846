package invoice

import "fmt"

const (
	DefaultNumberPrefix = "FAC"
	numberWidth         = 6
)

// FormatNumber renders the display number for an invoice from its
// sequence ordinal, e.g. ("FAC", 123) -> "FAC-000123".
//
// This function is pure: the sequence value must already have been
// reserved inside the issuance transaction.
func FormatNumber(prefix string, seq int64) (string, error) {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}
	return fmt.Sprintf("%s-%0*d", prefix, numberWidth, seq), nil
}
