package validators

import "unicode"

// IsDocumentValid accepts national id / tax id strings: 6 to 20
// characters, digits with optional dashes or dots.
func IsDocumentValid(doc string) bool {
	if len(doc) < 6 || len(doc) > 20 {
		return false
	}

	digits := 0
	for _, r := range doc {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '-' || r == '.':
		default:
			return false
		}
	}

	return digits >= 6
}
