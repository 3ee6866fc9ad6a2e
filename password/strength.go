package password

import "unicode"

const (
	strengthBase  = 0b0001
	strengthLower = 0b0010
	strengthUpper = 0b0100
	strengthDigit = 0b1000
	strengthAll   = 0b1111
)

// IsStrong reports whether password satisfies the submission policy:
// at least 8 bytes long, containing at least one lowercase letter, one
// uppercase letter, and one digit. This is a pre-submission check only;
// it is independent of hashing and is never applied to login candidates.
func IsStrong(password string) bool {
	if len(password) < 8 {
		return false
	}

	score := strengthBase
	for _, c := range password {
		switch {
		case unicode.IsLower(c):
			score |= strengthLower
		case unicode.IsUpper(c):
			score |= strengthUpper
		case c >= '0' && c <= '9':
			score |= strengthDigit
		}
	}

	return score == strengthAll
}
