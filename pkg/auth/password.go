package auth

import "strings"

// specialChars is the symbol set accepted by the password policy.
const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// ValidatePassword enforces the account password policy: at least 8
// characters with at least one upper-case letter, one lower-case
// letter, one digit and one symbol from specialChars.
func ValidatePassword(plain string) bool {
	if len(plain) < 8 {
		return false
	}

	var upper, lower, digit, special bool
	for _, c := range plain {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(specialChars, c):
			special = true
		}
	}

	return upper && lower && digit && special
}

// PasswordPolicyMessage is the client-facing description of the policy.
const PasswordPolicyMessage = "Password must be at least 8 characters and include an upper-case letter, a lower-case letter, a digit and a special character"
