package identity

import (
	"net/mail"
	"strings"
)

const (
	minPasswordLen = 6
	// bcrypt ignores input past 72 bytes and newer versions refuse it.
	maxPasswordBytes = 72
)

// NormalizeEmail performs case-insensitive canonicalization.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type field struct {
	name  string
	value string
}

func requireFields(op string, fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return invalid(op, f.name, "is required")
		}
	}
	return nil
}

func validateEmail(op, email string) error {
	if email == "" {
		return invalid(op, "email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid(op, "email", "is not a valid address")
	}
	return nil
}

func validatePassword(op, password string) error {
	if strings.TrimSpace(password) == "" {
		return invalid(op, "password", "is required")
	}
	if len([]rune(password)) < minPasswordLen {
		return invalid(op, "password", "must be at least 6 characters")
	}
	if len(password) > maxPasswordBytes {
		return invalid(op, "password", "must be at most 72 bytes")
	}
	return nil
}
