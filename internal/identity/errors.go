package identity

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by registration and bootstrap. Match them with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateIdentity = errors.New("identity already registered")
	ErrPersistence       = errors.New("persistence failure")
	ErrHashing           = errors.New("password hashing failed")
)

// Error is a typed operation failure.
// Kind is one of the sentinel kinds above; Field names the offending input or unique key when known.
// Msg is human readable and never contains secrets.
type Error struct {
	Op    string
	Kind  error
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func invalid(op, field, msg string) error {
	return &Error{Op: op, Kind: ErrValidation, Field: field, Msg: msg}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsDuplicate reports whether err is a uniqueness violation.
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicateIdentity) }

// FieldOf returns the field recorded on err, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
